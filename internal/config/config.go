package config

import "os"

// Config holds the server configuration, loaded from the environment.
type Config struct {
	MongoURI            string
	MongoDatabase       string
	RedisAddr           string
	HTTPPort            string
	JWTSecret           string
	FacilitatorUsername string
	FacilitatorPassword string
}

// Load reads configuration from the environment with local-dev defaults.
func Load() *Config {
	return &Config{
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGO_DB", "stormboard"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret-change-me"),
		FacilitatorUsername: getEnv("FACILITATOR_USERNAME", "facilitator"),
		FacilitatorPassword: getEnv("FACILITATOR_PASSWORD", "facilitator"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
