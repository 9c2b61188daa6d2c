package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stormboard/internal/model"
	"stormboard/internal/repository"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "stormboard"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	sessionRepo := repository.NewSessionRepo(db)
	postItRepo := repository.NewPostItRepo(db)

	username := os.Getenv("FACILITATOR_USERNAME")
	if username == "" {
		username = "facilitator"
	}

	session := &model.Session{
		UserID:                username,
		Question:              "How might we improve onboarding for new team members?",
		ShortCode:             "DEMO42",
		Phase:                 model.PhaseCollect,
		Status:                model.SessionActive,
		ParticipantVisibility: true,
		RevealMode:            model.RevealLive,
		CreatedAt:             time.Now(),
	}
	if err := sessionRepo.Create(ctx, session); err != nil {
		log.Fatalf("Failed to seed session: %v", err)
	}

	ideas := []string{
		"Pair every new hire with a buddy for the first month",
		"Record short walkthroughs of the core systems",
		"Ship the laptop a week before the start date",
		"Schedule intro chats with each neighbouring team",
		"Write a first-week checklist with small shippable tasks",
		"Hold a no-questions-too-basic office hour every Friday",
	}
	for i, text := range ideas {
		postIt := &model.PostIt{
			SessionID: session.ID,
			Text:      text,
			PositionX: float64(40 + (i%5)*200),
			PositionY: float64(40 + (i/5)*160),
			Color:     "#fef9c3",
			CreatedAt: time.Now(),
		}
		if err := postItRepo.Create(ctx, postIt); err != nil {
			log.Fatalf("Failed to seed post-it: %v", err)
		}
	}

	fmt.Printf("Seeded session %s (join code %s) with %d post-its\n", session.ID, session.ShortCode, len(ideas))
}
