package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"stormboard/internal/service"
	"stormboard/internal/transport/rest/handler"
	"stormboard/internal/transport/rest/middleware"
	"stormboard/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	SessionService     *service.SessionService
	FolderService      *service.FolderService
	ParticipantService *service.ParticipantService
	CoAdminService     *service.CoAdminService
	PostItService      *service.PostItService
	ClusterService     *service.ClusterService
	VotingService      *service.VotingService
	WSHub              *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.ParticipantService)
	folderHandler := handler.NewFolderHandler(c.FolderService)
	participantHandler := handler.NewParticipantHandler(c.ParticipantService)
	coAdminHandler := handler.NewCoAdminHandler(c.CoAdminService)
	postItHandler := handler.NewPostItHandler(c.PostItService)
	clusterHandler := handler.NewClusterHandler(c.ClusterService)
	votingHandler := handler.NewVotingHandler(c.VotingService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.CoAdminService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/code/{shortCode}", sessionHandler.GetByCode).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/participants", participantHandler.Join).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/participants/me", participantHandler.Reconnect).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/participants", participantHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/postits", postItHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/clusters", clusterHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/rounds", votingHandler.ListRounds).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{sessionId}/rounds/active", votingHandler.ActiveRound).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rounds/{roundId}/votes", votingHandler.SubmitVotes).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rounds/{roundId}/votes/me", votingHandler.VoteStatus).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rounds/{roundId}/results", votingHandler.Results).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rounds/{roundId}/progress", votingHandler.Progress).Methods("GET", "OPTIONS")
	v1.HandleFunc("/coadmin/join", coAdminHandler.Join).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/sessions/{sessionId}/admin", wsHandler.AdminWS).Methods("GET")
	v1.HandleFunc("/ws/sessions/{sessionId}/participant", wsHandler.ParticipantWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes: reachable with a facilitator JWT or a co-admin token.
	// The JWT is resolved when present; per-operation authorization happens
	// in the service layer against the full credential.
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.Optional)

	adminRoutes.HandleFunc("/sessions/{sessionId}/phase/advance", sessionHandler.AdvancePhase).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/phase/revert", sessionHandler.RevertPhase).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/timer/start", sessionHandler.StartTimer).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/timer/stop", sessionHandler.StopTimer).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/timer/reset", sessionHandler.ResetTimer).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/postits", postItHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/postits/{postItId}/text", postItHandler.UpdateText).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/postits/{postItId}/position", postItHandler.Move).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/postits/{postItId}/cluster", postItHandler.SetCluster).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/postits/{postItId}", postItHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/clusters", clusterHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/clusters/{clusterId}", clusterHandler.Update).Methods("PATCH", "OPTIONS")
	adminRoutes.HandleFunc("/clusters/{clusterId}", clusterHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}/rounds", votingHandler.CreateRound).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/rounds/{roundId}/reveal", votingHandler.Reveal).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/sessions/{sessionId}", sessionHandler.Get).Methods("GET", "OPTIONS")

	// Owner routes (require facilitator auth)
	ownerRoutes := v1.NewRoute().Subrouter()
	ownerRoutes.Use(authMW.Require)

	ownerRoutes.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/sessions", sessionHandler.List).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/sessions/{sessionId}", sessionHandler.Update).Methods("PATCH", "OPTIONS")
	ownerRoutes.HandleFunc("/sessions/{sessionId}", sessionHandler.Delete).Methods("DELETE", "OPTIONS")
	ownerRoutes.HandleFunc("/sessions/{sessionId}/duplicate", sessionHandler.Duplicate).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/sessions/{sessionId}/folder", sessionHandler.MoveToFolder).Methods("PUT", "OPTIONS")
	ownerRoutes.HandleFunc("/sessions/{sessionId}/coadmin/invite", coAdminHandler.CreateInvite).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/sessions/{sessionId}/coadmin", coAdminHandler.Get).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/sessions/{sessionId}/coadmin", coAdminHandler.Revoke).Methods("DELETE", "OPTIONS")
	ownerRoutes.HandleFunc("/folders", folderHandler.List).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/folders", folderHandler.Create).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/folders/{folderId}", folderHandler.Rename).Methods("PUT", "OPTIONS")
	ownerRoutes.HandleFunc("/folders/{folderId}", folderHandler.Delete).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization, X-CoAdmin-Token, X-Participant-Token"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
