package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"flotavista-backend/internal/database"
	"flotavista-backend/internal/handlers"
	"flotavista-backend/internal/livestatus"
	"flotavista-backend/internal/middleware"
	"flotavista-backend/internal/models"
	"flotavista-backend/internal/services"
	"flotavista-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚛 FLOTAVISTA BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Connect to database
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Database migrations failed: %v", err)
	}

	// Seed initial data
	if err := database.SeedUsers(db); err != nil {
		log.Fatalf("❌ User seeding failed: %v", err)
	}
	if err := database.SeedBranches(db); err != nil {
		log.Fatalf("❌ Branch seeding failed: %v", err)
	}
	if err := database.SeedShifts(db); err != nil {
		log.Fatalf("❌ Shift seeding failed: %v", err)
	}
	if err := database.SeedVehicles(db); err != nil {
		log.Fatalf("❌ Vehicle seeding failed: %v", err)
	}
	log.Println("✅ Database ready")

	// Initialize Firebase Cloud Messaging
	// Supports both file path and base64-encoded credentials (for Railway/cloud deployments)
	var fcmService *services.FCMService
	if fcmCredsBase64 := os.Getenv("FIREBASE_CREDENTIALS_BASE64"); fcmCredsBase64 != "" {
		fcmService, err = services.NewFCMServiceFromBase64(fcmCredsBase64)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from base64: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from base64 credentials")
		}
	} else {
		fcmCredentialsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
		if fcmCredentialsFile == "" {
			fcmCredentialsFile = "./firebase-service-account.json"
		}
		fcmService, err = services.NewFCMService(fcmCredentialsFile)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from file: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from file")
		}
	}

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	// Live status pipeline: tracker client behind a generation-tagged
	// refresher; every committed refresh is pushed to connected dashboards
	tracker := services.NewTrackerClient()
	refresher := livestatus.NewRefresher(tracker, 10*time.Second)
	refresher.OnCommit = func(statuses map[int]models.VehicleOnlineStatus) {
		wsHub.BroadcastAll(map[string]interface{}{
			"type": "fleet_status_update",
			"data": statuses,
		})
	}
	log.Println("✅ Live status refresher ready")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Dashboard reads (no auth required, same as the rest of the portal's
		// read surface)
		r.Get("/branches", handlers.GetBranches(db))
		r.Get("/vehicles", handlers.GetVehicles(db))
		r.Get("/vehicles/{number}/assignments", handlers.GetVehicleAssignments(db))
		r.Get("/vehicles/{number}/calendar", handlers.GetVehicleCalendar(db))
		r.Get("/shifts", handlers.GetShiftDefinitions(db))
		r.Get("/overrides", handlers.GetOverrides(db))
		r.Get("/fleet/day", handlers.GetFleetDay(db, refresher))
		r.Get("/fleet/day/active", handlers.GetActiveFleetDay(db, refresher))

		// Authenticated portal users
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			r.Get("/auth/status", handlers.GetAuthStatus(db))
			r.Post("/fcm-token", handlers.RegisterFCMToken(db))
			r.Post("/fleet/refresh-status", handlers.RefreshFleetStatus(db, refresher))
		})

		// Admin endpoints (require authentication + admin role)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("admin"))

			r.Post("/shifts", handlers.CreateShiftDefinition(db))
			r.Patch("/shifts/{id}", handlers.UpdateShiftDefinition(db))
			r.Delete("/shifts/{id}", handlers.DeleteShiftDefinition(db))

			r.Post("/vehicles", handlers.CreateVehicle(db))
			r.Patch("/vehicles/{id}", handlers.UpdateVehicle(db))
			r.Post("/vehicles/{id}/retire", handlers.RetireVehicle(db))

			r.Post("/assignments", handlers.CreateAssignment(db))
			r.Patch("/assignments/{id}", handlers.UpdateAssignment(db))
			r.Delete("/assignments/{id}", handlers.DeleteAssignment(db))

			r.Post("/overrides", handlers.CreateOverride(db, fcmService))
			r.Put("/overrides/{id}/cancel", handlers.CancelOverride(db, fcmService))

			r.Post("/users", handlers.CreateUser(db))
		})
	})

	// Get port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚛 Server starting on http://localhost:%s", port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
