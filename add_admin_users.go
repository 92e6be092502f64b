package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// One-off helper: adds extra admin accounts to an existing database.
// Run with: go run add_admin_users.go
func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("🔌 Connected to database")

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admins := []struct {
		email, name string
	}{
		{"supervisor@flotavista.cl", "Supervisor de Flota"},
		{"gerencia@flotavista.cl", "Gerencia"},
	}

	for _, a := range admins {
		var exists int
		if err := db.Get(&exists, "SELECT COUNT(*) FROM users WHERE email = $1", a.email); err == nil && exists > 0 {
			log.Printf("✓ %s already exists, skipping", a.email)
			continue
		}

		_, err := db.Exec(`
			INSERT INTO users (id, email, password, name, role)
			VALUES ($1, $2, $3, $4, 'admin')
		`, uuid.New().String(), a.email, string(adminPassword), a.name)
		if err != nil {
			log.Fatalf("Failed to insert %s: %v", a.email, err)
		}
		log.Printf("✅ Created admin: %s", a.email)
	}

	log.Println("Done.")
}
