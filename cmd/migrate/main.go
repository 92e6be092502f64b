package main

import (
	"fmt"
	"log"
	"os"

	"flotavista-backend/internal/database"

	"github.com/joho/godotenv"
)

// Standalone migration + seed runner, for provisioning a database without
// starting the server
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := database.SeedUsers(db); err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := database.SeedBranches(db); err != nil {
		log.Fatalf("Branch seeding failed: %v", err)
	}
	if err := database.SeedShifts(db); err != nil {
		log.Fatalf("Shift seeding failed: %v", err)
	}
	if err := database.SeedVehicles(db); err != nil {
		log.Fatalf("Vehicle seeding failed: %v", err)
	}

	var summary struct {
		Users    int `db:"users"`
		Branches int `db:"branches"`
		Vehicles int `db:"vehicles"`
		Shifts   int `db:"shifts"`
	}
	err = db.Get(&summary, `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM branches) AS branches,
			(SELECT COUNT(*) FROM vehicles) AS vehicles,
			(SELECT COUNT(*) FROM shift_definitions) AS shifts
	`)
	if err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Users:     %d\n", summary.Users)
	fmt.Printf("Branches:  %d\n", summary.Branches)
	fmt.Printf("Vehicles:  %d\n", summary.Vehicles)
	fmt.Printf("Shifts:    %d\n", summary.Shifts)
	fmt.Println("============================================================")
}
