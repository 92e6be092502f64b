package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("🔌 DATABASE CONNECTION ATTEMPT")
	log.Printf("   📍 Database URL length: %d characters", len(dbURL))
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Printf("❌ sqlx.Connect() failed: %v", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		log.Printf("❌ Ping() failed: %v", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ DATABASE CONNECTION SUCCESSFUL")
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('operations', 'admin')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create branches table
		`CREATE TABLE IF NOT EXISTS branches (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT NOT NULL UNIQUE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create vehicles table
		`CREATE TABLE IF NOT EXISTS vehicles (
			id TEXT PRIMARY KEY,
			vehicle_number INT NOT NULL UNIQUE,
			plate TEXT NOT NULL,
			vehicle_type TEXT NOT NULL,
			branch_id TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (branch_id) REFERENCES branches(id)
		)`,

		// Create shift_definitions table. Times are "HH:MM", free_day is an
		// ISO weekday (1=Monday .. 7=Sunday) or NULL
		`CREATE TABLE IF NOT EXISTS shift_definitions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			free_day INT CHECK(free_day BETWEEN 1 AND 7),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create vehicle_shift_assignments table. Dates are canonical
		// "yyyy-MM-dd" TEXT on purpose: resolution compares them lexically.
		// The shift window is denormalized so resolution needs no join.
		`CREATE TABLE IF NOT EXISTS vehicle_shift_assignments (
			id TEXT PRIMARY KEY,
			vehicle_number INT NOT NULL,
			shift_id TEXT NOT NULL,
			shift_name TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			free_day INT,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			priority INT NOT NULL DEFAULT 1,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (shift_id) REFERENCES shift_definitions(id)
		)`,

		// Create vehicle_status_overrides table
		`CREATE TABLE IF NOT EXISTS vehicle_status_overrides (
			id TEXT PRIMARY KEY,
			vehicle_number INT NOT NULL,
			status TEXT NOT NULL,
			color TEXT,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			comments TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create fcm_tokens table
		`CREATE TABLE IF NOT EXISTS fcm_tokens (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			token TEXT NOT NULL UNIQUE,
			device_type TEXT NOT NULL,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Indexes for the per-day resolution queries
		`CREATE INDEX IF NOT EXISTS idx_assignments_vehicle ON vehicle_shift_assignments(vehicle_number)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_dates ON vehicle_shift_assignments(start_date, end_date)`,
		`CREATE INDEX IF NOT EXISTS idx_overrides_vehicle ON vehicle_status_overrides(vehicle_number)`,
		`CREATE INDEX IF NOT EXISTS idx_overrides_dates ON vehicle_status_overrides(start_date, end_date)`,
		`CREATE INDEX IF NOT EXISTS idx_vehicles_branch ON vehicles(branch_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Printf("✅ Ran %d migrations", len(migrations))
	return nil
}
