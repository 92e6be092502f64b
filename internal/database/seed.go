package database

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding default users...")

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	opsPassword, err := bcrypt.GenerateFromPassword([]byte("operaciones123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []struct {
		email, password, name, role string
	}{
		{"admin@flotavista.cl", string(adminPassword), "Administrador", "admin"},
		{"operaciones@flotavista.cl", string(opsPassword), "Jefe de Operaciones", "operations"},
	}

	for _, u := range users {
		_, err := db.Exec(`
			INSERT INTO users (id, email, password, name, role)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), u.email, u.password, u.name, u.role)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d users", len(users))
	return nil
}

func SeedBranches(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM branches"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Branches already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding branches...")

	branches := []struct {
		name, code string
	}{
		{"Santiago", "SCL"},
		{"Antofagasta", "ANF"},
		{"Concepción", "CCP"},
	}

	for _, b := range branches {
		_, err := db.Exec(`
			INSERT INTO branches (id, name, code) VALUES ($1, $2, $3)
		`, uuid.New().String(), b.name, b.code)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d branches", len(branches))
	return nil
}

func SeedShifts(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM shift_definitions"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Shifts already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding canonical shifts...")

	sunday := 7
	shifts := []struct {
		name, start, end string
		freeDay          *int
	}{
		{"Turno Mañana", "08:00", "16:00", &sunday},
		{"Turno Tarde", "16:00", "00:00", &sunday},
		{"Turno Noche", "22:00", "06:00", nil},
	}

	for _, s := range shifts {
		_, err := db.Exec(`
			INSERT INTO shift_definitions (id, name, start_time, end_time, free_day)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), s.name, s.start, s.end, s.freeDay)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d shifts", len(shifts))
	return nil
}

func SeedVehicles(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM vehicles"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Vehicles already seeded, skipping...")
		return nil
	}

	var branchIDs []string
	if err := db.Select(&branchIDs, "SELECT id FROM branches ORDER BY code"); err != nil {
		return err
	}
	if len(branchIDs) == 0 {
		log.Println("⚠️  No branches to attach vehicles to, skipping vehicle seed")
		return nil
	}

	log.Println("🌱 Seeding vehicle roster...")

	vehicles := []struct {
		number int
		plate  string
		vtype  string
	}{
		{101, "GHXB-11", "camioneta"},
		{102, "GHXB-12", "camioneta"},
		{103, "JKWL-23", "camión 3/4"},
		{104, "JKWL-24", "camión 3/4"},
		{105, "LPRT-35", "furgón"},
		{201, "RSTV-41", "camioneta"},
		{202, "RSTV-42", "camión 3/4"},
		{301, "TWXZ-57", "furgón"},
	}

	for i, v := range vehicles {
		branch := branchIDs[i%len(branchIDs)]
		_, err := db.Exec(`
			INSERT INTO vehicles (id, vehicle_number, plate, vehicle_type, branch_id)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), v.number, v.plate, v.vtype, branch)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d vehicles", len(vehicles))
	return nil
}
