package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sevasetu/ngo-directory-service/internal/db"
)

// canonical category taxonomy; slugs are stable identifiers used in filters
var categories = []struct {
	Name string
	Slug string
	Icon string
}{
	{"Education", "education", "book"},
	{"Health", "health", "heart-pulse"},
	{"Environment", "environment", "leaf"},
	{"Child Welfare", "child-welfare", "child"},
	{"Women Empowerment", "women-empowerment", "female"},
	{"Elderly Care", "elderly-care", "person-cane"},
	{"Animal Welfare", "animal-welfare", "paw"},
	{"Disaster Relief", "disaster-relief", "house-crack"},
	{"Social Welfare", "social-welfare", "people-group"},
	{"Poverty Alleviation", "poverty-alleviation", "hand-holding-heart"},
}

func main() {
	ctx := context.Background()

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.ApplySchema(ctx, database); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	for _, c := range categories {
		_, err := database.ExecContext(ctx, `
			INSERT INTO categories (id, name, slug, icon)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (slug) DO NOTHING
		`, uuid.New().String(), c.Name, c.Slug, c.Icon)
		if err != nil {
			log.Fatalf("failed to seed category %s: %v", c.Slug, err)
		}
	}
	log.Printf("✓ Seeded %d categories", len(categories))

	// Bootstrap admin account, skipped when ADMIN_EMAIL is unset
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" {
		log.Println("ADMIN_EMAIL not set, skipping admin bootstrap")
		return
	}
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	_, err = database.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, $4, 'ADMIN', $5)
		ON CONFLICT (email) DO NOTHING
	`, uuid.New().String(), adminEmail, string(hash), "Administrator", time.Now().UTC())
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	log.Printf("✓ Admin account ready (%s)", adminEmail)
}
