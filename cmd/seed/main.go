package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"community-board/config"
	"community-board/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "Demo Resident"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	notices := []struct {
		title, body, category string
	}{
		{"Parking lot B closed", "Resurfacing work runs all week; use lot A.", "parking"},
		{"Mask policy update", "Masks are optional in shared indoor spaces.", "covid"},
		{"Elevator maintenance", "The east elevator is out of service on Friday.", "maintenance"},
	}
	for _, n := range notices {
		var nid string
		if err := db.QueryRow(`
			INSERT INTO notices (title, body, category, date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, n.title, n.body, n.category, time.Now()).Scan(&nid); err != nil {
			log.Fatalf("failed to seed notice: %v", err)
		}
		fmt.Printf("seeded notice: id=%s category=%s title=%q\n", nid, n.category, n.title)
	}
}
