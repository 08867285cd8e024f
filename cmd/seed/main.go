package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"expense-tracker-api/config"
	"expense-tracker-api/internal/domain/entity"
	"expense-tracker-api/pkg/helpers"
)

// Seeds a demo account with the default categories and a handful of
// expenses. Development only.
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
	username := "demo"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, name, monthly_budget, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, username, email, hash, "Demo User", 5000.0, entity.DefaultCurrency).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	for _, c := range entity.DefaultCategories() {
		if _, err := db.Exec(`
			INSERT INTO categories (user_id, name, description, color, icon, is_default)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id, name) DO NOTHING
		`, userID, c.Name, c.Description, c.Color, c.Icon, c.IsDefault); err != nil {
			log.Fatalf("failed to seed category %q: %v", c.Name, err)
		}
	}
	fmt.Println("default categories ensured")

	var foodID string
	if err := db.QueryRow(`
		SELECT id FROM categories WHERE user_id = $1 AND name = 'Food & Dining'
	`, userID).Scan(&foodID); err != nil {
		log.Fatalf("failed to look up category: %v", err)
	}

	samples := []struct {
		title  string
		amount float64
		days   int
		method string
	}{
		{"Groceries", 84.50, 1, entity.PaymentCard},
		{"Lunch", 12.00, 2, entity.PaymentUPI},
		{"Coffee", 4.75, 3, entity.PaymentCash},
	}
	for _, s := range samples {
		if _, err := db.Exec(`
			INSERT INTO expenses (user_id, category_id, title, amount, date, payment_method, tags)
			VALUES ($1, $2, $3, $4, $5, $6, ARRAY['seed'])
		`, userID, foodID, s.title, s.amount, time.Now().AddDate(0, 0, -s.days), s.method); err != nil {
			log.Fatalf("failed to seed expense %q: %v", s.title, err)
		}
	}
	fmt.Printf("seeded %d sample expenses\n", len(samples))
}
