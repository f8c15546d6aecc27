// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user (dev@example.com) already exists.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"bikemarket/backend/internal/config"
	"bikemarket/backend/internal/db"
	listingdomain "bikemarket/backend/internal/listing/domain"
	listingrepo "bikemarket/backend/internal/listing/repository"
	"bikemarket/backend/internal/security"
	userdomain "bikemarket/backend/internal/user/domain"
	userrepo "bikemarket/backend/internal/user/repository"
)

const (
	devUserEmail  = "dev@example.com"
	devUser2Email = "buyer@example.com"
	devPassword   = "password123"
	devUserID     = "dev-user-001"
	devUser2ID    = "dev-user-002"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)
	listings := listingrepo.NewPostgresRepository(conn)

	existing, err := users.GetByEmail(ctx, devUserEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (dev@example.com exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	for _, u := range []*userdomain.User{
		{ID: devUserID, Email: devUserEmail, Name: "Dev Seller", PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now},
		{ID: devUser2ID, Email: devUser2Email, Name: "Dev Buyer", PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now},
	} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("seed user %s: %v", u.Email, err)
		}
	}

	for _, l := range []*listingdomain.Listing{
		{
			ID: listingdomain.NewID(), Brand: "Yamaha", Model: "MT-07", Year: 2021,
			Price: 6200, KilometersDriven: 14500, Location: "Lisbon",
			ImageURL: "https://example.com/img/mt07.jpg", SellerID: devUserID,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: listingdomain.NewID(), Brand: "Honda", Model: "CB500F", Year: 2019,
			Price: 4300, KilometersDriven: 28700, Location: "Porto",
			ImageURL: "https://example.com/img/cb500f.jpg", SellerID: devUserID,
			CreatedAt: now.Add(time.Second), UpdatedAt: now.Add(time.Second),
		},
	} {
		if err := listings.Create(ctx, l); err != nil {
			log.Fatalf("seed listing %s: %v", l.Model, err)
		}
	}

	log.Println("Seed applied.")
}
