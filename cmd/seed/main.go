// Command seed populates the configured database with a demo dataset
// driven through the real engine services, so counters, hashtags and
// notifications come out the same way production traffic produces them.
package main

import (
	"context"
	"flag"
	"log"

	"chirp/internal/cache"
	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/observability"
	"chirp/internal/seed"
)

func main() {
	users := flag.Int("users", 0, "number of users to create (0 = default preset)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	cache.InitRedis(cfg.RedisURL)

	opts := seed.DefaultOptions()
	if *users > 0 {
		opts.Users = *users
	}

	ctx := observability.WithRequestID(context.Background())
	if err := seed.New(db, opts).Run(ctx); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("seeding completed")
}
