// Command seed fills the database with demo data.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"feedengine/internal/config"
	"feedengine/internal/database"
	"feedengine/internal/middleware"
	"feedengine/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	maxComments := flag.Int("comments", 4, "Maximum comments per post")
	maxDays := flag.Int("days", 30, "Spread post creation over this many days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed (0 for random)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.InitLogger(cfg.Env, os.Stdout)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		Users:       *numUsers,
		Posts:       *numPosts,
		MaxComments: *maxComments,
		MaxDays:     *maxDays,
		Clean:       *shouldClean,
		Seed:        *randSeed,
	})
	sum, err := s.Run(context.Background())
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! users=%d posts=%d likes=%d comments=%d", sum.Users, sum.Posts, sum.Likes, sum.Comments)
	log.Printf("📧 All test users have the password: %s", seed.DefaultPassword)
}
