// Command main runs the database seeder for the Hygall board.
package main

import (
	"flag"
	"log"

	"hygall/internal/config"
	"hygall/internal/database"
	"hygall/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 50, "Number of posts to create")
	maxComments := flag.Int("max-comments", 8, "Maximum comments per post")
	unlockCode := flag.String("code", seed.DemoUnlockCode, "Unlock code for all seeded content")
	shouldClean := flag.Bool("clean", true, "Clean board before seeding")
	flag.Parse()

	log.Println("Board Seeder")
	log.Println("============")
	log.Printf("Target: %d posts, clean=%v\n", *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumPosts:    *numPosts,
		MaxComments: *maxComments,
		UnlockCode:  *unlockCode,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	created, err := s.SeedBoard()
	if err != nil {
		log.Fatalf("Seeding failed after %d posts: %v", created, err)
	}

	log.Println("Done.")
}
