// Package main provides a tool to seed the database with demo mood data.
//
// This creates a handful of anonymous profiles and realistic mood entries
// over the past two weeks to exercise the feed, insights, and summaries.
//
// Usage:
//
//	DB_PATH=~/Aura/data/aura.db go run ./cmd/seed
//	DB_PATH=~/Aura/data/aura.db go run ./cmd/seed --profiles 8
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/auraapp/aura-server/internal/domain"
	"github.com/auraapp/aura-server/internal/id"
	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/service"
	"github.com/auraapp/aura-server/internal/store/sqlite"
)

var profileCount = flag.Int("profiles", 5, "Number of demo profiles to create")

var demoNames = []string{
	"Moonlit Fox", "Quiet Heron", "Amber Wolf", "Drifting Cloud",
	"Velvet Owl", "Paper Crane", "Silver Birch", "Low Tide",
}

var demoNotes = []string{
	"Long walk after work, head feels clearer.",
	"Deadline week. Coffee is not helping anymore.",
	"Called an old friend, we talked for two hours.",
	"Slept badly, everything felt heavier today.",
	"Small win at work, celebrated with good food.",
	"Rainy day, stayed in and read.",
	"Gym in the morning actually worked for once.",
	"",
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Aura/data/aura.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	seedLog := logger.New(logger.Config{Level: slog.LevelWarn, Environment: "development"})
	if err := service.SeedSystemTags(ctx, s, seedLog); err != nil {
		log.Fatalf("Failed to seed system tags: %v", err)
	}

	tags, err := s.ListSystemTags(ctx)
	if err != nil {
		log.Fatalf("Failed to list system tags: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	count := min(*profileCount, len(demoNames))
	for p := 0; p < count; p++ {
		profile := &domain.Profile{
			ID:            id.MustGenerate("profile"),
			AnonymousName: demoNames[p],
			AvatarID:      fmt.Sprintf("avatar-%d", rng.Intn(10)),
			CreatedAt:     now.AddDate(0, 0, -14),
		}
		if err := s.CreateProfile(ctx, profile); err != nil {
			log.Fatalf("Failed to create profile: %v", err)
		}

		fmt.Printf("\nSeeding entries for profile: %s (%s)\n", profile.AnonymousName, profile.ID)

		entriesCreated := 0
		for day := 13; day >= 0; day-- {
			// Most days get an entry; skip some for realism
			if day > 1 && rng.Float32() > 0.8 {
				continue
			}

			// Random time during the day (6am - 11pm)
			hour := 6 + rng.Intn(17)
			minute := rng.Intn(60)
			createdAt := time.Date(
				now.Year(), now.Month(), now.Day()-day,
				hour, minute, 0, 0, time.UTC,
			)

			// One or two tags per entry
			tagIDs := []string{tags[rng.Intn(len(tags))].ID}
			if rng.Float32() > 0.5 {
				tagIDs = append(tagIDs, tags[rng.Intn(len(tags))].ID)
			}

			entry := &domain.MoodEntry{
				ID:        id.MustGenerate("entry"),
				Note:      demoNotes[rng.Intn(len(demoNotes))],
				ProfileID: profile.ID,
				CreatedAt: createdAt,
			}

			if err := s.CreateEntry(ctx, entry, tagIDs); err != nil {
				log.Printf("Failed to create entry: %v", err)
				continue
			}
			entriesCreated++
		}

		fmt.Printf("  Created %d entries\n", entriesCreated)
	}

	fmt.Println("\nSeeding complete!")
}
