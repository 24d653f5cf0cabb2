package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "modernc.org/sqlite"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Aura/data/aura.db")
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	counts := []struct {
		label string
		query string
	}{
		{"Profiles", "SELECT COUNT(*) FROM profiles"},
		{"Linked identities", "SELECT COUNT(*) FROM identities"},
		{"Mood entries", "SELECT COUNT(*) FROM mood_entries"},
		{"System tags", "SELECT COUNT(*) FROM tags WHERE profile_id IS NULL"},
		{"Custom tags", "SELECT COUNT(*) FROM tags WHERE profile_id IS NOT NULL"},
		{"Cached summaries", "SELECT COUNT(*) FROM ai_summaries"},
	}

	for _, c := range counts {
		var n int
		if err := db.QueryRow(c.query).Scan(&n); err != nil {
			log.Fatalf("Failed to count %s: %v", c.label, err)
		}
		fmt.Printf("%-18s %d\n", c.label+":", n)
	}

	fmt.Println()
	fmt.Println("=== Recent Entries ===")
	fmt.Println()

	rows, err := db.Query(`
		SELECT e.id, e.note, e.created_at, p.anonymous_name,
		       (SELECT COUNT(*) FROM entry_tags et WHERE et.entry_id = e.id)
		FROM mood_entries e
		JOIN profiles p ON p.id = e.profile_id
		ORDER BY e.created_at DESC
		LIMIT 10`)
	if err != nil {
		log.Fatalf("Failed to query entries: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entryID, note, createdAt, author string
		var tagCount int
		if err := rows.Scan(&entryID, &note, &createdAt, &author, &tagCount); err != nil {
			log.Fatalf("Failed to scan entry: %v", err)
		}

		fmt.Printf("Entry: %s\n", entryID)
		fmt.Printf("  Author: %s\n", author)
		fmt.Printf("  Created: %s\n", createdAt)
		fmt.Printf("  Tags: %d\n", tagCount)
		if note != "" {
			fmt.Printf("  Note: %q\n", note)
		}
		fmt.Println()
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Error iterating entries: %v", err)
	}
}
