package main

import (
	"errors"
	"log"

	"github.com/forkfeed/forkfeed-backend/config"
	"github.com/forkfeed/forkfeed-backend/internal/database"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"gorm.io/gorm"
)

var tags = []models.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	{Name: "Dessert", Color: "#F9A62B", Slug: "dessert"},
	{Name: "Snack", Color: "#2D9CDB", Slug: "snack"},
}

// Seeds the tag reference data. Safe to re-run: existing tags are skipped.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	created := 0
	for _, tag := range tags {
		if err := db.Create(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			log.Fatalf("Failed to create tag %q: %v", tag.Name, err)
		}
		created++
	}

	log.Printf("Seeded %d tags", created)
}
