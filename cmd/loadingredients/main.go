package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/forkfeed/forkfeed-backend/config"
	"github.com/forkfeed/forkfeed-backend/internal/database"
	"github.com/forkfeed/forkfeed-backend/internal/models"
	"gorm.io/gorm"
)

// Bulk-loads ingredient reference data from a CSV of "name,measurement_unit"
// rows. Rows that already exist are skipped.
func main() {
	path := flag.String("file", "data/ingredients.csv", "Path to the ingredients CSV file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	loaded, skipped := 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read CSV: %v", err)
		}
		if len(record) != 2 {
			log.Fatalf("Expected 2 columns, got %d: %v", len(record), record)
		}

		ingredient := models.Ingredient{
			Name:            record[0],
			MeasurementUnit: record[1],
		}
		if err := db.Create(&ingredient).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			log.Fatalf("Failed to insert %q: %v", record[0], err)
		}
		loaded++
	}

	log.Printf("Loaded %d ingredients (%d already present)", loaded, skipped)
}
