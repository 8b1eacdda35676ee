// Seeder provisions the review dataset: it backs up whatever is on disk,
// writes the bundled sample records, and can synthesize extra randomized
// reviews for load-testing the dashboard.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/shared"
	"flex_reviews/internal/storage/jsonfile"
)

//go:embed seed.json
var seedJSON []byte

var listings = []struct{ ID, Name string }{
	{"123456", "2B N1 A - 29 Shoreditch Heights"},
	{"987421", "Luxury Apartment in Central London"},
	{"394872", "Cozy Studio in Camden Town"},
	{"550193", "Victorian Townhouse in Manchester"},
	{"661284", "Old Town Flat in Edinburgh"},
}

var channels = []string{"hostaway", "airbnb", "booking", "expedia"}

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	var (
		file  = flag.String("file", cfg.ReviewsFile, "dataset path to seed")
		extra = flag.Int("extra", 0, "number of synthetic reviews to append")
	)
	flag.Parse()

	var records []map[string]any
	if err := json.Unmarshal(seedJSON, &records); err != nil {
		log.Fatal().Err(err).Msg("bundled seed data is invalid")
	}

	for i := 0; i < *extra; i++ {
		records = append(records, syntheticReview(i))
	}

	if err := backup(*file); err != nil {
		log.Fatal().Err(err).Msg("backup failed")
	}
	if err := os.MkdirAll(filepath.Dir(*file), 0o755); err != nil {
		log.Fatal().Err(err).Msg("create data dir failed")
	}

	store := jsonfile.New(*file)
	if err := store.WriteAll(context.Background(), records); err != nil {
		log.Fatal().Err(err).Msg("seed write failed")
	}
	log.Info().Int("records", len(records)).Str("file", *file).Msg("dataset seeded")
}

// backup copies the current dataset aside before it is overwritten.
func backup(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	bak := path + ".backup.json"
	if err := os.WriteFile(bak, data, 0o644); err != nil {
		return err
	}
	log.Info().Str("backup", bak).Msg("existing dataset backed up")
	return nil
}

func syntheticReview(i int) map[string]any {
	l := listings[rand.Intn(len(listings))]
	general := 5 + rand.Float64()*5
	created := time.Now().AddDate(0, 0, -rand.Intn(720)).UTC()
	return map[string]any{
		"id":           uuid.NewString(),
		"listingMapId": l.ID,
		"listingName":  l.Name,
		"reviewer": map[string]any{
			"id":   uuid.NewString(),
			"name": fmt.Sprintf("Guest %04d", i+1),
		},
		"reviewerType": "guest",
		"type":         "RESERVATION",
		"status":       "VISIBLE",
		"comment":      "Synthetic review for dashboard testing.",
		"score": map[string]any{
			"general":       general,
			"cleanliness":   float64(5 + rand.Intn(6)),
			"communication": float64(5 + rand.Intn(6)),
			"location":      float64(5 + rand.Intn(6)),
		},
		"channel":     channels[rand.Intn(len(channels))],
		"createdTime": created.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
