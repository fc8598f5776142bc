package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/land-api/internal/env"
	"github.com/yourorg/land-api/internal/store"
)

// dbtool initializes the reference schema and seeds city/builder rows from
// a JSON file of the form [{"city": {...}, "builders": [...]}, ...].
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found (using environment variables)")
	}

	dsn := env.Must("PG_DSN")
	seedPath := env.Get("SEED_PATH", "data/seeds/cities.json")

	st, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := st.Ping(ctx); err != nil {
		log.Fatalf("postgres ping error: %v", err)
	}

	log.Println("initializing reference schema...")
	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	raw, err := os.ReadFile(seedPath)
	if err != nil {
		log.Fatalf("read seed file %s: %v", seedPath, err)
	}
	var inputs []store.SeedInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		log.Fatalf("parse seed file: %v", err)
	}

	if err := st.Seed(ctx, inputs); err != nil {
		log.Fatalf("seed error: %v", err)
	}
	log.Printf("seeded %d cities", len(inputs))
}
