package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/land-api/internal/aggregator"
	"github.com/yourorg/land-api/internal/env"
	"github.com/yourorg/land-api/internal/logger"
	"github.com/yourorg/land-api/internal/store"
	"github.com/yourorg/land-api/landcom"
	"github.com/yourorg/land-api/landwatch"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found (using environment variables)")
	}

	port := env.GetInt("PORT", 8080)
	dsn := env.Must("PG_DSN")

	st, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("postgres ping error: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("postgres migrate error: %v", err)
	}
	cancel()

	agg := &aggregator.Aggregator{
		LandCom:   landcom.NewClient(),
		LandWatch: landwatch.NewClient(),
	}
	router := BuildRouter(st, agg)

	log.Printf("land-api listening on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), logger.Middleware(router)); err != nil {
		log.Fatal(err)
	}
}
