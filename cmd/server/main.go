package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/adapters/cache"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/adapters/distance"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/adapters/repositories"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/api"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/config"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/matching"
	"github.com/matchmovefrance/move-match-motion-sub002/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Google Maps) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if strings.TrimSpace(cfg.Maps.APIKey) == "" {
		log.Fatal("GMAPS_API_KEY is required")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// The Redis distance cache is optional; without it every cold lookup
	// hits the Maps API.
	var distanceCache *cache.RedisDistanceCache
	if cfg.Redis.Addr != "" {
		distanceCache = cache.NewRedisDistanceCache(redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr}))
	}

	provider, err := distance.NewGoogleMapsProvider(cfg.Maps.APIKey, distanceCache)
	if err != nil {
		log.Fatal(err)
	}

	requests := repositories.NewPostgresRequestRepository(database)
	trips := repositories.NewPostgresTripRepository(database)
	sink := repositories.NewPostgresDecisionSink(database)

	opts := cfg.Match.Options()
	resolver := matching.NewResolver(provider, opts.ProviderBatchSize)
	aggregator := matching.NewAggregator(requests, trips, resolver, opts)

	router := api.NewRouter(requests, trips, sink, aggregator, opts.MaxCandidates)

	// Timeouts are tuned for cold-cache matching runs (external API latency).
	log.Printf("Server listening addr=%s", cfg.HTTP.Addr)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
