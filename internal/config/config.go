package config

import (
	"os"
	"strconv"

	"github.com/matchmovefrance/move-match-motion-sub002/internal/matching"
)

// Config gathers every environment-driven setting of the service. All
// matching thresholds are tunable without a rebuild.
type Config struct {
	HTTP struct {
		Addr string
	}
	DatabaseURL string
	Redis       struct {
		// Addr is optional; empty disables the provider-level distance cache.
		Addr string
	}
	Maps struct {
		APIKey string
	}
	SeedPath string
	Match    MatchConfig
}

// MatchConfig mirrors matching.Options for the values exposed via env.
type MatchConfig struct {
	WorkerCount       int
	ProviderBatchSize int
	MaxCandidates     int
	DefaultVolumeM3   float64
	StandardVehicleM3 float64

	DirectRadiusKm     float64
	ReturnTripRadiusKm float64
	LoopRadiusKm       float64
	GroupedRadiusKm    float64
	ClientPairRadiusKm float64

	DirectWindowDays     int
	ReturnTripWindowDays int
	LoopWindowDays       int
	GroupedWindowDays    int
	ClientPairWindowDays int
}

// Load reads the configuration from the environment, filling defaults from
// the canonical matching threshold table.
func Load() Config {
	var cfg Config
	cfg.HTTP.Addr = ":" + Get("PORT", "8080")
	cfg.DatabaseURL = Get("DATABASE_URL", "")
	cfg.Redis.Addr = Get("REDIS_ADDR", "")
	cfg.Maps.APIKey = Get("GMAPS_API_KEY", "")
	cfg.SeedPath = Get("SEED_PATH", "data/seeds/records.json")

	defaults := matching.DefaultOptions()
	cfg.Match = MatchConfig{
		WorkerCount:       getInt("MATCH_WORKER_COUNT", defaults.WorkerCount),
		ProviderBatchSize: getInt("MATCH_PROVIDER_BATCH_SIZE", defaults.ProviderBatchSize),
		MaxCandidates:     getInt("MATCH_MAX_CANDIDATES", defaults.MaxCandidates),
		DefaultVolumeM3:   getFloat("MATCH_DEFAULT_VOLUME_M3", defaults.DefaultVolumeM3),
		StandardVehicleM3: getFloat("MATCH_STANDARD_VEHICLE_M3", defaults.StandardVehicleM3),

		DirectRadiusKm:     getFloat("MATCH_DIRECT_RADIUS_KM", defaults.DirectRadiusKm),
		ReturnTripRadiusKm: getFloat("MATCH_RETURN_TRIP_RADIUS_KM", defaults.ReturnTripRadiusKm),
		LoopRadiusKm:       getFloat("MATCH_LOOP_RADIUS_KM", defaults.LoopRadiusKm),
		GroupedRadiusKm:    getFloat("MATCH_GROUPED_RADIUS_KM", defaults.GroupedRadiusKm),
		ClientPairRadiusKm: getFloat("MATCH_CLIENT_PAIR_RADIUS_KM", defaults.ClientPairRadiusKm),

		DirectWindowDays:     getInt("MATCH_DIRECT_WINDOW_DAYS", defaults.DirectWindowDays),
		ReturnTripWindowDays: getInt("MATCH_RETURN_TRIP_WINDOW_DAYS", defaults.ReturnTripWindowDays),
		LoopWindowDays:       getInt("MATCH_LOOP_WINDOW_DAYS", defaults.LoopWindowDays),
		GroupedWindowDays:    getInt("MATCH_GROUPED_WINDOW_DAYS", defaults.GroupedWindowDays),
		ClientPairWindowDays: getInt("MATCH_CLIENT_PAIR_WINDOW_DAYS", defaults.ClientPairWindowDays),
	}

	return cfg
}

// Options converts the env-driven values into engine options.
func (m MatchConfig) Options() matching.Options {
	opts := matching.DefaultOptions()
	opts.WorkerCount = m.WorkerCount
	opts.ProviderBatchSize = m.ProviderBatchSize
	opts.MaxCandidates = m.MaxCandidates
	opts.DefaultVolumeM3 = m.DefaultVolumeM3
	opts.StandardVehicleM3 = m.StandardVehicleM3

	opts.DirectRadiusKm = m.DirectRadiusKm
	opts.ReturnTripRadiusKm = m.ReturnTripRadiusKm
	opts.LoopRadiusKm = m.LoopRadiusKm
	opts.GroupedRadiusKm = m.GroupedRadiusKm
	opts.ClientPairRadiusKm = m.ClientPairRadiusKm

	opts.DirectWindowDays = m.DirectWindowDays
	opts.ReturnTripWindowDays = m.ReturnTripWindowDays
	opts.LoopWindowDays = m.LoopWindowDays
	opts.GroupedWindowDays = m.GroupedWindowDays
	opts.ClientPairWindowDays = m.ClientPairWindowDays
	return opts
}

// Get returns the named env value, or the fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return fallback
}
