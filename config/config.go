package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	SearchDepth   int
	NumGames      int
	SelfPlayGames int
	BoardRows     int
	BoardColumns  int
	RandomSeed    uint64 // 0 seeds from the clock
	OutputDir     string
	DatabaseURL   string // optional, enables the postgres store
	RedisURL      string // optional, enables the redis store
	AgentAddr     string
	LogLevel      string
}

// Load reads the configuration from the environment after loading the given
// .env files, or ./.env when none are given. Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		SearchDepth:   GetEnvAsInt("SEARCH_DEPTH", 8),
		NumGames:      GetEnvAsInt("NUM_GAMES", 1000),
		SelfPlayGames: GetEnvAsInt("SELF_PLAY_GAMES", 10),
		BoardRows:     GetEnvAsInt("BOARD_ROWS", 6),
		BoardColumns:  GetEnvAsInt("BOARD_COLUMNS", 7),
		RandomSeed:    GetEnvAsUint64("RANDOM_SEED", 0),
		OutputDir:     GetEnv("OUTPUT_DIR", "experiments"),
		DatabaseURL:   GetEnv("DATABASE_URL", ""),
		RedisURL:      GetEnv("REDIS_URL", ""),
		AgentAddr:     GetEnv("AGENT_ADDR", ":8090"),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
	}, nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Msgf("invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsUint64(key string, defaultValue uint64) uint64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		log.Warn().Msgf("invalid unsigned value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
