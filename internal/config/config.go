// Package config reads server settings from the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/tripsheet/internal/ledger"
	"github.com/mmynk/tripsheet/internal/models"
)

// Config holds every setting the server needs.
type Config struct {
	Port   int
	DBPath string

	// Sources for club data. Each may be a file path or an http(s) URL;
	// empty disables that source.
	RosterSource    string
	BankingSource   string
	SignatureSource string
	FetchTimeout    time.Duration

	// InitialRows is the number of blank rows a new sheet starts with.
	InitialRows int

	PersonalGearRate models.Amount
	SharedGearRate   models.Amount
}

// Load reads the configuration from the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:             getInt("PORT", 8080),
		DBPath:           getEnv("DB_PATH", "./data/sheets.db"),
		RosterSource:     getEnv("ROSTER_SOURCE", "members.csv"),
		BankingSource:    getEnv("BANKING_SOURCE", "banking.json"),
		SignatureSource:  getEnv("SIGNATURE_SOURCE", "signature.txt"),
		FetchTimeout:     getDuration("FETCH_TIMEOUT", 10*time.Second),
		InitialRows:      getInt("INITIAL_ROWS", ledger.DefaultRows),
		PersonalGearRate: getAmount("PERSONAL_GEAR_RATE", models.DefaultRates[models.KeyPersonalGear]),
		SharedGearRate:   getAmount("SHARED_GEAR_RATE", models.DefaultRates[models.KeySharedGear]),
	}
}

// LedgerOptions returns the options for creating a new ledger.
func (c Config) LedgerOptions() []ledger.Option {
	return []ledger.Option{
		ledger.WithRows(c.InitialRows),
		ledger.WithRate(models.KeyPersonalGear, c.PersonalGearRate),
		ledger.WithRate(models.KeySharedGear, c.SharedGearRate),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		slog.Warn("Ignoring invalid setting", "key", key, "value", raw)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Ignoring invalid setting", "key", key, "value", raw)
		return fallback
	}
	return v
}

func getAmount(key string, fallback models.Amount) models.Amount {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, ok := models.ParseAmount(raw)
	if !ok {
		slog.Warn("Ignoring invalid setting", "key", key, "value", raw)
		return fallback
	}
	return v
}
