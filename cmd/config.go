package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	Store      string

	StripeSecret    string
	SiteDomain      string
	PaymentCurrency string
	GatewayTimeout  time.Duration

	TrackingIDAttempts uint

	SettlementRepairSchedule    string
	RiderWorkloadRepairSchedule string
}

// LoadConfig reads the configuration from the environment. Variables found in
// envFiles are loaded first without overriding ones already set; missing files
// are ignored.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	timeout, err := time.ParseDuration(envOr("GATEWAY_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("GATEWAY_TIMEOUT: %w", err)
	}
	attempts, err := strconv.ParseUint(envOr("TRACKING_ID_ATTEMPTS", "5"), 10, 32)
	if err != nil || attempts == 0 {
		return Config{}, fmt.Errorf("TRACKING_ID_ATTEMPTS: must be a positive integer")
	}

	config := Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),
		Store:      envOr("STORE", StorePostgres),

		StripeSecret:    os.Getenv("STRIPE_SECRET"),
		SiteDomain:      os.Getenv("SITE_DOMAIN"),
		PaymentCurrency: envOr("PAYMENT_CURRENCY", "usd"),
		GatewayTimeout:  timeout,

		TrackingIDAttempts: uint(attempts),

		SettlementRepairSchedule:    envOr("SETTLEMENT_REPAIR_SCHEDULE", "0 * * * * *"),
		RiderWorkloadRepairSchedule: envOr("RIDER_WORKLOAD_REPAIR_SCHEDULE", "30 * * * * *"),
	}

	if config.Store != StorePostgres && config.Store != StoreMemory {
		return Config{}, fmt.Errorf("STORE: unknown store %q", config.Store)
	}
	return config, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
