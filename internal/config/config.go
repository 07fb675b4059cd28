package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server Configuration
	Port string

	// Database Configuration
	DatabaseURL string

	// Reputation Registry Configuration
	EthereumRPC       string
	RegistryContract  string
	UseStaticScores   bool
	DefaultReputation float64

	// Engine Configuration
	GasCeiling      uint64
	GasPerCostPoint float64
}

func Load() *Config {
	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Reputation registry
		EthereumRPC:       os.Getenv("ETHEREUM_RPC_URL"),
		RegistryContract:  os.Getenv("REGISTRY_CONTRACT_ADDRESS"),
		UseStaticScores:   getBoolEnv("USE_STATIC_REPUTATION", true),
		DefaultReputation: getFloatEnv("DEFAULT_REPUTATION", 50),

		// Engine
		GasCeiling:      getUintEnv("GAS_SANITY_CEILING", 30_000_000),
		GasPerCostPoint: getFloatEnv("COST_SCORE_GAS_DIVISOR", 5000),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fallback
		}
		return boolVal
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fallback
		}
		return floatVal
	}
	return fallback
}

func getUintEnv(key string, fallback uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		uintVal, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fallback
		}
		return uintVal
	}
	return fallback
}
