package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the engine
type Config struct {
	Redis     RedisConfig
	Scripting ScriptingConfig
	// FlagScope is the namespace key under which bonus records are stored
	// inside each document's flags bag.
	FlagScope string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ScriptingConfig controls the custom-script filter sandbox.
type ScriptingConfig struct {
	// Enabled is the operator safety switch. When false, custom-script
	// filters are treated as always passing and no Lua runs at all.
	Enabled bool
	// InstructionLimit caps Lua opcodes per script evaluation.
	InstructionLimit int
}

// DefaultFlagScope is the flags-bag namespace used when none is configured.
const DefaultFlagScope = "bonus-engine"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Scripting: ScriptingConfig{
			Enabled:          getEnvAsBoolOrDefault("SCRIPTS_ENABLED", true),
			InstructionLimit: getEnvAsIntOrDefault("SCRIPT_INSTRUCTION_LIMIT", 100000),
		},
		FlagScope: getEnvOrDefault("FLAG_SCOPE", DefaultFlagScope),
	}

	if cfg.Scripting.InstructionLimit < 0 {
		return nil, fmt.Errorf("SCRIPT_INSTRUCTION_LIMIT must be >= 0")
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
