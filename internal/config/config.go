package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	// WorkerInterval is how often the catch-up worker materializes due
	// recurrence occurrences.
	WorkerInterval time.Duration

	// NumOperators is the operator pool size. One keeps writes serialized.
	NumOperators int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		WorkerInterval:   time.Hour,
		NumOperators:     1,
	}

	if v := os.Getenv("POSTGRES_ADDRESS"); v != "" {
		env.PostgresAddress = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		env.PostgresPort = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		env.PostgresDB = v
	}
	if v := os.Getenv("POSTGRES_USERNAME"); v != "" {
		env.PostgresUsername = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		env.PostgresPassword = v
	}
	if v := os.Getenv("WORKER_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("WORKER_INTERVAL: %w", err)
		}
		env.WorkerInterval = interval
	}

	return &env, nil
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" + c.PostgresPassword +
		"@" + c.PostgresAddress + ":" + c.PostgresPort + "/" + c.PostgresDB +
		"?sslmode=disable"
}
