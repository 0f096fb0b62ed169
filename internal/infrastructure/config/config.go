package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DriverDynamoDB = "dynamodb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is read from the environment; a .env file in the working directory
// is loaded first by the godotenv autoload import in main.
//
// Supported env vars:
//   - PORT (default: 8080)
//   - GIN_MODE (debug, release or test)
//   - STORAGE_DRIVER (dynamodb | postgres | sqlite; default: dynamodb)
//   - DATABASE_DSN (postgres; URL or key=value form)
//   - SQLITE_PATH (default: oficina.db)
//   - DB_DEBUG (1 enables SQL logging)
//   - AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, DYNAMODB_ENDPOINT
type Config struct {
	Port          int
	GinMode       string
	StorageDriver string
	DatabaseDSN   string
	SQLitePath    string
	DBDebug       bool
	Dynamo        DynamoConfig
}

type DynamoConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

func Load() (Config, error) {
	port, err := strconv.Atoi(getenvDefault("PORT", "8080"))
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	cfg := Config{
		Port:          port,
		GinMode:       os.Getenv("GIN_MODE"),
		StorageDriver: strings.ToLower(getenvDefault("STORAGE_DRIVER", DriverDynamoDB)),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		SQLitePath:    getenvDefault("SQLITE_PATH", "oficina.db"),
		DBDebug:       os.Getenv("DB_DEBUG") == "1",
		Dynamo: DynamoConfig{
			Region:          getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
		},
	}

	switch cfg.StorageDriver {
	case DriverDynamoDB, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(cfg.DatabaseDSN) == "" {
			return Config{}, fmt.Errorf("DATABASE_DSN is required when STORAGE_DRIVER=%s", DriverPostgres)
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
