package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	DatabaseDriver   string

	ServerPort      string
	OperatorWorkers int
	LogLevel        string

	AnalyticsMongoURI      string
	AnalyticsMongoDatabase string
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"postgres_address":         "localhost",
	"postgres_port":            "5433",
	"postgres_db":              "postgres",
	"postgres_username":        "postgres",
	"postgres_password":        "testpassword",
	"database_driver":          "postgres",
	"server_port":              "9446",
	"operator_workers":         4,
	"log_level":                "info",
	"analytics_mongo_uri":      "",
	"analytics_mongo_database": "money_movement",
}

// ProcessEnvironmentVariables layers defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in that order.
func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, "config.defaults")
	}

	envKeys := func(s string) string {
		return strings.ToLower(s)
	}

	// Read once so CONFIG_FILE itself can come from the environment.
	if err := k.Load(env.Provider("", ".", envKeys), nil); err != nil {
		return nil, errors.Wrap(err, "config.env")
	}

	if path := k.String("config_file"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "config.file %s", path)
		}
		// Environment wins over the file.
		if err := k.Load(env.Provider("", ".", envKeys), nil); err != nil {
			return nil, errors.Wrap(err, "config.env")
		}
	}

	cfg := Config{
		PostgresAddress:        k.String("postgres_address"),
		PostgresPort:           k.String("postgres_port"),
		PostgresDB:             k.String("postgres_db"),
		PostgresUsername:       k.String("postgres_username"),
		PostgresPassword:       k.String("postgres_password"),
		DatabaseDriver:         k.String("database_driver"),
		ServerPort:             k.String("server_port"),
		OperatorWorkers:        k.Int("operator_workers"),
		LogLevel:               k.String("log_level"),
		AnalyticsMongoURI:      k.String("analytics_mongo_uri"),
		AnalyticsMongoDatabase: k.String("analytics_mongo_database"),
	}

	switch cfg.DatabaseDriver {
	case "postgres", "pgx":
	default:
		return nil, errors.Errorf("config: unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if cfg.OperatorWorkers < 1 {
		cfg.OperatorWorkers = 1
	}

	return &cfg, nil
}

func (c *Config) PostgresConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
