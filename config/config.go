package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is built once per process and handed to the constructors that need
// it. Values come from Default, then the yaml file, then the environment.
type Config struct {
	BaseUrl          string        `yaml:"base_url" env:"POLYGON_BASE_URL" validate:"required,url"`
	ApiKey           string        `yaml:"api_key" env:"POLYGON_API_KEY" validate:"required"`
	DatabaseUrl      string        `yaml:"database_url" env:"DATABASE_URL" validate:"required"`
	Addr             string        `yaml:"addr" env:"HTTP_ADDR" validate:"required"`
	RequestTimeout   time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" validate:"gt=0"`
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"STATEMENT_TIMEOUT" validate:"gt=0"`
	MaxConns         int32         `yaml:"max_conns" env:"DB_MAX_CONNS" validate:"min=1"`
	CacheTTL         time.Duration `yaml:"cache_ttl" env:"CACHE_TTL" validate:"gte=0"`
	LogLevel         string        `yaml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	ExportDir        string        `yaml:"export_dir" env:"EXPORT_DIR"`
	ExportFormat     string        `yaml:"export_format" env:"EXPORT_FORMAT" validate:"oneof=json csv parquet"`
	MigrateOnStart   bool          `yaml:"migrate_on_start" env:"MIGRATE_ON_START"`
}

func Default() Config {
	return Config{
		BaseUrl:          "https://api.polygon.io",
		Addr:             ":8080",
		RequestTimeout:   30 * time.Second,
		StatementTimeout: 10 * time.Second,
		MaxConns:         4,
		CacheTTL:         10 * time.Minute,
		LogLevel:         "info",
		ExportFormat:     "json",
	}
}

// Load reads path when it is not empty and then applies the environment.
// envFiles are loaded first with godotenv and never override variables that
// are already set; ".env" is used when none are given.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
