package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "proposalforge.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PROPOSALFORGE_PORT")
	setString(&cfg.Server.CORSOrigin, "PROPOSALFORGE_CORS_ORIGIN")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "PROPOSALFORGE_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "PROPOSALFORGE_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "PROPOSALFORGE_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "PROPOSALFORGE_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "PROPOSALFORGE_PG_HEALTH_CHECK")
	setInt64(&cfg.Cache.MaxSizeMB, "PROPOSALFORGE_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.TTL, "PROPOSALFORGE_CACHE_TTL")
	setString(&cfg.Blob.Dir, "PROPOSALFORGE_BLOB_DIR")
	setString(&cfg.Blob.BaseURL, "PROPOSALFORGE_BLOB_BASE_URL")
	setString(&cfg.Auth.JWTSecret, "PROPOSALFORGE_JWT_SECRET")
	setDuration(&cfg.Auth.AccessTTL, "PROPOSALFORGE_ACCESS_TTL")
	setString(&cfg.Auth.Issuer, "PROPOSALFORGE_JWT_ISSUER")
	setString(&cfg.Auth.Audience, "PROPOSALFORGE_JWT_AUDIENCE")
	setDuration(&cfg.Draft.TTL, "PROPOSALFORGE_DRAFT_TTL")
	setDuration(&cfg.Draft.SweepInterval, "PROPOSALFORGE_DRAFT_SWEEP_INTERVAL")
	setString(&cfg.Branding.Consultancy, "PROPOSALFORGE_CONSULTANCY")
	setString(&cfg.Branding.Contact, "PROPOSALFORGE_CONTACT")
	setString(&cfg.Telemetry.OTLPEndpoint, "PROPOSALFORGE_OTLP_ENDPOINT")
	setString(&cfg.Logging.Level, "PROPOSALFORGE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "PROPOSALFORGE_LOG_SERVICE")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if cfg.Cache.MaxSizeMB < 1 {
		return errors.New("cache.max_size_mb must be >= 1")
	}
	if cfg.Draft.TTL <= 0 {
		return errors.New("draft.ttl must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
