package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr             string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	DBDriver    string // postgres | sqlite
	DatabaseURL string
	DBPath      string
	DBLogMode   bool

	JWTSecret        string
	TokenTTL         time.Duration
	AuthRequireToken bool

	SweepInterval time.Duration
}

// Load reads .env (if any), then the environment, then an optional CONFIG_FILE.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "3000")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "127.0.0.1")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "job_seeker")
	v.SetDefault("db_path", "data/jobseeker.db")
	v.SetDefault("db_log_mode", false)
	v.SetDefault("token_ttl", "168h")
	v.SetDefault("auth_require_token", true)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("cors_allow_credentials", false)
	v.SetDefault("sweep_interval", "1h")

	if path := strings.TrimSpace(v.GetString("config_file")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		HTTPAddr:             strings.TrimSpace(v.GetString("http_addr")),
		CORSAllowCredentials: v.GetBool("cors_allow_credentials"),
		DBDriver:             strings.ToLower(strings.TrimSpace(v.GetString("db_driver"))),
		DBPath:               strings.TrimSpace(v.GetString("db_path")),
		DBLogMode:            v.GetBool("db_log_mode"),
		JWTSecret:            strings.TrimSpace(v.GetString("jwt_secret")),
		TokenTTL:             v.GetDuration("token_ttl"),
		AuthRequireToken:     v.GetBool("auth_require_token"),
		SweepInterval:        v.GetDuration("sweep_interval"),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":" + strings.TrimSpace(v.GetString("port"))
	}

	for _, o := range strings.Split(v.GetString("cors_allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	switch cfg.DBDriver {
	case "postgres":
		dsn, err := postgresDSN(v)
		if err != nil {
			return Config{}, err
		}
		cfg.DatabaseURL = dsn
	case "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("missing env: JWT_SECRET")
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL %s", cfg.TokenTTL)
	}
	if cfg.SweepInterval < 0 {
		return Config{}, fmt.Errorf("invalid SWEEP_INTERVAL %s", cfg.SweepInterval)
	}
	return cfg, nil
}

// postgresDSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
// URLs are converted to key=value form.
func postgresDSN(v *viper.Viper) (string, error) {
	raw := strings.TrimSpace(v.GetString("database_url"))
	if raw == "" {
		parts := []string{
			"host=" + v.GetString("db_host"),
			"port=" + v.GetString("db_port"),
			"user=" + v.GetString("db_user"),
			"dbname=" + v.GetString("db_name"),
		}
		if pw := v.GetString("db_password"); pw != "" {
			parts = append(parts, "password="+pw)
		}
		return strings.Join(parts, " "), nil
	}

	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		dsn, err := pq.ParseURL(raw)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		return dsn, nil
	}
	return raw, nil
}
