package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "HTTP_ADDR", "DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_PATH", "DB_LOG_MODE", "JWT_SECRET", "TOKEN_TTL",
		"AUTH_REQUIRE_TOKEN", "CORS_ALLOWED_ORIGINS", "CORS_ALLOW_CREDENTIALS",
		"SWEEP_INTERVAL", "CONFIG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	want := "host=127.0.0.1 port=5432 user=postgres dbname=job_seeker"
	if cfg.DatabaseURL != want {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, want)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.AuthRequireToken {
		t.Error("tokens should be required by default")
	}
	if cfg.TokenTTL != 168*time.Hour || cfg.SweepInterval != time.Hour {
		t.Errorf("TokenTTL = %s, SweepInterval = %s", cfg.TokenTTL, cfg.SweepInterval)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("err = %v, want missing JWT_SECRET", err)
	}
}

func TestLoad_DatabaseURLIsNormalized(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://bob:pw@db.internal:6543/jobs?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	for _, part := range []string{"host=db.internal", "port=6543", "user=bob", "password=pw", "dbname=jobs", "sslmode=disable"} {
		if !strings.Contains(cfg.DatabaseURL, part) {
			t.Errorf("DatabaseURL %q missing %q", cfg.DatabaseURL, part)
		}
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/js.db")
	t.Setenv("AUTH_REQUIRE_TOKEN", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SWEEP_INTERVAL", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "sqlite" || cfg.DBPath != "/tmp/js.db" || cfg.DatabaseURL != "" {
		t.Errorf("db config = %+v", cfg)
	}
	if cfg.AuthRequireToken {
		t.Error("AUTH_REQUIRE_TOKEN=false ignored")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.SweepInterval != 0 {
		t.Errorf("SweepInterval = %s", cfg.SweepInterval)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "jobseeker.yaml")
	if err := os.WriteFile(path, []byte("jwt_secret: from-file\nhttp_addr: 127.0.0.1:9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.JWTSecret != "from-file" || cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
