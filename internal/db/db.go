package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobseeker/internal/auth"
	"jobseeker/internal/config"
	"jobseeker/internal/tracker"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default
	if !cfg.DBLogMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dialector = sqlite.Open(cfg.DBPath)
	default:
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// every connection to :memory: is its own database
	if cfg.DBDriver == "sqlite" && strings.Contains(cfg.DBPath, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}
	return gdb, nil
}

func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&auth.User{},
		&tracker.Job{},
	); err != nil {
		return err
	}

	// Listing and stats always filter by owner, then by active/category.
	stmts := []string{
		`create index if not exists idx_job_user_active on job(user_id, active);`,
		`create index if not exists idx_job_user_category on job(user_id, category);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}
	return nil
}
