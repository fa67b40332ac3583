package db

import (
	"fmt"

	"storefront/internal/config"
	infraRepo "storefront/internal/infra/repository"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して kv_entries をマイグレーションした *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.StorageDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.StorageDriver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", cfg.StorageDriver, err)
	}

	if err := gormDB.AutoMigrate(&infraRepo.KVEntry{}); err != nil {
		return nil, fmt.Errorf("db: migrate: %w", err)
	}
	return gormDB, nil
}
