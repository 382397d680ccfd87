package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the order database. The schema is owned by the SQL
// migrations, so nothing is auto-migrated here.
func Open(ctx context.Context, cfg config.OrderDB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open order db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("order db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("order db ping failed: %w", err)
	}
	return db, nil
}

func MustInitDB(cfg *config.PrintshopConfig) *gorm.DB {
	db, err := Open(context.Background(), cfg.OrderDB)
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}
	return db
}
