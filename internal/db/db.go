package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/yusufkecer/calorist-backend/internal/config"
	"github.com/yusufkecer/calorist-backend/internal/logger"
)

func Connect(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	db, err := Open(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	log.Info("database connection established", "driver", cfg.DB.Driver)
	return db, nil
}

// Open opens and pings a database. SQLite gets a single connection so that
// writers never contend for the file lock.
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
