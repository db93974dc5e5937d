package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/yusufkecer/calorist-backend/internal/logger"
)

type migration struct {
	version string
	sql     string
}

// Statements must run unchanged on both MySQL and SQLite.
var migrations = []migration{
	{
		version: "001_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id             VARCHAR(36) PRIMARY KEY,
				profile_slot   INT NOT NULL UNIQUE,
				name           VARCHAR(100) NOT NULL,
				age            INT NOT NULL,
				gender         VARCHAR(10) NOT NULL,
				activity_level VARCHAR(20) NOT NULL,
				goal           VARCHAR(20) NOT NULL,
				created_at     DATETIME NOT NULL,
				updated_at     DATETIME NOT NULL
			)`,
	},
	{
		version: "002_create_measurements",
		sql: `
			CREATE TABLE IF NOT EXISTS measurements (
				id          VARCHAR(36) PRIMARY KEY,
				user_id     VARCHAR(36) NOT NULL,
				height      DOUBLE NOT NULL,
				weight      DOUBLE NOT NULL,
				neck        DOUBLE NOT NULL,
				waist       DOUBLE NOT NULL,
				hip         DOUBLE NOT NULL,
				arm         DOUBLE NOT NULL,
				measured_at DATETIME NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_measurements_user_date ON measurements (user_id, measured_at)`,
	},
	{
		version: "003_create_daily_tracking",
		sql: `
			CREATE TABLE IF NOT EXISTS daily_tracking (
				id             VARCHAR(36) PRIMARY KEY,
				user_id        VARCHAR(36) NOT NULL,
				day            VARCHAR(10) NOT NULL,
				calorie_intake DOUBLE NOT NULL,
				water_intake   DOUBLE NOT NULL,
				created_at     DATETIME NOT NULL,
				updated_at     DATETIME NOT NULL,
				UNIQUE (user_id, day),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "004_create_daily_tracking_goals",
		sql: `
			CREATE TABLE IF NOT EXISTS daily_tracking_goals (
				user_id            VARCHAR(36) PRIMARY KEY,
				daily_calorie_goal DOUBLE NOT NULL,
				daily_water_goal   DOUBLE NOT NULL,
				created_at         DATETIME NOT NULL,
				updated_at         DATETIME NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
	},
}

func RunMigrations(db *sql.DB, log *logger.Logger) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(db, m); err != nil {
			return err
		}

		log.Info("applied migration", "version", m.version)
	}

	return nil
}

func isMigrationApplied(db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func executeMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}

	for _, stmt := range strings.Split(m.sql, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version) VALUES (?)",
		m.version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	return tx.Commit()
}
