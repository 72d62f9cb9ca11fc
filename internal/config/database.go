package config

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create users table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			user_num SERIAL PRIMARY KEY,
			user_id VARCHAR(20) UNIQUE NOT NULL,
			user_account VARCHAR(255) NOT NULL,
			user_password VARCHAR(255) NOT NULL,
			user_privatekey TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create pictures table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS pictures (
			token_id VARCHAR(36) PRIMARY KEY,
			picture_url VARCHAR(100) NOT NULL,
			picture_title VARCHAR(45) NOT NULL,
			picture_info TEXT NOT NULL DEFAULT '',
			picture_category VARCHAR(45) NOT NULL DEFAULT '',
			picture_price INT NOT NULL DEFAULT 0,
			picture_count INT NOT NULL DEFAULT 0,
			picture_state CHAR(1) NOT NULL DEFAULT 'N',
			picture_vector TEXT,
			picture_norm DOUBLE PRECISION,
			user_num INT NOT NULL REFERENCES users(user_num),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create histories table (append-only trade records)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS histories (
			history_num SERIAL PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			user_num1 INT NOT NULL REFERENCES users(user_num),
			user_num2 INT NOT NULL REFERENCES users(user_num),
			picture_url VARCHAR(100) NOT NULL,
			picture_title VARCHAR(45) NOT NULL,
			picture_price INT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_pictures_user_num ON pictures(user_num)",
		"CREATE INDEX IF NOT EXISTS idx_pictures_state ON pictures(picture_state)",
		"CREATE INDEX IF NOT EXISTS idx_pictures_category ON pictures(picture_category)",
		"CREATE INDEX IF NOT EXISTS idx_histories_user_num1 ON histories(user_num1)",
		"CREATE INDEX IF NOT EXISTS idx_histories_user_num2 ON histories(user_num2)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
