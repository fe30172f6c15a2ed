package database

import (
	"context"
	"database/sql"
	"time"
)

// Schema statements executed at startup. CREATE TABLE IF NOT EXISTS keeps
// startup idempotent, so the server can be pointed at an empty database and
// bootstrap itself. The unique key on telegram_id is load-bearing: the user
// upsert relies on it to resolve concurrent first logins atomically.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		telegram_id BIGINT NOT NULL UNIQUE,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NULL,
		username VARCHAR(255) NULL,
		photo_url TEXT NULL,
		is_premium BOOLEAN NOT NULL DEFAULT FALSE,
		activity_description TEXT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS requests (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		category VARCHAR(100) NOT NULL DEFAULT '',
		budget VARCHAR(100) NOT NULL DEFAULT '',
		location VARCHAR(255) NOT NULL DEFAULT '',
		contact_info VARCHAR(255) NOT NULL DEFAULT '',
		is_matched BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_requests_user FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
