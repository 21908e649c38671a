package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/vitalog/measurement-service/pkg/logger"
)

// migrations are executed in order on startup.  Each statement is idempotent
// so restarting the service against an already-provisioned database is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username      VARCHAR(64)  NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	// created_at is the reading's effective timestamp and comes from the
	// client; updated_at is maintained by the database on every mutation.
	`CREATE TABLE IF NOT EXISTS measurements (
		id          CHAR(36) NOT NULL,
		owner_id    BIGINT UNSIGNED NOT NULL,
		description VARCHAR(1024) NOT NULL DEFAULT '',
		sys         VARCHAR(16) NOT NULL,
		dia         VARCHAR(16) NOT NULL,
		pulse       VARCHAR(16) NOT NULL,
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_measurements_owner (owner_id, created_at),
		CONSTRAINT fk_measurements_owner FOREIGN KEY (owner_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements above.  It fails fast on the first
// error so the server never starts against a half-provisioned database.
func Migrate(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	logger.Sugar.Info("database schema up to date")
	return nil
}
