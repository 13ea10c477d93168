package database

import (
	"context"
	"database/sql"
)

// schemaStatements create the two tables on first start.  The index on
// tables.reservation_id lets the service answer "which table holds
// reservation X" without scanning.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS reservations (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		first_name       VARCHAR(100) NOT NULL,
		last_name        VARCHAR(100) NOT NULL,
		mobile_number    VARCHAR(20)  NOT NULL,
		reservation_date DATE         NOT NULL,
		reservation_time TIME         NOT NULL,
		people           INT          NOT NULL,
		status           ENUM('booked','seated','finished','cancelled') NOT NULL DEFAULT 'booked',
		created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_reservations_date (reservation_date),
		KEY idx_reservations_mobile (mobile_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tables (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		table_name     VARCHAR(100) NOT NULL,
		capacity       INT          NOT NULL,
		reservation_id BIGINT UNSIGNED NULL,
		created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_tables_reservation (reservation_id),
		CONSTRAINT fk_tables_reservation FOREIGN KEY (reservation_id) REFERENCES reservations (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the reservations and tables tables when they do
// not exist yet.  Statements are idempotent so repeated startups are
// safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
