package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the full DDL, applied statement by statement because the
// MySQL driver rejects multi-statement Exec by default. Every table
// uses CREATE TABLE IF NOT EXISTS so restarts are idempotent.
//
// booking_seats carries the uniqueness guarantee of the whole system:
// one seat can belong to at most one booking per (date, slot). The
// ledger once relied on the UI alone to prevent double sales, which
// let two terminals sell the same seat; the unique key closes that
// hole and surfaces the race as error 1062.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id             CHAR(36)      NOT NULL,
		booking_date   DATE          NOT NULL,
		show_slot      VARCHAR(16)   NOT NULL,
		screen         VARCHAR(64)   NOT NULL,
		movie          VARCHAR(128)  NOT NULL,
		class_label    VARCHAR(32)   NOT NULL,
		price_per_seat DECIMAL(8,2)  NOT NULL,
		total_price    DECIMAL(10,2) NOT NULL,
		booked_at      DATETIME      NOT NULL,
		synced         TINYINT(1)    NOT NULL DEFAULT 0,
		created_by     VARCHAR(64)   NOT NULL DEFAULT '',
		PRIMARY KEY (id),
		KEY idx_bookings_slot (booking_date, show_slot)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS booking_seats (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		booking_id   CHAR(36)        NOT NULL,
		booking_date DATE            NOT NULL,
		show_slot    VARCHAR(16)     NOT NULL,
		seat_id      VARCHAR(16)     NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_seat_per_slot (booking_date, show_slot, seat_id),
		KEY idx_booking_seats_booking (booking_id),
		CONSTRAINT fk_booking_seats_booking FOREIGN KEY (booking_id)
			REFERENCES bookings (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bms_bookings (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		seat_id      VARCHAR(16)     NOT NULL,
		booking_date DATE            NOT NULL,
		show_slot    VARCHAR(16)     NOT NULL,
		class_label  VARCHAR(32)     NOT NULL,
		created_at   DATETIME        NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bms_seat_per_slot (booking_date, show_slot, seat_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seat_selections (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		terminal_id  VARCHAR(64)     NOT NULL,
		booking_date DATE            NOT NULL,
		show_slot    VARCHAR(16)     NOT NULL,
		seat_id      VARCHAR(16)     NOT NULL,
		expires_at   DATETIME        NOT NULL,
		created_at   DATETIME        NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_selection_per_slot (booking_date, show_slot, seat_id),
		KEY idx_selections_expiry (expires_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seats (
		seat_id     VARCHAR(16)  NOT NULL,
		row_label   VARCHAR(8)   NOT NULL,
		seat_number INT UNSIGNED NOT NULL,
		class_label VARCHAR(32)  NOT NULL,
		is_active   TINYINT(1)   NOT NULL DEFAULT 1,
		created_at  DATETIME     NOT NULL,
		PRIMARY KEY (seat_id),
		KEY idx_seats_row (row_label)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS settings (
		name       VARCHAR(64) NOT NULL,
		value      JSON        NOT NULL,
		updated_at DATETIME    NOT NULL,
		PRIMARY KEY (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema applies the DDL at startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
