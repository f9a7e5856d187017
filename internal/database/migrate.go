package database

import (
	"context"
	"database/sql"
	"fmt"
)

// audit is the column footer shared by every table.
const audit = `
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NULL,
	is_deleted BOOLEAN NULL,
	deleted_at DATETIME(6) NULL,
	deleted_by VARCHAR(36) NULL`

// tableOpts uses a binary collation so equals and in compare strings
// exactly; contains upper-cases both sides itself.
const tableOpts = `ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`

// schema lists the DDL in dependency order: referenced tables first.
var schema = []struct {
	table string
	ddl   string
}{
	{"ward", `CREATE TABLE IF NOT EXISTS ward (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	ward_code VARCHAR(255) NOT NULL,
	name VARCHAR(255) NOT NULL,
	name_en VARCHAR(255) NULL,
	full_name VARCHAR(255) NULL,
	full_name_en VARCHAR(255) NULL,
	code_name VARCHAR(255) NULL,
	administrative_unit_id INT NULL,` + audit + `
) ` + tableOpts},

	{"address", `CREATE TABLE IF NOT EXISTS address (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	street_address VARCHAR(255) NOT NULL,
	latitude DECIMAL(21,2) NULL,
	longitude DECIMAL(21,2) NULL,` + audit + `,
	ward_id BIGINT NOT NULL,
	CONSTRAINT fk_address__ward_id FOREIGN KEY (ward_id) REFERENCES ward (id)
) ` + tableOpts},

	{"staff", `CREATE TABLE IF NOT EXISTS staff (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	age INT NULL,
	gender VARCHAR(16) NULL,
	phone_number VARCHAR(255) NULL,
	status VARCHAR(16) NULL,` + audit + `
) ` + tableOpts},

	{"driver", `CREATE TABLE IF NOT EXISTS driver (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	license_class VARCHAR(255) NULL,
	years_experience INT NULL,` + audit + `,
	staff_id BIGINT NULL,
	CONSTRAINT fk_driver__staff_id FOREIGN KEY (staff_id) REFERENCES staff (id)
) ` + tableOpts},

	{"attendant", `CREATE TABLE IF NOT EXISTS attendant (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,` + audit + `,
	staff_id BIGINT NULL,
	CONSTRAINT fk_attendant__staff_id FOREIGN KEY (staff_id) REFERENCES staff (id)
) ` + tableOpts},

	{"file_route", `CREATE TABLE IF NOT EXISTS file_route (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	bucket VARCHAR(255) NOT NULL,
	object_key VARCHAR(1024) NOT NULL,
	content_type VARCHAR(255) NULL,
	size BIGINT NULL,` + audit + `
) ` + tableOpts},

	{"seat_map", `CREATE TABLE IF NOT EXISTS seat_map (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,` + audit + `,
	seat_map_img_id BIGINT NULL,
	CONSTRAINT fk_seat_map__seat_map_img_id FOREIGN KEY (seat_map_img_id) REFERENCES file_route (id)
) ` + tableOpts},

	{"floor", `CREATE TABLE IF NOT EXISTS floor (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	floor_no INT NOT NULL,
	price_factor_floor DECIMAL(21,2) NULL,` + audit + `,
	seat_map_id BIGINT NOT NULL,
	CONSTRAINT fk_floor__seat_map_id FOREIGN KEY (seat_map_id) REFERENCES seat_map (id)
) ` + tableOpts},
}

// Migrate creates any missing table. It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("migrate %s: %w", s.table, err)
		}
	}
	return nil
}
