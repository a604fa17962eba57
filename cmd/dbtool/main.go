// Command dbtool creates the database schema for the fulfillment engine.
// It runs the DDL through database/sql so deployments do not depend on GORM
// auto-migration.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS parcels (
		id uuid PRIMARY KEY,
		sender_agent_id uuid NOT NULL,
		receiver_name varchar(255) NOT NULL,
		receiver_phone varchar(32),
		receiver_email varchar(255),
		address text NOT NULL,
		status int NOT NULL,
		reception_mode int NOT NULL,
		failed_attempts int NOT NULL,
		proof_of_delivery_url text,
		settled_at timestamptz,
		survey_access_key varchar(64)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_parcels_sender_agent_id ON parcels (sender_agent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_parcels_status ON parcels (status)`,

	`CREATE TABLE IF NOT EXISTS shipments (
		id uuid PRIMARY KEY,
		kind int NOT NULL,
		status int NOT NULL,
		next_parcel_id uuid,
		proof_of_transfer_url text,
		driver_id uuid,
		vehicle_id uuid,
		destination_party_id uuid,
		destination_party_name varchar(255)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shipments_status ON shipments (status)`,
	`CREATE INDEX IF NOT EXISTS idx_shipments_driver_id ON shipments (driver_id)`,

	`CREATE TABLE IF NOT EXISTS shipment_parcel_legs (
		shipment_id uuid NOT NULL REFERENCES shipments (id) ON DELETE CASCADE,
		parcel_id uuid NOT NULL,
		ordinal int NOT NULL,
		status int NOT NULL,
		PRIMARY KEY (shipment_id, parcel_id)
	)`,

	`CREATE TABLE IF NOT EXISTS delivery_otps (
		shipment_id uuid NOT NULL,
		parcel_id uuid NOT NULL,
		code varchar(16) NOT NULL,
		expires_at timestamptz NOT NULL,
		is_valid boolean NOT NULL,
		PRIMARY KEY (shipment_id, parcel_id)
	)`,

	`CREATE TABLE IF NOT EXISTS status_log (
		id bigserial PRIMARY KEY,
		subject int NOT NULL,
		subject_id uuid NOT NULL,
		status varchar(64) NOT NULL,
		description text,
		actor_id uuid,
		created_at timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_status_log_subject ON status_log (subject, subject_id)`,

	`CREATE TABLE IF NOT EXISTS shipment_locations (
		id bigserial PRIMARY KEY,
		shipment_id uuid NOT NULL,
		latitude double precision NOT NULL,
		longitude double precision NOT NULL,
		created_at timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shipment_locations_shipment_id ON shipment_locations (shipment_id)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id uuid PRIMARY KEY,
		shipment_id uuid NOT NULL,
		driver_id uuid NOT NULL,
		vehicle_id uuid NOT NULL,
		is_released boolean NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_shipment_id ON assignments (shipment_id)`,

	`CREATE TABLE IF NOT EXISTS outbox_events (
		id uuid PRIMARY KEY,
		event_type varchar(64) NOT NULL,
		payload jsonb NOT NULL,
		status varchar(16) NOT NULL,
		retries int NOT NULL,
		last_error text,
		created_at timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status)`,
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), os.Getenv("DB_SSLMODE"))

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err = db.Ping(); err != nil {
		log.Fatalf("database is unreachable: %v", err)
	}

	log.Println("Initializing database schema...")
	if err = initSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func initSchema(db *sql.DB) error {
	for _, statement := range schema {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("execute %.40q: %w", statement, err)
		}
	}
	return nil
}
