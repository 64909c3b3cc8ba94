// Command migrate applies the database schema. It is idempotent: every
// statement is IF NOT EXISTS, so re-running against a live database is safe.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
    id                 uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    email              text NOT NULL UNIQUE,
    name               text NOT NULL,
    password_hash      text NOT NULL,
    last_login_at      timestamptz,
    last_login_country text NOT NULL DEFAULT '',
    created_at         timestamptz NOT NULL DEFAULT now(),
    updated_at         timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS donations (
    id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    donor_name    text NOT NULL,
    receiver_name text NOT NULL DEFAULT '',
    amount        numeric NOT NULL CHECK (amount >= 0),
    date          timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS donations_date_desc_idx ON donations (date DESC);
`

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		fmt.Fprintf(os.Stderr, "apply schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("schema applied")
}
