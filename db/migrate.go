package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations are applied in order on every start. All statements are
// idempotent, so re-running them against an existing database is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL,
		password_hash TEXT,
		role TEXT NOT NULL CHECK (role IN ('student', 'coordinator', 'admin')),
		name TEXT,
		leo_id TEXT,
		roll_no TEXT,
		phone TEXT,
		status TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// Email uniqueness is scoped to role: a student and a coordinator may
	// share an address. leo_id is globally unique among students.
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_role_idx
		ON users (LOWER(email), role)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_leo_id_idx
		ON users (leo_id) WHERE leo_id IS NOT NULL`,

	`CREATE TABLE IF NOT EXISTS events (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		date TEXT,
		time TEXT,
		venue TEXT,
		category TEXT,
		status TEXT NOT NULL DEFAULT 'open',
		cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		rules TEXT,
		team_size INT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS participations (
		id UUID PRIMARY KEY,
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT,
		leo_id TEXT,
		roll_no TEXT,
		payment_type TEXT NOT NULL DEFAULT 'pay_at_arrival',
		payment_status TEXT,
		arrived BOOLEAN NOT NULL DEFAULT FALSE,
		screenshot TEXT,
		transaction_id TEXT,
		registered_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (event_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY,
		participation_id UUID NOT NULL REFERENCES participations(id) ON DELETE CASCADE,
		transaction_id TEXT,
		screenshot TEXT,
		amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS event_coordinators (
		id UUID PRIMARY KEY,
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE (event_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS leaderboard (
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		participant_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		score DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (event_id, participant_id)
	)`,

	`CREATE TABLE IF NOT EXISTS winners (
		event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		participant_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		rank INT NOT NULL,
		PRIMARY KEY (event_id, participant_id)
	)`,
}

// RunMigrations applies the schema. Call once at startup, before the
// server starts taking requests.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
