// Package db provides PostgreSQL access for users, assessments and career options.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by updates that matched no row.
var ErrNotFound = errors.New("not found")

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// UpsertUser stores the identity, refreshing the email of an existing subject.
func (db *DB) UpsertUser(ctx context.Context, uid, email string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (uid, email)
		 VALUES ($1, $2)
		 ON CONFLICT (uid) DO UPDATE SET email = EXCLUDED.email, updated_at = NOW()
		 RETURNING id, uid, email, created_at, updated_at`,
		uid, email,
	).Scan(&u.ID, &u.UID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &u, nil
}

// GetUserBySubject returns the user for an identity subject, or nil if unknown.
func (db *DB) GetUserBySubject(ctx context.Context, uid string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, uid, email, created_at, updated_at FROM users WHERE uid = $1`,
		uid,
	).Scan(&u.ID, &u.UID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// marshalJSONB encodes v for a JSONB column. nil stays SQL NULL.
func marshalJSONB(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// unmarshalJSONB decodes a nullable JSONB column into dst.
func unmarshalJSONB(src []byte, dst any) error {
	if len(src) == 0 {
		return nil
	}
	return json.Unmarshal(src, dst)
}

//go:embed schema.sql
var schemaSQL string

// ApplySchema runs the reference DDL. Every statement is idempotent.
func (db *DB) ApplySchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
