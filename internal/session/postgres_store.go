package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const sessionsTable = "client_sessions"

const migration = `
CREATE TABLE IF NOT EXISTS client_sessions (
    id text PRIMARY KEY,
    access_token text NOT NULL DEFAULT '',
    refresh_token text NOT NULL DEFAULT '',
    user_email text NOT NULL DEFAULT '',
    updated_at timestamptz NOT NULL DEFAULT NOW()
);
`

type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the sessions table if it does not exist yet.
func (r *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, migration); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", sessionsTable, err)
	}
	return nil
}

func (r *PostgresStore) Load(ctx context.Context, id string) (Credentials, error) {
	sql, args, err := selectQuery(id).ToSql()
	if err != nil {
		return Credentials{}, err
	}

	var creds Credentials
	err = r.db.QueryRow(ctx, sql, args...).Scan(&creds.AccessToken, &creds.RefreshToken, &creds.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (r *PostgresStore) Save(ctx context.Context, id string, creds Credentials) error {
	if id == "" {
		return ErrEmptyID
	}

	sql, args, err := upsertQuery(id, creds, time.Now()).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PostgresStore) Clear(ctx context.Context, id string) error {
	sql, args, err := deleteQuery(id).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	r.logger.Debug("Session credentials cleared", zap.Int64("rows", tag.RowsAffected()))
	return nil
}

func selectQuery(id string) squirrel.SelectBuilder {
	return squirrel.Select("access_token", "refresh_token", "user_email").
		From(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
}

func upsertQuery(id string, creds Credentials, now time.Time) squirrel.InsertBuilder {
	return squirrel.Insert(sessionsTable).
		Columns("id", "access_token", "refresh_token", "user_email", "updated_at").
		Values(id, creds.AccessToken, creds.RefreshToken, creds.Email, now).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"access_token = EXCLUDED.access_token, " +
			"refresh_token = EXCLUDED.refresh_token, " +
			"user_email = EXCLUDED.user_email, " +
			"updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)
}

func deleteQuery(id string) squirrel.DeleteBuilder {
	return squirrel.Delete(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
}
