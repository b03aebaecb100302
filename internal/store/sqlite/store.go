package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/linksaver/linksaver/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS bookmarks (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL REFERENCES users(id),
	url         TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	favicon     TEXT NOT NULL DEFAULT '',
	summary     TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_user_created
	ON bookmarks(user_id, created_at DESC);
`

// Store persists users and bookmarks in SQLite.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path and applies the schema.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writes anyway; a single connection avoids
	// SQLITE_BUSY under concurrent handlers and keeps ":memory:"
	// databases shared across the pool.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ─────────────────────────────────────────────────────────────────
// Bookmarks
// ─────────────────────────────────────────────────────────────────

// InsertBookmark stores a new bookmark, assigning its id and
// timestamps, and returns the stored row.
func (s *Store) InsertBookmark(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	now := time.Now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now

	const query = `
		INSERT INTO bookmarks (id, user_id, url, title, description, favicon, summary, created_at, updated_at)
		VALUES (:id, :user_id, :url, :title, :description, :favicon, :summary, :created_at, :updated_at)`

	if _, err := s.db.NamedExecContext(ctx, query, b); err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to insert bookmark: %w", err)
	}

	return b, nil
}

// ListByUser returns all bookmarks owned by userID, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	const query = `
		SELECT id, user_id, url, title, description, favicon, summary, created_at, updated_at
		FROM bookmarks
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`

	bookmarks := []domain.Bookmark{}
	if err := s.db.SelectContext(ctx, &bookmarks, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	return bookmarks, nil
}

// DeleteBookmark removes a bookmark by id, scoped to its owner.
// Deleting a row that does not exist (or belongs to someone else)
// returns domain.ErrNotFound.
func (s *Store) DeleteBookmark(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────────────────────────

// CreateUser registers a new user. A duplicate email returns
// domain.ErrEmailTaken.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (domain.User, error) {
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	var exists int
	err := s.db.GetContext(ctx, &exists, `SELECT COUNT(1) FROM users WHERE email = ?`, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists > 0 {
		return domain.User{}, domain.ErrEmailTaken
	}

	const query = `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (:id, :email, :password_hash, :created_at)`

	if _, err := s.db.NamedExecContext(ctx, query, u); err != nil {
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetUserByEmail looks a user up by email; missing users return
// domain.ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := s.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByID looks a user up by id; missing users return
// domain.ErrNotFound.
func (s *Store) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := s.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
