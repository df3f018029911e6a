package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{
		"users", "sessions", "movies", "genres", "languages", "reviews",
		"movie_genres", "movie_languages",
		"user_genre_prefs", "user_language_prefs", "user_liked_movies", "user_watchlist",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenForeignKeysOnAllConnections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Pin every connection the pool will ever hand out and check each one.
	var conns []*sql.Conn
	for i := 0; i < 4; i++ {
		conn, err := s.db.Conn(ctx)
		if err != nil {
			t.Fatalf("pin connection %d: %v", i, err)
		}
		conns = append(conns, conn)
	}
	for i, conn := range conns {
		var fk int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
			t.Fatalf("query foreign_keys on connection %d: %v", i, err)
		}
		if fk != 1 {
			t.Errorf("connection %d: foreign_keys=%d, want 1", i, fk)
		}
	}
	for _, conn := range conns[1:] {
		conn.Close()
	}

	// With the first connection still held, the delete below must land on
	// another one and still cascade.
	if err := s.CreateUser(ctx, makeTestUser("user-fk", "cascaded")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateSession(ctx, makeTestSession("sess-fk", "user-fk", "hash-fk")); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.DeleteUser(ctx, "user-fk"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	conns[0].Close()

	var orphans int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions WHERE user_id = ?", "user-fk").Scan(&orphans); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected 0 session rows after user delete, got %d", orphans)
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	s2.Close()
}

func TestResetCatalog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := makeTestUser("user-reset", "resetter")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	g := makeTestGenre("genre-reset", "Action")
	if err := s.CreateGenre(ctx, g); err != nil {
		t.Fatalf("CreateGenre: %v", err)
	}

	if err := s.ResetCatalog(ctx); err != nil {
		t.Fatalf("ResetCatalog: %v", err)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected 0 users after reset, got %d", len(users))
	}
	genres, err := s.ListGenres(ctx)
	if err != nil {
		t.Fatalf("ListGenres: %v", err)
	}
	if len(genres) != 0 {
		t.Errorf("expected 0 genres after reset, got %d", len(genres))
	}
}

// makeTestUser creates a domain.User with sensible defaults for testing.
func makeTestUser(id, username string) *domain.User {
	now := time.Now()
	u := &domain.User{
		Username:     username,
		PasswordHash: "$argon2id$test",
		AvatarPath:   domain.DefaultAvatar,
	}
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return u
}

// makeTestGenre creates a domain.Genre with sensible defaults for testing.
func makeTestGenre(id, name string) *domain.Genre {
	now := time.Now()
	g := &domain.Genre{Name: name}
	g.ID = id
	g.CreatedAt = now
	g.UpdatedAt = now
	return g
}

// makeTestLanguage creates a domain.Language with sensible defaults for testing.
func makeTestLanguage(id, name string) *domain.Language {
	now := time.Now()
	l := &domain.Language{Name: name}
	l.ID = id
	l.CreatedAt = now
	l.UpdatedAt = now
	return l
}

// makeTestMovie creates a domain.Movie with sensible defaults for testing.
func makeTestMovie(id, title string, genreIDs, languageIDs []string) *domain.Movie {
	now := time.Now()
	m := &domain.Movie{
		Title:       title,
		PosterPath:  domain.DefaultPoster,
		Rating:      7.5,
		GenreIDs:    genreIDs,
		LanguageIDs: languageIDs,
	}
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	return m
}
