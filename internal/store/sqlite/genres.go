package sqlite

import (
	"context"
	"database/sql"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	"github.com/apurvavyas7/CineSuggest/internal/store"
)

const genreColumns = `id, created_at, updated_at, name`

func scanGenre(scanner interface{ Scan(dest ...any) error }) (*domain.Genre, error) {
	var g domain.Genre
	var createdAt, updatedAt string

	err := scanner.Scan(&g.ID, &createdAt, &updatedAt, &g.Name)
	if err != nil {
		return nil, err
	}

	g.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	g.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGenre inserts a new genre.
// Returns store.ErrAlreadyExists if the name is taken.
func (s *Store) CreateGenre(ctx context.Context, genre *domain.Genre) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO genres (id, created_at, updated_at, name) VALUES (?, ?, ?, ?)`,
		genre.ID,
		formatTime(genre.CreatedAt),
		formatTime(genre.UpdatedAt),
		genre.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetGenre retrieves a genre by ID.
// Returns store.ErrNotFound if the genre does not exist.
func (s *Store) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+genreColumns+` FROM genres WHERE id = ?`, id)

	g, err := scanGenre(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetGenreByName retrieves a genre by exact name.
// Returns store.ErrNotFound if the genre does not exist.
func (s *Store) GetGenreByName(ctx context.Context, name string) (*domain.Genre, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+genreColumns+` FROM genres WHERE name = ?`, name)

	g, err := scanGenre(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListGenres returns all genres ordered by name.
func (s *Store) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+genreColumns+` FROM genres ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []*domain.Genre
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}

// ListGenresWithMoviesInLanguage returns the genres that have at least one
// movie available in the given language, ordered by name.
func (s *Store) ListGenresWithMoviesInLanguage(ctx context.Context, languageID string) ([]*domain.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT g.id, g.created_at, g.updated_at, g.name
		FROM genres g
		JOIN movie_genres mg ON mg.genre_id = g.id
		JOIN movie_languages ml ON ml.movie_id = mg.movie_id
		WHERE ml.language_id = ?
		ORDER BY g.name ASC`, languageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []*domain.Genre
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}

// UpdateGenre performs a full row update on an existing genre.
// Returns store.ErrNotFound if the genre does not exist, or
// store.ErrAlreadyExists if the new name is taken.
func (s *Store) UpdateGenre(ctx context.Context, genre *domain.Genre) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE genres SET created_at = ?, updated_at = ?, name = ? WHERE id = ?`,
		formatTime(genre.CreatedAt),
		formatTime(genre.UpdatedAt),
		genre.Name,
		genre.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteGenre removes a genre. Movie links and preferences cascade.
// Returns store.ErrNotFound if the genre does not exist.
func (s *Store) DeleteGenre(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
