package sqlite

import (
	"context"
	"database/sql"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	"github.com/apurvavyas7/CineSuggest/internal/store"
)

// movieColumns is the ordered list of columns selected in movie queries.
// Must match the scan order in scanMovie.
const movieColumns = `id, created_at, updated_at, title, overview,
	poster_path, poster_blurhash, rating`

// scanMovie scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Movie. Genre and language IDs are loaded separately.
func scanMovie(scanner interface{ Scan(dest ...any) error }) (*domain.Movie, error) {
	var m domain.Movie

	var (
		createdAt      string
		updatedAt      string
		overview       sql.NullString
		posterBlurHash sql.NullString
	)

	err := scanner.Scan(
		&m.ID,
		&createdAt,
		&updatedAt,
		&m.Title,
		&overview,
		&m.PosterPath,
		&posterBlurHash,
		&m.Rating,
	)
	if err != nil {
		return nil, err
	}

	m.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	m.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if overview.Valid {
		m.Overview = overview.String
	}
	if posterBlurHash.Valid {
		m.PosterBlurHash = posterBlurHash.String
	}

	return &m, nil
}

// collectMovies drains rows into a slice.
func collectMovies(rows *sql.Rows) ([]*domain.Movie, error) {
	var movies []*domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// loadMovieAssociations fills GenreIDs and LanguageIDs for the given movies
// with one query per association table.
func (s *Store) loadMovieAssociations(ctx context.Context, movies []*domain.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Movie, len(movies))
	args := make([]any, 0, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
		args = append(args, m.ID)
	}
	in := placeholders(len(movies))

	rows, err := s.db.QueryContext(ctx,
		`SELECT movie_id, genre_id FROM movie_genres WHERE movie_id IN (`+in+`) ORDER BY genre_id`, args...)
	if err != nil {
		return err
	}
	for rows.Next() {
		var movieID, genreID string
		if err := rows.Scan(&movieID, &genreID); err != nil {
			rows.Close()
			return err
		}
		byID[movieID].GenreIDs = append(byID[movieID].GenreIDs, genreID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT movie_id, language_id FROM movie_languages WHERE movie_id IN (`+in+`) ORDER BY language_id`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var movieID, languageID string
		if err := rows.Scan(&movieID, &languageID); err != nil {
			return err
		}
		byID[movieID].LanguageIDs = append(byID[movieID].LanguageIDs, languageID)
	}
	return rows.Err()
}

// CreateMovie inserts a new movie with its genre and language links.
func (s *Store) CreateMovie(ctx context.Context, movie *domain.Movie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO movies (
			id, created_at, updated_at, title, overview,
			poster_path, poster_blurhash, rating
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		movie.ID,
		formatTime(movie.CreatedAt),
		formatTime(movie.UpdatedAt),
		movie.Title,
		nullString(movie.Overview),
		movie.PosterPath,
		nullString(movie.PosterBlurHash),
		movie.Rating,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	if err := insertMovieLinks(ctx, tx, movie); err != nil {
		return err
	}

	return tx.Commit()
}

func insertMovieLinks(ctx context.Context, tx *sql.Tx, movie *domain.Movie) error {
	for _, genreID := range movie.GenreIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO movie_genres (movie_id, genre_id) VALUES (?, ?)`,
			movie.ID, genreID); err != nil {
			return err
		}
	}
	for _, languageID := range movie.LanguageIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO movie_languages (movie_id, language_id) VALUES (?, ?)`,
			movie.ID, languageID); err != nil {
			return err
		}
	}
	return nil
}

// GetMovie retrieves a movie by ID with its associations loaded.
// Returns store.ErrNotFound if the movie does not exist.
func (s *Store) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)

	m, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadMovieAssociations(ctx, []*domain.Movie{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMovies returns the full catalog with associations loaded.
func (s *Store) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies, err := collectMovies(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadMovieAssociations(ctx, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// ListMoviesByGenreAndLanguage returns movies carrying both the genre and
// the language, with associations loaded.
func (s *Store) ListMoviesByGenreAndLanguage(ctx context.Context, genreID, languageID string) ([]*domain.Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+movieColumns+` FROM movies
		WHERE id IN (SELECT movie_id FROM movie_genres WHERE genre_id = ?)
		  AND id IN (SELECT movie_id FROM movie_languages WHERE language_id = ?)
		ORDER BY title ASC`, genreID, languageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies, err := collectMovies(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadMovieAssociations(ctx, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// ListTopRatedMovies returns up to limit movies by rating descending,
// with associations loaded.
func (s *Store) ListTopRatedMovies(ctx context.Context, limit int) ([]*domain.Movie, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY rating DESC, title ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies, err := collectMovies(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadMovieAssociations(ctx, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// UpdateMovie performs a full row update and replaces the genre and
// language links. Returns store.ErrNotFound if the movie does not exist.
func (s *Store) UpdateMovie(ctx context.Context, movie *domain.Movie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE movies SET
			created_at = ?,
			updated_at = ?,
			title = ?,
			overview = ?,
			poster_path = ?,
			poster_blurhash = ?,
			rating = ?
		WHERE id = ?`,
		formatTime(movie.CreatedAt),
		formatTime(movie.UpdatedAt),
		movie.Title,
		nullString(movie.Overview),
		movie.PosterPath,
		nullString(movie.PosterBlurHash),
		movie.Rating,
		movie.ID,
	)
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

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM movie_genres WHERE movie_id = ?`, movie.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM movie_languages WHERE movie_id = ?`, movie.ID); err != nil {
		return err
	}
	if err := insertMovieLinks(ctx, tx, movie); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteMovie removes a movie. Links, reviews, likes, and watchlist
// entries cascade. Returns store.ErrNotFound if the movie does not exist.
func (s *Store) DeleteMovie(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
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
