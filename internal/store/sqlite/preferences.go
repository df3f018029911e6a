package sqlite

import (
	"context"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	"github.com/apurvavyas7/CineSuggest/internal/store"
)

// replaceAssociations deletes and reinserts one user association table
// inside a transaction. Unknown target IDs fail the foreign key check and
// roll the whole set back.
func (s *Store) replaceAssociations(ctx context.Context, table, column, userID string, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO `+table+` (user_id, `+column+`) VALUES (?, ?)`,
			userID, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SetPreferredGenres replaces the user's preferred genre set.
func (s *Store) SetPreferredGenres(ctx context.Context, userID string, genreIDs []string) error {
	return s.replaceAssociations(ctx, "user_genre_prefs", "genre_id", userID, genreIDs)
}

// SetPreferredLanguages replaces the user's preferred language set.
func (s *Store) SetPreferredLanguages(ctx context.Context, userID string, languageIDs []string) error {
	return s.replaceAssociations(ctx, "user_language_prefs", "language_id", userID, languageIDs)
}

// SetLikedMovies replaces the user's liked movie set.
func (s *Store) SetLikedMovies(ctx context.Context, userID string, movieIDs []string) error {
	return s.replaceAssociations(ctx, "user_liked_movies", "movie_id", userID, movieIDs)
}

// GetPreferences loads the user's full taste profile.
func (s *Store) GetPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	prefs := &domain.Preferences{}

	queries := []struct {
		query string
		dest  *[]string
	}{
		{`SELECT genre_id FROM user_genre_prefs WHERE user_id = ?`, &prefs.GenreIDs},
		{`SELECT language_id FROM user_language_prefs WHERE user_id = ?`, &prefs.LanguageIDs},
		{`SELECT movie_id FROM user_liked_movies WHERE user_id = ?`, &prefs.LikedIDs},
	}

	for _, q := range queries {
		rows, err := s.db.QueryContext(ctx, q.query, userID)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, err
			}
			*q.dest = append(*q.dest, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return prefs, nil
}

// InWatchlist reports whether the movie is on the user's watchlist.
func (s *Store) InWatchlist(ctx context.Context, userID, movieID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_watchlist WHERE user_id = ? AND movie_id = ?`,
		userID, movieID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddWatchlistMovie adds a movie to the user's watchlist. Adding a movie
// already on the list is a no-op.
func (s *Store) AddWatchlistMovie(ctx context.Context, userID, movieID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_watchlist (user_id, movie_id) VALUES (?, ?)`,
		userID, movieID)
	return err
}

// RemoveWatchlistMovie removes a movie from the user's watchlist.
// Returns store.ErrNotFound if the movie was not on the list.
func (s *Store) RemoveWatchlistMovie(ctx context.Context, userID, movieID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM user_watchlist WHERE user_id = ? AND movie_id = ?`,
		userID, movieID)
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

// ListWatchlistMovies returns the user's watchlist, most recently added
// order not being tracked, sorted by title.
func (s *Store) ListWatchlistMovies(ctx context.Context, userID string) ([]*domain.Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+movieColumns+` FROM movies m
		JOIN user_watchlist w ON w.movie_id = m.id
		WHERE w.user_id = ?
		ORDER BY m.title ASC`, userID)
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
