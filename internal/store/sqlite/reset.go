package sqlite

import "context"

// ResetCatalog deletes every row in every table. Used by the seed command
// before inserting the demonstration dataset.
func (s *Store) ResetCatalog(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Association tables cascade from their parents, but clearing them
	// explicitly keeps the order independent of foreign key settings.
	tables := []string{
		"user_genre_prefs",
		"user_language_prefs",
		"user_liked_movies",
		"user_watchlist",
		"movie_genres",
		"movie_languages",
		"reviews",
		"sessions",
		"movies",
		"genres",
		"languages",
		"users",
	}
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}

	return tx.Commit()
}
