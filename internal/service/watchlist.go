package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
	"github.com/apurvavyas7/CineSuggest/internal/store"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

// WatchlistService manages each user's watch-later list.
type WatchlistService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(store *sqlite.Store, logger *slog.Logger) *WatchlistService {
	return &WatchlistService{store: store, logger: logger}
}

// Add puts a movie on a user's watchlist. Adding a movie that is already
// listed is a no-op.
func (s *WatchlistService) Add(ctx context.Context, userID, movieID string) error {
	if _, err := s.store.GetMovie(ctx, movieID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("movie not found")
		}
		return fmt.Errorf("get movie: %w", err)
	}

	if err := s.store.AddWatchlistMovie(ctx, userID, movieID); err != nil {
		return fmt.Errorf("add to watchlist: %w", err)
	}

	return nil
}

// Remove takes a movie off a user's watchlist.
func (s *WatchlistService) Remove(ctx context.Context, userID, movieID string) error {
	if err := s.store.RemoveWatchlistMovie(ctx, userID, movieID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("movie is not on your watchlist")
		}
		return fmt.Errorf("remove from watchlist: %w", err)
	}
	return nil
}

// Toggle flips a movie's watchlist membership and reports whether the movie
// ended up on the list.
func (s *WatchlistService) Toggle(ctx context.Context, userID, movieID string) (bool, error) {
	in, err := s.Contains(ctx, userID, movieID)
	if err != nil {
		return false, err
	}

	if in {
		if err := s.Remove(ctx, userID, movieID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.Add(ctx, userID, movieID); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the movies on a user's watchlist sorted by title.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]*domain.Movie, error) {
	movies, err := s.store.ListWatchlistMovies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return movies, nil
}

// Contains reports whether a movie is on a user's watchlist.
func (s *WatchlistService) Contains(ctx context.Context, userID, movieID string) (bool, error) {
	in, err := s.store.InWatchlist(ctx, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return in, nil
}
