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

// topRatedLimit is how many movies the highlights shelf shows.
const topRatedLimit = 20

// CatalogService serves the browse flow: pick a language, pick a genre
// within it, list the movies at that intersection.
type CatalogService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewCatalogService creates a new catalog browse service.
func NewCatalogService(store *sqlite.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// Languages returns all catalog languages, the browse entry point.
func (s *CatalogService) Languages(ctx context.Context) ([]*domain.Language, error) {
	languages, err := s.store.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return languages, nil
}

// GenresForLanguage returns the genres that have at least one movie in the
// given language. Genres with no movies in that language are hidden so the
// browse flow never dead-ends.
func (s *CatalogService) GenresForLanguage(ctx context.Context, languageID string) ([]*domain.Genre, error) {
	if _, err := s.store.GetLanguage(ctx, languageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("language not found")
		}
		return nil, fmt.Errorf("get language: %w", err)
	}

	genres, err := s.store.ListGenresWithMoviesInLanguage(ctx, languageID)
	if err != nil {
		return nil, fmt.Errorf("list genres for language: %w", err)
	}
	return genres, nil
}

// MoviesForGenreAndLanguage returns the movies at a genre/language
// intersection, sorted by title.
func (s *CatalogService) MoviesForGenreAndLanguage(ctx context.Context, genreID, languageID string) ([]*domain.Movie, error) {
	if _, err := s.store.GetGenre(ctx, genreID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("genre not found")
		}
		return nil, fmt.Errorf("get genre: %w", err)
	}
	if _, err := s.store.GetLanguage(ctx, languageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("language not found")
		}
		return nil, fmt.Errorf("get language: %w", err)
	}

	movies, err := s.store.ListMoviesByGenreAndLanguage(ctx, genreID, languageID)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// TopRated returns the highest rated movies in the catalog.
func (s *CatalogService) TopRated(ctx context.Context) ([]*domain.Movie, error) {
	movies, err := s.store.ListTopRatedMovies(ctx, topRatedLimit)
	if err != nil {
		return nil, fmt.Errorf("list top rated movies: %w", err)
	}
	return movies, nil
}

// MovieDetail is a movie together with its reviews and the viewer's
// watchlist state.
type MovieDetail struct {
	Movie       *domain.Movie    `json:"movie"`
	Reviews     []*domain.Review `json:"reviews"`
	InWatchlist bool             `json:"in_watchlist"`
}

// MovieDetailFor assembles the detail page payload for a viewer.
func (s *CatalogService) MovieDetailFor(ctx context.Context, userID, movieID string) (*MovieDetail, error) {
	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("movie not found")
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}

	reviews, err := s.store.ListReviewsForMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	inWatchlist, err := s.store.InWatchlist(ctx, userID, movieID)
	if err != nil {
		return nil, fmt.Errorf("check watchlist: %w", err)
	}

	return &MovieDetail{
		Movie:       movie,
		Reviews:     reviews,
		InWatchlist: inWatchlist,
	}, nil
}
