package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
	"github.com/apurvavyas7/CineSuggest/internal/id"
	"github.com/apurvavyas7/CineSuggest/internal/media/images"
	"github.com/apurvavyas7/CineSuggest/internal/search"
	"github.com/apurvavyas7/CineSuggest/internal/store"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

// maxImageSize caps poster and avatar uploads at 10 MiB.
const maxImageSize = 10 << 20

// MovieService manages the movie catalog, poster images, and keeps the
// search index in sync with catalog changes.
type MovieService struct {
	store       *sqlite.Store
	posters     *images.Storage
	searchIndex *search.Index
	logger      *slog.Logger
}

// NewMovieService creates a new movie service.
func NewMovieService(
	store *sqlite.Store,
	posters *images.Storage,
	searchIndex *search.Index,
	logger *slog.Logger,
) *MovieService {
	return &MovieService{
		store:       store,
		posters:     posters,
		searchIndex: searchIndex,
		logger:      logger,
	}
}

// CreateMovieRequest contains the data for a new catalog entry.
type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=256"`
	Overview    string   `json:"overview" validate:"max=4096"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=10"`
	GenreIDs    []string `json:"genre_ids" validate:"required,min=1"`
	LanguageIDs []string `json:"language_ids" validate:"required,min=1"`
}

// UpdateMovieRequest contains replacement data for an existing movie.
// All fields are required; partial updates go through the full record.
type UpdateMovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=256"`
	Overview    string   `json:"overview" validate:"max=4096"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=10"`
	GenreIDs    []string `json:"genre_ids" validate:"required,min=1"`
	LanguageIDs []string `json:"language_ids" validate:"required,min=1"`
}

// CreateMovie adds a movie to the catalog and indexes it for search.
func (s *MovieService) CreateMovie(ctx context.Context, req CreateMovieRequest) (*domain.Movie, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if err := s.checkTaxonomy(ctx, req.GenreIDs, req.LanguageIDs); err != nil {
		return nil, err
	}

	movieID, err := id.Generate(id.PrefixMovie)
	if err != nil {
		return nil, fmt.Errorf("generate movie ID: %w", err)
	}

	movie := &domain.Movie{
		Title:       req.Title,
		Overview:    req.Overview,
		PosterPath:  domain.DefaultPoster,
		Rating:      req.Rating,
		GenreIDs:    req.GenreIDs,
		LanguageIDs: req.LanguageIDs,
	}
	movie.ID = movieID
	movie.InitTimestamps()

	if err := s.store.CreateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.indexMovie(ctx, movie)

	if s.logger != nil {
		s.logger.Info("Movie created", "movie_id", movieID, "title", movie.Title)
	}

	return movie, nil
}

// GetMovie returns a movie with its genre and language links.
func (s *MovieService) GetMovie(ctx context.Context, movieID string) (*domain.Movie, error) {
	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("movie not found")
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return movie, nil
}

// ListMovies returns the full catalog sorted by title.
func (s *MovieService) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// UpdateMovie replaces a movie's metadata and taxonomy links.
func (s *MovieService) UpdateMovie(ctx context.Context, movieID string, req UpdateMovieRequest) (*domain.Movie, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if err := s.checkTaxonomy(ctx, req.GenreIDs, req.LanguageIDs); err != nil {
		return nil, err
	}

	movie, err := s.GetMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	movie.Title = req.Title
	movie.Overview = req.Overview
	movie.Rating = req.Rating
	movie.GenreIDs = req.GenreIDs
	movie.LanguageIDs = req.LanguageIDs
	movie.Touch()

	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.indexMovie(ctx, movie)

	return movie, nil
}

// DeleteMovie removes a movie, its poster file, and its search document.
// Reviews, watchlist rows, and liked-movie rows cascade in the store.
func (s *MovieService) DeleteMovie(ctx context.Context, movieID string) error {
	movie, err := s.GetMovie(ctx, movieID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteMovie(ctx, movieID); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	if movie.PosterPath != domain.DefaultPoster {
		if err := s.posters.Delete(movie.PosterPath); err != nil && s.logger != nil {
			s.logger.Warn("Failed to delete poster file", "movie_id", movieID, "error", err)
		}
	}

	if err := s.searchIndex.DeleteMovie(movieID); err != nil && s.logger != nil {
		s.logger.Warn("Failed to remove movie from search index", "movie_id", movieID, "error", err)
	}

	if s.logger != nil {
		s.logger.Info("Movie deleted", "movie_id", movieID, "title", movie.Title)
	}

	return nil
}

// SetPoster stores a new poster image for a movie and replaces the old one.
// The image type is sniffed from the payload, not trusted from the client.
func (s *MovieService) SetPoster(ctx context.Context, movieID string, data []byte) (*domain.Movie, error) {
	if len(data) == 0 {
		return nil, domainerrors.Validation("poster image is empty")
	}
	if len(data) > maxImageSize {
		return nil, domainerrors.Validation("poster image exceeds 10MB limit")
	}

	movie, err := s.GetMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	ext, err := images.SniffExtension(data)
	if err != nil {
		return nil, domainerrors.Validation("unsupported image format").WithCause(err)
	}

	filename := images.UniqueFilename(movie.Title, ext)
	if err := s.posters.Save(filename, data); err != nil {
		return nil, fmt.Errorf("save poster: %w", err)
	}

	oldPoster := movie.PosterPath
	movie.PosterPath = filename
	movie.Touch()

	if hash, hashErr := images.ComputeBlurHash(data); hashErr == nil {
		movie.PosterBlurHash = hash
	} else if s.logger != nil {
		s.logger.Warn("Failed to compute poster blurhash", "movie_id", movieID, "error", hashErr)
	}

	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		_ = s.posters.Delete(filename)
		return nil, fmt.Errorf("update movie: %w", err)
	}

	if oldPoster != "" && oldPoster != domain.DefaultPoster {
		if err := s.posters.Delete(oldPoster); err != nil && s.logger != nil {
			s.logger.Warn("Failed to delete old poster", "movie_id", movieID, "error", err)
		}
	}

	return movie, nil
}

// checkTaxonomy verifies every referenced genre and language exists so the
// caller gets a validation error instead of a foreign key failure.
func (s *MovieService) checkTaxonomy(ctx context.Context, genreIDs, languageIDs []string) error {
	for _, genreID := range genreIDs {
		if _, err := s.store.GetGenre(ctx, genreID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domainerrors.Validationf("unknown genre %q", genreID)
			}
			return fmt.Errorf("get genre: %w", err)
		}
	}
	for _, languageID := range languageIDs {
		if _, err := s.store.GetLanguage(ctx, languageID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domainerrors.Validationf("unknown language %q", languageID)
			}
			return fmt.Errorf("get language: %w", err)
		}
	}
	return nil
}

// indexMovie updates the search document for a movie. Index failures are
// logged rather than surfaced; search lags behind the catalog until the
// next reindex instead of failing the write.
func (s *MovieService) indexMovie(ctx context.Context, movie *domain.Movie) {
	doc, err := s.buildSearchDocument(ctx, movie)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to build search document", "movie_id", movie.ID, "error", err)
		}
		return
	}
	if err := s.searchIndex.IndexMovie(doc); err != nil && s.logger != nil {
		s.logger.Warn("Failed to index movie", "movie_id", movie.ID, "error", err)
	}
}

// buildSearchDocument resolves genre and language names for the index.
func (s *MovieService) buildSearchDocument(ctx context.Context, movie *domain.Movie) (*search.MovieDocument, error) {
	genreNames := make([]string, 0, len(movie.GenreIDs))
	for _, genreID := range movie.GenreIDs {
		genre, err := s.store.GetGenre(ctx, genreID)
		if err != nil {
			return nil, fmt.Errorf("resolve genre %s: %w", genreID, err)
		}
		genreNames = append(genreNames, genre.Name)
	}

	languageNames := make([]string, 0, len(movie.LanguageIDs))
	for _, languageID := range movie.LanguageIDs {
		language, err := s.store.GetLanguage(ctx, languageID)
		if err != nil {
			return nil, fmt.Errorf("resolve language %s: %w", languageID, err)
		}
		languageNames = append(languageNames, language.Name)
	}

	return search.NewMovieDocument(movie, genreNames, languageNames), nil
}

// ReindexAll rebuilds the search index from the catalog.
func (s *MovieService) ReindexAll(ctx context.Context) (int, error) {
	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return 0, fmt.Errorf("list movies: %w", err)
	}

	docs := make([]*search.MovieDocument, 0, len(movies))
	for _, movie := range movies {
		doc, err := s.buildSearchDocument(ctx, movie)
		if err != nil {
			return 0, err
		}
		docs = append(docs, doc)
	}

	if err := s.searchIndex.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}
	if err := s.searchIndex.IndexMovies(docs); err != nil {
		return 0, fmt.Errorf("index movies: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Search index rebuilt", "movies", len(docs))
	}

	return len(docs), nil
}
