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
	"github.com/apurvavyas7/CineSuggest/internal/store"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

// TaxonomyService manages the genre and language dimensions of the catalog.
type TaxonomyService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(store *sqlite.Store, logger *slog.Logger) *TaxonomyService {
	return &TaxonomyService{store: store, logger: logger}
}

// NameRequest carries the name for genre and language create/rename calls.
type NameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

// CreateGenre adds a new genre.
func (s *TaxonomyService) CreateGenre(ctx context.Context, req NameRequest) (*domain.Genre, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	genreID, err := id.Generate(id.PrefixGenre)
	if err != nil {
		return nil, fmt.Errorf("generate genre ID: %w", err)
	}

	genre := &domain.Genre{Name: req.Name}
	genre.ID = genreID
	genre.InitTimestamps()

	if err := s.store.CreateGenre(ctx, genre); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("genre %q already exists", req.Name)
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}

	return genre, nil
}

// GetGenre returns a genre by ID.
func (s *TaxonomyService) GetGenre(ctx context.Context, genreID string) (*domain.Genre, error) {
	genre, err := s.store.GetGenre(ctx, genreID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("genre not found")
		}
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return genre, nil
}

// ListGenres returns all genres sorted by name.
func (s *TaxonomyService) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	genres, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

// RenameGenre changes a genre's name.
func (s *TaxonomyService) RenameGenre(ctx context.Context, genreID string, req NameRequest) (*domain.Genre, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	genre, err := s.GetGenre(ctx, genreID)
	if err != nil {
		return nil, err
	}

	genre.Name = req.Name
	genre.Touch()
	if err := s.store.UpdateGenre(ctx, genre); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("genre %q already exists", req.Name)
		}
		return nil, fmt.Errorf("update genre: %w", err)
	}

	return genre, nil
}

// DeleteGenre removes a genre. Movie links and user preferences pointing at
// it are removed by the store's cascade rules.
func (s *TaxonomyService) DeleteGenre(ctx context.Context, genreID string) error {
	if err := s.store.DeleteGenre(ctx, genreID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("genre not found")
		}
		return fmt.Errorf("delete genre: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Genre deleted", "genre_id", genreID)
	}

	return nil
}

// CreateLanguage adds a new language.
func (s *TaxonomyService) CreateLanguage(ctx context.Context, req NameRequest) (*domain.Language, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	languageID, err := id.Generate(id.PrefixLanguage)
	if err != nil {
		return nil, fmt.Errorf("generate language ID: %w", err)
	}

	language := &domain.Language{Name: req.Name}
	language.ID = languageID
	language.InitTimestamps()

	if err := s.store.CreateLanguage(ctx, language); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("language %q already exists", req.Name)
		}
		return nil, fmt.Errorf("create language: %w", err)
	}

	return language, nil
}

// GetLanguage returns a language by ID.
func (s *TaxonomyService) GetLanguage(ctx context.Context, languageID string) (*domain.Language, error) {
	language, err := s.store.GetLanguage(ctx, languageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("language not found")
		}
		return nil, fmt.Errorf("get language: %w", err)
	}
	return language, nil
}

// ListLanguages returns all languages sorted by name.
func (s *TaxonomyService) ListLanguages(ctx context.Context) ([]*domain.Language, error) {
	languages, err := s.store.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return languages, nil
}

// RenameLanguage changes a language's name.
func (s *TaxonomyService) RenameLanguage(ctx context.Context, languageID string, req NameRequest) (*domain.Language, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	language, err := s.GetLanguage(ctx, languageID)
	if err != nil {
		return nil, err
	}

	language.Name = req.Name
	language.Touch()
	if err := s.store.UpdateLanguage(ctx, language); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("language %q already exists", req.Name)
		}
		return nil, fmt.Errorf("update language: %w", err)
	}

	return language, nil
}

// DeleteLanguage removes a language and its movie links.
func (s *TaxonomyService) DeleteLanguage(ctx context.Context, languageID string) error {
	if err := s.store.DeleteLanguage(ctx, languageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("language not found")
		}
		return fmt.Errorf("delete language: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Language deleted", "language_id", languageID)
	}

	return nil
}
