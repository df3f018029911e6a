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

// SurveyService runs the onboarding taste survey. Completing it unlocks
// recommendations; submitting again replaces the previous answers.
type SurveyService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewSurveyService creates a new survey service.
func NewSurveyService(store *sqlite.Store, logger *slog.Logger) *SurveyService {
	return &SurveyService{store: store, logger: logger}
}

// SurveyOptions contains the choices presented on the survey form.
type SurveyOptions struct {
	Genres    []*domain.Genre    `json:"genres"`
	Languages []*domain.Language `json:"languages"`
	// Top rated movies, offered as "pick some you liked" seeds.
	Movies []*domain.Movie `json:"movies"`
}

// SubmitSurveyRequest contains the user's taste answers.
type SubmitSurveyRequest struct {
	GenreIDs      []string `json:"genre_ids" validate:"required,min=1"`
	LanguageIDs   []string `json:"language_ids" validate:"required,min=1"`
	LikedMovieIDs []string `json:"liked_movie_ids"`
}

// Options returns the survey form choices.
func (s *SurveyService) Options(ctx context.Context) (*SurveyOptions, error) {
	genres, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	languages, err := s.store.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}

	movies, err := s.store.ListTopRatedMovies(ctx, topRatedLimit)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	return &SurveyOptions{
		Genres:    genres,
		Languages: languages,
		Movies:    movies,
	}, nil
}

// Submit records a user's survey answers and marks the survey complete.
// Previous answers are replaced wholesale.
func (s *SurveyService) Submit(ctx context.Context, user *domain.User, req SubmitSurveyRequest) error {
	if err := validate.Validate(req); err != nil {
		return err
	}

	for _, genreID := range req.GenreIDs {
		if _, err := s.store.GetGenre(ctx, genreID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domainerrors.Validationf("unknown genre %q", genreID)
			}
			return fmt.Errorf("get genre: %w", err)
		}
	}
	for _, languageID := range req.LanguageIDs {
		if _, err := s.store.GetLanguage(ctx, languageID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domainerrors.Validationf("unknown language %q", languageID)
			}
			return fmt.Errorf("get language: %w", err)
		}
	}
	for _, movieID := range req.LikedMovieIDs {
		if _, err := s.store.GetMovie(ctx, movieID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domainerrors.Validationf("unknown movie %q", movieID)
			}
			return fmt.Errorf("get movie: %w", err)
		}
	}

	if err := s.store.SetPreferredGenres(ctx, user.ID, req.GenreIDs); err != nil {
		return fmt.Errorf("save genre preferences: %w", err)
	}
	if err := s.store.SetPreferredLanguages(ctx, user.ID, req.LanguageIDs); err != nil {
		return fmt.Errorf("save language preferences: %w", err)
	}
	if err := s.store.SetLikedMovies(ctx, user.ID, req.LikedMovieIDs); err != nil {
		return fmt.Errorf("save liked movies: %w", err)
	}

	if !user.HasCompletedSurvey {
		user.HasCompletedSurvey = true
		user.Touch()
		if err := s.store.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("mark survey complete: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("Survey submitted",
			"user_id", user.ID,
			"genres", len(req.GenreIDs),
			"languages", len(req.LanguageIDs),
			"liked", len(req.LikedMovieIDs),
		)
	}

	return nil
}

// Preferences returns a user's stored survey answers.
func (s *SurveyService) Preferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return prefs, nil
}
