package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
	"github.com/apurvavyas7/CineSuggest/internal/recommend"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

// RecommendationService produces personalized movie rankings from survey
// answers. The scoring itself lives in the recommend package; this service
// gates it behind survey completion and feeds it the catalog.
type RecommendationService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(store *sqlite.Store, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{store: store, logger: logger}
}

// Recommendation is a movie paired with its preference score.
type Recommendation struct {
	Movie *domain.Movie `json:"movie"`
	Score int           `json:"score"`
}

// ForUser ranks the catalog for a user. The user must have completed the
// survey; liked movies never appear in their own recommendations.
func (s *RecommendationService) ForUser(ctx context.Context, user *domain.User) ([]Recommendation, error) {
	if !user.HasCompletedSurvey {
		return nil, domainerrors.Validation("complete the survey to get recommendations")
	}

	prefs, err := s.store.GetPreferences(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	catalog, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	scored := recommend.Rank(catalog, *prefs)

	recommendations := make([]Recommendation, 0, len(scored))
	for _, sc := range scored {
		recommendations = append(recommendations, Recommendation{
			Movie: sc.Movie,
			Score: sc.Score,
		})
	}

	if s.logger != nil {
		s.logger.Debug("Recommendations computed",
			"user_id", user.ID,
			"candidates", len(catalog),
			"recommended", len(recommendations),
		)
	}

	return recommendations, nil
}
