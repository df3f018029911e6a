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

// ReviewService manages movie reviews. A user may hold at most one review
// per movie; that rule lives here rather than in the schema so the conflict
// surfaces as a domain error.
type ReviewService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store *sqlite.Store, logger *slog.Logger) *ReviewService {
	return &ReviewService{store: store, logger: logger}
}

// CreateReviewRequest contains a new review's rating and text.
type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=10"`
	Text   string `json:"text" validate:"max=4096"`
}

// UpdateReviewRequest contains replacement rating and text.
type UpdateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=10"`
	Text   string `json:"text" validate:"max=4096"`
}

// CreateReview posts a review for a movie on behalf of a user.
func (s *ReviewService) CreateReview(ctx context.Context, userID, movieID string, req CreateReviewRequest) (*domain.Review, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetMovie(ctx, movieID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("movie not found")
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}

	// One review per user per movie
	if _, err := s.store.GetReviewByUserAndMovie(ctx, userID, movieID); err == nil {
		return nil, domainerrors.Conflict("you have already reviewed this movie")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	reviewID, err := id.Generate(id.PrefixReview)
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	review := &domain.Review{
		UserID:  userID,
		MovieID: movieID,
		Rating:  req.Rating,
		Text:    req.Text,
	}
	review.ID = reviewID
	review.InitTimestamps()

	if err := s.store.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Review created", "review_id", reviewID, "movie_id", movieID, "user_id", userID)
	}

	return review, nil
}

// GetReview returns a review by ID.
func (s *ReviewService) GetReview(ctx context.Context, reviewID string) (*domain.Review, error) {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("review not found")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// ListForMovie returns a movie's reviews, newest first.
func (s *ReviewService) ListForMovie(ctx context.Context, movieID string) ([]*domain.Review, error) {
	reviews, err := s.store.ListReviewsForMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListForUser returns all reviews a user has written.
func (s *ReviewService) ListForUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	reviews, err := s.store.ListReviewsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// UpdateReview edits a review. Only the author may edit.
func (s *ReviewService) UpdateReview(ctx context.Context, actor *domain.User, reviewID string, req UpdateReviewRequest) (*domain.Review, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actor.ID {
		return nil, domainerrors.Forbidden("you can only edit your own reviews")
	}

	review.Rating = req.Rating
	review.Text = req.Text
	review.Touch()

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	return review, nil
}

// DeleteReview removes a review. The author or an admin may delete.
func (s *ReviewService) DeleteReview(ctx context.Context, actor *domain.User, reviewID string) error {
	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actor.ID && !actor.IsAdmin {
		return domainerrors.Forbidden("you can only delete your own reviews")
	}

	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Review deleted", "review_id", reviewID, "deleted_by", actor.ID)
	}

	return nil
}
