package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	"github.com/apurvavyas7/CineSuggest/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMovieReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{movieID}/reviews",
		Summary:     "List movie reviews",
		Description: "Returns a movie's reviews, newest first",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMovieReviews)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/movies/{movieID}/reviews",
		Summary:       "Create review",
		Description:   "Posts a review for a movie. Each user may review a movie once.",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReview",
		Method:      http.MethodPatch,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Update review",
		Description: "Edits a review. Only the author may edit.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReview",
		Method:      http.MethodDelete,
		Path:        "/api/v1/reviews/{id}",
		Summary:     "Delete review",
		Description: "Removes a review. The author or an admin may delete.",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMyReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me/reviews",
		Summary:     "List my reviews",
		Description: "Returns all reviews written by the authenticated user",
		Tags:        []string{"Reviews"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMyReviews)
}

// === DTOs ===

// ReviewResponse contains review data in API responses.
type ReviewResponse struct {
	ID        string    `json:"id" doc:"Review ID"`
	UserID    string    `json:"user_id" doc:"Author's user ID"`
	MovieID   string    `json:"movie_id" doc:"Reviewed movie ID"`
	Rating    int       `json:"rating" doc:"Rating on a 1-10 scale"`
	Text      string    `json:"text,omitempty" doc:"Review text"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

func toReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		MovieID:   r.MovieID,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toReviewResponses(reviews []*domain.Review) []ReviewResponse {
	resp := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = toReviewResponse(r)
	}
	return resp
}

// ListMovieReviewsInput contains parameters for listing a movie's reviews.
type ListMovieReviewsInput struct {
	Authorization string `header:"Authorization"`
	MovieID       string `path:"movieID" doc:"Movie ID"`
}

// ReviewListOutput wraps a review list for Huma.
type ReviewListOutput struct {
	Body struct {
		Reviews []ReviewResponse `json:"reviews" doc:"Reviews"`
	}
}

// CreateReviewInput contains a new review.
type CreateReviewInput struct {
	Authorization string `header:"Authorization"`
	MovieID       string `path:"movieID" doc:"Movie ID"`
	Body          struct {
		Rating int    `json:"rating" minimum:"1" maximum:"10" doc:"Rating on a 1-10 scale"`
		Text   string `json:"text,omitempty" maxLength:"4096" doc:"Optional review text"`
	}
}

// ReviewOutput wraps a single review for Huma.
type ReviewOutput struct {
	Body ReviewResponse
}

// UpdateReviewInput contains replacement review fields.
type UpdateReviewInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Review ID"`
	Body          struct {
		Rating int    `json:"rating" minimum:"1" maximum:"10" doc:"Rating on a 1-10 scale"`
		Text   string `json:"text,omitempty" maxLength:"4096" doc:"Optional review text"`
	}
}

// DeleteReviewInput identifies the review to delete.
type DeleteReviewInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Review ID"`
}

// === Handlers ===

func (s *Server) handleListMovieReviews(ctx context.Context, input *ListMovieReviewsInput) (*ReviewListOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	reviews, err := s.services.Review.ListForMovie(ctx, input.MovieID)
	if err != nil {
		return nil, err
	}

	out := &ReviewListOutput{}
	out.Body.Reviews = toReviewResponses(reviews)
	return out, nil
}

func (s *Server) handleCreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.CreateReview(ctx, user.ID, input.MovieID, service.CreateReviewRequest{
		Rating: input.Body.Rating,
		Text:   input.Body.Text,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: toReviewResponse(review)}, nil
}

func (s *Server) handleUpdateReview(ctx context.Context, input *UpdateReviewInput) (*ReviewOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.UpdateReview(ctx, user, input.ID, service.UpdateReviewRequest{
		Rating: input.Body.Rating,
		Text:   input.Body.Text,
	})
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: toReviewResponse(review)}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *DeleteReviewInput) (*MessageOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Review.DeleteReview(ctx, user, input.ID); err != nil {
		return nil, err
	}

	out := &MessageOutput{}
	out.Body.Message = "Review deleted"
	return out, nil
}

func (s *Server) handleListMyReviews(ctx context.Context, input *AuthenticatedInput) (*ReviewListOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	reviews, err := s.services.Review.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := &ReviewListOutput{}
	out.Body.Reviews = toReviewResponses(reviews)
	return out, nil
}
