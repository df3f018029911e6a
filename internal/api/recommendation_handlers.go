package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations",
		Summary:     "List recommendations",
		Description: "Returns personalized movie recommendations. Requires a completed taste survey.",
		Tags:        []string{"Recommendations"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListRecommendations)
}

// RecommendationResponse is a recommended movie with its match score.
type RecommendationResponse struct {
	Movie MovieResponse `json:"movie" doc:"The recommended movie"`
	Score int           `json:"score" doc:"Preference match score, higher is better"`
}

// RecommendationListOutput wraps the recommendation list for Huma.
type RecommendationListOutput struct {
	Body struct {
		Recommendations []RecommendationResponse `json:"recommendations" doc:"Recommended movies, best match first"`
	}
}

func (s *Server) handleListRecommendations(ctx context.Context, input *AuthenticatedInput) (*RecommendationListOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recs, err := s.services.Recommendation.ForUser(ctx, user)
	if err != nil {
		return nil, err
	}

	out := &RecommendationListOutput{}
	out.Body.Recommendations = make([]RecommendationResponse, len(recs))
	for i, rec := range recs {
		out.Body.Recommendations[i] = RecommendationResponse{
			Movie: toMovieResponse(rec.Movie),
			Score: rec.Score,
		}
	}
	return out, nil
}
