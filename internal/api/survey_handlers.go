package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apurvavyas7/CineSuggest/internal/service"
)

func (s *Server) registerSurveyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSurveyOptions",
		Method:      http.MethodGet,
		Path:        "/api/v1/survey",
		Summary:     "Get survey options",
		Description: "Returns the genres, languages and movies offered by the taste survey",
		Tags:        []string{"Survey"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSurveyOptions)

	huma.Register(s.api, huma.Operation{
		OperationID: "submitSurvey",
		Method:      http.MethodPost,
		Path:        "/api/v1/survey",
		Summary:     "Submit survey",
		Description: "Records the user's taste preferences. Re-submitting replaces previous answers.",
		Tags:        []string{"Survey"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSubmitSurvey)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSurveyPreferences",
		Method:      http.MethodGet,
		Path:        "/api/v1/survey/preferences",
		Summary:     "Get survey preferences",
		Description: "Returns the user's recorded taste preferences",
		Tags:        []string{"Survey"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSurveyPreferences)
}

// === DTOs ===

// SurveyOptionsOutput wraps the survey form data for Huma.
type SurveyOptionsOutput struct {
	Body struct {
		Genres    []GenreResponse    `json:"genres" doc:"Genres to pick from"`
		Languages []LanguageResponse `json:"languages" doc:"Languages to pick from"`
		Movies    []MovieResponse    `json:"movies" doc:"Movies to mark as liked, top rated first"`
	}
}

// SubmitSurveyInput contains the user's survey answers.
type SubmitSurveyInput struct {
	Authorization string `header:"Authorization"`
	Body          struct {
		GenreIDs      []string `json:"genre_ids" minItems:"1" doc:"Preferred genre IDs"`
		LanguageIDs   []string `json:"language_ids" minItems:"1" doc:"Preferred language IDs"`
		LikedMovieIDs []string `json:"liked_movie_ids,omitempty" doc:"IDs of movies the user already likes"`
	}
}

// PreferencesOutput wraps the stored survey answers for Huma.
type PreferencesOutput struct {
	Body struct {
		GenreIDs    []string `json:"genre_ids" doc:"Preferred genre IDs"`
		LanguageIDs []string `json:"language_ids" doc:"Preferred language IDs"`
		LikedIDs    []string `json:"liked_movie_ids" doc:"Liked movie IDs"`
	}
}

// === Handlers ===

func (s *Server) handleGetSurveyOptions(ctx context.Context, input *AuthenticatedInput) (*SurveyOptionsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	options, err := s.services.Survey.Options(ctx)
	if err != nil {
		return nil, err
	}

	out := &SurveyOptionsOutput{}
	out.Body.Genres = toGenreResponses(options.Genres)
	out.Body.Languages = toLanguageResponses(options.Languages)
	out.Body.Movies = toMovieResponses(options.Movies)
	return out, nil
}

func (s *Server) handleSubmitSurvey(ctx context.Context, input *SubmitSurveyInput) (*UserOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	err = s.services.Survey.Submit(ctx, user, service.SubmitSurveyRequest{
		GenreIDs:      input.Body.GenreIDs,
		LanguageIDs:   input.Body.LanguageIDs,
		LikedMovieIDs: input.Body.LikedMovieIDs,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleGetSurveyPreferences(ctx context.Context, input *AuthenticatedInput) (*PreferencesOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	prefs, err := s.services.Survey.Preferences(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := &PreferencesOutput{}
	out.Body.GenreIDs = prefs.GenreIDs
	out.Body.LanguageIDs = prefs.LanguageIDs
	out.Body.LikedIDs = prefs.LikedIDs
	return out, nil
}
