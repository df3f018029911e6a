package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	"github.com/apurvavyas7/CineSuggest/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLanguages",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/languages",
		Summary:     "List languages",
		Description: "Returns all catalog languages, the browse entry point",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListLanguages)

	huma.Register(s.api, huma.Operation{
		OperationID: "listGenresForLanguage",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/languages/{languageID}/genres",
		Summary:     "List genres for a language",
		Description: "Returns genres that have at least one movie in the language",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListGenresForLanguage)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMoviesForGenreAndLanguage",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/languages/{languageID}/genres/{genreID}/movies",
		Summary:     "List movies for a genre and language",
		Description: "Returns the movies at a genre/language intersection",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMoviesForGenreAndLanguage)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTopRatedMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/top-rated",
		Summary:     "List top rated movies",
		Description: "Returns the highest rated movies in the catalog",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTopRatedMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovie",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{id}",
		Summary:     "Get movie",
		Description: "Returns a movie with its reviews and the viewer's watchlist state",
		Tags:        []string{"Movies"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/search",
		Summary:     "Search movies",
		Description: "Full-text search over titles and overviews with typo tolerance",
		Tags:        []string{"Movies"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchMovies)
}

// === DTOs ===

// LanguageResponse contains language data in API responses.
type LanguageResponse struct {
	ID   string `json:"id" doc:"Language ID"`
	Name string `json:"name" doc:"Language name"`
}

func toLanguageResponses(languages []*domain.Language) []LanguageResponse {
	resp := make([]LanguageResponse, len(languages))
	for i, l := range languages {
		resp[i] = LanguageResponse{ID: l.ID, Name: l.Name}
	}
	return resp
}

// GenreResponse contains genre data in API responses.
type GenreResponse struct {
	ID   string `json:"id" doc:"Genre ID"`
	Name string `json:"name" doc:"Genre name"`
}

func toGenreResponses(genres []*domain.Genre) []GenreResponse {
	resp := make([]GenreResponse, len(genres))
	for i, g := range genres {
		resp[i] = GenreResponse{ID: g.ID, Name: g.Name}
	}
	return resp
}

// MovieResponse contains movie data in API responses.
type MovieResponse struct {
	ID             string    `json:"id" doc:"Movie ID"`
	Title          string    `json:"title" doc:"Movie title"`
	Overview       string    `json:"overview,omitempty" doc:"Plot summary"`
	PosterPath     string    `json:"poster_path" doc:"Poster filename, served under /images/posters"`
	PosterBlurHash string    `json:"poster_blur_hash,omitempty" doc:"BlurHash placeholder for the poster"`
	Rating         float64   `json:"rating" doc:"Catalog rating on a 0-10 scale"`
	GenreIDs       []string  `json:"genre_ids" doc:"Linked genre IDs"`
	LanguageIDs    []string  `json:"language_ids" doc:"Linked language IDs"`
	CreatedAt      time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt      time.Time `json:"updated_at" doc:"Last update timestamp"`
}

func toMovieResponse(m *domain.Movie) MovieResponse {
	return MovieResponse{
		ID:             m.ID,
		Title:          m.Title,
		Overview:       m.Overview,
		PosterPath:     m.PosterPath,
		PosterBlurHash: m.PosterBlurHash,
		Rating:         m.Rating,
		GenreIDs:       m.GenreIDs,
		LanguageIDs:    m.LanguageIDs,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toMovieResponses(movies []*domain.Movie) []MovieResponse {
	resp := make([]MovieResponse, len(movies))
	for i, m := range movies {
		resp[i] = toMovieResponse(m)
	}
	return resp
}

// LanguageListOutput wraps a language list for Huma.
type LanguageListOutput struct {
	Body struct {
		Languages []LanguageResponse `json:"languages" doc:"Catalog languages"`
	}
}

// ListGenresForLanguageInput contains parameters for the genre listing.
type ListGenresForLanguageInput struct {
	Authorization string `header:"Authorization"`
	LanguageID    string `path:"languageID" doc:"Language ID"`
}

// GenreListOutput wraps a genre list for Huma.
type GenreListOutput struct {
	Body struct {
		Genres []GenreResponse `json:"genres" doc:"Genres"`
	}
}

// ListMoviesForGenreAndLanguageInput contains browse parameters.
type ListMoviesForGenreAndLanguageInput struct {
	Authorization string `header:"Authorization"`
	LanguageID    string `path:"languageID" doc:"Language ID"`
	GenreID       string `path:"genreID" doc:"Genre ID"`
}

// MovieListOutput wraps a movie list for Huma.
type MovieListOutput struct {
	Body struct {
		Movies []MovieResponse `json:"movies" doc:"Movies"`
	}
}

// GetMovieInput contains parameters for the movie detail page.
type GetMovieInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Movie ID"`
}

// MovieDetailResponse is the movie detail page payload.
type MovieDetailResponse struct {
	Movie       MovieResponse    `json:"movie" doc:"The movie"`
	Reviews     []ReviewResponse `json:"reviews" doc:"Reviews, newest first"`
	InWatchlist bool             `json:"in_watchlist" doc:"Whether the viewer has the movie on their watchlist"`
}

// MovieDetailOutput wraps the movie detail response for Huma.
type MovieDetailOutput struct {
	Body MovieDetailResponse
}

// SearchMoviesInput contains search parameters.
type SearchMoviesInput struct {
	Authorization string   `header:"Authorization"`
	Query         string   `query:"q" doc:"Search text"`
	Genres        []string `query:"genre" doc:"Filter by exact genre names"`
	Languages     []string `query:"language" doc:"Filter by exact language names"`
	Limit         int      `query:"limit" doc:"Maximum hits to return (default 20, max 100)"`
	Offset        int      `query:"offset" doc:"Pagination offset"`
	SortBy        string   `query:"sort" enum:"relevance,title,rating,recent" doc:"Sort order"`
}

// SearchHitResponse is a single search result.
type SearchHitResponse struct {
	ID         string            `json:"id" doc:"Movie ID"`
	Title      string            `json:"title" doc:"Movie title"`
	Score      float64           `json:"score" doc:"Relevance score"`
	Rating     float64           `json:"rating,omitempty" doc:"Catalog rating"`
	Genres     []string          `json:"genres,omitempty" doc:"Genre names"`
	Languages  []string          `json:"languages,omitempty" doc:"Language names"`
	Highlights map[string]string `json:"highlights,omitempty" doc:"Match highlights"`
}

// SearchMoviesOutput wraps the search response for Huma.
type SearchMoviesOutput struct {
	Body struct {
		Query  string              `json:"query" doc:"The search text"`
		Total  uint64              `json:"total" doc:"Total matching movies"`
		TookMs int64               `json:"took_ms" doc:"Search duration in milliseconds"`
		Hits   []SearchHitResponse `json:"hits" doc:"Matching movies"`
	}
}

// === Handlers ===

func (s *Server) handleListLanguages(ctx context.Context, input *AuthenticatedInput) (*LanguageListOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	languages, err := s.services.Catalog.Languages(ctx)
	if err != nil {
		return nil, err
	}

	out := &LanguageListOutput{}
	out.Body.Languages = toLanguageResponses(languages)
	return out, nil
}

func (s *Server) handleListGenresForLanguage(ctx context.Context, input *ListGenresForLanguageInput) (*GenreListOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	genres, err := s.services.Catalog.GenresForLanguage(ctx, input.LanguageID)
	if err != nil {
		return nil, err
	}

	out := &GenreListOutput{}
	out.Body.Genres = toGenreResponses(genres)
	return out, nil
}

func (s *Server) handleListMoviesForGenreAndLanguage(ctx context.Context, input *ListMoviesForGenreAndLanguageInput) (*MovieListOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	movies, err := s.services.Catalog.MoviesForGenreAndLanguage(ctx, input.GenreID, input.LanguageID)
	if err != nil {
		return nil, err
	}

	out := &MovieListOutput{}
	out.Body.Movies = toMovieResponses(movies)
	return out, nil
}

func (s *Server) handleListTopRatedMovies(ctx context.Context, input *AuthenticatedInput) (*MovieListOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	movies, err := s.services.Catalog.TopRated(ctx)
	if err != nil {
		return nil, err
	}

	out := &MovieListOutput{}
	out.Body.Movies = toMovieResponses(movies)
	return out, nil
}

func (s *Server) handleGetMovie(ctx context.Context, input *GetMovieInput) (*MovieDetailOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Catalog.MovieDetailFor(ctx, user.ID, input.ID)
	if err != nil {
		return nil, err
	}

	return &MovieDetailOutput{
		Body: MovieDetailResponse{
			Movie:       toMovieResponse(detail.Movie),
			Reviews:     toReviewResponses(detail.Reviews),
			InWatchlist: detail.InWatchlist,
		},
	}, nil
}

func (s *Server) handleSearchMovies(ctx context.Context, input *SearchMoviesInput) (*SearchMoviesOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	result, err := s.services.Search.Search(ctx, service.SearchRequest{
		Query:     input.Query,
		Genres:    input.Genres,
		Languages: input.Languages,
		Limit:     input.Limit,
		Offset:    input.Offset,
		SortBy:    input.SortBy,
	})
	if err != nil {
		return nil, err
	}

	out := &SearchMoviesOutput{}
	out.Body.Query = result.Query
	out.Body.Total = result.Total
	out.Body.TookMs = result.TookMs
	out.Body.Hits = make([]SearchHitResponse, len(result.Hits))
	for i, hit := range result.Hits {
		out.Body.Hits[i] = SearchHitResponse{
			ID:         hit.ID,
			Title:      hit.Title,
			Score:      hit.Score,
			Rating:     hit.Rating,
			Genres:     hit.Genres,
			Languages:  hit.Languages,
			Highlights: hit.Highlights,
		}
	}
	return out, nil
}
