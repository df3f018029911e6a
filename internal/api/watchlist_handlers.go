package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerWatchlistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listWatchlist",
		Method:      http.MethodGet,
		Path:        "/api/v1/watchlist",
		Summary:     "List watchlist",
		Description: "Returns the authenticated user's watchlist, alphabetical by title",
		Tags:        []string{"Watchlist"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToWatchlist",
		Method:      http.MethodPut,
		Path:        "/api/v1/watchlist/{movieID}",
		Summary:     "Add to watchlist",
		Description: "Adds a movie to the watchlist. Adding a movie twice is a no-op.",
		Tags:        []string{"Watchlist"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddToWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleWatchlist",
		Method:      http.MethodPost,
		Path:        "/api/v1/watchlist/{movieID}/toggle",
		Summary:     "Toggle watchlist",
		Description: "Adds the movie if absent, removes it if present",
		Tags:        []string{"Watchlist"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleWatchlist)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromWatchlist",
		Method:      http.MethodDelete,
		Path:        "/api/v1/watchlist/{movieID}",
		Summary:     "Remove from watchlist",
		Description: "Removes a movie from the watchlist",
		Tags:        []string{"Watchlist"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFromWatchlist)
}

// WatchlistMovieInput identifies a movie on the watchlist.
type WatchlistMovieInput struct {
	Authorization string `header:"Authorization"`
	MovieID       string `path:"movieID" doc:"Movie ID"`
}

func (s *Server) handleListWatchlist(ctx context.Context, input *AuthenticatedInput) (*MovieListOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	movies, err := s.services.Watchlist.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := &MovieListOutput{}
	out.Body.Movies = toMovieResponses(movies)
	return out, nil
}

func (s *Server) handleAddToWatchlist(ctx context.Context, input *WatchlistMovieInput) (*MessageOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Watchlist.Add(ctx, user.ID, input.MovieID); err != nil {
		return nil, err
	}

	out := &MessageOutput{}
	out.Body.Message = "Movie added to watchlist"
	return out, nil
}

// ToggleWatchlistOutput reports the resulting membership state.
type ToggleWatchlistOutput struct {
	Body struct {
		InWatchlist bool `json:"in_watchlist" doc:"Whether the movie is now on the watchlist"`
	}
}

func (s *Server) handleToggleWatchlist(ctx context.Context, input *WatchlistMovieInput) (*ToggleWatchlistOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	in, err := s.services.Watchlist.Toggle(ctx, user.ID, input.MovieID)
	if err != nil {
		return nil, err
	}

	out := &ToggleWatchlistOutput{}
	out.Body.InWatchlist = in
	return out, nil
}

func (s *Server) handleRemoveFromWatchlist(ctx context.Context, input *WatchlistMovieInput) (*MessageOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Watchlist.Remove(ctx, user.ID, input.MovieID); err != nil {
		return nil, err
	}

	out := &MessageOutput{}
	out.Body.Message = "Movie removed from watchlist"
	return out, nil
}
