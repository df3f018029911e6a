package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
	"github.com/apurvavyas7/CineSuggest/internal/search"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

// SearchService exposes full-text catalog search.
type SearchService struct {
	store  *sqlite.Store
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(store *sqlite.Store, index *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// SearchRequest contains search parameters from the client.
type SearchRequest struct {
	Query     string
	Genres    []string
	Languages []string
	Limit     int
	Offset    int
	SortBy    string
}

// Search runs a movie search. A query or at least one filter is required;
// an unbounded match-all scan is rejected.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*search.Result, error) {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" && len(req.Genres) == 0 && len(req.Languages) == 0 {
		return nil, domainerrors.Validation("search query is required")
	}

	params := search.DefaultParams()
	params.Query = req.Query
	params.Genres = req.Genres
	params.Languages = req.Languages
	if req.Limit > 0 && req.Limit <= 100 {
		params.Limit = req.Limit
	}
	if req.Offset > 0 {
		params.Offset = req.Offset
	}
	if req.SortBy != "" {
		params.SortBy = req.SortBy
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return result, nil
}

// IndexedMovies returns the number of movies in the search index.
func (s *SearchService) IndexedMovies() (uint64, error) {
	return s.index.DocumentCount()
}
