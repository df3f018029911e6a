package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := NewIndex(Options{
		DataPath: t.TempDir(),
		Logger:   nil,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = index.Close()
	})

	return index
}

func seedTestMovies(t *testing.T, index *Index) {
	t.Helper()

	docs := []*MovieDocument{
		{
			ID:        "movie-dark-knight",
			Title:     "The Dark Knight",
			Overview:  "Batman faces the Joker in Gotham",
			Genres:    []string{"Action", "Crime"},
			Languages: []string{"English"},
			Rating:    9.0,
		},
		{
			ID:        "movie-inception",
			Title:     "Inception",
			Overview:  "A thief steals secrets through dream-sharing",
			Genres:    []string{"Action", "Sci-Fi"},
			Languages: []string{"English"},
			Rating:    8.8,
		},
		{
			ID:        "movie-3-idiots",
			Title:     "3 Idiots",
			Overview:  "Two friends search for their long lost companion",
			Genres:    []string{"Comedy", "Drama"},
			Languages: []string{"Hindi"},
			Rating:    8.4,
		},
	}

	require.NoError(t, index.IndexMovies(docs))
}

func TestNewIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndex_IndexMovie(t *testing.T) {
	index := setupTestIndex(t)

	doc := &MovieDocument{
		ID:     "movie-123",
		Title:  "Lagaan",
		Genres: []string{"Drama"},
	}

	require.NoError(t, index.IndexMovie(doc))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestIndex_DeleteMovie(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexMovie(&MovieDocument{ID: "movie-123", Title: "Hellaro"}))
	require.NoError(t, index.DeleteMovie("movie-123"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndex_Search_Title(t *testing.T) {
	index := setupTestIndex(t)
	seedTestMovies(t, index)

	params := DefaultParams()
	params.Query = "inception"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "movie-inception", result.Hits[0].ID)
	assert.Equal(t, "Inception", result.Hits[0].Title)
}

func TestIndex_Search_Overview(t *testing.T) {
	index := setupTestIndex(t)
	seedTestMovies(t, index)

	params := DefaultParams()
	params.Query = "gotham"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "movie-dark-knight", result.Hits[0].ID)
}

func TestIndex_Search_FuzzyTypo(t *testing.T) {
	index := setupTestIndex(t)
	seedTestMovies(t, index)

	params := DefaultParams()
	params.Query = "inceptio"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "movie-inception", result.Hits[0].ID)
}

func TestIndex_Search_GenreFilter(t *testing.T) {
	index := setupTestIndex(t)
	seedTestMovies(t, index)

	params := DefaultParams()
	params.Genres = []string{"Comedy"}

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "movie-3-idiots", result.Hits[0].ID)
}

func TestIndex_Search_LanguageFilter(t *testing.T) {
	index := setupTestIndex(t)
	seedTestMovies(t, index)

	params := DefaultParams()
	params.Query = ""
	params.Languages = []string{"English"}
	params.SortBy = "title"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 2)
	assert.Equal(t, "Inception", result.Hits[0].Title)
	assert.Equal(t, "The Dark Knight", result.Hits[1].Title)
}

func TestIndex_Search_SortByRating(t *testing.T) {
	index := setupTestIndex(t)
	seedTestMovies(t, index)

	params := DefaultParams()
	params.SortBy = "rating"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 3)
	assert.Equal(t, "movie-dark-knight", result.Hits[0].ID)
}

func TestIndex_Rebuild(t *testing.T) {
	index := setupTestIndex(t)
	seedTestMovies(t, index)

	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
