package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
)

func TestCatalogService_Languages(t *testing.T) {
	env := newTestEnv(t)
	seedTestCatalog(t, env)

	languages, err := env.catalog.Languages(context.Background())
	require.NoError(t, err)
	require.Len(t, languages, 2)
	assert.Equal(t, "English", languages[0].Name)
	assert.Equal(t, "Hindi", languages[1].Name)
}

func TestCatalogService_GenresForLanguage(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)

	// Hindi has Lagaan (Drama) and 3 Idiots (Comedy, Drama); no Action
	genres, err := env.catalog.GenresForLanguage(context.Background(), c.Hindi)
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Comedy", genres[0].Name)
	assert.Equal(t, "Drama", genres[1].Name)
}

func TestCatalogService_GenresForLanguage_Unknown(t *testing.T) {
	env := newTestEnv(t)
	seedTestCatalog(t, env)

	_, err := env.catalog.GenresForLanguage(context.Background(), "lang-missing")
	requireCode(t, err, domainerrors.CodeNotFound)
}

func TestCatalogService_MoviesForGenreAndLanguage(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)

	movies, err := env.catalog.MoviesForGenreAndLanguage(context.Background(), c.Drama, c.Hindi)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "3 Idiots", movies[0].Title)
	assert.Equal(t, "Lagaan", movies[1].Title)

	// Drama in English is empty, not an error
	movies, err = env.catalog.MoviesForGenreAndLanguage(context.Background(), c.Drama, c.English)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestCatalogService_TopRated(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)

	movies, err := env.catalog.TopRated(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, c.DarkKnight, movies[0].ID)
}

func TestCatalogService_MovieDetailFor(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	ctx := context.Background()
	viewer := registerUser(t, env, "apurva")

	_, err := env.reviews.CreateReview(ctx, viewer.User.ID, c.Lagaan, CreateReviewRequest{
		Rating: 9,
		Text:   "A classic",
	})
	require.NoError(t, err)
	require.NoError(t, env.watchlist.Add(ctx, viewer.User.ID, c.Lagaan))

	detail, err := env.catalog.MovieDetailFor(ctx, viewer.User.ID, c.Lagaan)
	require.NoError(t, err)
	assert.Equal(t, "Lagaan", detail.Movie.Title)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, 9, detail.Reviews[0].Rating)
	assert.True(t, detail.InWatchlist)

	// A different viewer sees the same reviews but their own watchlist state
	other := registerUser(t, env, "someoneelse")
	detail, err = env.catalog.MovieDetailFor(ctx, other.User.ID, c.Lagaan)
	require.NoError(t, err)
	assert.False(t, detail.InWatchlist)
}
