package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
)

func TestSurveyService_Options(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)

	options, err := env.survey.Options(context.Background())
	require.NoError(t, err)
	assert.Len(t, options.Genres, 3)
	assert.Len(t, options.Languages, 2)
	require.Len(t, options.Movies, 3)
	// Liked-movie seeds come highest rated first
	assert.Equal(t, c.DarkKnight, options.Movies[0].ID)
}

func TestSurveyService_Submit(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	ctx := context.Background()
	user := registerUser(t, env, "apurva")

	require.False(t, user.User.HasCompletedSurvey)

	err := env.survey.Submit(ctx, user.User, SubmitSurveyRequest{
		GenreIDs:      []string{c.Drama},
		LanguageIDs:   []string{c.Hindi},
		LikedMovieIDs: []string{c.Lagaan},
	})
	require.NoError(t, err)
	assert.True(t, user.User.HasCompletedSurvey)

	prefs, err := env.survey.Preferences(ctx, user.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.Drama}, prefs.GenreIDs)
	assert.Equal(t, []string{c.Hindi}, prefs.LanguageIDs)
	assert.Equal(t, []string{c.Lagaan}, prefs.LikedIDs)
}

func TestSurveyService_Submit_ReplacesAnswers(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	ctx := context.Background()
	user := registerUser(t, env, "apurva")

	require.NoError(t, env.survey.Submit(ctx, user.User, SubmitSurveyRequest{
		GenreIDs:      []string{c.Drama, c.Comedy},
		LanguageIDs:   []string{c.Hindi},
		LikedMovieIDs: []string{c.Lagaan},
	}))

	require.NoError(t, env.survey.Submit(ctx, user.User, SubmitSurveyRequest{
		GenreIDs:    []string{c.Action},
		LanguageIDs: []string{c.English},
	}))

	prefs, err := env.survey.Preferences(ctx, user.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.Action}, prefs.GenreIDs)
	assert.Equal(t, []string{c.English}, prefs.LanguageIDs)
	assert.Empty(t, prefs.LikedIDs)
}

func TestSurveyService_Submit_UnknownGenre(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	user := registerUser(t, env, "apurva")

	err := env.survey.Submit(context.Background(), user.User, SubmitSurveyRequest{
		GenreIDs:    []string{"genre-missing"},
		LanguageIDs: []string{c.Hindi},
	})
	requireCode(t, err, domainerrors.CodeValidation)
	assert.False(t, user.User.HasCompletedSurvey)
}

func TestSurveyService_Submit_RequiresAnswers(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	user := registerUser(t, env, "apurva")

	err := env.survey.Submit(context.Background(), user.User, SubmitSurveyRequest{
		LanguageIDs: []string{c.Hindi},
	})
	requireCode(t, err, domainerrors.CodeValidation)
}

func TestRecommendationService_RequiresSurvey(t *testing.T) {
	env := newTestEnv(t)
	seedTestCatalog(t, env)
	user := registerUser(t, env, "apurva")

	_, err := env.recs.ForUser(context.Background(), user.User)
	requireCode(t, err, domainerrors.CodeValidation)
}

func TestRecommendationService_ForUser(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	ctx := context.Background()
	user := registerUser(t, env, "apurva")

	require.NoError(t, env.survey.Submit(ctx, user.User, SubmitSurveyRequest{
		GenreIDs:      []string{c.Drama},
		LanguageIDs:   []string{c.Hindi},
		LikedMovieIDs: []string{c.Lagaan},
	}))

	recommendations, err := env.recs.ForUser(ctx, user.User)
	require.NoError(t, err)

	// 3 Idiots: Hindi, Drama match (10) plus Drama seeded by liking Lagaan (5).
	// Lagaan itself is excluded, and nothing English qualifies.
	require.Len(t, recommendations, 1)
	assert.Equal(t, c.Idiots, recommendations[0].Movie.ID)
	assert.Equal(t, 15, recommendations[0].Score)
}

func TestRecommendationService_LanguageGate(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	ctx := context.Background()
	user := registerUser(t, env, "apurva")

	require.NoError(t, env.survey.Submit(ctx, user.User, SubmitSurveyRequest{
		GenreIDs:    []string{c.Action},
		LanguageIDs: []string{c.English},
	}))

	recommendations, err := env.recs.ForUser(ctx, user.User)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, c.DarkKnight, recommendations[0].Movie.ID)
	assert.Equal(t, 10, recommendations[0].Score)
}
