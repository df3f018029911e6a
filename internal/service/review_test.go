package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
)

func TestReviewService_CreateReview(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	user := registerUser(t, env, "apurva")

	review, err := env.reviews.CreateReview(context.Background(), user.User.ID, c.Lagaan, CreateReviewRequest{
		Rating: 9,
		Text:   "  A classic  ",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, review.Rating)
	assert.Equal(t, "A classic", review.Text)
	assert.Equal(t, user.User.ID, review.UserID)
	assert.Equal(t, c.Lagaan, review.MovieID)
}

func TestReviewService_CreateReview_OnePerMovie(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	ctx := context.Background()
	user := registerUser(t, env, "apurva")

	_, err := env.reviews.CreateReview(ctx, user.User.ID, c.Lagaan, CreateReviewRequest{Rating: 9})
	require.NoError(t, err)

	_, err = env.reviews.CreateReview(ctx, user.User.ID, c.Lagaan, CreateReviewRequest{Rating: 5})
	requireCode(t, err, domainerrors.CodeConflict)

	// The same user can still review a different movie
	_, err = env.reviews.CreateReview(ctx, user.User.ID, c.Idiots, CreateReviewRequest{Rating: 8})
	require.NoError(t, err)

	// And another user can review the first movie
	other := registerUser(t, env, "someoneelse")
	_, err = env.reviews.CreateReview(ctx, other.User.ID, c.Lagaan, CreateReviewRequest{Rating: 7})
	require.NoError(t, err)
}

func TestReviewService_CreateReview_RatingBounds(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	user := registerUser(t, env, "apurva")

	_, err := env.reviews.CreateReview(context.Background(), user.User.ID, c.Lagaan, CreateReviewRequest{Rating: 0})
	requireCode(t, err, domainerrors.CodeValidation)

	_, err = env.reviews.CreateReview(context.Background(), user.User.ID, c.Lagaan, CreateReviewRequest{Rating: 11})
	requireCode(t, err, domainerrors.CodeValidation)
}

func TestReviewService_CreateReview_UnknownMovie(t *testing.T) {
	env := newTestEnv(t)
	seedTestCatalog(t, env)
	user := registerUser(t, env, "apurva")

	_, err := env.reviews.CreateReview(context.Background(), user.User.ID, "movie-missing", CreateReviewRequest{Rating: 5})
	requireCode(t, err, domainerrors.CodeNotFound)
}

func TestReviewService_UpdateReview_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	ctx := context.Background()
	author := registerUser(t, env, "apurva")
	other := registerUser(t, env, "someoneelse")

	review, err := env.reviews.CreateReview(ctx, author.User.ID, c.Lagaan, CreateReviewRequest{Rating: 6})
	require.NoError(t, err)

	updated, err := env.reviews.UpdateReview(ctx, author.User, review.ID, UpdateReviewRequest{Rating: 8, Text: "Better on rewatch"})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Rating)

	_, err = env.reviews.UpdateReview(ctx, other.User, review.ID, UpdateReviewRequest{Rating: 1})
	requireCode(t, err, domainerrors.CodeForbidden)
}

func TestReviewService_DeleteReview_AdminOverride(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	ctx := context.Background()
	author := registerUser(t, env, "apurva")
	other := registerUser(t, env, "someoneelse")

	review, err := env.reviews.CreateReview(ctx, author.User.ID, c.Lagaan, CreateReviewRequest{Rating: 6})
	require.NoError(t, err)

	// Another regular user cannot delete it
	err = env.reviews.DeleteReview(ctx, other.User, review.ID)
	requireCode(t, err, domainerrors.CodeForbidden)

	// An admin can
	admin, err := env.admin.EnsureAdmin(ctx, "moderator", "correcthorse")
	require.NoError(t, err)
	require.NoError(t, env.reviews.DeleteReview(ctx, admin, review.ID))

	_, err = env.reviews.GetReview(ctx, review.ID)
	requireCode(t, err, domainerrors.CodeNotFound)
}

func TestReviewService_ListForMovie(t *testing.T) {
	env := newTestEnv(t)
	c := seedTestCatalog(t, env)
	ctx := context.Background()

	first := registerUser(t, env, "apurva")
	second := registerUser(t, env, "someoneelse")

	_, err := env.reviews.CreateReview(ctx, first.User.ID, c.Lagaan, CreateReviewRequest{Rating: 9})
	require.NoError(t, err)
	_, err = env.reviews.CreateReview(ctx, second.User.ID, c.Lagaan, CreateReviewRequest{Rating: 7})
	require.NoError(t, err)

	reviews, err := env.reviews.ListForMovie(ctx, c.Lagaan)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	mine, err := env.reviews.ListForUser(ctx, first.User.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 9, mine[0].Rating)
}
