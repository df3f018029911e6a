package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/apurvavyas7/CineSuggest/internal/auth"
	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
	"github.com/apurvavyas7/CineSuggest/internal/media/images"
	"github.com/apurvavyas7/CineSuggest/internal/search"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

// testEnv wires the full service stack against temporary storage.
type testEnv struct {
	store     *sqlite.Store
	index     *search.Index
	posters   *images.Storage
	avatars   *images.Storage
	sessions  *SessionService
	auth      *AuthService
	taxonomy  *TaxonomyService
	movies    *MovieService
	catalog   *CatalogService
	reviews   *ReviewService
	survey    *SurveyService
	watchlist *WatchlistService
	recs      *RecommendationService
	searcher  *SearchService
	admin     *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewIndex(search.Options{DataPath: tmpDir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	posters, err := images.NewPosterStorage(filepath.Join(tmpDir, "uploads"))
	require.NoError(t, err)
	avatars, err := images.NewAvatarStorage(filepath.Join(tmpDir, "uploads"))
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(strings.Repeat("ab", 32), 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		store:   st,
		index:   index,
		posters: posters,
		avatars: avatars,
	}
	env.sessions = NewSessionService(st, tokens, nil)
	env.auth = NewAuthService(st, tokens, env.sessions, nil)
	env.taxonomy = NewTaxonomyService(st, nil)
	env.movies = NewMovieService(st, posters, index, nil)
	env.catalog = NewCatalogService(st, nil)
	env.reviews = NewReviewService(st, nil)
	env.survey = NewSurveyService(st, nil)
	env.watchlist = NewWatchlistService(st, nil)
	env.recs = NewRecommendationService(st, nil)
	env.searcher = NewSearchService(st, index, nil)
	env.admin = NewAdminService(st, env.movies, avatars, nil)

	return env
}

// registerUser creates an account through the real registration flow.
func registerUser(t *testing.T, env *testEnv, username string) *AuthResponse {
	t.Helper()

	resp, err := env.auth.Register(context.Background(), RegisterRequest{
		Username: username,
		Password: "correcthorse",
	})
	require.NoError(t, err)
	return resp
}

// testCatalog holds IDs of the fixtures installed by seedTestCatalog.
type testCatalog struct {
	Action string
	Drama  string
	Comedy string

	English string
	Hindi   string

	DarkKnight string
	Lagaan     string
	Idiots     string
}

// seedTestCatalog installs a small catalog through the real services.
func seedTestCatalog(t *testing.T, env *testEnv) *testCatalog {
	t.Helper()
	ctx := context.Background()

	c := &testCatalog{}

	action, err := env.taxonomy.CreateGenre(ctx, NameRequest{Name: "Action"})
	require.NoError(t, err)
	c.Action = action.ID
	drama, err := env.taxonomy.CreateGenre(ctx, NameRequest{Name: "Drama"})
	require.NoError(t, err)
	c.Drama = drama.ID
	comedy, err := env.taxonomy.CreateGenre(ctx, NameRequest{Name: "Comedy"})
	require.NoError(t, err)
	c.Comedy = comedy.ID

	english, err := env.taxonomy.CreateLanguage(ctx, NameRequest{Name: "English"})
	require.NoError(t, err)
	c.English = english.ID
	hindi, err := env.taxonomy.CreateLanguage(ctx, NameRequest{Name: "Hindi"})
	require.NoError(t, err)
	c.Hindi = hindi.ID

	darkKnight, err := env.movies.CreateMovie(ctx, CreateMovieRequest{
		Title:       "The Dark Knight",
		Overview:    "Batman faces the Joker in Gotham",
		Rating:      9.0,
		GenreIDs:    []string{c.Action},
		LanguageIDs: []string{c.English},
	})
	require.NoError(t, err)
	c.DarkKnight = darkKnight.ID

	lagaan, err := env.movies.CreateMovie(ctx, CreateMovieRequest{
		Title:       "Lagaan",
		Overview:    "Villagers stake their future on a cricket match",
		Rating:      8.1,
		GenreIDs:    []string{c.Drama},
		LanguageIDs: []string{c.Hindi},
	})
	require.NoError(t, err)
	c.Lagaan = lagaan.ID

	idiots, err := env.movies.CreateMovie(ctx, CreateMovieRequest{
		Title:       "3 Idiots",
		Overview:    "Two friends search for their lost companion",
		Rating:      8.4,
		GenreIDs:    []string{c.Comedy, c.Drama},
		LanguageIDs: []string{c.Hindi},
	})
	require.NoError(t, err)
	c.Idiots = idiots.ID

	return c
}

// requireCode asserts that err is a domain error with the given code.
func requireCode(t *testing.T, err error, code domainerrors.Code) {
	t.Helper()

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
}

// testPNG returns an encoded image for upload tests.
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
