package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apurvavyas7/CineSuggest/internal/auth"
	"github.com/apurvavyas7/CineSuggest/internal/media/images"
	"github.com/apurvavyas7/CineSuggest/internal/search"
	"github.com/apurvavyas7/CineSuggest/internal/service"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api      humatest.TestAPI
	services *Services
}

func setupTestServer(t *testing.T) *testServer {
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

	sessionService := service.NewSessionService(st, tokens, logger)
	authService := service.NewAuthService(st, tokens, sessionService, logger)
	movieService := service.NewMovieService(st, posters, index, logger)

	services := &Services{
		Auth:           authService,
		Session:        sessionService,
		Taxonomy:       service.NewTaxonomyService(st, logger),
		Movie:          movieService,
		Catalog:        service.NewCatalogService(st, logger),
		Review:         service.NewReviewService(st, logger),
		Survey:         service.NewSurveyService(st, logger),
		Watchlist:      service.NewWatchlistService(st, logger),
		Recommendation: service.NewRecommendationService(st, logger),
		Profile:        service.NewProfileService(st, avatars, logger),
		Search:         service.NewSearchService(st, index, logger),
		Admin:          service.NewAdminService(st, movieService, avatars, logger),
	}
	storage := &StorageServices{Posters: posters, Avatars: avatars}

	srv := NewServer(st, services, storage, logger)
	t.Cleanup(srv.Close)

	return &testServer{
		Server:   srv,
		api:      humatest.Wrap(t, srv.api),
		services: services,
	}
}

// registerTestUser creates an account through the registration endpoint and
// returns the access token and user ID.
func (ts *testServer) registerTestUser(t *testing.T, username string) (token, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": username,
		"password": "correcthorse",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Register failed: %s", resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.AccessToken, body.User.ID
}

// registerTestAdmin creates an account and promotes it to admin.
func (ts *testServer) registerTestAdmin(t *testing.T, username string) (token, userID string) {
	t.Helper()

	_, err := ts.services.Admin.EnsureAdmin(context.Background(), username, "correcthorse")
	require.NoError(t, err)

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": username,
		"password": "correcthorse",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Login failed: %s", resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.AccessToken, body.User.ID
}

func bearer(token string) string {
	return "Authorization: Bearer " + token
}

// testImagePNG returns an encoded image for upload and serving tests.
func testImagePNG(t *testing.T) []byte {
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

// apiCatalog holds the fixture IDs installed by seedAPICatalog.
type apiCatalog struct {
	Drama  string
	Comedy string
	Hindi  string
	Idiots string
	Lagaan string
}

// seedAPICatalog installs a small catalog through the admin endpoints.
func (ts *testServer) seedAPICatalog(t *testing.T, adminToken string) *apiCatalog {
	t.Helper()

	c := &apiCatalog{}
	c.Drama = ts.createTaxonomy(t, adminToken, "/api/v1/admin/genres", "Drama")
	c.Comedy = ts.createTaxonomy(t, adminToken, "/api/v1/admin/genres", "Comedy")
	c.Hindi = ts.createTaxonomy(t, adminToken, "/api/v1/admin/languages", "Hindi")

	c.Lagaan = ts.createMovie(t, adminToken, map[string]any{
		"title":        "Lagaan",
		"overview":     "Villagers stake their future on a cricket match",
		"rating":       8.1,
		"genre_ids":    []string{c.Drama},
		"language_ids": []string{c.Hindi},
	})
	c.Idiots = ts.createMovie(t, adminToken, map[string]any{
		"title":        "3 Idiots",
		"overview":     "Two friends search for their lost companion",
		"rating":       8.4,
		"genre_ids":    []string{c.Comedy, c.Drama},
		"language_ids": []string{c.Hindi},
	})
	return c
}

func (ts *testServer) createTaxonomy(t *testing.T, adminToken, path, name string) string {
	t.Helper()

	resp := ts.api.Post(path, bearer(adminToken), map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.Code, "Create failed: %s", resp.Body.String())

	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.ID
}

func (ts *testServer) createMovie(t *testing.T, adminToken string, movie map[string]any) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/admin/movies", bearer(adminToken), movie)
	require.Equal(t, http.StatusCreated, resp.Code, "Create movie failed: %s", resp.Body.String())

	var body MovieResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.ID
}

// === Tests ===

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Status     string                     `json:"status"`
		Components map[string]HealthComponent `json:"components"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "up", body.Components["database"].Status)
	assert.Equal(t, "up", body.Components["search"].Status)
}

func TestAuthFlow(t *testing.T) {
	ts := setupTestServer(t)

	token, _ := ts.registerTestUser(t, "apurva")

	// Duplicate username is rejected.
	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "apurva",
		"password": "correcthorse",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	// Wrong password is rejected.
	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"username": "apurva",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// The token works against a protected endpoint.
	resp = ts.api.Get("/api/v1/users/me", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile))
	assert.Equal(t, "apurva", profile.User.Username)
	assert.False(t, profile.User.HasCompletedSurvey)
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/languages")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/watchlist", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestTokenRefresh(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": "apurva",
		"password": "correcthorse",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &registered))

	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": registered.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var refreshed AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is dead after rotation.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": registered.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCatalogBrowse(t *testing.T) {
	ts := setupTestServer(t)
	adminToken, _ := ts.registerTestAdmin(t, "admin")
	c := ts.seedAPICatalog(t, adminToken)
	token, _ := ts.registerTestUser(t, "apurva")

	resp := ts.api.Get("/api/v1/catalog/languages", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var languages struct {
		Languages []LanguageResponse `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &languages))
	require.Len(t, languages.Languages, 1)
	assert.Equal(t, "Hindi", languages.Languages[0].Name)

	resp = ts.api.Get("/api/v1/catalog/languages/" + c.Hindi + "/genres", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var genres struct {
		Genres []GenreResponse `json:"genres"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &genres))
	assert.Len(t, genres.Genres, 2)

	resp = ts.api.Get("/api/v1/catalog/languages/"+c.Hindi+"/genres/"+c.Comedy+"/movies", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var movies struct {
		Movies []MovieResponse `json:"movies"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &movies))
	require.Len(t, movies.Movies, 1)
	assert.Equal(t, "3 Idiots", movies.Movies[0].Title)

	// Unknown language is a 404.
	resp = ts.api.Get("/api/v1/catalog/languages/lang_missing/genres", bearer(token))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestMovieSearch(t *testing.T) {
	ts := setupTestServer(t)
	adminToken, _ := ts.registerTestAdmin(t, "admin")
	ts.seedAPICatalog(t, adminToken)
	token, _ := ts.registerTestUser(t, "apurva")

	resp := ts.api.Get("/api/v1/movies/search?q=lagan", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Total uint64              `json:"total"`
		Hits  []SearchHitResponse `json:"hits"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Hits)
	assert.Equal(t, "Lagaan", body.Hits[0].Title)

	// A search needs a query or a filter.
	resp = ts.api.Get("/api/v1/movies/search", bearer(token))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestReviewRoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	adminToken, _ := ts.registerTestAdmin(t, "admin")
	c := ts.seedAPICatalog(t, adminToken)
	token, userID := ts.registerTestUser(t, "apurva")

	resp := ts.api.Post("/api/v1/movies/"+c.Lagaan+"/reviews", bearer(token), map[string]any{
		"rating": 9,
		"text":   "A classic.",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var review ReviewResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &review))
	assert.Equal(t, userID, review.UserID)
	assert.Equal(t, 9, review.Rating)

	// One review per user per movie.
	resp = ts.api.Post("/api/v1/movies/"+c.Lagaan+"/reviews", bearer(token), map[string]any{
		"rating": 7,
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	// The author can edit.
	resp = ts.api.Patch("/api/v1/reviews/"+review.ID, bearer(token), map[string]any{
		"rating": 8,
		"text":   "Still great on rewatch.",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// Another user cannot edit or delete it.
	otherToken, _ := ts.registerTestUser(t, "someone")
	resp = ts.api.Patch("/api/v1/reviews/"+review.ID, bearer(otherToken), map[string]any{
		"rating": 1,
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// But an admin can delete it.
	resp = ts.api.Delete("/api/v1/reviews/"+review.ID, bearer(adminToken))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/movies/"+c.Lagaan+"/reviews", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var reviews struct {
		Reviews []ReviewResponse `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &reviews))
	assert.Empty(t, reviews.Reviews)
}

func TestSurveyAndRecommendations(t *testing.T) {
	ts := setupTestServer(t)
	adminToken, _ := ts.registerTestAdmin(t, "admin")
	c := ts.seedAPICatalog(t, adminToken)
	token, _ := ts.registerTestUser(t, "apurva")

	// Recommendations are gated on the survey.
	resp := ts.api.Get("/api/v1/recommendations", bearer(token))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Get("/api/v1/survey", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/survey", bearer(token), map[string]any{
		"genre_ids":       []string{c.Comedy},
		"language_ids":    []string{c.Hindi},
		"liked_movie_ids": []string{c.Lagaan},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var user UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &user))
	assert.True(t, user.HasCompletedSurvey)

	resp = ts.api.Get("/api/v1/recommendations", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var recs struct {
		Recommendations []RecommendationResponse `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &recs))
	require.Len(t, recs.Recommendations, 1)
	assert.Equal(t, "3 Idiots", recs.Recommendations[0].Movie.Title)
	assert.Positive(t, recs.Recommendations[0].Score)
}

func TestWatchlistFlow(t *testing.T) {
	ts := setupTestServer(t)
	adminToken, _ := ts.registerTestAdmin(t, "admin")
	c := ts.seedAPICatalog(t, adminToken)
	token, _ := ts.registerTestUser(t, "apurva")

	resp := ts.api.Put("/api/v1/watchlist/"+c.Lagaan, bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/watchlist", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var movies struct {
		Movies []MovieResponse `json:"movies"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &movies))
	require.Len(t, movies.Movies, 1)
	assert.Equal(t, "Lagaan", movies.Movies[0].Title)

	// The movie detail page reflects the watchlist state.
	resp = ts.api.Get("/api/v1/movies/"+c.Lagaan, bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var detail MovieDetailResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	assert.True(t, detail.InWatchlist)

	resp = ts.api.Delete("/api/v1/watchlist/"+c.Lagaan, bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/watchlist/"+c.Lagaan, bearer(token))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// Toggle adds, then removes.
	var toggled struct {
		InWatchlist bool `json:"in_watchlist"`
	}
	resp = ts.api.Post("/api/v1/watchlist/"+c.Lagaan+"/toggle", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &toggled))
	assert.True(t, toggled.InWatchlist)

	resp = ts.api.Post("/api/v1/watchlist/"+c.Lagaan+"/toggle", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &toggled))
	assert.False(t, toggled.InWatchlist)
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerTestUser(t, "apurva")

	resp := ts.api.Post("/api/v1/admin/genres", bearer(token), map[string]any{"name": "Action"})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Get("/api/v1/admin/users", bearer(token))
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Post("/api/v1/admin/seed", bearer(token))
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestAdminMovieManagement(t *testing.T) {
	ts := setupTestServer(t)
	adminToken, _ := ts.registerTestAdmin(t, "admin")
	c := ts.seedAPICatalog(t, adminToken)

	resp := ts.api.Put("/api/v1/admin/movies/"+c.Lagaan, bearer(adminToken), map[string]any{
		"title":        "Lagaan: Once Upon a Time in India",
		"overview":     "Villagers stake their future on a cricket match",
		"rating":       8.3,
		"genre_ids":    []string{c.Drama},
		"language_ids": []string{c.Hindi},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var movie MovieResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &movie))
	assert.Equal(t, "Lagaan: Once Upon a Time in India", movie.Title)
	assert.InDelta(t, 8.3, movie.Rating, 0.001)

	resp = ts.api.Delete("/api/v1/admin/movies/"+c.Idiots, bearer(adminToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/movies/"+c.Idiots, bearer(adminToken))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminUserManagement(t *testing.T) {
	ts := setupTestServer(t)
	adminToken, adminID := ts.registerTestAdmin(t, "admin")
	_, userID := ts.registerTestUser(t, "apurva")

	resp := ts.api.Patch("/api/v1/admin/users/"+userID+"/role", bearer(adminToken), map[string]any{
		"is_admin": true,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var promoted UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &promoted))
	assert.True(t, promoted.IsAdmin)

	// Admins cannot demote or delete themselves.
	resp = ts.api.Patch("/api/v1/admin/users/"+adminID+"/role", bearer(adminToken), map[string]any{
		"is_admin": false,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Delete("/api/v1/admin/users/"+adminID, bearer(adminToken))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Delete("/api/v1/admin/users/"+userID, bearer(adminToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/admin/users", bearer(adminToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var users struct {
		Users []UserResponse `json:"users"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &users))
	assert.Len(t, users.Users, 1)
}

func TestImageServing(t *testing.T) {
	ts := setupTestServer(t)

	data := testImagePNG(t)
	require.NoError(t, ts.storage.Posters.Save("test-poster.png", data))

	req := httptest.NewRequest(http.MethodGet, "/images/posters/test-poster.png", nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, CacheOneWeek, rec.Header().Get("Cache-Control"))
	assert.Equal(t, data, rec.Body.Bytes())

	req = httptest.NewRequest(http.MethodGet, "/images/posters/nope.png", nil)
	rec = httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileUpdate(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.registerTestUser(t, "apurva")

	resp := ts.api.Patch("/api/v1/users/me", bearer(token), map[string]any{
		"bio": "Movie buff from Ahmedabad",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var user UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &user))
	assert.Equal(t, "Movie buff from Ahmedabad", user.Bio)

	// The public profile shows the new bio to other users.
	otherToken, _ := ts.registerTestUser(t, "someone")
	resp = ts.api.Get("/api/v1/users/"+userID+"/profile", bearer(otherToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile))
	assert.Equal(t, "Movie buff from Ahmedabad", profile.User.Bio)
}
