package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/apurvavyas7/CineSuggest/internal/store"
)

// seedTaxonomy inserts the genres and languages the movie tests link against.
func seedTaxonomy(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	for _, g := range []struct{ id, name string }{
		{"genre-action", "Action"},
		{"genre-drama", "Drama"},
		{"genre-comedy", "Comedy"},
	} {
		if err := s.CreateGenre(ctx, makeTestGenre(g.id, g.name)); err != nil {
			t.Fatalf("CreateGenre(%s): %v", g.name, err)
		}
	}
	for _, l := range []struct{ id, name string }{
		{"lang-en", "English"},
		{"lang-hi", "Hindi"},
	} {
		if err := s.CreateLanguage(ctx, makeTestLanguage(l.id, l.name)); err != nil {
			t.Fatalf("CreateLanguage(%s): %v", l.name, err)
		}
	}
}

func TestCreateAndGetMovie(t *testing.T) {
	s := newTestStore(t)
	seedTaxonomy(t, s)
	ctx := context.Background()

	m := makeTestMovie("movie-1", "The Dark Knight",
		[]string{"genre-action", "genre-drama"}, []string{"lang-en"})
	m.Overview = "Batman faces the Joker."
	m.Rating = 9.0
	m.PosterBlurHash = "LEHV6nWB2yk8pyo0adR*.7kCMdnj"

	if err := s.CreateMovie(ctx, m); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}

	got, err := s.GetMovie(ctx, "movie-1")
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}

	if got.Title != m.Title {
		t.Errorf("Title: got %q, want %q", got.Title, m.Title)
	}
	if got.Overview != m.Overview {
		t.Errorf("Overview: got %q, want %q", got.Overview, m.Overview)
	}
	if got.Rating != m.Rating {
		t.Errorf("Rating: got %v, want %v", got.Rating, m.Rating)
	}
	if got.PosterBlurHash != m.PosterBlurHash {
		t.Errorf("PosterBlurHash: got %q, want %q", got.PosterBlurHash, m.PosterBlurHash)
	}
	if len(got.GenreIDs) != 2 {
		t.Fatalf("expected 2 genre links, got %v", got.GenreIDs)
	}
	if got.GenreIDs[0] != "genre-action" || got.GenreIDs[1] != "genre-drama" {
		t.Errorf("GenreIDs: got %v", got.GenreIDs)
	}
	if len(got.LanguageIDs) != 1 || got.LanguageIDs[0] != "lang-en" {
		t.Errorf("LanguageIDs: got %v", got.LanguageIDs)
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetMovie(ctx, "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListMoviesByGenreAndLanguage(t *testing.T) {
	s := newTestStore(t)
	seedTaxonomy(t, s)
	ctx := context.Background()

	movies := []struct {
		id, title string
		genres    []string
		langs     []string
	}{
		{"movie-1", "The Dark Knight", []string{"genre-action"}, []string{"lang-en"}},
		{"movie-2", "Lagaan", []string{"genre-drama"}, []string{"lang-hi"}},
		{"movie-3", "3 Idiots", []string{"genre-comedy", "genre-drama"}, []string{"lang-hi"}},
	}
	for _, mv := range movies {
		if err := s.CreateMovie(ctx, makeTestMovie(mv.id, mv.title, mv.genres, mv.langs)); err != nil {
			t.Fatalf("CreateMovie(%s): %v", mv.title, err)
		}
	}

	got, err := s.ListMoviesByGenreAndLanguage(ctx, "genre-drama", "lang-hi")
	if err != nil {
		t.Fatalf("ListMoviesByGenreAndLanguage: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(got))
	}
	// Ordered by title.
	if got[0].Title != "3 Idiots" || got[1].Title != "Lagaan" {
		t.Errorf("unexpected order: %q, %q", got[0].Title, got[1].Title)
	}

	got, err = s.ListMoviesByGenreAndLanguage(ctx, "genre-action", "lang-hi")
	if err != nil {
		t.Fatalf("ListMoviesByGenreAndLanguage: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no Hindi action movies, got %d", len(got))
	}
}

func TestListGenresWithMoviesInLanguage(t *testing.T) {
	s := newTestStore(t)
	seedTaxonomy(t, s)
	ctx := context.Background()

	m := makeTestMovie("movie-1", "Lagaan", []string{"genre-drama"}, []string{"lang-hi"})
	if err := s.CreateMovie(ctx, m); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}

	genres, err := s.ListGenresWithMoviesInLanguage(ctx, "lang-hi")
	if err != nil {
		t.Fatalf("ListGenresWithMoviesInLanguage: %v", err)
	}
	if len(genres) != 1 || genres[0].Name != "Drama" {
		t.Errorf("expected [Drama], got %v", genres)
	}

	// A language with no movies lists no genres even though genres exist.
	genres, err = s.ListGenresWithMoviesInLanguage(ctx, "lang-en")
	if err != nil {
		t.Fatalf("ListGenresWithMoviesInLanguage: %v", err)
	}
	if len(genres) != 0 {
		t.Errorf("expected no genres for lang-en, got %v", genres)
	}
}

func TestListTopRatedMovies(t *testing.T) {
	s := newTestStore(t)
	seedTaxonomy(t, s)
	ctx := context.Background()

	ratings := map[string]float64{"movie-1": 7.0, "movie-2": 9.0, "movie-3": 8.0}
	for id, rating := range ratings {
		m := makeTestMovie(id, "Title "+id, []string{"genre-action"}, []string{"lang-en"})
		m.Rating = rating
		if err := s.CreateMovie(ctx, m); err != nil {
			t.Fatalf("CreateMovie(%s): %v", id, err)
		}
	}

	got, err := s.ListTopRatedMovies(ctx, 2)
	if err != nil {
		t.Fatalf("ListTopRatedMovies: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(got))
	}
	if got[0].ID != "movie-2" || got[1].ID != "movie-3" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestUpdateMovie_ReplacesLinks(t *testing.T) {
	s := newTestStore(t)
	seedTaxonomy(t, s)
	ctx := context.Background()

	m := makeTestMovie("movie-1", "Inception", []string{"genre-action"}, []string{"lang-en"})
	if err := s.CreateMovie(ctx, m); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}

	m.GenreIDs = []string{"genre-drama", "genre-comedy"}
	m.LanguageIDs = []string{"lang-en", "lang-hi"}
	m.Rating = 8.8
	m.Touch()
	if err := s.UpdateMovie(ctx, m); err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}

	got, err := s.GetMovie(ctx, "movie-1")
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if got.Rating != 8.8 {
		t.Errorf("Rating: got %v", got.Rating)
	}
	if len(got.GenreIDs) != 2 {
		t.Fatalf("expected 2 genres, got %v", got.GenreIDs)
	}
	// Sorted by ID: genre-comedy before genre-drama.
	if got.GenreIDs[0] != "genre-comedy" || got.GenreIDs[1] != "genre-drama" {
		t.Errorf("GenreIDs: got %v", got.GenreIDs)
	}
	if len(got.LanguageIDs) != 2 {
		t.Errorf("LanguageIDs: got %v", got.LanguageIDs)
	}
}

func TestDeleteMovie_CascadesLinks(t *testing.T) {
	s := newTestStore(t)
	seedTaxonomy(t, s)
	ctx := context.Background()

	m := makeTestMovie("movie-1", "Inception", []string{"genre-action"}, []string{"lang-en"})
	if err := s.CreateMovie(ctx, m); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}

	if err := s.DeleteMovie(ctx, "movie-1"); err != nil {
		t.Fatalf("DeleteMovie: %v", err)
	}
	if _, err := s.GetMovie(ctx, "movie-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM movie_genres WHERE movie_id = 'movie-1'`).Scan(&n); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if n != 0 {
		t.Errorf("expected genre links to cascade, found %d rows", n)
	}
}
