// Package main provides a tool to reset the database and install the
// demonstration catalog.
//
// Usage:
//
//	go run ./cmd/seed
//
// All existing users, reviews, and catalog entries are deleted.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/apurvavyas7/CineSuggest/internal/config"
	"github.com/apurvavyas7/CineSuggest/internal/media/images"
	"github.com/apurvavyas7/CineSuggest/internal/search"
	"github.com/apurvavyas7/CineSuggest/internal/service"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(cfg.DatabasePath(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	index, err := search.NewIndex(search.Options{DataPath: cfg.Data.BasePath, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open search index: %v\n", err)
		os.Exit(1)
	}
	defer index.Close()

	posters, err := images.NewPosterStorage(cfg.UploadsPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open poster storage: %v\n", err)
		os.Exit(1)
	}
	avatars, err := images.NewAvatarStorage(cfg.UploadsPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open avatar storage: %v\n", err)
		os.Exit(1)
	}

	movies := service.NewMovieService(st, posters, index, logger)
	admin := service.NewAdminService(st, movies, avatars, logger)

	ctx := context.Background()
	if err := admin.Reseed(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to reseed: %v\n", err)
		os.Exit(1)
	}

	languages, _ := st.ListLanguages(ctx)
	genres, _ := st.ListGenres(ctx)
	catalog, _ := st.ListMovies(ctx)

	fmt.Printf("Seeded %d languages, %d genres, %d movies\n",
		len(languages), len(genres), len(catalog))
}
