// Package main provides a tool to create or promote an administrator account.
//
// Usage:
//
//	go run ./cmd/admin -username apurva -password secret123
package main

import (
	"context"
	"flag"
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
	username := flag.String("username", "", "Admin username (required)")
	password := flag.String("password", "", "Admin password (required for new accounts)")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *username == "" {
		fmt.Fprintln(os.Stderr, "Usage: admin -username NAME -password SECRET")
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

	user, err := admin.EnsureAdmin(context.Background(), *username, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to ensure admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User %q (%s) is now an administrator\n", user.Username, user.ID)
}
