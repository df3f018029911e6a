package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/apurvavyas7/CineSuggest/internal/auth"
	"github.com/apurvavyas7/CineSuggest/internal/domain"
	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
	"github.com/apurvavyas7/CineSuggest/internal/id"
	"github.com/apurvavyas7/CineSuggest/internal/media/images"
	"github.com/apurvavyas7/CineSuggest/internal/store"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

// AdminService covers the operations behind the admin panel: user
// management, review moderation, and catalog reseeding.
type AdminService struct {
	store   *sqlite.Store
	movies  *MovieService
	avatars *images.Storage
	logger  *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	store *sqlite.Store,
	movies *MovieService,
	avatars *images.Storage,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		store:   store,
		movies:  movies,
		avatars: avatars,
		logger:  logger,
	}
}

// ListUsers returns all accounts, oldest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes an account and its avatar file. Sessions, reviews,
// preferences, and watchlist rows cascade in the store. Admins cannot
// delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.User, userID string) error {
	if actor.ID == userID {
		return domainerrors.Validation("you cannot delete your own account")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if user.AvatarPath != "" && user.AvatarPath != domain.DefaultAvatar {
		if err := s.avatars.Delete(user.AvatarPath); err != nil && s.logger != nil {
			s.logger.Warn("Failed to delete avatar file", "user_id", userID, "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("User deleted", "user_id", userID, "deleted_by", actor.ID)
	}

	return nil
}

// SetAdmin grants or revokes admin rights. Admins cannot revoke their own.
func (s *AdminService) SetAdmin(ctx context.Context, actor *domain.User, userID string, isAdmin bool) (*domain.User, error) {
	if actor.ID == userID && !isAdmin {
		return nil, domainerrors.Validation("you cannot revoke your own admin rights")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.IsAdmin == isAdmin {
		return user, nil
	}

	user.IsAdmin = isAdmin
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Admin rights changed", "user_id", userID, "is_admin", isAdmin, "changed_by", actor.ID)
	}

	return user, nil
}

// EnsureAdmin creates an admin account, or promotes the account if the
// username already exists. Used by the admin CLI command; the account is
// marked survey-complete so it can exercise every endpoint immediately.
func (s *AdminService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, domainerrors.Validation("username is required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		if !user.IsAdmin {
			user.IsAdmin = true
			user.Touch()
			if updateErr := s.store.UpdateUser(ctx, user); updateErr != nil {
				return nil, fmt.Errorf("promote user: %w", updateErr)
			}
		}
		return user, nil
	case errors.Is(err, store.ErrNotFound):
		// Fall through to create
	default:
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if len(password) < 8 {
		return nil, domainerrors.Validation("password must be at least 8 characters")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user = &domain.User{
		Username:           username,
		PasswordHash:       passwordHash,
		IsAdmin:            true,
		HasCompletedSurvey: true,
		AvatarPath:         domain.DefaultAvatar,
	}
	user.ID = userID
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Admin account created", "user_id", userID, "username", username)
	}

	return user, nil
}

// ListAllReviews returns every review in the system for moderation.
func (s *AdminService) ListAllReviews(ctx context.Context) ([]*domain.Review, error) {
	reviews, err := s.store.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Reseed wipes the catalog and all user data and installs the demo
// dataset, then rebuilds the search index. Destructive; gated behind the
// admin role and the seed CLI command.
func (s *AdminService) Reseed(ctx context.Context) error {
	if err := s.store.ResetCatalog(ctx); err != nil {
		return fmt.Errorf("reset catalog: %w", err)
	}

	languageIDs := make(map[string]string, len(seedLanguages))
	for _, name := range seedLanguages {
		language := &domain.Language{Name: name}
		language.ID = id.MustGenerate(id.PrefixLanguage)
		language.InitTimestamps()
		if err := s.store.CreateLanguage(ctx, language); err != nil {
			return fmt.Errorf("seed language %s: %w", name, err)
		}
		languageIDs[name] = language.ID
	}

	genreIDs := make(map[string]string, len(seedGenres))
	for _, name := range seedGenres {
		genre := &domain.Genre{Name: name}
		genre.ID = id.MustGenerate(id.PrefixGenre)
		genre.InitTimestamps()
		if err := s.store.CreateGenre(ctx, genre); err != nil {
			return fmt.Errorf("seed genre %s: %w", name, err)
		}
		genreIDs[name] = genre.ID
	}

	for _, sm := range seedMovies {
		movie := &domain.Movie{
			Title:      sm.Title,
			Overview:   sm.Overview,
			PosterPath: domain.DefaultPoster,
			Rating:     sm.Rating,
		}
		movie.ID = id.MustGenerate(id.PrefixMovie)
		movie.InitTimestamps()
		for _, g := range sm.Genres {
			movie.GenreIDs = append(movie.GenreIDs, genreIDs[g])
		}
		for _, l := range sm.Languages {
			movie.LanguageIDs = append(movie.LanguageIDs, languageIDs[l])
		}
		if err := s.store.CreateMovie(ctx, movie); err != nil {
			return fmt.Errorf("seed movie %s: %w", sm.Title, err)
		}
	}

	count, err := s.movies.ReindexAll(ctx)
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Catalog reseeded",
			"languages", len(seedLanguages),
			"genres", len(seedGenres),
			"movies", count,
		)
	}

	return nil
}
