package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
	"github.com/apurvavyas7/CineSuggest/internal/media/images"
	"github.com/apurvavyas7/CineSuggest/internal/store"
	"github.com/apurvavyas7/CineSuggest/internal/store/sqlite"
)

// ProfileService manages user profiles: bios, avatars, and the public
// profile page aggregation.
type ProfileService struct {
	store   *sqlite.Store
	avatars *images.Storage
	logger  *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store *sqlite.Store, avatars *images.Storage, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:   store,
		avatars: avatars,
		logger:  logger,
	}
}

// Profile is a user's public page: identity, bio, their reviews, and
// their watchlist.
type Profile struct {
	User      *domain.User     `json:"user"`
	Reviews   []*domain.Review `json:"reviews"`
	Watchlist []*domain.Movie  `json:"watchlist"`
}

// UpdateProfileRequest contains editable profile fields.
type UpdateProfileRequest struct {
	Bio string `json:"bio" validate:"max=1024"`
}

// GetProfile assembles a user's profile page.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	reviews, err := s.store.ListReviewsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	watchlist, err := s.store.ListWatchlistMovies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	return &Profile{
		User:      user,
		Reviews:   reviews,
		Watchlist: watchlist,
	}, nil
}

// GetProfileByUsername assembles a profile page from a username.
func (s *ProfileService) GetProfileByUsername(ctx context.Context, username string) (*Profile, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.GetProfile(ctx, user.ID)
}

// UpdateProfile edits a user's bio.
func (s *ProfileService) UpdateProfile(ctx context.Context, user *domain.User, req UpdateProfileRequest) (*domain.User, error) {
	req.Bio = strings.TrimSpace(req.Bio)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user.Bio = req.Bio
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

// SetAvatar stores a new avatar image for a user and replaces the old one.
func (s *ProfileService) SetAvatar(ctx context.Context, user *domain.User, data []byte) (*domain.User, error) {
	if len(data) == 0 {
		return nil, domainerrors.Validation("avatar image is empty")
	}
	if len(data) > maxImageSize {
		return nil, domainerrors.Validation("avatar image exceeds 10MB limit")
	}

	ext, err := images.SniffExtension(data)
	if err != nil {
		return nil, domainerrors.Validation("unsupported image format").WithCause(err)
	}

	filename := images.UniqueFilename(user.Username, ext)
	if err := s.avatars.Save(filename, data); err != nil {
		return nil, fmt.Errorf("save avatar: %w", err)
	}

	oldAvatar := user.AvatarPath
	user.AvatarPath = filename
	user.Touch()

	if hash, hashErr := images.ComputeBlurHash(data); hashErr == nil {
		user.AvatarBlurHash = hash
	} else if s.logger != nil {
		s.logger.Warn("Failed to compute avatar blurhash", "user_id", user.ID, "error", hashErr)
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		_ = s.avatars.Delete(filename)
		return nil, fmt.Errorf("update user: %w", err)
	}

	if oldAvatar != "" && oldAvatar != domain.DefaultAvatar {
		if err := s.avatars.Delete(oldAvatar); err != nil && s.logger != nil {
			s.logger.Warn("Failed to delete old avatar", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}
