package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	"github.com/apurvavyas7/CineSuggest/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMyProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get my profile",
		Description: "Returns the authenticated user's profile with reviews and watchlist",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMyProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMyProfile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update my profile",
		Description: "Updates the authenticated user's profile fields",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateMyProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "uploadMyAvatar",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/me/avatar",
		Summary:     "Upload avatar",
		Description: "Replaces the authenticated user's avatar image (JPEG, PNG, GIF or WebP, max 10 MB)",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
		MaxBodyBytes: MaxUploadSize,
	}, s.handleUploadMyAvatar)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/profile",
		Summary:     "Get user profile",
		Description: "Returns another user's public profile",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetUserProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProfileByUsername",
		Method:      http.MethodGet,
		Path:        "/api/v1/profiles/{username}",
		Summary:     "Get profile by username",
		Description: "Returns a user's public profile looked up by username",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProfileByUsername)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMySessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me/sessions",
		Summary:     "List my sessions",
		Description: "Returns the authenticated user's active sessions",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMySessions)
}

// === DTOs ===

// ProfileResponse is a user profile with their activity.
type ProfileResponse struct {
	User      UserResponse     `json:"user" doc:"The user"`
	Reviews   []ReviewResponse `json:"reviews" doc:"Reviews written by the user"`
	Watchlist []MovieResponse  `json:"watchlist" doc:"Movies on the user's watchlist"`
}

// ProfileOutput wraps a profile for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

func toProfileResponse(p *service.Profile) ProfileResponse {
	return ProfileResponse{
		User:      toUserResponse(p.User),
		Reviews:   toReviewResponses(p.Reviews),
		Watchlist: toMovieResponses(p.Watchlist),
	}
}

// UpdateProfileInput contains profile fields to change.
type UpdateProfileInput struct {
	Authorization string `header:"Authorization"`
	Body          struct {
		Bio string `json:"bio" maxLength:"1024" doc:"Profile bio"`
	}
}

// UploadImageInput carries a raw image body.
type UploadImageInput struct {
	Authorization string `header:"Authorization"`
	ContentType   string `header:"Content-Type"`
	RawBody       []byte
}

// GetUserProfileInput identifies the profile to fetch.
type GetUserProfileInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

// SessionResponse contains session metadata in API responses.
type SessionResponse struct {
	ID        string    `json:"id" doc:"Session ID"`
	IPAddress string    `json:"ip_address,omitempty" doc:"Client IP at last use"`
	UserAgent string    `json:"user_agent,omitempty" doc:"Client user agent at last use"`
	ExpiresAt time.Time `json:"expires_at" doc:"Session expiry"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last refresh timestamp"`
}

func toSessionResponses(sessions []*domain.Session) []SessionResponse {
	resp := make([]SessionResponse, len(sessions))
	for i, sess := range sessions {
		resp[i] = SessionResponse{
			ID:        sess.ID,
			IPAddress: sess.IPAddress,
			UserAgent: sess.UserAgent,
			ExpiresAt: sess.ExpiresAt,
			CreatedAt: sess.CreatedAt,
			UpdatedAt: sess.UpdatedAt,
		}
	}
	return resp
}

// SessionListOutput wraps a session list for Huma.
type SessionListOutput struct {
	Body struct {
		Sessions []SessionResponse `json:"sessions" doc:"Active sessions"`
	}
}

// === Handlers ===

func (s *Server) handleGetMyProfile(ctx context.Context, input *AuthenticatedInput) (*ProfileOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: toProfileResponse(profile)}, nil
}

func (s *Server) handleUpdateMyProfile(ctx context.Context, input *UpdateProfileInput) (*UserOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	updated, err := s.services.Profile.UpdateProfile(ctx, user, service.UpdateProfileRequest{
		Bio: input.Body.Bio,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(updated)}, nil
}

func (s *Server) handleUploadMyAvatar(ctx context.Context, input *UploadImageInput) (*UserOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	updated, err := s.services.Profile.SetAvatar(ctx, user, input.RawBody)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(updated)}, nil
}

func (s *Server) handleGetUserProfile(ctx context.Context, input *GetUserProfileInput) (*ProfileOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.GetProfile(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: toProfileResponse(profile)}, nil
}

// GetProfileByUsernameInput identifies a profile by username.
type GetProfileByUsernameInput struct {
	Authorization string `header:"Authorization"`
	Username      string `path:"username" doc:"Username"`
}

func (s *Server) handleGetProfileByUsername(ctx context.Context, input *GetProfileByUsernameInput) (*ProfileOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.GetProfileByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: toProfileResponse(profile)}, nil
}

func (s *Server) handleListMySessions(ctx context.Context, input *AuthenticatedInput) (*SessionListOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	sessions, err := s.services.Session.ListUserSessions(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := &SessionListOutput{}
	out.Body.Sessions = toSessionResponses(sessions)
	return out, nil
}
