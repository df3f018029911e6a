package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/apurvavyas7/CineSuggest/internal/service"
)

func (s *Server) registerAdminRoutes() {
	// Movies
	huma.Register(s.api, huma.Operation{
		OperationID:   "adminCreateMovie",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/movies",
		Summary:       "Create movie",
		Description:   "Adds a movie to the catalog",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleAdminCreateMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateMovie",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/movies/{id}",
		Summary:     "Update movie",
		Description: "Replaces a movie's fields and taxonomy links",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminUpdateMovie)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteMovie",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/movies/{id}",
		Summary:     "Delete movie",
		Description: "Removes a movie, its reviews and its watchlist entries",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminDeleteMovie)

	huma.Register(s.api, huma.Operation{
		OperationID:  "adminUploadPoster",
		Method:       http.MethodPost,
		Path:         "/api/v1/admin/movies/{id}/poster",
		Summary:      "Upload poster",
		Description:  "Replaces a movie's poster image (JPEG, PNG, GIF or WebP, max 10 MB)",
		Tags:         []string{"Admin"},
		Security:     []map[string][]string{{"bearer": {}}},
		MaxBodyBytes: MaxUploadSize,
	}, s.handleAdminUploadPoster)

	// Genres
	huma.Register(s.api, huma.Operation{
		OperationID:   "adminCreateGenre",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/genres",
		Summary:       "Create genre",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleAdminCreateGenre)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/genres",
		Summary:     "List all genres",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminListGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminRenameGenre",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/genres/{id}",
		Summary:     "Rename genre",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminRenameGenre)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteGenre",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/genres/{id}",
		Summary:     "Delete genre",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminDeleteGenre)

	// Languages
	huma.Register(s.api, huma.Operation{
		OperationID:   "adminCreateLanguage",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/languages",
		Summary:       "Create language",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleAdminCreateLanguage)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminRenameLanguage",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/languages/{id}",
		Summary:     "Rename language",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminRenameLanguage)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteLanguage",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/languages/{id}",
		Summary:     "Delete language",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminDeleteLanguage)

	// Users
	huma.Register(s.api, huma.Operation{
		OperationID: "adminListUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users",
		Summary:     "List users",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/users/{id}",
		Summary:     "Delete user",
		Description: "Removes a user and everything they own. Admins cannot delete themselves.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminDeleteUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSetUserRole",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/users/{id}/role",
		Summary:     "Set user role",
		Description: "Grants or revokes the admin role. Admins cannot demote themselves.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminSetUserRole)

	// Moderation and maintenance
	huma.Register(s.api, huma.Operation{
		OperationID: "adminListReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/reviews",
		Summary:     "List all reviews",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminListReviews)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSeed",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/seed",
		Summary:     "Reseed catalog",
		Description: "Wipes all data and installs the seed catalog",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminReseed)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminReindex",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reindex",
		Summary:     "Rebuild search index",
		Description: "Rebuilds the full-text search index from the catalog",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminReindex)
}

// === DTOs ===

// MovieRequest contains the writable movie fields.
type MovieRequest struct {
	Title       string   `json:"title" minLength:"1" maxLength:"256" doc:"Movie title"`
	Overview    string   `json:"overview,omitempty" maxLength:"4096" doc:"Plot summary"`
	Rating      float64  `json:"rating" minimum:"0" maximum:"10" doc:"Catalog rating on a 0-10 scale"`
	GenreIDs    []string `json:"genre_ids" minItems:"1" doc:"Linked genre IDs"`
	LanguageIDs []string `json:"language_ids" minItems:"1" doc:"Linked language IDs"`
}

// CreateMovieInput wraps the create movie request for Huma.
type CreateMovieInput struct {
	Authorization string `header:"Authorization"`
	Body          MovieRequest
}

// UpdateMovieInput wraps the update movie request for Huma.
type UpdateMovieInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Movie ID"`
	Body          MovieRequest
}

// MovieOutput wraps a single movie for Huma.
type MovieOutput struct {
	Body MovieResponse
}

// DeleteByIDInput identifies a resource to delete.
type DeleteByIDInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Resource ID"`
}

// UploadPosterInput carries a raw poster image body.
type UploadPosterInput struct {
	Authorization string `header:"Authorization"`
	ContentType   string `header:"Content-Type"`
	ID            string `path:"id" doc:"Movie ID"`
	RawBody       []byte
}

// NameInput wraps a create request holding just a name.
type NameInput struct {
	Authorization string `header:"Authorization"`
	Body          struct {
		Name string `json:"name" minLength:"1" maxLength:"64" doc:"Display name"`
	}
}

// RenameInput wraps a rename request for Huma.
type RenameInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Resource ID"`
	Body          struct {
		Name string `json:"name" minLength:"1" maxLength:"64" doc:"New display name"`
	}
}

// GenreOutput wraps a single genre for Huma.
type GenreOutput struct {
	Body GenreResponse
}

// LanguageOutput wraps a single language for Huma.
type LanguageOutput struct {
	Body LanguageResponse
}

// UserListOutput wraps a user list for Huma.
type UserListOutput struct {
	Body struct {
		Users []UserResponse `json:"users" doc:"All registered users"`
	}
}

// SetUserRoleInput wraps the role change request for Huma.
type SetUserRoleInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          struct {
		IsAdmin bool `json:"is_admin" doc:"Whether the user should be an admin"`
	}
}

// ReindexOutput reports how many movies were reindexed.
type ReindexOutput struct {
	Body struct {
		Indexed int `json:"indexed" doc:"Number of movies indexed"`
	}
}

// === Handlers ===

func (s *Server) handleAdminCreateMovie(ctx context.Context, input *CreateMovieInput) (*MovieOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	movie, err := s.services.Movie.CreateMovie(ctx, service.CreateMovieRequest{
		Title:       input.Body.Title,
		Overview:    input.Body.Overview,
		Rating:      input.Body.Rating,
		GenreIDs:    input.Body.GenreIDs,
		LanguageIDs: input.Body.LanguageIDs,
	})
	if err != nil {
		return nil, err
	}

	return &MovieOutput{Body: toMovieResponse(movie)}, nil
}

func (s *Server) handleAdminUpdateMovie(ctx context.Context, input *UpdateMovieInput) (*MovieOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	movie, err := s.services.Movie.UpdateMovie(ctx, input.ID, service.UpdateMovieRequest{
		Title:       input.Body.Title,
		Overview:    input.Body.Overview,
		Rating:      input.Body.Rating,
		GenreIDs:    input.Body.GenreIDs,
		LanguageIDs: input.Body.LanguageIDs,
	})
	if err != nil {
		return nil, err
	}

	return &MovieOutput{Body: toMovieResponse(movie)}, nil
}

func (s *Server) handleAdminDeleteMovie(ctx context.Context, input *DeleteByIDInput) (*MessageOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Movie.DeleteMovie(ctx, input.ID); err != nil {
		return nil, err
	}

	out := &MessageOutput{}
	out.Body.Message = "Movie deleted"
	return out, nil
}

func (s *Server) handleAdminUploadPoster(ctx context.Context, input *UploadPosterInput) (*MovieOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	movie, err := s.services.Movie.SetPoster(ctx, input.ID, input.RawBody)
	if err != nil {
		return nil, err
	}

	return &MovieOutput{Body: toMovieResponse(movie)}, nil
}

func (s *Server) handleAdminCreateGenre(ctx context.Context, input *NameInput) (*GenreOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	genre, err := s.services.Taxonomy.CreateGenre(ctx, service.NameRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	return &GenreOutput{Body: GenreResponse{ID: genre.ID, Name: genre.Name}}, nil
}

func (s *Server) handleAdminListGenres(ctx context.Context, input *AuthenticatedInput) (*GenreListOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	genres, err := s.services.Taxonomy.ListGenres(ctx)
	if err != nil {
		return nil, err
	}

	out := &GenreListOutput{}
	out.Body.Genres = toGenreResponses(genres)
	return out, nil
}

func (s *Server) handleAdminRenameGenre(ctx context.Context, input *RenameInput) (*GenreOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	genre, err := s.services.Taxonomy.RenameGenre(ctx, input.ID, service.NameRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	return &GenreOutput{Body: GenreResponse{ID: genre.ID, Name: genre.Name}}, nil
}

func (s *Server) handleAdminDeleteGenre(ctx context.Context, input *DeleteByIDInput) (*MessageOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Taxonomy.DeleteGenre(ctx, input.ID); err != nil {
		return nil, err
	}

	out := &MessageOutput{}
	out.Body.Message = "Genre deleted"
	return out, nil
}

func (s *Server) handleAdminCreateLanguage(ctx context.Context, input *NameInput) (*LanguageOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	language, err := s.services.Taxonomy.CreateLanguage(ctx, service.NameRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	return &LanguageOutput{Body: LanguageResponse{ID: language.ID, Name: language.Name}}, nil
}

func (s *Server) handleAdminRenameLanguage(ctx context.Context, input *RenameInput) (*LanguageOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	language, err := s.services.Taxonomy.RenameLanguage(ctx, input.ID, service.NameRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	return &LanguageOutput{Body: LanguageResponse{ID: language.ID, Name: language.Name}}, nil
}

func (s *Server) handleAdminDeleteLanguage(ctx context.Context, input *DeleteByIDInput) (*MessageOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Taxonomy.DeleteLanguage(ctx, input.ID); err != nil {
		return nil, err
	}

	out := &MessageOutput{}
	out.Body.Message = "Language deleted"
	return out, nil
}

func (s *Server) handleAdminListUsers(ctx context.Context, input *AuthenticatedInput) (*UserListOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	users, err := s.services.Admin.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := &UserListOutput{}
	out.Body.Users = make([]UserResponse, len(users))
	for i, u := range users {
		out.Body.Users[i] = toUserResponse(u)
	}
	return out, nil
}

func (s *Server) handleAdminDeleteUser(ctx context.Context, input *DeleteByIDInput) (*MessageOutput, error) {
	admin, err := s.authenticateAndRequireAdmin(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Admin.DeleteUser(ctx, admin, input.ID); err != nil {
		return nil, err
	}

	out := &MessageOutput{}
	out.Body.Message = "User deleted"
	return out, nil
}

func (s *Server) handleAdminSetUserRole(ctx context.Context, input *SetUserRoleInput) (*UserOutput, error) {
	admin, err := s.authenticateAndRequireAdmin(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Admin.SetAdmin(ctx, admin, input.ID, input.Body.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleAdminListReviews(ctx context.Context, input *AuthenticatedInput) (*ReviewListOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	reviews, err := s.services.Admin.ListAllReviews(ctx)
	if err != nil {
		return nil, err
	}

	out := &ReviewListOutput{}
	out.Body.Reviews = toReviewResponses(reviews)
	return out, nil
}

func (s *Server) handleAdminReseed(ctx context.Context, input *AuthenticatedInput) (*MessageOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Admin.Reseed(ctx); err != nil {
		return nil, err
	}

	out := &MessageOutput{}
	out.Body.Message = "Catalog reseeded"
	return out, nil
}

func (s *Server) handleAdminReindex(ctx context.Context, input *AuthenticatedInput) (*ReindexOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	count, err := s.services.Movie.ReindexAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &ReindexOutput{}
	out.Body.Indexed = count
	return out, nil
}
