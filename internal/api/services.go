package api

import (
	"github.com/apurvavyas7/CineSuggest/internal/media/images"
	"github.com/apurvavyas7/CineSuggest/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth           *service.AuthService
	Session        *service.SessionService
	Taxonomy       *service.TaxonomyService
	Movie          *service.MovieService
	Catalog        *service.CatalogService
	Review         *service.ReviewService
	Survey         *service.SurveyService
	Watchlist      *service.WatchlistService
	Recommendation *service.RecommendationService
	Profile        *service.ProfileService
	Search         *service.SearchService
	Admin          *service.AdminService
}

// StorageServices groups file storage handlers used by the API server.
type StorageServices struct {
	Posters *images.Storage // Movie poster images
	Avatars *images.Storage // User avatar images
}
