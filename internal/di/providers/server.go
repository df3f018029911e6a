package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/apurvavyas7/CineSuggest/internal/api"
	"github.com/apurvavyas7/CineSuggest/internal/config"
	"github.com/apurvavyas7/CineSuggest/internal/logger"
	"github.com/apurvavyas7/CineSuggest/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	storages := do.MustInvoke[*ImageStorages](i)

	services := &api.Services{
		Auth:           do.MustInvoke[*service.AuthService](i),
		Session:        do.MustInvoke[*service.SessionService](i),
		Taxonomy:       do.MustInvoke[*service.TaxonomyService](i),
		Movie:          do.MustInvoke[*service.MovieService](i),
		Catalog:        do.MustInvoke[*service.CatalogService](i),
		Review:         do.MustInvoke[*service.ReviewService](i),
		Survey:         do.MustInvoke[*service.SurveyService](i),
		Watchlist:      do.MustInvoke[*service.WatchlistService](i),
		Recommendation: do.MustInvoke[*service.RecommendationService](i),
		Profile:        do.MustInvoke[*service.ProfileService](i),
		Search:         do.MustInvoke[*service.SearchService](i),
		Admin:          do.MustInvoke[*service.AdminService](i),
	}

	storage := &api.StorageServices{
		Posters: storages.Posters,
		Avatars: storages.Avatars,
	}

	handler := api.NewServer(storeHandle.Store, services, storage, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
