package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apurvavyas7/CineSuggest/internal/media/images"
)

// Image routes bypass Huma and stream files straight off disk.
func (s *Server) registerImageRoutes() {
	s.router.Get("/images/posters/{filename}", s.serveImage(s.storage.Posters, CacheOneWeek))
	s.router.Get("/images/avatars/{filename}", s.serveImage(s.storage.Avatars, CacheOneDay))
}

func (s *Server) serveImage(storage *images.Storage, cacheControl string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")

		if !storage.Exists(filename) {
			http.NotFound(w, r)
			return
		}

		data, err := storage.Get(filename)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				http.NotFound(w, r)
				return
			}
			s.logger.Error("Failed to read image", "filename", filename, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", http.DetectContentType(data))
		w.Header().Set("Cache-Control", cacheControl)
		w.Write(data)
	}
}
