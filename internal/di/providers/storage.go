package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/apurvavyas7/CineSuggest/internal/config"
	"github.com/apurvavyas7/CineSuggest/internal/logger"
	"github.com/apurvavyas7/CineSuggest/internal/media/images"
)

// ImageStorages groups all image storage services.
type ImageStorages struct {
	Posters *images.Storage
	Avatars *images.Storage
}

// ProvideImageStorages provides all image storage services.
func ProvideImageStorages(i do.Injector) (*ImageStorages, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	posters, err := images.NewPosterStorage(cfg.UploadsPath())
	if err != nil {
		return nil, fmt.Errorf("poster storage: %w", err)
	}

	avatars, err := images.NewAvatarStorage(cfg.UploadsPath())
	if err != nil {
		return nil, fmt.Errorf("avatar storage: %w", err)
	}

	log.Info("Image storages initialized", "path", cfg.UploadsPath())

	return &ImageStorages{
		Posters: posters,
		Avatars: avatars,
	}, nil
}
