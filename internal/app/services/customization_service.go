package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/repositories"
	"github.com/certivo/backend/internal/pkg/filestorage"
	"github.com/certivo/backend/internal/pkg/logger"
)

// Code styling defaults, used when no customization row exists.
const (
	defaultForegroundColor = "#000000"
	defaultBackgroundColor = "#FFFFFF"
)

// CustomizationService manages the global code styling row.
type CustomizationService struct {
	repos   *repositories.Repositories
	storage filestorage.FileStorage
}

// NewCustomizationService creates a new CustomizationService
func NewCustomizationService(repos *repositories.Repositories, storage filestorage.FileStorage) *CustomizationService {
	return &CustomizationService{
		repos:   repos,
		storage: storage,
	}
}

// Get returns the styling in effect. When no row exists the defined default
// is returned without creating one.
func (s *CustomizationService) Get(ctx context.Context) (*models.CodeCustomization, error) {
	cu, err := s.repos.Customizations.First(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.CodeCustomization{
				ForegroundColor: defaultForegroundColor,
				BackgroundColor: defaultBackgroundColor,
			}, nil
		}
		return nil, err
	}
	return cu, nil
}

// Update rewrites the styling row, creating it on first write. Empty form
// fields keep their current values; a supplied logo replaces the old one.
func (s *CustomizationService) Update(ctx context.Context, form *dto.CustomizationForm, logo *multipart.FileHeader) (*models.CodeCustomization, error) {
	cu, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if form.ForegroundColor != "" {
		cu.ForegroundColor = form.ForegroundColor
	}
	if form.BackgroundColor != "" {
		cu.BackgroundColor = form.BackgroundColor
	}

	oldLogo := cu.LogoURL
	if logo != nil {
		relPath, err := s.storage.SaveUpload(logo, "qr_logos")
		if err != nil {
			return nil, fmt.Errorf("failed to store logo image: %w", err)
		}
		cu.LogoURL = &relPath
	}

	if err := s.repos.Customizations.Upsert(ctx, cu); err != nil {
		return nil, err
	}

	if logo != nil && oldLogo != nil {
		if err := s.storage.Delete(*oldLogo); err != nil {
			logger.Warn().Err(err).Str("path", *oldLogo).Msg("Failed to remove replaced logo image")
		}
	}
	return cu, nil
}

// Present maps the styling row onto its API representation, resolving the
// stored logo path to a public URL.
func (s *CustomizationService) Present(cu *models.CodeCustomization) *models.CodeCustomization {
	out := *cu
	if cu.LogoURL != nil {
		publicURL := s.storage.PublicURL(*cu.LogoURL)
		out.LogoURL = &publicURL
	}
	return &out
}
