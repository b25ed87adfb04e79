package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/repositories"
	"github.com/certivo/backend/internal/pkg/filestorage"
	"github.com/certivo/backend/internal/pkg/logger"
)

// Visual defaults applied when a template form leaves fields empty.
const (
	defaultTemplateFont      = "Helvetica"
	defaultTitleFontSize     = 24
	defaultBodyFontSize      = 18
	defaultTemplateTextColor = "#000000"
)

// TemplateService implements business logic for certificate templates.
type TemplateService struct {
	repos   *repositories.Repositories
	storage filestorage.FileStorage
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(repos *repositories.Repositories, storage filestorage.FileStorage) *TemplateService {
	return &TemplateService{
		repos:   repos,
		storage: storage,
	}
}

// Create registers a new template, storing its background image when supplied.
func (s *TemplateService) Create(ctx context.Context, form *dto.TemplateForm, background *multipart.FileHeader) (*models.CertificateTemplate, error) {
	t := &models.CertificateTemplate{}
	applyTemplateForm(t, form)

	if background != nil {
		relPath, err := s.storage.SaveUpload(background, "certificate_templates")
		if err != nil {
			return nil, fmt.Errorf("failed to store background image: %w", err)
		}
		t.BackgroundURL = &relPath
	}

	if err := s.repos.Templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID retrieves a template by ID
func (s *TemplateService) GetByID(ctx context.Context, id int64) (*models.CertificateTemplate, error) {
	return s.repos.Templates.GetByID(ctx, id)
}

// List retrieves all templates.
func (s *TemplateService) List(ctx context.Context) ([]*models.CertificateTemplate, error) {
	return s.repos.Templates.List(ctx)
}

// Update rewrites a template and optionally replaces its background image.
func (s *TemplateService) Update(ctx context.Context, id int64, form *dto.TemplateForm, background *multipart.FileHeader) (*models.CertificateTemplate, error) {
	t, err := s.repos.Templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldBackground := t.BackgroundURL
	applyTemplateForm(t, form)

	if background != nil {
		relPath, err := s.storage.SaveUpload(background, "certificate_templates")
		if err != nil {
			return nil, fmt.Errorf("failed to store background image: %w", err)
		}
		t.BackgroundURL = &relPath
	}

	if err := s.repos.Templates.Update(ctx, t); err != nil {
		return nil, err
	}

	if background != nil && oldBackground != nil {
		if err := s.storage.Delete(*oldBackground); err != nil {
			logger.Warn().Err(err).Str("path", *oldBackground).Msg("Failed to remove replaced background image")
		}
	}
	return t, nil
}

// Delete removes a template and its background image. Students pointing at
// it keep their records; the reference is nullified by the database.
func (s *TemplateService) Delete(ctx context.Context, id int64) error {
	t, err := s.repos.Templates.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repos.Templates.Delete(ctx, id); err != nil {
		return err
	}

	if t.BackgroundURL != nil {
		if err := s.storage.Delete(*t.BackgroundURL); err != nil {
			logger.Warn().Err(err).Str("path", *t.BackgroundURL).Msg("Failed to remove background image")
		}
	}
	return nil
}

// Present maps a template onto its API representation, resolving the stored
// background path to a public URL.
func (s *TemplateService) Present(t *models.CertificateTemplate) *models.CertificateTemplate {
	out := *t
	if t.BackgroundURL != nil {
		publicURL := s.storage.PublicURL(*t.BackgroundURL)
		out.BackgroundURL = &publicURL
	}
	return &out
}

func applyTemplateForm(t *models.CertificateTemplate, form *dto.TemplateForm) {
	t.Name = form.Name

	t.Font = form.Font
	if t.Font == "" {
		t.Font = defaultTemplateFont
	}
	t.TitleFontSize = form.TitleFontSize
	if t.TitleFontSize <= 0 {
		t.TitleFontSize = defaultTitleFontSize
	}
	t.BodyFontSize = form.BodyFontSize
	if t.BodyFontSize <= 0 {
		t.BodyFontSize = defaultBodyFontSize
	}
	t.TextColor = form.TextColor
	if t.TextColor == "" {
		t.TextColor = defaultTemplateTextColor
	}
	t.QRPosition = models.QRPosition(form.QRPosition)
	if !t.QRPosition.Valid() {
		t.QRPosition = models.QRPositionBottomRight
	}
}
