package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/repositories"
	"github.com/certivo/backend/internal/pkg/apperrors"
	"github.com/certivo/backend/internal/pkg/filestorage"
	"github.com/certivo/backend/internal/pkg/logger"
)

// IssuerService implements business logic for certificate issuers.
type IssuerService struct {
	repos     *repositories.Repositories
	storage   filestorage.FileStorage
	generator CodeGenerator
	baseURL   string
}

// NewIssuerService creates a new IssuerService
func NewIssuerService(repos *repositories.Repositories, storage filestorage.FileStorage, generator CodeGenerator, baseURL string) *IssuerService {
	return &IssuerService{
		repos:     repos,
		storage:   storage,
		generator: generator,
		baseURL:   baseURL,
	}
}

// Create registers a new issuer, storing its signature image when supplied.
func (s *IssuerService) Create(ctx context.Context, name string, signature *multipart.FileHeader) (*models.Issuer, error) {
	is := &models.Issuer{Name: name}

	if signature != nil {
		relPath, err := s.storage.SaveUpload(signature, "signatures")
		if err != nil {
			return nil, fmt.Errorf("failed to store signature image: %w", err)
		}
		is.SignatureURL = &relPath
	}

	if err := s.repos.Issuers.Create(ctx, is); err != nil {
		return nil, err
	}
	return is, nil
}

// GetByID retrieves an issuer by ID
func (s *IssuerService) GetByID(ctx context.Context, id int64) (*models.Issuer, error) {
	return s.repos.Issuers.GetByID(ctx, id)
}

// GetByUUID retrieves an issuer by its opaque verification token.
func (s *IssuerService) GetByUUID(ctx context.Context, token string) (*models.Issuer, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid issuer token")
	}
	return s.repos.Issuers.GetByUUID(ctx, parsed)
}

// List retrieves all issuers.
func (s *IssuerService) List(ctx context.Context) ([]*models.Issuer, error) {
	return s.repos.Issuers.List(ctx)
}

// ListStudents retrieves every student certified by one issuer.
func (s *IssuerService) ListStudents(ctx context.Context, issuerID int64) ([]*models.Student, error) {
	if _, err := s.repos.Issuers.GetByID(ctx, issuerID); err != nil {
		return nil, err
	}
	return s.repos.Students.ListByIssuer(ctx, issuerID)
}

// Update renames an issuer and optionally replaces its signature image. The
// previous image blob is removed once the record points at the new one.
func (s *IssuerService) Update(ctx context.Context, id int64, name string, signature *multipart.FileHeader) (*models.Issuer, error) {
	is, err := s.repos.Issuers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldSignature := is.SignatureURL
	is.Name = name

	if signature != nil {
		relPath, err := s.storage.SaveUpload(signature, "signatures")
		if err != nil {
			return nil, fmt.Errorf("failed to store signature image: %w", err)
		}
		is.SignatureURL = &relPath
	}

	if err := s.repos.Issuers.Update(ctx, is); err != nil {
		return nil, err
	}

	if signature != nil && oldSignature != nil {
		if err := s.storage.Delete(*oldSignature); err != nil {
			logger.Warn().Err(err).Str("path", *oldSignature).Msg("Failed to remove replaced signature image")
		}
	}
	return is, nil
}

// Delete removes an issuer. Its students go with it through the database
// cascade, so their code images are removed from the content store first.
func (s *IssuerService) Delete(ctx context.Context, id int64) error {
	is, err := s.repos.Issuers.GetByID(ctx, id)
	if err != nil {
		return err
	}

	students, err := s.repos.Students.ListByIssuer(ctx, id)
	if err != nil {
		return err
	}

	for _, st := range students {
		if err := s.storage.Delete(s.generator.ObjectPath(st.ID)); err != nil {
			logger.Warn().Err(err).Int64("studentID", st.ID).Msg("Failed to remove code image")
		}
	}
	if is.SignatureURL != nil {
		if err := s.storage.Delete(*is.SignatureURL); err != nil {
			logger.Warn().Err(err).Str("path", *is.SignatureURL).Msg("Failed to remove signature image")
		}
	}

	return s.repos.Issuers.Delete(ctx, id)
}

// VerifyURL returns the public verification page URL of an issuer.
func (s *IssuerService) VerifyURL(is *models.Issuer) string {
	return fmt.Sprintf("%s/certificate/verify-issuer/%s/", s.baseURL, is.UUID)
}

// Present maps an issuer onto its API representation, resolving stored paths
// to public URLs.
func (s *IssuerService) Present(is *models.Issuer) dto.IssuerResponse {
	resp := dto.NewIssuerResponse(is, s.VerifyURL(is))
	if is.SignatureURL != nil {
		resp.SignatureURL = s.storage.PublicURL(*is.SignatureURL)
	}
	return resp
}
