package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/certivo/backend/internal/app/models"
	"github.com/certivo/backend/internal/app/repositories"
	"github.com/certivo/backend/internal/pkg/apperrors"
	"github.com/certivo/backend/internal/pkg/filestorage"
	"github.com/certivo/backend/internal/pkg/logger"
	"github.com/certivo/backend/internal/pkg/qrimg"
)

// CodeGenerator produces verification code images for student records.
type CodeGenerator interface {
	// Generate renders the code image for a student, writes it to the
	// content store and returns the public URL of the stored artifact. It
	// never touches the database; the caller persists the returned link.
	Generate(ctx context.Context, studentID int64) (string, error)

	// ObjectPath returns the content-store path of a student's code image.
	ObjectPath(studentID int64) string
}

// styleSource resolves the code styling row in effect.
type styleSource interface {
	First(ctx context.Context) (*models.CodeCustomization, error)
}

// QRCodeService renders verification code images. The encoded content is the
// student's verification page URL; styling comes from the customization row,
// falling back to a defined default when none exists.
type QRCodeService struct {
	styles  styleSource
	storage filestorage.FileStorage
	baseURL string
}

// NewQRCodeService creates a new QRCodeService
func NewQRCodeService(styles styleSource, storage filestorage.FileStorage, baseURL string) *QRCodeService {
	return &QRCodeService{
		styles:  styles,
		storage: storage,
		baseURL: baseURL,
	}
}

// VerificationURL returns the page URL a student's code points at.
func (s *QRCodeService) VerificationURL(studentID int64) string {
	return fmt.Sprintf("%s/certificate/student-qr-info/%d/", s.baseURL, studentID)
}

// ObjectPath returns the content-store path of a student's code image.
func (s *QRCodeService) ObjectPath(studentID int64) string {
	return fmt.Sprintf("qr_codes/student_%d.png", studentID)
}

// Generate renders and stores the code image for a student, overwriting any
// prior artifact, and returns the public URL of the stored image. An
// unreadable configured logo fails the whole operation; nothing is written.
func (s *QRCodeService) Generate(ctx context.Context, studentID int64) (string, error) {
	style, err := s.resolveStyle(ctx)
	if err != nil {
		return "", err
	}

	img, err := qrimg.Build(s.VerificationURL(studentID), style)
	if err != nil {
		if style.LogoPath != "" {
			return "", apperrors.NewCustomError(apperrors.ErrAssetUnavailable, err.Error())
		}
		return "", fmt.Errorf("failed to build code image: %w", err)
	}

	data, err := qrimg.EncodePNG(img)
	if err != nil {
		return "", err
	}

	objectPath := s.ObjectPath(studentID)
	if err := s.storage.SaveBytes(objectPath, data); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Failed to store code image")
		return "", fmt.Errorf("failed to store code image: %w", err)
	}

	return s.storage.PublicURL(objectPath), nil
}

// resolveStyle maps the customization row in effect onto image styling. An
// absent row means the default style, never a lazily created one.
func (s *QRCodeService) resolveStyle(ctx context.Context) (qrimg.Style, error) {
	cu, err := s.styles.First(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return qrimg.DefaultStyle(), nil
		}
		return qrimg.Style{}, err
	}

	style := qrimg.DefaultStyle()
	if cu.ForegroundColor != "" {
		fg, err := qrimg.ParseHexColor(cu.ForegroundColor)
		if err != nil {
			return qrimg.Style{}, fmt.Errorf("invalid foreground color: %w", err)
		}
		style.Foreground = fg
	}
	if cu.BackgroundColor != "" {
		bg, err := qrimg.ParseHexColor(cu.BackgroundColor)
		if err != nil {
			return qrimg.Style{}, fmt.Errorf("invalid background color: %w", err)
		}
		style.Background = bg
	}
	if cu.LogoURL != nil && *cu.LogoURL != "" {
		logoPath := s.storage.FullPath(*cu.LogoURL)
		if !s.storage.Exists(*cu.LogoURL) {
			return qrimg.Style{}, apperrors.NewCustomError(apperrors.ErrAssetUnavailable,
				fmt.Sprintf("configured logo %s is missing from the content store", *cu.LogoURL))
		}
		style.LogoPath = logoPath
	}
	return style, nil
}
