package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/repositories"
	"github.com/certivo/backend/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto API responses. Uniqueness
// conflicts and validation problems are expected outcomes, never 500s.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrIssuerNotFound),
		errors.Is(err, apperrors.ErrTemplateNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, repositories.ErrNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrMatriculeAlreadyExists),
		errors.Is(err, apperrors.ErrNumberAlreadyExists),
		errors.Is(err, apperrors.ErrStudentIdentityExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())

	case errors.Is(err, apperrors.ErrFileTooLarge):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeFileTooLarge, err.Error())

	case errors.Is(err, apperrors.ErrUnsupportedFileType):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeUnsupportedFile, err.Error())

	case errors.Is(err, apperrors.ErrUndecodableFile):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeUndecodableFile, err.Error())

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	case errors.Is(err, apperrors.ErrAssetUnavailable):
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeAssetUnavailable, err.Error())

	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}
