package dto

import (
	"github.com/certivo/backend/internal/app/models"
)

// IssuerForm is the multipart form for creating or updating an issuer. The
// signature image travels as a separate file field.
type IssuerForm struct {
	Name string `form:"name" binding:"required" example:"University of Example"`
}

// IssuerResponse is the issuer representation returned by the API.
type IssuerResponse struct {
	ID           int64  `json:"id" example:"1"`
	Name         string `json:"name" example:"University of Example"`
	UUID         string `json:"uuid" example:"ab3e9a6a-9d5f-42e3-bbcb-0f9a8f1f4711"`
	SignatureURL string `json:"signatureUrl,omitempty"`
	VerifyURL    string `json:"verifyUrl,omitempty"`
}

// NewIssuerResponse maps an issuer model onto its API representation.
func NewIssuerResponse(is *models.Issuer, verifyURL string) IssuerResponse {
	resp := IssuerResponse{
		ID:        is.ID,
		Name:      is.Name,
		UUID:      is.UUID.String(),
		VerifyURL: verifyURL,
	}
	if is.SignatureURL != nil {
		resp.SignatureURL = *is.SignatureURL
	}
	return resp
}
