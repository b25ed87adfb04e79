package models

import "github.com/google/uuid"

// Issuer is the institution on whose behalf certificates are issued. It is
// identified externally by its opaque UUID token, never by its database id,
// so verification URLs stay stable across renumbering.
type Issuer struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"University of Example"`
	UUID         uuid.UUID `json:"uuid" db:"uuid"`
	SignatureURL *string   `json:"signatureUrl,omitempty" db:"signature_url"`
}
