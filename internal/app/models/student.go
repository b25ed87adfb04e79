package models

import "time"

// Student defines one certified student record based on the 'students' table.
// The (FullName, Matricule, Program, Session) tuple is unique, as are
// Matricule and Number individually.
type Student struct {
	ID         int64      `json:"id" db:"id" example:"1"`
	FullName   string     `json:"fullName" db:"full_name" example:"John Doe"`
	BirthDate  *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	BirthPlace string     `json:"birthPlace" db:"birth_place" example:"Paris"`
	Sex        string     `json:"sex" db:"sex" example:"M"`
	Matricule  string     `json:"matricule" db:"matricule" example:"12345"`
	Mention    string     `json:"mention" db:"mention" example:"Très Bien"`
	Session    string     `json:"session" db:"session" example:"2024"`
	Program    string     `json:"program" db:"program" example:"Computer Science"`
	Number     string     `json:"number" db:"number" example:"CERT001"`
	IssuerID   int64      `json:"issuerId" db:"issuer_id" example:"1"`
	TemplateID *int64     `json:"templateId,omitempty" db:"template_id"`
	// IssuedAt is set once at insertion and never updated afterwards.
	IssuedAt   time.Time `json:"issuedAt" db:"issued_at"`
	QRCodeLink *string   `json:"qrCodeLink,omitempty" db:"qr_code_link"`

	// Relations (populated when needed)
	Issuer *Issuer `json:"issuer,omitempty"`
}
