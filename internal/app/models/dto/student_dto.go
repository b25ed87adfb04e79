package dto

import (
	"time"

	"github.com/certivo/backend/internal/app/models"
)

// CreateStudentRequest is the manual creation form. BirthDate accepts either
// DD/MM/YYYY or YYYY-MM-DD, same as the bulk import.
type CreateStudentRequest struct {
	FullName   string `json:"fullName" binding:"required" example:"John Doe"`
	Matricule  string `json:"matricule" binding:"required" example:"12345"`
	Program    string `json:"program" example:"Computer Science"`
	Mention    string `json:"mention" example:"Très Bien"`
	Session    string `json:"session" example:"2024"`
	Sex        string `json:"sex" binding:"omitempty,oneof=M F" example:"M"`
	BirthDate  string `json:"birthDate" example:"05/03/2001"`
	BirthPlace string `json:"birthPlace" example:"Paris"`
	Number     string `json:"number" binding:"required" example:"CERT001"`
	IssuerID   int64  `json:"issuerId" binding:"required" example:"1"`
	TemplateID *int64 `json:"templateId"`
}

// UpdateStudentRequest carries the editable fields of a student record. The
// issue timestamp is immutable and therefore absent.
type UpdateStudentRequest struct {
	FullName   string `json:"fullName" binding:"required" example:"John Doe"`
	Matricule  string `json:"matricule" binding:"required" example:"12345"`
	Program    string `json:"program" example:"Computer Science"`
	Mention    string `json:"mention" example:"Très Bien"`
	Session    string `json:"session" example:"2024"`
	Sex        string `json:"sex" binding:"omitempty,oneof=M F" example:"M"`
	BirthDate  string `json:"birthDate" example:"2001-03-05"`
	BirthPlace string `json:"birthPlace" example:"Paris"`
	Number     string `json:"number" binding:"required" example:"CERT001"`
	IssuerID   int64  `json:"issuerId" binding:"required" example:"1"`
	TemplateID *int64 `json:"templateId"`
}

// StudentResponse is the student representation returned by the API.
type StudentResponse struct {
	ID         int64     `json:"id" example:"1"`
	FullName   string    `json:"fullName" example:"John Doe"`
	BirthDate  string    `json:"birthDate,omitempty" example:"2001-03-05"`
	BirthPlace string    `json:"birthPlace" example:"Paris"`
	Sex        string    `json:"sex" example:"M"`
	Matricule  string    `json:"matricule" example:"12345"`
	Mention    string    `json:"mention" example:"Très Bien"`
	Session    string    `json:"session" example:"2024"`
	Program    string    `json:"program" example:"Computer Science"`
	Number     string    `json:"number" example:"CERT001"`
	IssuerID   int64     `json:"issuerId" example:"1"`
	IssuerName string    `json:"issuerName,omitempty" example:"University of Example"`
	TemplateID *int64    `json:"templateId,omitempty"`
	IssuedAt   time.Time `json:"issuedAt"`
	QRCodeLink string    `json:"qrCodeLink,omitempty"`
}

// NewStudentResponse maps a student model onto its API representation.
func NewStudentResponse(st *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:         st.ID,
		FullName:   st.FullName,
		BirthPlace: st.BirthPlace,
		Sex:        st.Sex,
		Matricule:  st.Matricule,
		Mention:    st.Mention,
		Session:    st.Session,
		Program:    st.Program,
		Number:     st.Number,
		IssuerID:   st.IssuerID,
		TemplateID: st.TemplateID,
		IssuedAt:   st.IssuedAt,
	}
	if st.BirthDate != nil {
		resp.BirthDate = st.BirthDate.Format("2006-01-02")
	}
	if st.QRCodeLink != nil {
		resp.QRCodeLink = *st.QRCodeLink
	}
	if st.Issuer != nil {
		resp.IssuerName = st.Issuer.Name
	}
	return resp
}

// StudentListResponse is one page of student records.
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}
