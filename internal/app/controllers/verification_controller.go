package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/services"
	"github.com/certivo/backend/internal/middleware"
)

// VerificationController serves the public certificate verification
// endpoints that generated codes and issuer tokens point at.
type VerificationController struct {
	studentService *services.StudentService
	issuerService  *services.IssuerService
}

// NewVerificationController creates a new VerificationController
func NewVerificationController(studentService *services.StudentService, issuerService *services.IssuerService) *VerificationController {
	return &VerificationController{
		studentService: studentService,
		issuerService:  issuerService,
	}
}

// StudentQRInfo serves the payload a scanned code resolves to
// @Summary Resolve a scanned code
// @Description Returns the certified student and issuer behind a scanned verification code
// @Tags verification
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.StudentVerification} "Certificate is valid"
// @Failure 404 {object} dto.ErrorResponse "No certificate behind this code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /certificate/student-qr-info/{id} [get]
func (c *VerificationController) StudentQRInfo(ctx *gin.Context) {
	c.verifyStudent(ctx)
}

// VerifyStudent confirms a certificate by student ID
// @Summary Verify a certificate
// @Description Confirms that a certificate exists for the given student ID
// @Tags verification
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.StudentVerification} "Certificate is valid"
// @Failure 404 {object} dto.ErrorResponse "No certificate for this ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /certificate/verify/{id} [get]
func (c *VerificationController) VerifyStudent(ctx *gin.Context) {
	c.verifyStudent(ctx)
}

func (c *VerificationController) verifyStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	verification := dto.StudentVerification{
		Valid:   true,
		Student: dto.NewStudentResponse(student),
	}
	if student.Issuer != nil {
		verification.Issuer = c.issuerService.Present(student.Issuer)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      verification,
		Timestamp: time.Now(),
	})
}

// VerifyIssuer confirms an issuer by its opaque token
// @Summary Verify an issuer
// @Description Confirms an issuer by its verification token and lists its certificates
// @Tags verification
// @Produce json
// @Param uuid path string true "Issuer verification token"
// @Success 200 {object} dto.APIResponse{data=dto.IssuerVerification} "Issuer is valid"
// @Failure 400 {object} dto.ErrorResponse "Malformed token"
// @Failure 404 {object} dto.ErrorResponse "No issuer behind this token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /certificate/verify-issuer/{uuid} [get]
func (c *VerificationController) VerifyIssuer(ctx *gin.Context) {
	issuer, err := c.issuerService.GetByUUID(ctx, ctx.Param("uuid"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.issuerService.ListStudents(ctx, issuer.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, st := range students {
		responses = append(responses, dto.NewStudentResponse(st))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.IssuerVerification{
			Valid:    true,
			Issuer:   c.issuerService.Present(issuer),
			Students: responses,
		},
		Timestamp: time.Now(),
	})
}
