package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/services"
	"github.com/certivo/backend/internal/middleware"
)

// IssuerController handles issuer operations
type IssuerController struct {
	issuerService *services.IssuerService
}

// NewIssuerController creates a new IssuerController
func NewIssuerController(issuerService *services.IssuerService) *IssuerController {
	return &IssuerController{
		issuerService: issuerService,
	}
}

// CreateIssuer handles issuer creation
// @Summary Create an issuer
// @Description Registers a certificate issuer with an optional signature image
// @Tags issuers
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Issuer name"
// @Param signature formData file false "Signature image"
// @Success 201 {object} dto.APIResponse{data=dto.IssuerResponse} "Issuer created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issuers [post]
func (c *IssuerController) CreateIssuer(ctx *gin.Context) {
	var form dto.IssuerForm
	if err := ctx.ShouldBind(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid issuer data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	signature, _ := ctx.FormFile("signature")

	issuer, err := c.issuerService.Create(ctx, form.Name, signature)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      c.issuerService.Present(issuer),
		Timestamp: time.Now(),
	})
}

// GetAllIssuers retrieves all issuers
// @Summary List issuers
// @Description Retrieves all certificate issuers
// @Tags issuers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.IssuerResponse} "Issuers retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issuers [get]
func (c *IssuerController) GetAllIssuers(ctx *gin.Context) {
	issuers, err := c.issuerService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.IssuerResponse, 0, len(issuers))
	for _, is := range issuers {
		responses = append(responses, c.issuerService.Present(is))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetIssuerByID retrieves an issuer by ID
// @Summary Get issuer details
// @Description Retrieves one certificate issuer
// @Tags issuers
// @Produce json
// @Param id path int true "Issuer ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.IssuerResponse} "Issuer retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid issuer ID format"
// @Failure 404 {object} dto.ErrorResponse "Issuer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issuers/{id} [get]
func (c *IssuerController) GetIssuerByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	issuer, err := c.issuerService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.issuerService.Present(issuer),
		Timestamp: time.Now(),
	})
}

// GetIssuerStudents lists the students certified by one issuer
// @Summary List an issuer's students
// @Description Retrieves every student record owned by one issuer
// @Tags issuers
// @Produce json
// @Param id path int true "Issuer ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Students retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Issuer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issuers/{id}/students [get]
func (c *IssuerController) GetIssuerStudents(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	students, err := c.issuerService.ListStudents(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, st := range students {
		responses = append(responses, dto.NewStudentResponse(st))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// UpdateIssuer handles issuer updates
// @Summary Update an issuer
// @Description Renames an issuer and optionally replaces its signature image
// @Tags issuers
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Issuer ID" Format(int64) minimum(1)
// @Param name formData string true "Issuer name"
// @Param signature formData file false "Signature image"
// @Success 200 {object} dto.APIResponse{data=dto.IssuerResponse} "Issuer updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Issuer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issuers/{id} [put]
func (c *IssuerController) UpdateIssuer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var form dto.IssuerForm
	if err := ctx.ShouldBind(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid issuer data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	signature, _ := ctx.FormFile("signature")

	issuer, err := c.issuerService.Update(ctx, id, form.Name, signature)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.issuerService.Present(issuer),
		Timestamp: time.Now(),
	})
}

// DeleteIssuer handles issuer deletion
// @Summary Delete an issuer
// @Description Removes an issuer together with its students and their code images
// @Tags issuers
// @Produce json
// @Param id path int true "Issuer ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Issuer deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid issuer ID format"
// @Failure 404 {object} dto.ErrorResponse "Issuer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /issuers/{id} [delete]
func (c *IssuerController) DeleteIssuer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.issuerService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Issuer deleted successfully"},
		Timestamp: time.Now(),
	})
}
