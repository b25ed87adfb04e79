package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/services"
	"github.com/certivo/backend/internal/middleware"
)

// TemplateController handles certificate template operations
type TemplateController struct {
	templateService *services.TemplateService
}

// NewTemplateController creates a new TemplateController
func NewTemplateController(templateService *services.TemplateService) *TemplateController {
	return &TemplateController{
		templateService: templateService,
	}
}

// CreateTemplate handles template creation
// @Summary Create a certificate template
// @Description Registers a visual layout with an optional background image
// @Tags templates
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Template name"
// @Param font formData string false "Font family"
// @Param titleFontSize formData int false "Title font size"
// @Param bodyFontSize formData int false "Body font size"
// @Param textColor formData string false "Text color (#RRGGBB)"
// @Param qrPosition formData string false "Code position" Enums(top_left, top_right, bottom_left, bottom_right)
// @Param background formData file false "Background image"
// @Success 201 {object} dto.APIResponse{data=models.CertificateTemplate} "Template created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /templates [post]
func (c *TemplateController) CreateTemplate(ctx *gin.Context) {
	var form dto.TemplateForm
	if err := ctx.ShouldBind(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid template data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	background, _ := ctx.FormFile("background")

	template, err := c.templateService.Create(ctx, &form, background)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      c.templateService.Present(template),
		Timestamp: time.Now(),
	})
}

// GetAllTemplates retrieves all templates
// @Summary List certificate templates
// @Description Retrieves all certificate templates
// @Tags templates
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.CertificateTemplate} "Templates retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /templates [get]
func (c *TemplateController) GetAllTemplates(ctx *gin.Context) {
	templates, err := c.templateService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	out := make([]interface{}, 0, len(templates))
	for _, t := range templates {
		out = append(out, c.templateService.Present(t))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      out,
		Timestamp: time.Now(),
	})
}

// GetTemplateByID retrieves a template by ID
// @Summary Get template details
// @Description Retrieves one certificate template
// @Tags templates
// @Produce json
// @Param id path int true "Template ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.CertificateTemplate} "Template retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid template ID format"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /templates/{id} [get]
func (c *TemplateController) GetTemplateByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	template, err := c.templateService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.templateService.Present(template),
		Timestamp: time.Now(),
	})
}

// UpdateTemplate handles template updates
// @Summary Update a certificate template
// @Description Rewrites a template and optionally replaces its background image
// @Tags templates
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Template ID" Format(int64) minimum(1)
// @Param name formData string true "Template name"
// @Param font formData string false "Font family"
// @Param titleFontSize formData int false "Title font size"
// @Param bodyFontSize formData int false "Body font size"
// @Param textColor formData string false "Text color (#RRGGBB)"
// @Param qrPosition formData string false "Code position" Enums(top_left, top_right, bottom_left, bottom_right)
// @Param background formData file false "Background image"
// @Success 200 {object} dto.APIResponse{data=models.CertificateTemplate} "Template updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /templates/{id} [put]
func (c *TemplateController) UpdateTemplate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var form dto.TemplateForm
	if err := ctx.ShouldBind(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid template data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	background, _ := ctx.FormFile("background")

	template, err := c.templateService.Update(ctx, id, &form, background)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.templateService.Present(template),
		Timestamp: time.Now(),
	})
}

// DeleteTemplate handles template deletion
// @Summary Delete a certificate template
// @Description Removes a template; student references are nullified, not cascaded
// @Tags templates
// @Produce json
// @Param id path int true "Template ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Template deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid template ID format"
// @Failure 404 {object} dto.ErrorResponse "Template not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /templates/{id} [delete]
func (c *TemplateController) DeleteTemplate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.templateService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Template deleted successfully"},
		Timestamp: time.Now(),
	})
}
