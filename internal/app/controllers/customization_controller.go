package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/services"
	"github.com/certivo/backend/internal/middleware"
)

// CustomizationController handles the global code styling row
type CustomizationController struct {
	customizationService *services.CustomizationService
}

// NewCustomizationController creates a new CustomizationController
func NewCustomizationController(customizationService *services.CustomizationService) *CustomizationController {
	return &CustomizationController{
		customizationService: customizationService,
	}
}

// GetCustomization retrieves the styling in effect
// @Summary Get code styling
// @Description Retrieves the verification code styling in effect, defaults included
// @Tags customization
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.CodeCustomization} "Styling retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customization [get]
func (c *CustomizationController) GetCustomization(ctx *gin.Context) {
	cu, err := c.customizationService.Get(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.customizationService.Present(cu),
		Timestamp: time.Now(),
	})
}

// UpdateCustomization rewrites the styling row
// @Summary Update code styling
// @Description Updates colors and the optional logo applied to generated codes
// @Tags customization
// @Accept multipart/form-data
// @Produce json
// @Param foregroundColor formData string false "Foreground color (#RRGGBB)"
// @Param backgroundColor formData string false "Background color (#RRGGBB)"
// @Param logo formData file false "Logo image"
// @Success 200 {object} dto.APIResponse{data=models.CodeCustomization} "Styling updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customization [put]
func (c *CustomizationController) UpdateCustomization(ctx *gin.Context) {
	var form dto.CustomizationForm
	if err := ctx.ShouldBind(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid customization data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	logo, _ := ctx.FormFile("logo")

	cu, err := c.customizationService.Update(ctx, &form, logo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.customizationService.Present(cu),
		Timestamp: time.Now(),
	})
}
