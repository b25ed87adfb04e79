package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/services"
	"github.com/certivo/backend/internal/middleware"
)

// ImportController handles bulk CSV imports
type ImportController struct {
	importService *services.ImportService
}

// NewImportController creates a new ImportController
func NewImportController(importService *services.ImportService) *ImportController {
	return &ImportController{
		importService: importService,
	}
}

// UploadCSV runs a bulk import over an uploaded file
// @Summary Bulk import students from CSV
// @Description Imports student records from a CSV file and reports per-row outcomes
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file (max 5 MiB)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportReport} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Missing file, wrong type, oversized or undecodable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/import [post]
func (c *ImportController) UploadCSV(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing file")
		errorDetail = errorDetail.WithDetails("Request must carry one CSV file in the 'file' field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	report, err := c.importService.ImportCSV(ctx, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      report,
		Timestamp: time.Now(),
	})
}

// DownloadSampleCSV serves the import template file
// @Summary Download the sample CSV
// @Description Serves the expected import header with one example row
// @Tags import
// @Produce text/csv
// @Success 200 {string} string "CSV template"
// @Router /students/sample-csv [get]
func (c *ImportController) DownloadSampleCSV(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="sample_students.csv"`)
	ctx.Data(http.StatusOK, "text/csv", c.importService.SampleCSV())
}

// GetUploadBatches lists past import runs
// @Summary List import batches
// @Description Retrieves the history of bulk imports, newest first
// @Tags import
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.UploadBatch} "Batches retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/import/batches [get]
func (c *ImportController) GetUploadBatches(ctx *gin.Context) {
	batches, err := c.importService.ListBatches(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      batches,
		Timestamp: time.Now(),
	})
}
