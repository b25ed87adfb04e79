package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/certivo/backend/internal/app/models/dto"
	"github.com/certivo/backend/internal/app/services"
	"github.com/certivo/backend/internal/middleware"
	"github.com/certivo/backend/internal/pkg/logger"
)

// ExportController handles bulk downloads and code regeneration
type ExportController struct {
	exportService  *services.ExportService
	studentService *services.StudentService
}

// NewExportController creates a new ExportController
func NewExportController(exportService *services.ExportService, studentService *services.StudentService) *ExportController {
	return &ExportController{
		exportService:  exportService,
		studentService: studentService,
	}
}

// DownloadQRCodes streams the export archive
// @Summary Download all verification codes
// @Description Streams a zip with every student's code image plus a summary CSV
// @Tags export
// @Produce application/zip
// @Success 200 {file} binary "Zip archive"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/export [get]
func (c *ExportController) DownloadQRCodes(ctx *gin.Context) {
	ctx.Header("Content-Type", "application/zip")
	ctx.Header("Content-Disposition", `attachment; filename="qr_codes.zip"`)
	ctx.Status(http.StatusOK)

	if err := c.exportService.BuildArchive(ctx, ctx.Writer); err != nil {
		// Headers are already on the wire; the truncated stream is all we
		// can signal to the client.
		logger.Error().Err(err).Msg("Export archive build failed")
	}
}

// RegenerateAllCodes rebuilds every student's code image
// @Summary Regenerate all verification codes
// @Description Rebuilds the code image of every student, overwriting prior artifacts
// @Tags export
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RegenerateResponse} "Regeneration finished"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/regenerate-codes [post]
func (c *ExportController) RegenerateAllCodes(ctx *gin.Context) {
	resp, err := c.studentService.RegenerateAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
