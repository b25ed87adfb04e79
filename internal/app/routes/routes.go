package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/certivo/backend/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	importController *controllers.ImportController,
	exportController *controllers.ExportController,
	issuerController *controllers.IssuerController,
	templateController *controllers.TemplateController,
	customizationController *controllers.CustomizationController,
	verificationController *controllers.VerificationController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Student routes, bulk operations included
	students := v1.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.POST("", studentController.CreateStudent)
		students.GET("/sample-csv", importController.DownloadSampleCSV)
		students.POST("/import", importController.UploadCSV)
		students.GET("/import/batches", importController.GetUploadBatches)
		students.GET("/export", exportController.DownloadQRCodes)
		students.POST("/regenerate-codes", exportController.RegenerateAllCodes)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	// Issuer routes
	issuers := v1.Group("/issuers")
	{
		issuers.GET("", issuerController.GetAllIssuers)
		issuers.POST("", issuerController.CreateIssuer)
		issuers.GET("/:id", issuerController.GetIssuerByID)
		issuers.GET("/:id/students", issuerController.GetIssuerStudents)
		issuers.PUT("/:id", issuerController.UpdateIssuer)
		issuers.DELETE("/:id", issuerController.DeleteIssuer)
	}

	// Certificate template routes
	templates := v1.Group("/templates")
	{
		templates.GET("", templateController.GetAllTemplates)
		templates.POST("", templateController.CreateTemplate)
		templates.GET("/:id", templateController.GetTemplateByID)
		templates.PUT("/:id", templateController.UpdateTemplate)
		templates.DELETE("/:id", templateController.DeleteTemplate)
	}

	// Code styling routes
	customization := v1.Group("/customization")
	{
		customization.GET("", customizationController.GetCustomization)
		customization.PUT("", customizationController.UpdateCustomization)
	}

	// Public verification routes, reachable without the /api prefix because
	// generated codes embed these exact paths. Codes and issuer tokens carry
	// trailing-slash URLs, so both spellings are served without a redirect.
	certificate := router.Group("/certificate")
	{
		certificate.GET("/student-qr-info/:id", verificationController.StudentQRInfo)
		certificate.GET("/student-qr-info/:id/", verificationController.StudentQRInfo)
		certificate.GET("/verify/:id", verificationController.VerifyStudent)
		certificate.GET("/verify-issuer/:uuid", verificationController.VerifyIssuer)
		certificate.GET("/verify-issuer/:uuid/", verificationController.VerifyIssuer)
	}
}
