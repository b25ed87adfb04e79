package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/certivo/backend/internal/app/controllers"
)

func TestVerificationRoutesServeEmbeddedURLs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupRouter(router,
		controllers.NewStudentController(nil),
		controllers.NewImportController(nil),
		controllers.NewExportController(nil, nil),
		controllers.NewIssuerController(nil),
		controllers.NewTemplateController(nil),
		controllers.NewCustomizationController(nil),
		controllers.NewVerificationController(nil, nil),
	)

	paths := map[string]bool{}
	for _, r := range router.Routes() {
		if r.Method == "GET" {
			paths[r.Path] = true
		}
	}

	// Generated codes and issuer tokens embed trailing-slash URLs; both
	// spellings must resolve directly, not through a redirect.
	assert.True(t, paths["/certificate/student-qr-info/:id"])
	assert.True(t, paths["/certificate/student-qr-info/:id/"])
	assert.True(t, paths["/certificate/verify/:id"])
	assert.True(t, paths["/certificate/verify-issuer/:uuid"])
	assert.True(t, paths["/certificate/verify-issuer/:uuid/"])
}
