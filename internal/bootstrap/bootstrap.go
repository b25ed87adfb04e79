package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/certivo/backend/docs" // Import generated swagger docs
	appControllers "github.com/certivo/backend/internal/app/controllers"
	appMigrations "github.com/certivo/backend/internal/app/migrations"
	appRepos "github.com/certivo/backend/internal/app/repositories"
	appRoutes "github.com/certivo/backend/internal/app/routes"
	appServices "github.com/certivo/backend/internal/app/services"
	"github.com/certivo/backend/internal/config"
	"github.com/certivo/backend/internal/db"
	"github.com/certivo/backend/internal/pkg/filestorage"
	"github.com/certivo/backend/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService          *appServices.StudentService
	ImportService           *appServices.ImportService
	ExportService           *appServices.ExportService
	QRCodeService           *appServices.QRCodeService
	IssuerService           *appServices.IssuerService
	TemplateService         *appServices.TemplateService
	CustomizationService    *appServices.CustomizationService
	StudentController       *appControllers.StudentController
	ImportController        *appControllers.ImportController
	ExportController        *appControllers.ExportController
	IssuerController        *appControllers.IssuerController
	TemplateController      *appControllers.TemplateController
	CustomizationController *appControllers.CustomizationController
	VerificationController  *appControllers.VerificationController
	Repos                   *appRepos.Repositories
	FileStorage             *filestorage.LocalStorage
	Logger                  zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	// The content store is served statically under /uploads, so public URLs
	// are anchored there.
	fileStorageBaseURL := cfg.Server.BaseURL + "/uploads"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.QRCodeService = appServices.NewQRCodeService(deps.Repos.Customizations, deps.FileStorage, cfg.Server.BaseURL)
	deps.StudentService = appServices.NewStudentService(database, deps.Repos, deps.FileStorage, deps.QRCodeService)
	deps.ImportService = appServices.NewImportService(database, deps.Repos, deps.QRCodeService, cfg.Upload.MaxSizeBytes)
	deps.ExportService = appServices.NewExportService(deps.Repos.Students, deps.FileStorage, deps.QRCodeService)
	deps.IssuerService = appServices.NewIssuerService(deps.Repos, deps.FileStorage, deps.QRCodeService, cfg.Server.BaseURL)
	deps.TemplateService = appServices.NewTemplateService(deps.Repos, deps.FileStorage)
	deps.CustomizationService = appServices.NewCustomizationService(deps.Repos, deps.FileStorage)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.ImportController = appControllers.NewImportController(deps.ImportService)
	deps.ExportController = appControllers.NewExportController(deps.ExportService, deps.StudentService)
	deps.IssuerController = appControllers.NewIssuerController(deps.IssuerService)
	deps.TemplateController = appControllers.NewTemplateController(deps.TemplateService)
	deps.CustomizationController = appControllers.NewCustomizationController(deps.CustomizationService)
	deps.VerificationController = appControllers.NewVerificationController(deps.StudentService, deps.IssuerService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.ImportController,
		deps.ExportController,
		deps.IssuerController,
		deps.TemplateController,
		deps.CustomizationController,
		deps.VerificationController,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
