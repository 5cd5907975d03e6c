package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vidgrab/vidgrab/config"
	"github.com/vidgrab/vidgrab/database"
	"github.com/vidgrab/vidgrab/extractor"
	"github.com/vidgrab/vidgrab/handlers"
	"github.com/vidgrab/vidgrab/services"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize history database (optional)
	if err := database.Init(config.AppConfig.DatabaseURL); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Register extractors by URL predicate
	registry := extractor.NewRegistry()
	registry.Register(extractor.IsYouTubeURL, extractor.NewYouTube(config.AppConfig.AbsOngoingDir))
	registry.Register(extractor.IsYtDlpURL, extractor.NewYtDlp(config.AppConfig.AbsOngoingDir))

	// Initialize services
	store := services.NewJobStore()
	coordinator := services.NewCoordinator(store, registry, config.AppConfig.AbsCompletedDir, config.AppConfig.Retention)
	defer coordinator.Close()

	storageService := services.NewStorageService(config.AppConfig.AbsCompletedDir)

	// Initialize handlers
	infoHandler := handlers.NewInfoHandler(registry)
	downloadHandler := handlers.NewDownloadHandler(coordinator)
	progressHandler := handlers.NewProgressHandler(coordinator)
	fileHandler := handlers.NewFileHandler(coordinator, storageService)
	historyHandler := handlers.NewHistoryHandler(store)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.POST("/get_video_info", infoHandler.Handle)
	e.POST("/download", downloadHandler.Handle)
	e.GET("/download_progress/:id", progressHandler.Handle)
	e.GET("/download_file/:id", fileHandler.Handle)

	e.GET("/api/downloads", historyHandler.Recent)
	e.GET("/api/history", historyHandler.Persisted)

	log.Fatal(e.Start(":" + config.AppConfig.Port))
}
