package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/api/handlers"
	"github.com/yourusername/pin-extract-go/api/middleware"
	"github.com/yourusername/pin-extract-go/internal/domain"
	"github.com/yourusername/pin-extract-go/pkg/logger"
)

// RouterDeps holds everything the HTTP routes are served from
type RouterDeps struct {
	Service      handlers.PinDownloader
	Repo         domain.DownloadRepository // nil when history is disabled
	Sweeper      handlers.RetentionSweeper
	DownloadsDir string
	LogsDir      string
	Logger       *zap.Logger
	Events       *logger.MultiLogger
}

// SetupRouter sets up the HTTP router
func SetupRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger, deps.Events))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(deps.Sweeper)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		downloadHandler := handlers.NewDownloadHandler(deps.Service, deps.Repo, deps.Logger)
		downloads := v1.Group("/downloads")
		{
			downloads.POST("", downloadHandler.AddDownload)
			downloads.GET("", downloadHandler.ListDownloads)
			downloads.GET("/stats", downloadHandler.GetStats)
			downloads.GET("/:id", downloadHandler.GetDownload)
		}

		filesHandler := handlers.NewFilesHandler(deps.DownloadsDir, deps.Sweeper, deps.Logger)
		files := v1.Group("/files")
		{
			files.GET("", filesHandler.ListFiles)
			files.POST("/cleanup", filesHandler.Cleanup)
		}

		logHandler := handlers.NewLogHandler(deps.LogsDir)
		logs := v1.Group("/logs")
		{
			logs.GET("/categories", logHandler.GetCategories)
			logs.GET("/:category", logHandler.GetLogs)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
