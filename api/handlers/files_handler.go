package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/pin-extract-go/internal/app"
	"github.com/yourusername/pin-extract-go/internal/infrastructure"
	"go.uber.org/zap"
)

// RetentionSweeper removes expired downloads
type RetentionSweeper interface {
	RunOnce(ctx context.Context) (*app.SweepReport, error)
	IsRunning() bool
}

// FilesHandler serves the contents of the downloads directory
type FilesHandler struct {
	dir     string
	sweeper RetentionSweeper
	logger  *zap.Logger
}

// NewFilesHandler creates a new files handler
func NewFilesHandler(dir string, sweeper RetentionSweeper, logger *zap.Logger) *FilesHandler {
	return &FilesHandler{
		dir:     dir,
		sweeper: sweeper,
		logger:  logger,
	}
}

// ListFiles handles GET /api/v1/files
func (h *FilesHandler) ListFiles(c *gin.Context) {
	files, err := infrastructure.ListMediaFiles(h.dir)
	if err != nil {
		h.logger.Error("Failed to list media files", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files": files,
		"count": len(files),
	})
}

// Cleanup handles POST /api/v1/files/cleanup
func (h *FilesHandler) Cleanup(c *gin.Context) {
	report, err := h.sweeper.RunOnce(c.Request.Context())
	if report == nil {
		h.logger.Error("Cleanup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"removed": report.Removed,
		"kept":    report.Kept,
	}
	if err != nil {
		h.logger.Warn("Cleanup finished with errors", zap.Error(err))
		response["error"] = err.Error()
	}
	c.JSON(http.StatusOK, response)
}
