package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/pin-extract-go/internal/domain"
	"go.uber.org/zap"
)

// PinDownloader runs one pin download to completion
type PinDownloader interface {
	Download(ctx context.Context, pinURL string, onProgress domain.ProgressFunc) *domain.DownloadResult
}

// DownloadHandler handles download-related HTTP requests
type DownloadHandler struct {
	service PinDownloader
	repo    domain.DownloadRepository
	logger  *zap.Logger
}

// NewDownloadHandler creates a new download handler.
// repo may be nil when history is disabled.
func NewDownloadHandler(service PinDownloader, repo domain.DownloadRepository, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		service: service,
		repo:    repo,
		logger:  logger,
	}
}

// AddDownloadRequest represents a request to download a pin
type AddDownloadRequest struct {
	URL string `json:"url" binding:"required"`
}

// AddDownload handles POST /api/v1/downloads
func (h *DownloadHandler) AddDownload(c *gin.Context) {
	var req AddDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.service.Download(c.Request.Context(), req.URL, nil)
	if !result.Success {
		h.logger.Warn("Pin download failed",
			zap.String("url", req.URL),
			zap.String("error", result.Error))
	}

	c.JSON(resultStatus(result), result)
}

// resultStatus maps a download result to its HTTP status
func resultStatus(result *domain.DownloadResult) int {
	switch {
	case result.Success:
		return http.StatusCreated
	case result.Error == domain.KindInvalidURL:
		return http.StatusBadRequest
	case result.Error == domain.KindNoMedia:
		return http.StatusNotFound
	case result.Error == domain.KindDownloadTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// ListDownloads handles GET /api/v1/downloads
func (h *DownloadHandler) ListDownloads(c *gin.Context) {
	if !h.historyEnabled(c) {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	records, err := h.repo.FindAll(limit)
	if err != nil {
		h.logger.Error("Failed to list downloads", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"downloads": records,
		"count":     len(records),
	})
}

// GetDownload handles GET /api/v1/downloads/:id
func (h *DownloadHandler) GetDownload(c *gin.Context) {
	if !h.historyEnabled(c) {
		return
	}

	record, err := h.repo.FindByID(c.Param("id"))
	if errors.Is(err, domain.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetStats handles GET /api/v1/downloads/stats
func (h *DownloadHandler) GetStats(c *gin.Context) {
	if !h.historyEnabled(c) {
		return
	}

	stats, err := h.repo.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DownloadHandler) historyEnabled(c *gin.Context) bool {
	if h.repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "download history is disabled"})
		return false
	}
	return true
}
