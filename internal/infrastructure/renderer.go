package infrastructure

import (
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

// ClosableRenderer is a renderer that owns resources
type ClosableRenderer interface {
	domain.Renderer
	io.Closer
}

// NewRenderer creates the renderer selected by browser.engine
func NewRenderer(config *domain.Config, client *http.Client, logger *zap.Logger) (ClosableRenderer, error) {
	switch config.Browser.Engine {
	case domain.EngineStatic:
		return NewStaticRenderer(config, client, logger), nil
	case domain.EngineRod, "":
		r, err := NewRodRenderer(config.Browser, logger)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, fmt.Errorf("unknown rendering engine %q", config.Browser.Engine)
}
