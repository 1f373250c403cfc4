package extractor

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

// Strategy recovers a media URL from a rendered pin page.
// A nil candidate with a nil error means the strategy found nothing.
type Strategy interface {
	// Name identifies the strategy in logs and errors
	Name() string

	// Extract looks for a media candidate
	Extract(ctx context.Context, page domain.Page, pinURL string) (*domain.MediaCandidate, error)
}

// Chain runs strategies in order and stops at the first usable candidate
type Chain struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewChain creates a chain over the given strategies
func NewChain(logger *zap.Logger, strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		logger:     logger,
	}
}

// NewVideoChain creates the DOM, embedded data and raw HTML chain
func NewVideoChain(config *domain.Config, client *http.Client, logger *zap.Logger) *Chain {
	return NewChain(logger,
		NewDOMStrategy(),
		NewEmbeddedDataStrategy(logger),
		NewRawHTMLStrategy(client, config.Browser.UserAgent, config.Fallback, logger),
	)
}

// Strategies returns the names of the strategies in execution order
func (c *Chain) Strategies() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Extract returns the first non-ephemeral candidate, or nil when no strategy found one
func (c *Chain) Extract(ctx context.Context, page domain.Page, pinURL string) (*domain.MediaCandidate, error) {
	for _, strategy := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate, err := strategy.Extract(ctx, page, pinURL)
		if err != nil {
			return nil, fmt.Errorf("%s strategy failed: %w", strategy.Name(), err)
		}

		if candidate == nil || candidate.URL == "" {
			c.logger.Debug("Strategy found nothing", zap.String("strategy", strategy.Name()))
			continue
		}
		if domain.IsEphemeralURL(candidate.URL) {
			c.logger.Debug("Ignoring ephemeral media URL",
				zap.String("strategy", strategy.Name()),
				zap.String("url", candidate.URL))
			continue
		}

		if candidate.Kind == "" {
			candidate.Kind = domain.MediaVideo
		}
		c.logger.Info("Media URL found",
			zap.String("strategy", strategy.Name()),
			zap.String("kind", string(candidate.Kind)),
			zap.String("url", candidate.URL))
		return candidate, nil
	}

	return nil, nil
}
