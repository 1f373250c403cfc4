package extractor

import (
	"context"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

type domQuery struct {
	selector  string
	property  string
	firstOnly bool
}

// Checked in order; the first non-empty, non-ephemeral value wins.
var domVideoQueries = []domQuery{
	{selector: "video", property: "src", firstOnly: true},
	{selector: "video", property: "currentSrc", firstOnly: true},
	{selector: "video source", property: "src"},
	{selector: `meta[property="og:video"]`, property: "content", firstOnly: true},
	{selector: `meta[property="og:video:url"]`, property: "content", firstOnly: true},
}

// DOMStrategy reads video URLs from video elements and Open Graph tags
type DOMStrategy struct{}

// NewDOMStrategy creates a DOM strategy
func NewDOMStrategy() *DOMStrategy {
	return &DOMStrategy{}
}

// Name returns the strategy name
func (s *DOMStrategy) Name() string {
	return "dom"
}

// Extract queries the rendered document
func (s *DOMStrategy) Extract(ctx context.Context, page domain.Page, _ string) (*domain.MediaCandidate, error) {
	for _, q := range domVideoQueries {
		url, err := firstUsable(ctx, page, q)
		if err != nil {
			return nil, err
		}
		if url != "" {
			return &domain.MediaCandidate{URL: url, Kind: domain.MediaVideo}, nil
		}
	}
	return nil, nil
}

func firstUsable(ctx context.Context, page domain.Page, q domQuery) (string, error) {
	values, err := page.Properties(ctx, q.selector, q.property)
	if err != nil {
		return "", err
	}
	if q.firstOnly && len(values) > 1 {
		values = values[:1]
	}
	for _, v := range values {
		if v != "" && !domain.IsEphemeralURL(v) {
			return v, nil
		}
	}
	return "", nil
}
