package extractor

import (
	"context"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

var imageQueries = []domQuery{
	{selector: `meta[property="og:image"]`, property: "content", firstOnly: true},
	{selector: "img", property: "src", firstOnly: true},
}

// ImageStrategy finds the pin image when no video is present
type ImageStrategy struct{}

// NewImageStrategy creates an image strategy
func NewImageStrategy() *ImageStrategy {
	return &ImageStrategy{}
}

// Name returns the strategy name
func (s *ImageStrategy) Name() string {
	return "image"
}

// Extract returns og:image, or the first img element's src
func (s *ImageStrategy) Extract(ctx context.Context, page domain.Page, _ string) (*domain.MediaCandidate, error) {
	for _, q := range imageQueries {
		url, err := firstUsable(ctx, page, q)
		if err != nil {
			return nil, err
		}
		if url != "" {
			return &domain.MediaCandidate{URL: url, Kind: domain.MediaImage}, nil
		}
	}
	return nil, nil
}
