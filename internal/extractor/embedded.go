package extractor

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

const embeddedDataSelector = `script[type="application/json"]`

var mp4Pattern = regexp.MustCompile(`\.mp4(\?|$)`)

// Rendition keys of a video_list, best first. Unknown keys rank 0.
var qualityRanks = map[string]int{
	"V_720P": 4,
	"V_480P": 3,
	"V_360P": 2,
	"V_240P": 1,
}

// EmbeddedDataStrategy searches the JSON blocks embedded in the page
type EmbeddedDataStrategy struct {
	logger *zap.Logger
}

// NewEmbeddedDataStrategy creates an embedded data strategy
func NewEmbeddedDataStrategy(logger *zap.Logger) *EmbeddedDataStrategy {
	return &EmbeddedDataStrategy{logger: logger}
}

// Name returns the strategy name
func (s *EmbeddedDataStrategy) Name() string {
	return "embedded-data"
}

// Extract parses every JSON script block in order; malformed blocks are skipped
func (s *EmbeddedDataStrategy) Extract(ctx context.Context, page domain.Page, _ string) (*domain.MediaCandidate, error) {
	blocks, err := page.TextContents(ctx, embeddedDataSelector)
	if err != nil {
		return nil, err
	}

	for i, block := range blocks {
		doc, err := ParseValue([]byte(block))
		if err != nil {
			s.logger.Debug("Skipping unparsable JSON block", zap.Int("index", i), zap.Error(err))
			continue
		}
		if candidate := FindVideo(doc); candidate != nil {
			return candidate, nil
		}
	}
	return nil, nil
}

// FindVideo searches a decoded document for a video URL.
// At each node it checks, in order: the node itself as an .mp4 string, an
// .mp4 "url" field, "video_url", "videoUrl", then a "videos" quality map.
// Otherwise children are visited in document order.
func FindVideo(v *Value) *domain.MediaCandidate {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case StringValue:
		if mp4Pattern.MatchString(v.String) {
			return usableCandidate(v.String, 0)
		}

	case ArrayValue:
		for _, item := range v.Items {
			if c := FindVideo(item); c != nil {
				return c
			}
		}

	case ObjectValue:
		if u := v.StringField("url"); mp4Pattern.MatchString(u) {
			if c := usableCandidate(u, 0); c != nil {
				return c
			}
		}
		for _, key := range []string{"video_url", "videoUrl"} {
			if c := usableCandidate(v.StringField(key), 0); c != nil {
				return c
			}
		}
		if videos := v.Field("videos"); videos.IsContainer() {
			list := videos.Field("video_list")
			if !list.IsContainer() {
				list = videos
			}
			if c := bestRendition(list); c != nil {
				return c
			}
		}
		for _, m := range v.Members {
			if c := FindVideo(m.Value); c != nil {
				return c
			}
		}
	}

	return nil
}

// bestRendition picks the highest ranked entry; ties keep document order
func bestRendition(list *Value) *domain.MediaCandidate {
	var best *Value
	bestRank := -1

	switch list.Kind {
	case ObjectValue:
		for _, m := range list.Members {
			if rank := QualityRank(m.Key); rank > bestRank {
				best, bestRank = m.Value, rank
			}
		}
	case ArrayValue:
		if len(list.Items) > 0 {
			best, bestRank = list.Items[0], 0
		}
	}

	if best == nil {
		return nil
	}
	return usableCandidate(best.StringField("url"), bestRank)
}

// QualityRank returns the rank of a rendition key, 0 when unknown
func QualityRank(key string) int {
	return qualityRanks[key]
}

func usableCandidate(url string, rank int) *domain.MediaCandidate {
	if url == "" || domain.IsEphemeralURL(url) {
		return nil
	}
	return &domain.MediaCandidate{URL: url, Kind: domain.MediaVideo, QualityRank: rank}
}
