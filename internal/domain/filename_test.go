package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	video := GenerateFilename(MediaVideo, now)
	assert.Regexp(t, regexp.MustCompile(`^pinterest_video_1700000000123_[0-9a-z]{6}\.mp4$`), video)

	image := GenerateFilename(MediaImage, now)
	assert.Regexp(t, regexp.MustCompile(`^pinterest_image_1700000000123_[0-9a-z]{6}\.jpg$`), image)
}

func TestGenerateFilename_DistinctWithinSameMillisecond(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	seen := make(map[string]struct{}, 100)

	for i := 0; i < 100; i++ {
		seen[GenerateFilename(MediaVideo, now)] = struct{}{}
	}

	// 36^6 tokens; a collision among 100 draws is vanishingly unlikely
	assert.Len(t, seen, 100)
}
