package domain

import (
	"context"
	"time"
)

// MediaFetcher streams a media URL to the downloads directory
type MediaFetcher interface {
	// Download writes url to filename inside the downloads directory
	Download(ctx context.Context, url, filename string, onProgress ProgressFunc) (*DownloadedFile, error)

	// Dir returns the downloads directory
	Dir() string
}

// DownloadedFile describes a fully written media file
type DownloadedFile struct {
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
	Size     int64  `json:"size"`
}

// MediaFile is a media file found in the downloads directory
type MediaFile struct {
	Filename string    `json:"filename"`
	Filepath string    `json:"filepath"`
	Size     string    `json:"size"`
	Bytes    int64     `json:"bytes"`
	Created  time.Time `json:"created"`
}
