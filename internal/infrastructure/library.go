package infrastructure

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

var mediaExtensions = map[string]bool{
	".mp4": true,
	".jpg": true,
}

// ListMediaFiles returns the media files in dir, newest first.
// A missing directory yields an empty list.
func ListMediaFiles(dir string) ([]*domain.MediaFile, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []*domain.MediaFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read downloads directory: %w", err)
	}

	files := make([]*domain.MediaFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !mediaExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files = append(files, &domain.MediaFile{
			Filename: entry.Name(),
			Filepath: filepath.Join(dir, entry.Name()),
			Size:     FormatFileSize(info.Size()),
			Bytes:    info.Size(),
			Created:  info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Created.After(files[j].Created)
	})
	return files, nil
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count in base-1024 units with at most two decimals
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[unit]
}
