package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaKind represents the kind of asset recovered from a pin
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaImage MediaKind = "image"
)

// Title returns the display title used in results
func (k MediaKind) Title() string {
	if k == MediaImage {
		return "Pinterest Image"
	}
	return "Pinterest Video"
}

// Extension returns the file extension for the kind
func (k MediaKind) Extension() string {
	if k == MediaImage {
		return ".jpg"
	}
	return ".mp4"
}

// MediaCandidate is a media URL recovered by an extraction strategy
type MediaCandidate struct {
	URL         string    `json:"url"`
	Kind        MediaKind `json:"kind"`
	QualityRank int       `json:"quality_rank,omitempty"`
	Filename    string    `json:"filename,omitempty"`
}

// IsEphemeralURL reports whether a URL only lives inside the page that produced it.
func IsEphemeralURL(u string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(u)), "blob:")
}

// Result messages
const (
	MessageVideoSuccess = "Video download success"
	MessageImageSuccess = "Image download success"
	MessageNoMedia      = "No video or image on this pin"
)

// DownloadResult is the outcome of a single pin download
type DownloadResult struct {
	Success  bool      `json:"success"`
	Type     MediaKind `json:"type,omitempty"`
	Filename string    `json:"filename,omitempty"`
	Filepath string    `json:"filepath,omitempty"`
	MediaURL string    `json:"mediaUrl,omitempty"`
	Title    string    `json:"title,omitempty"`
	Message  string    `json:"message"`
	Error    string    `json:"error,omitempty"`
}

// NewSuccessResult builds the success shape for a downloaded candidate
func NewSuccessResult(candidate *MediaCandidate, file *DownloadedFile) *DownloadResult {
	message := MessageVideoSuccess
	if candidate.Kind == MediaImage {
		message = MessageImageSuccess
	}
	return &DownloadResult{
		Success:  true,
		Type:     candidate.Kind,
		Filename: file.Filename,
		Filepath: file.Filepath,
		MediaURL: candidate.URL,
		Title:    candidate.Kind.Title(),
		Message:  message,
	}
}

// NewFailureResult builds the failure shape for an error
func NewFailureResult(err error) *DownloadResult {
	kind := ErrorKindOf(err)
	if kind == KindNoMedia {
		return &DownloadResult{Message: MessageNoMedia, Error: kind}
	}
	return &DownloadResult{
		Message: "Error downloading: " + err.Error(),
		Error:   kind,
	}
}

// DownloadProgress is reported for every chunk written to disk
type DownloadProgress struct {
	BytesReceived int64
	TotalBytes    int64 // -1 when the server sent no Content-Length
}

// Percent returns the completed percentage, or -1 when the total is unknown
func (p DownloadProgress) Percent() float64 {
	if p.TotalBytes <= 0 {
		return -1
	}
	return float64(p.BytesReceived) * 100 / float64(p.TotalBytes)
}

// ProgressFunc receives download progress updates
type ProgressFunc func(DownloadProgress)

// DownloadRecord is the persisted history entry of one invocation
type DownloadRecord struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	PinURL       string    `json:"pin_url" gorm:"not null;index"`
	Success      bool      `json:"success" gorm:"index"`
	Type         MediaKind `json:"type,omitempty"`
	MediaURL     string    `json:"media_url,omitempty"`
	Filename     string    `json:"filename,omitempty"`
	FilePath     string    `json:"file_path,omitempty" gorm:"index"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// NewDownloadRecord creates a history record from a result
func NewDownloadRecord(pinURL string, result *DownloadResult) *DownloadRecord {
	record := &DownloadRecord{
		ID:        uuid.New().String(),
		PinURL:    pinURL,
		Success:   result.Success,
		Type:      result.Type,
		MediaURL:  result.MediaURL,
		Filename:  result.Filename,
		FilePath:  result.Filepath,
		CreatedAt: time.Now(),
	}
	if !result.Success {
		record.ErrorKind = result.Error
		record.ErrorMessage = result.Message
	}
	return record
}
