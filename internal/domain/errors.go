package domain

import (
	"errors"
	"fmt"
)

// Error kinds reported in DownloadResult.Error
const (
	KindInvalidURL      = "INVALID_URL"
	KindNoMedia         = "NO_MEDIA"
	KindDownloadTimeout = "DOWNLOAD_TIMEOUT"
)

var (
	// ErrInvalidURL is returned for input that is not a pin URL
	ErrInvalidURL = &MediaError{Kind: KindInvalidURL, Err: errors.New("Invalid Pinterest URL")}

	// ErrNoMedia is returned when neither a video nor an image was found
	ErrNoMedia = &MediaError{Kind: KindNoMedia, Err: errors.New("no video or image on this pin")}

	// ErrUnsupportedScheme is returned for media URLs that are not http or https
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")

	// ErrRecordNotFound is returned when a history record does not exist
	ErrRecordNotFound = errors.New("record not found")
)

// MediaError is an error carrying a stable kind
type MediaError struct {
	Kind string
	Err  error
}

func (e *MediaError) Error() string {
	if e.Err == nil {
		return e.Kind
	}
	return e.Err.Error()
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// Is matches any MediaError of the same kind
func (e *MediaError) Is(target error) bool {
	t, ok := target.(*MediaError)
	return ok && t.Kind == e.Kind
}

// NewHTTPStatusError returns the error for a non-200 media response
func NewHTTPStatusError(status int) *MediaError {
	return &MediaError{
		Kind: fmt.Sprintf("HTTP_%d", status),
		Err:  fmt.Errorf("HTTP %d", status),
	}
}

// NewTimeoutError returns the error for a transfer that exceeded its bound
func NewTimeoutError(err error) *MediaError {
	return &MediaError{
		Kind: KindDownloadTimeout,
		Err:  fmt.Errorf("download timeout: %w", err),
	}
}

// ErrorKindOf returns the kind of a MediaError in the chain, or the error message
func ErrorKindOf(err error) string {
	if err == nil {
		return ""
	}
	var mediaErr *MediaError
	if errors.As(err, &mediaErr) {
		return mediaErr.Kind
	}
	return err.Error()
}
