package domain

// DownloadRepository defines the interface for download history persistence
type DownloadRepository interface {
	// Create stores a new record
	Create(record *DownloadRecord) error

	// FindByID finds a record by ID
	FindByID(id string) (*DownloadRecord, error)

	// FindAll returns the most recent records, newest first; limit <= 0 returns all
	FindAll(limit int) ([]*DownloadRecord, error)

	// DeleteByFilePath removes records pointing at a file that no longer exists
	DeleteByFilePath(path string) (int64, error)

	// GetStats returns history statistics
	GetStats() (*DownloadStats, error)
}

// DownloadStats represents download history statistics
type DownloadStats struct {
	Total     int64 `json:"total"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	Videos    int64 `json:"videos"`
	Images    int64 `json:"images"`
}
