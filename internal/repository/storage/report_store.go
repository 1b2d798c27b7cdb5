package storage

import "context"

// ReportStore archives generated report files
type ReportStore interface {
	// Upload stores the report bytes under objectPath and returns the stored path
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}
