package models

import "time"

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportJobState tracks an asynchronous schedule export.
type ExportJobState string

const (
	ExportQueued     ExportJobState = "QUEUED"
	ExportProcessing ExportJobState = "PROCESSING"
	ExportCompleted  ExportJobState = "COMPLETED"
	ExportFailed     ExportJobState = "FAILED"
)

// ExportJob describes one schedule export request and its outcome.
type ExportJob struct {
	ID                string         `json:"id"`
	Format            ExportFormat   `json:"format"`
	State             ExportJobState `json:"state"`
	FileName          string         `json:"-"`
	DownloadToken     string         `json:"download_token,omitempty"`
	DownloadExpiresAt *time.Time     `json:"download_expires_at,omitempty"`
	Error             string         `json:"error,omitempty"`
	RequestedBy       string         `json:"requested_by"`
	CreatedAt         time.Time      `json:"created_at"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
}
