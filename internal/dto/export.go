package dto

// CreateExportRequest enqueues a schedule export job.
type CreateExportRequest struct {
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportDownload carries the signed link for a completed export.
type ExportDownload struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
