package models

import "time"

// Audit actions emitted by the export pipeline.
const (
	ActionExportCasePDF  = "EXPORT_CASE_PDF"
	ActionExportCaseDocx = "EXPORT_CASE_DOCX"
)

// Resource types referenced by audit entries.
const (
	ResourceTypeCase = "CASE"
)

// AuditLog represents one recorded user action.
type AuditLog struct {
	ID           string `db:"id" json:"id"` // UUID v4
	UserID       int64  `db:"user_id" json:"user_id"`
	Action       string `db:"action" json:"action"`
	ResourceType string `db:"resource_type" json:"resource_type"`
	ResourceID   int64  `db:"resource_id" json:"resource_id"`
	Details      string `db:"details" json:"details"` // JSON object
	CreatedAt    int64  `db:"created_at" json:"created_at"`
}

// TableName returns the table name for AuditLog.
func (AuditLog) TableName() string {
	return "audit_logs"
}

// CreatedAtTime returns CreatedAt as time.Time.
func (a *AuditLog) CreatedAtTime() time.Time {
	return time.Unix(a.CreatedAt, 0)
}
