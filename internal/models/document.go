package models

import "time"

// Document represents an uploaded file attached to a case.
type Document struct {
	ID          int64   `db:"id" json:"id"`
	CaseID      int64   `db:"case_id" json:"case_id"`
	FileName    string  `db:"file_name" json:"file_name"`     // encrypted at rest
	FilePath    string  `db:"file_path" json:"file_path"`     // encrypted at rest
	Description *string `db:"description" json:"description"` // encrypted at rest, nullable
	UploadedAt  int64   `db:"uploaded_at" json:"uploaded_at"`
}

// TableName returns the table name for Document.
func (Document) TableName() string {
	return "documents"
}

// UploadedAtTime returns UploadedAt as time.Time.
func (d *Document) UploadedAtTime() time.Time {
	return time.Unix(d.UploadedAt, 0)
}
