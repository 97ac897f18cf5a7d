package models

import "time"

// Evidence types.
const (
	EvidenceTypeDocument   = "document"
	EvidenceTypePhoto      = "photo"
	EvidenceTypeRecording  = "recording"
	EvidenceTypeTestimony  = "testimony"
	EvidenceTypePhysical   = "physical"
)

// Evidence represents a single evidence item attached to a case.
type Evidence struct {
	ID           int64   `db:"id" json:"id"`
	CaseID       int64   `db:"case_id" json:"case_id"`
	Title        string  `db:"title" json:"title"`          // encrypted at rest
	EvidenceType string  `db:"evidence_type" json:"evidence_type"`
	FilePath     *string `db:"file_path" json:"file_path"` // encrypted at rest, nullable
	ObtainedDate *int64  `db:"obtained_date" json:"obtained_date"`
	Content      *string `db:"content" json:"content"`
	Status       string  `db:"status" json:"status"`
	CreatedAt    int64   `db:"created_at" json:"created_at"`
}

// TableName returns the table name for Evidence.
func (Evidence) TableName() string {
	return "evidence"
}

// ObtainedDateTime returns ObtainedDate as time.Time, or the zero time.
func (e *Evidence) ObtainedDateTime() time.Time {
	if e.ObtainedDate == nil {
		return time.Time{}
	}
	return time.Unix(*e.ObtainedDate, 0)
}
