package models

import "time"

// Note represents a free-form note on a case.
type Note struct {
	ID        int64   `db:"id" json:"id"`
	CaseID    int64   `db:"case_id" json:"case_id"`
	Title     *string `db:"title" json:"title"`     // encrypted at rest, nullable
	Content   string  `db:"content" json:"content"` // encrypted at rest
	CreatedAt int64   `db:"created_at" json:"created_at"`
}

// TableName returns the table name for Note.
func (Note) TableName() string {
	return "notes"
}

// CreatedAtTime returns CreatedAt as time.Time.
func (n *Note) CreatedAtTime() time.Time {
	return time.Unix(n.CreatedAt, 0)
}
