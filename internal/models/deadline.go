package models

import "time"

// Deadline priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Deadline statuses.
const (
	DeadlineStatusUpcoming  = "upcoming"
	DeadlineStatusCompleted = "completed"
	DeadlineStatusOverdue   = "overdue"
)

// Deadline represents a dated obligation on a case. Deadlines double as
// timeline events in exports.
type Deadline struct {
	ID          int64   `db:"id" json:"id"`
	CaseID      int64   `db:"case_id" json:"case_id"`
	Title       string  `db:"title" json:"title"`             // encrypted at rest
	Description *string `db:"description" json:"description"` // encrypted at rest, nullable
	DueDate     int64   `db:"due_date" json:"due_date"`
	Priority    string  `db:"priority" json:"priority"`
	Status      string  `db:"status" json:"status"`
	CreatedAt   int64   `db:"created_at" json:"created_at"`
}

// TableName returns the table name for Deadline.
func (Deadline) TableName() string {
	return "deadlines"
}

// DueDateTime returns DueDate as time.Time.
func (d *Deadline) DueDateTime() time.Time {
	return time.Unix(d.DueDate, 0)
}

// IsCompleted reports whether the deadline has been completed.
func (d *Deadline) IsCompleted() bool {
	return d.Status == DeadlineStatusCompleted
}
