// Package models provides data model definitions for the caseport backend.
//
// Columns marked "encrypted at rest" hold base64 AES-GCM ciphertext as
// produced by internal/crypto; they are only ever decrypted inside the
// export aggregator, immediately before rendering.
package models

import "time"

// Case statuses.
const (
	CaseStatusOpen     = "open"
	CaseStatusPending  = "pending"
	CaseStatusClosed   = "closed"
	CaseStatusArchived = "archived"
)

// Case represents a legal case owned by a single user.
type Case struct {
	ID          int64   `db:"id" json:"id"`
	UserID      int64   `db:"user_id" json:"user_id"`
	Title       string  `db:"title" json:"title"`             // encrypted at rest
	Description *string `db:"description" json:"description"` // encrypted at rest, nullable
	Status      string  `db:"status" json:"status"`
	CaseNumber  string  `db:"case_number" json:"case_number"`
	CreatedAt   int64   `db:"created_at" json:"created_at"`
	UpdatedAt   int64   `db:"updated_at" json:"updated_at"`
}

// TableName returns the table name for Case.
func (Case) TableName() string {
	return "cases"
}

// CreatedAtTime returns CreatedAt as time.Time.
func (c *Case) CreatedAtTime() time.Time {
	return time.Unix(c.CreatedAt, 0)
}

// UpdatedAtTime returns UpdatedAt as time.Time.
func (c *Case) UpdatedAtTime() time.Time {
	return time.Unix(c.UpdatedAt, 0)
}

// Touch updates the UpdatedAt timestamp.
func (c *Case) Touch() {
	c.UpdatedAt = time.Now().Unix()
}
