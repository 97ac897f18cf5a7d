// Package db provides repository interfaces for caseport data models.
package db

import (
	"caseport/internal/models"
)

// CaseRepository defines operations for case persistence.
// The export pipeline depends on these interfaces, not on *Repository,
// so tests can substitute mocks.
type CaseRepository interface {
	// CreateCase creates a new case.
	CreateCase(c *models.Case) error

	// GetCase retrieves a case by ID.
	GetCase(id int64) (*models.Case, error)

	// ListCasesByUser returns all cases owned by a user.
	ListCasesByUser(userID int64) ([]*models.Case, error)
}

// EvidenceRepository defines operations for evidence persistence.
type EvidenceRepository interface {
	// CreateEvidence creates a new evidence item.
	CreateEvidence(e *models.Evidence) error

	// ListEvidenceByCase returns all evidence for a case.
	ListEvidenceByCase(caseID int64) ([]*models.Evidence, error)
}

// DeadlineRepository defines operations for deadline persistence.
type DeadlineRepository interface {
	// CreateDeadline creates a new deadline.
	CreateDeadline(d *models.Deadline) error

	// ListDeadlinesByCase returns all deadlines for a case.
	ListDeadlinesByCase(caseID int64) ([]*models.Deadline, error)
}

// NoteRepository defines operations for note persistence.
type NoteRepository interface {
	// CreateNote creates a new note.
	CreateNote(n *models.Note) error

	// ListNotesByCase returns all notes for a case.
	ListNotesByCase(caseID int64) ([]*models.Note, error)
}

// DocumentRepository defines operations for document persistence.
type DocumentRepository interface {
	// CreateDocument creates a new document record.
	CreateDocument(d *models.Document) error

	// ListDocumentsByCase returns all documents for a case.
	ListDocumentsByCase(caseID int64) ([]*models.Document, error)
}

// UserRepository defines operations for user lookup.
type UserRepository interface {
	// CreateUser creates a new user.
	CreateUser(u *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(id int64) (*models.User, error)
}

// AuditLogRepository defines operations for audit log persistence.
type AuditLogRepository interface {
	// CreateAuditLog appends one audit entry.
	CreateAuditLog(entry *models.AuditLog) error

	// ListAuditLogsByUser returns audit entries for a user, newest first.
	ListAuditLogsByUser(userID int64, limit int) ([]*models.AuditLog, error)
}

// ExportRepository groups the repositories the export pipeline reads from.
type ExportRepository interface {
	CaseRepository
	EvidenceRepository
	DeadlineRepository
	NoteRepository
	DocumentRepository
	UserRepository
}

// Ensure *Repository implements the interfaces at compile time.
var (
	_ CaseRepository     = (*Repository)(nil)
	_ EvidenceRepository = (*Repository)(nil)
	_ DeadlineRepository = (*Repository)(nil)
	_ NoteRepository     = (*Repository)(nil)
	_ DocumentRepository = (*Repository)(nil)
	_ UserRepository     = (*Repository)(nil)
	_ AuditLogRepository = (*Repository)(nil)
	_ ExportRepository   = (*Repository)(nil)
)
