// Package audit records user actions for the case trail.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"caseport/internal/db"
	"caseport/internal/logging"
	"caseport/internal/models"
)

// Recorder is the capability the export pipeline depends on.
type Recorder interface {
	// LogAction records one user action. Implementations are best-effort:
	// a returned error means the entry was not persisted, but callers are
	// free to continue.
	LogAction(entry Entry) error
}

// Entry describes one auditable action.
type Entry struct {
	UserID       int64
	Action       string
	ResourceType string
	ResourceID   int64
	Details      map[string]interface{}
}

// Logger persists audit entries through an AuditLogRepository.
type Logger struct {
	repo db.AuditLogRepository
}

// NewLogger creates an audit Logger.
func NewLogger(repo db.AuditLogRepository) *Logger {
	return &Logger{repo: repo}
}

// LogAction records one user action. Details are stored as a JSON object;
// a nil map is stored as {}.
func (l *Logger) LogAction(entry Entry) error {
	details := "{}"
	if entry.Details != nil {
		data, err := json.Marshal(entry.Details)
		if err != nil {
			return err
		}
		details = string(data)
	}

	record := &models.AuditLog{
		ID:           uuid.New().String(),
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      details,
		CreatedAt:    time.Now().Unix(),
	}

	if err := l.repo.CreateAuditLog(record); err != nil {
		return err
	}

	logging.Info("audit action recorded", map[string]interface{}{
		"user_id":       entry.UserID,
		"action":        entry.Action,
		"resource_type": entry.ResourceType,
		"resource_id":   entry.ResourceID,
	})
	return nil
}

// Ensure *Logger implements Recorder at compile time.
var _ Recorder = (*Logger)(nil)
