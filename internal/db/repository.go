// Package db provides CRUD repository operations for caseport data models.
package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"caseport/internal/models"
)

// Repository provides CRUD operations for all models.
// Prepared statements are cached to avoid repeated SQL parsing overhead.
type Repository struct {
	db *sql.DB

	stmtCache sync.Map // map[string]*sql.Stmt
}

// NewRepository creates a new Repository instance.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db.DB}
}

// prepareStmt gets or creates a prepared statement from the cache.
func (r *Repository) prepareStmt(query string) (*sql.Stmt, error) {
	if stmt, ok := r.stmtCache.Load(query); ok {
		return stmt.(*sql.Stmt), nil
	}

	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}

	// If another goroutine already prepared this, close our duplicate
	actual, loaded := r.stmtCache.LoadOrStore(query, stmt)
	if loaded {
		stmt.Close()
		return actual.(*sql.Stmt), nil
	}

	return stmt, nil
}

// Close closes all cached prepared statements.
func (r *Repository) Close() error {
	var firstErr error
	r.stmtCache.Range(func(key, value interface{}) bool {
		stmt := value.(*sql.Stmt)
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// =====================================================
// Case Operations
// =====================================================

// CreateCase creates a new case.
func (r *Repository) CreateCase(c *models.Case) error {
	now := time.Now().Unix()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
	INSERT INTO cases (user_id, title, description, status, case_number, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.Exec(query, c.UserID, c.Title, c.Description, c.Status,
		c.CaseNumber, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return err
	}

	c.ID, err = res.LastInsertId()
	return err
}

// GetCase retrieves a case by ID.
func (r *Repository) GetCase(id int64) (*models.Case, error) {
	query := `
	SELECT id, user_id, title, description, status, case_number, created_at, updated_at
	FROM cases WHERE id = ?
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return nil, err
	}

	var c models.Case
	var description sql.NullString
	err = stmt.QueryRow(id).Scan(
		&c.ID, &c.UserID, &c.Title, &description, &c.Status,
		&c.CaseNumber, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		c.Description = &description.String
	}
	return &c, nil
}

// ListCasesByUser returns all cases owned by a user, newest first.
func (r *Repository) ListCasesByUser(userID int64) ([]*models.Case, error) {
	query := `
	SELECT id, user_id, title, description, status, case_number, created_at, updated_at
	FROM cases WHERE user_id = ? ORDER BY created_at DESC
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*models.Case
	for rows.Next() {
		var c models.Case
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &description, &c.Status,
			&c.CaseNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			c.Description = &description.String
		}
		cases = append(cases, &c)
	}
	return cases, rows.Err()
}

// =====================================================
// Evidence Operations
// =====================================================

// CreateEvidence creates a new evidence item.
func (r *Repository) CreateEvidence(e *models.Evidence) error {
	e.CreatedAt = time.Now().Unix()

	query := `
	INSERT INTO evidence (case_id, title, evidence_type, file_path, obtained_date, content, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.Exec(query, e.CaseID, e.Title, e.EvidenceType, e.FilePath,
		e.ObtainedDate, e.Content, e.Status, e.CreatedAt)
	if err != nil {
		return err
	}

	e.ID, err = res.LastInsertId()
	return err
}

// ListEvidenceByCase returns all evidence for a case, oldest first.
func (r *Repository) ListEvidenceByCase(caseID int64) ([]*models.Evidence, error) {
	query := `
	SELECT id, case_id, title, evidence_type, file_path, obtained_date, content, status, created_at
	FROM evidence WHERE case_id = ? ORDER BY created_at ASC
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Evidence
	for rows.Next() {
		var e models.Evidence
		var filePath, content sql.NullString
		var obtainedDate sql.NullInt64
		if err := rows.Scan(&e.ID, &e.CaseID, &e.Title, &e.EvidenceType, &filePath,
			&obtainedDate, &content, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		if filePath.Valid {
			e.FilePath = &filePath.String
		}
		if obtainedDate.Valid {
			e.ObtainedDate = &obtainedDate.Int64
		}
		if content.Valid {
			e.Content = &content.String
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}

// =====================================================
// Deadline Operations
// =====================================================

// CreateDeadline creates a new deadline.
func (r *Repository) CreateDeadline(d *models.Deadline) error {
	d.CreatedAt = time.Now().Unix()

	query := `
	INSERT INTO deadlines (case_id, title, description, due_date, priority, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.Exec(query, d.CaseID, d.Title, d.Description, d.DueDate,
		d.Priority, d.Status, d.CreatedAt)
	if err != nil {
		return err
	}

	d.ID, err = res.LastInsertId()
	return err
}

// ListDeadlinesByCase returns all deadlines for a case, ordered by due date.
func (r *Repository) ListDeadlinesByCase(caseID int64) ([]*models.Deadline, error) {
	query := `
	SELECT id, case_id, title, description, due_date, priority, status, created_at
	FROM deadlines WHERE case_id = ? ORDER BY due_date ASC
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Deadline
	for rows.Next() {
		var d models.Deadline
		var description sql.NullString
		if err := rows.Scan(&d.ID, &d.CaseID, &d.Title, &description, &d.DueDate,
			&d.Priority, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			d.Description = &description.String
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}

// =====================================================
// Note Operations
// =====================================================

// CreateNote creates a new note.
func (r *Repository) CreateNote(n *models.Note) error {
	n.CreatedAt = time.Now().Unix()

	query := `
	INSERT INTO notes (case_id, title, content, created_at)
	VALUES (?, ?, ?, ?)
	`
	res, err := r.db.Exec(query, n.CaseID, n.Title, n.Content, n.CreatedAt)
	if err != nil {
		return err
	}

	n.ID, err = res.LastInsertId()
	return err
}

// ListNotesByCase returns all notes for a case, oldest first.
func (r *Repository) ListNotesByCase(caseID int64) ([]*models.Note, error) {
	query := `
	SELECT id, case_id, title, content, created_at
	FROM notes WHERE case_id = ? ORDER BY created_at ASC
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Note
	for rows.Next() {
		var n models.Note
		var title sql.NullString
		if err := rows.Scan(&n.ID, &n.CaseID, &title, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		if title.Valid {
			n.Title = &title.String
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}

// =====================================================
// Document Operations
// =====================================================

// CreateDocument creates a new document record.
func (r *Repository) CreateDocument(d *models.Document) error {
	d.UploadedAt = time.Now().Unix()

	query := `
	INSERT INTO documents (case_id, file_name, file_path, description, uploaded_at)
	VALUES (?, ?, ?, ?, ?)
	`
	res, err := r.db.Exec(query, d.CaseID, d.FileName, d.FilePath, d.Description, d.UploadedAt)
	if err != nil {
		return err
	}

	d.ID, err = res.LastInsertId()
	return err
}

// ListDocumentsByCase returns all documents for a case, oldest first.
func (r *Repository) ListDocumentsByCase(caseID int64) ([]*models.Document, error) {
	query := `
	SELECT id, case_id, file_name, file_path, description, uploaded_at
	FROM documents WHERE case_id = ? ORDER BY uploaded_at ASC
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Document
	for rows.Next() {
		var d models.Document
		var description sql.NullString
		if err := rows.Scan(&d.ID, &d.CaseID, &d.FileName, &d.FilePath,
			&description, &d.UploadedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			d.Description = &description.String
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}

// =====================================================
// User Operations
// =====================================================

// CreateUser creates a new user.
func (r *Repository) CreateUser(u *models.User) error {
	u.CreatedAt = time.Now().Unix()

	query := `INSERT INTO users (username, email, created_at) VALUES (?, ?, ?)`
	res, err := r.db.Exec(query, u.Username, u.Email, u.CreatedAt)
	if err != nil {
		return err
	}

	u.ID, err = res.LastInsertId()
	return err
}

// GetUser retrieves a user by ID.
func (r *Repository) GetUser(id int64) (*models.User, error) {
	query := `SELECT id, username, email, created_at FROM users WHERE id = ?`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return nil, err
	}

	var u models.User
	err = stmt.QueryRow(id).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// =====================================================
// Audit Log Operations
// =====================================================

// CreateAuditLog appends one audit entry.
func (r *Repository) CreateAuditLog(entry *models.AuditLog) error {
	query := `
	INSERT INTO audit_logs (id, user_id, action, resource_type, resource_id, details, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, entry.ID, entry.UserID, entry.Action,
		entry.ResourceType, entry.ResourceID, entry.Details, entry.CreatedAt)
	return err
}

// ListAuditLogsByUser returns audit entries for a user, newest first.
func (r *Repository) ListAuditLogsByUser(userID int64, limit int) ([]*models.AuditLog, error) {
	query := `
	SELECT id, user_id, action, resource_type, resource_id, details, created_at
	FROM audit_logs WHERE user_id = ? ORDER BY created_at DESC LIMIT ?
	`
	stmt, err := r.prepareStmt(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.ResourceType,
			&e.ResourceID, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
