package export

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"caseport/internal/db"
	"caseport/internal/errors"
	"caseport/internal/models"
)

// Decrypter is the decryption capability injected into the aggregator.
type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
}

// Aggregator fetches and decrypts everything one export needs.
type Aggregator struct {
	repo db.ExportRepository
	dec  Decrypter
}

// NewAggregator creates an Aggregator.
func NewAggregator(repo db.ExportRepository, dec Decrypter) *Aggregator {
	return &Aggregator{repo: repo, dec: dec}
}

// Gather loads the case, verifies ownership, and assembles the decrypted
// CaseExport for the sections enabled in opts. The ownership check happens
// before any decryption and before any further repository read, so an
// unauthorized caller never triggers section fetches. Excluded sections are
// left nil and their repositories are never queried.
func (a *Aggregator) Gather(caseID, userID int64, opts *Options) (*CaseExport, error) {
	c, err := a.repo.GetCase(caseID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Newf(errors.ErrCaseNotFound, "case %d not found", caseID)
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load case", err)
	}

	if c.UserID != userID {
		return nil, errors.Newf(errors.ErrPermissionDenied, "user %d does not own case %d", userID, caseID)
	}

	user, err := a.repo.GetUser(userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Newf(errors.ErrUserNotFound, "user %d not found", userID)
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load user", err)
	}

	caseInfo, err := a.decryptedCase(c)
	if err != nil {
		return nil, err
	}

	model := &CaseExport{
		Case:       *caseInfo,
		ExportDate: time.Now(),
		ExportedBy: user.Username,
	}

	if opts.IncludeEvidence {
		records, err := a.repo.ListEvidenceByCase(caseID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to load evidence", err)
		}
		model.Evidence = make([]EvidenceItem, 0, len(records))
		for _, rec := range records {
			item, err := a.decryptedEvidence(rec)
			if err != nil {
				return nil, err
			}
			model.Evidence = append(model.Evidence, *item)
		}
	}

	if opts.IncludeTimeline {
		records, err := a.repo.ListDeadlinesByCase(caseID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to load deadlines", err)
		}
		model.Deadlines = make([]DeadlineItem, 0, len(records))
		model.TimelineEvents = make([]TimelineEvent, 0, len(records))
		for _, rec := range records {
			item, err := a.decryptedDeadline(rec)
			if err != nil {
				return nil, err
			}
			model.Deadlines = append(model.Deadlines, *item)
			// Deadlines double as timeline events.
			model.TimelineEvents = append(model.TimelineEvents, TimelineEvent{
				ID:          item.ID,
				CaseID:      item.CaseID,
				Title:       item.Title,
				Description: item.Description,
				EventDate:   item.DueDate,
				EventType:   "deadline",
				Completed:   item.Status == models.DeadlineStatusCompleted,
			})
		}
	}

	if opts.IncludeNotes {
		records, err := a.repo.ListNotesByCase(caseID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to load notes", err)
		}
		model.Notes = make([]NoteItem, 0, len(records))
		for _, rec := range records {
			item, err := a.decryptedNote(rec)
			if err != nil {
				return nil, err
			}
			model.Notes = append(model.Notes, *item)
		}
	}

	if opts.IncludeFacts {
		// No facts repository is wired in; the section is present but empty.
		model.Facts = []Fact{}
	}

	if opts.IncludeDocuments {
		records, err := a.repo.ListDocumentsByCase(caseID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to load documents", err)
		}
		model.Documents = make([]DocumentItem, 0, len(records))
		for _, rec := range records {
			item, err := a.decryptedDocument(rec)
			if err != nil {
				return nil, err
			}
			model.Documents = append(model.Documents, *item)
		}
	}

	return model, nil
}

// decrypt decrypts one required encrypted column.
func (a *Aggregator) decrypt(entity, field, ciphertext string) (string, error) {
	plaintext, err := a.dec.Decrypt(ciphertext)
	if err != nil {
		return "", errors.Wrap(errors.ErrDecryptionFailed,
			fmt.Sprintf("failed to decrypt %s.%s", entity, field), err)
	}
	return plaintext, nil
}

// decryptOptional decrypts one nullable encrypted column. A nil value stays
// nil and the decrypter is not invoked.
func (a *Aggregator) decryptOptional(entity, field string, ciphertext *string) (*string, error) {
	if ciphertext == nil {
		return nil, nil
	}
	plaintext, err := a.decrypt(entity, field, *ciphertext)
	if err != nil {
		return nil, err
	}
	return &plaintext, nil
}

// The decrypted* converters below are the single place that knows which
// columns of each entity are encrypted. A new encrypted column means one
// new line in the matching converter.

func (a *Aggregator) decryptedCase(c *models.Case) (*CaseInfo, error) {
	title, err := a.decrypt("case", "title", c.Title)
	if err != nil {
		return nil, err
	}
	description, err := a.decryptOptional("case", "description", c.Description)
	if err != nil {
		return nil, err
	}

	return &CaseInfo{
		ID:          c.ID,
		Title:       title,
		Description: description,
		Status:      c.Status,
		CaseNumber:  c.CaseNumber,
		CreatedAt:   c.CreatedAtTime(),
		UpdatedAt:   c.UpdatedAtTime(),
	}, nil
}

func (a *Aggregator) decryptedEvidence(e *models.Evidence) (*EvidenceItem, error) {
	title, err := a.decrypt("evidence", "title", e.Title)
	if err != nil {
		return nil, err
	}
	filePath, err := a.decryptOptional("evidence", "file_path", e.FilePath)
	if err != nil {
		return nil, err
	}

	var obtained *time.Time
	if e.ObtainedDate != nil {
		t := time.Unix(*e.ObtainedDate, 0)
		obtained = &t
	}

	return &EvidenceItem{
		ID:           e.ID,
		CaseID:       e.CaseID,
		Title:        title,
		EvidenceType: e.EvidenceType,
		FilePath:     filePath,
		ObtainedDate: obtained,
		Content:      e.Content,
		Status:       e.Status,
	}, nil
}

func (a *Aggregator) decryptedDeadline(d *models.Deadline) (*DeadlineItem, error) {
	title, err := a.decrypt("deadline", "title", d.Title)
	if err != nil {
		return nil, err
	}
	description, err := a.decryptOptional("deadline", "description", d.Description)
	if err != nil {
		return nil, err
	}

	return &DeadlineItem{
		ID:          d.ID,
		CaseID:      d.CaseID,
		Title:       title,
		Description: description,
		DueDate:     d.DueDateTime(),
		Priority:    d.Priority,
		Status:      d.Status,
	}, nil
}

func (a *Aggregator) decryptedNote(n *models.Note) (*NoteItem, error) {
	title, err := a.decryptOptional("note", "title", n.Title)
	if err != nil {
		return nil, err
	}
	content, err := a.decrypt("note", "content", n.Content)
	if err != nil {
		return nil, err
	}

	return &NoteItem{
		ID:        n.ID,
		CaseID:    n.CaseID,
		Title:     title,
		Content:   content,
		CreatedAt: n.CreatedAtTime(),
	}, nil
}

func (a *Aggregator) decryptedDocument(d *models.Document) (*DocumentItem, error) {
	fileName, err := a.decrypt("document", "file_name", d.FileName)
	if err != nil {
		return nil, err
	}
	filePath, err := a.decrypt("document", "file_path", d.FilePath)
	if err != nil {
		return nil, err
	}
	description, err := a.decryptOptional("document", "description", d.Description)
	if err != nil {
		return nil, err
	}

	return &DocumentItem{
		ID:          d.ID,
		CaseID:      d.CaseID,
		FileName:    fileName,
		FilePath:    filePath,
		Description: description,
	}, nil
}
