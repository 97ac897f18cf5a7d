// Package export implements the case export pipeline: aggregation and
// decryption of case data, template shaping, and PDF/DOCX rendering.
package export

import "time"

// CaseExport is the fully aggregated, decrypted, in-memory representation of
// one case. It is assembled per export call, consumed by exactly one
// renderer, and discarded when the call returns; it never carries ciphertext
// and is never cached across requests.
type CaseExport struct {
	Case           CaseInfo
	Evidence       []EvidenceItem
	TimelineEvents []TimelineEvent
	Deadlines      []DeadlineItem
	Notes          []NoteItem
	Facts          []Fact
	Documents      []DocumentItem
	ExportDate     time.Time
	ExportedBy     string
}

// CaseInfo holds the decrypted case header.
type CaseInfo struct {
	ID          int64
	Title       string
	Description *string
	Status      string
	CaseNumber  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EvidenceItem is one decrypted evidence record.
type EvidenceItem struct {
	ID           int64
	CaseID       int64
	Title        string
	EvidenceType string
	FilePath     *string
	ObtainedDate *time.Time
	Content      *string
	Status       string
}

// TimelineEvent is a dated event on the case timeline. Events sourced from
// deadlines carry EventType "deadline".
type TimelineEvent struct {
	ID          int64
	CaseID      int64
	Title       string
	Description *string
	EventDate   time.Time
	EventType   string
	Completed   bool
}

// DeadlineItem is one decrypted deadline record.
type DeadlineItem struct {
	ID          int64
	CaseID      int64
	Title       string
	Description *string
	DueDate     time.Time
	Priority    string
	Status      string
}

// NoteItem is one decrypted note record.
type NoteItem struct {
	ID        int64
	CaseID    int64
	Title     *string
	Content   string
	CreatedAt time.Time
}

// Fact is a structured assertion about the case. No facts repository is
// wired in yet, so exports always carry an empty list; the type exists so
// template shapes stay stable when one lands.
type Fact struct {
	Statement  string
	Source     string
	Confidence *float64
}

// DocumentItem is one decrypted document record.
type DocumentItem struct {
	ID          int64
	CaseID      int64
	FileName    string
	FilePath    string
	Description *string
}

// TemplateView marks the narrowed, template-shaped projections of a
// CaseExport that renderers consume.
type TemplateView interface {
	isTemplateView()
}

// CaseSummaryData is the case-summary template view: a pass-through of the
// full export model.
type CaseSummaryData struct {
	Case           CaseInfo
	Evidence       []EvidenceItem
	TimelineEvents []TimelineEvent
	Deadlines      []DeadlineItem
	Notes          []NoteItem
	Facts          []Fact
	Documents      []DocumentItem
	ExportDate     time.Time
	ExportedBy     string
}

// EvidenceExportData is the evidence-list template view.
type EvidenceExportData struct {
	Case            CaseInfo
	Evidence        []EvidenceItem
	CategorySummary map[string]int
	TotalItems      int
	ExportDate      time.Time
	ExportedBy      string
}

// TimelineExportData is the timeline-report template view.
type TimelineExportData struct {
	Case              CaseInfo
	TimelineEvents    []TimelineEvent
	Deadlines         []DeadlineItem
	UpcomingDeadlines []DeadlineItem
	CompletedEvents   []TimelineEvent
	ExportDate        time.Time
	ExportedBy        string
}

// NotesExportData is the case-notes template view.
type NotesExportData struct {
	Case       CaseInfo
	Notes      []NoteItem
	TotalNotes int
	ExportDate time.Time
	ExportedBy string
}

func (*CaseSummaryData) isTemplateView()    {}
func (*EvidenceExportData) isTemplateView() {}
func (*TimelineExportData) isTemplateView() {}
func (*NotesExportData) isTemplateView()    {}
