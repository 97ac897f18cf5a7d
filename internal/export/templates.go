package export

import (
	"sort"
	"time"

	"caseport/internal/errors"
	"caseport/internal/models"
)

// Template identifies one of the fixed report templates.
type Template string

const (
	TemplateCaseSummary  Template = "case-summary"
	TemplateEvidenceList Template = "evidence-list"
	TemplateTimeline     Template = "timeline-report"
	TemplateCaseNotes    Template = "case-notes"
)

// TemplateInfo describes a template for listing callers.
type TemplateInfo struct {
	ID          Template `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Formats     []Format `json:"formats"`
}

// templateEntry binds a template id to its shaping function, data
// requirement, and per-format render functions. Keeping the triple in one
// map means adding a template cannot half-register it.
type templateEntry struct {
	info       TemplateInfo
	validate   func(*CaseExport) bool
	shape      func(*CaseExport) TemplateView
	renderPDF  func(*PDFRenderer, TemplateView) ([]byte, error)
	renderDOCX func(*DOCXRenderer, TemplateView) ([]byte, error)
}

var registry = map[Template]templateEntry{
	TemplateCaseSummary: {
		info: TemplateInfo{
			ID:          TemplateCaseSummary,
			Name:        "Case Summary",
			Description: "Complete overview of the case with all sections",
			Formats:     []Format{FormatPDF, FormatDocx},
		},
		validate: func(m *CaseExport) bool { return m != nil },
		shape:    shapeCaseSummary,
		renderPDF: func(r *PDFRenderer, v TemplateView) ([]byte, error) {
			return r.RenderCaseSummary(v.(*CaseSummaryData))
		},
		renderDOCX: func(r *DOCXRenderer, v TemplateView) ([]byte, error) {
			return r.RenderCaseSummary(v.(*CaseSummaryData))
		},
	},
	TemplateEvidenceList: {
		info: TemplateInfo{
			ID:          TemplateEvidenceList,
			Name:        "Evidence List",
			Description: "All evidence items with a per-type summary",
			Formats:     []Format{FormatPDF, FormatDocx},
		},
		validate: func(m *CaseExport) bool { return m != nil && m.Evidence != nil },
		shape:    shapeEvidenceList,
		renderPDF: func(r *PDFRenderer, v TemplateView) ([]byte, error) {
			return r.RenderEvidenceList(v.(*EvidenceExportData))
		},
		renderDOCX: func(r *DOCXRenderer, v TemplateView) ([]byte, error) {
			return r.RenderEvidenceList(v.(*EvidenceExportData))
		},
	},
	TemplateTimeline: {
		info: TemplateInfo{
			ID:          TemplateTimeline,
			Name:        "Timeline Report",
			Description: "Chronological events with upcoming and completed breakdowns",
			Formats:     []Format{FormatPDF, FormatDocx},
		},
		validate: func(m *CaseExport) bool {
			return m != nil && (m.TimelineEvents != nil || m.Deadlines != nil)
		},
		shape: shapeTimeline,
		renderPDF: func(r *PDFRenderer, v TemplateView) ([]byte, error) {
			return r.RenderTimeline(v.(*TimelineExportData))
		},
		renderDOCX: func(r *DOCXRenderer, v TemplateView) ([]byte, error) {
			return r.RenderTimeline(v.(*TimelineExportData))
		},
	},
	TemplateCaseNotes: {
		info: TemplateInfo{
			ID:          TemplateCaseNotes,
			Name:        "Case Notes",
			Description: "All notes recorded on the case",
			Formats:     []Format{FormatPDF, FormatDocx},
		},
		validate: func(m *CaseExport) bool { return m != nil && m.Notes != nil },
		shape:    shapeCaseNotes,
		renderPDF: func(r *PDFRenderer, v TemplateView) ([]byte, error) {
			return r.RenderCaseNotes(v.(*NotesExportData))
		},
		renderDOCX: func(r *DOCXRenderer, v TemplateView) ([]byte, error) {
			return r.RenderCaseNotes(v.(*NotesExportData))
		},
	},
}

// templateOrder fixes the listing order.
var templateOrder = []Template{
	TemplateCaseSummary,
	TemplateEvidenceList,
	TemplateTimeline,
	TemplateCaseNotes,
}

// KnownTemplate reports whether name is a registered template.
func KnownTemplate(name Template) bool {
	_, ok := registry[name]
	return ok
}

// ListTemplates returns descriptions of all registered templates.
func ListTemplates() []TemplateInfo {
	infos := make([]TemplateInfo, 0, len(templateOrder))
	for _, id := range templateOrder {
		infos = append(infos, registry[id].info)
	}
	return infos
}

// Validate reports whether the model carries the sections the template
// requires. Unknown templates are always invalid.
func Validate(name Template, m *CaseExport) bool {
	entry, ok := registry[name]
	if !ok {
		return false
	}
	return entry.validate(m)
}

// Reshape projects the export model into the template's view. A template
// that is unknown, or whose required sections were not gathered, is a
// caller error; there is no fallback to case-summary.
func Reshape(name Template, m *CaseExport) (TemplateView, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidTemplate, "unknown template %q", name)
	}
	if !entry.validate(m) {
		return nil, errors.Newf(errors.ErrInvalidTemplate,
			"template %q requires sections the export did not gather", name)
	}
	return entry.shape(m), nil
}

func shapeCaseSummary(m *CaseExport) TemplateView {
	return &CaseSummaryData{
		Case:           m.Case,
		Evidence:       m.Evidence,
		TimelineEvents: m.TimelineEvents,
		Deadlines:      m.Deadlines,
		Notes:          m.Notes,
		Facts:          m.Facts,
		Documents:      m.Documents,
		ExportDate:     m.ExportDate,
		ExportedBy:     m.ExportedBy,
	}
}

func shapeEvidenceList(m *CaseExport) TemplateView {
	summary := make(map[string]int)
	for _, item := range m.Evidence {
		category := item.EvidenceType
		if category == "" {
			category = "Uncategorized"
		}
		summary[category]++
	}

	return &EvidenceExportData{
		Case:            m.Case,
		Evidence:        m.Evidence,
		CategorySummary: summary,
		TotalItems:      len(m.Evidence),
		ExportDate:      m.ExportDate,
		ExportedBy:      m.ExportedBy,
	}
}

func shapeTimeline(m *CaseExport) TemplateView {
	now := time.Now()

	var upcoming []DeadlineItem
	for _, d := range m.Deadlines {
		if d.DueDate.After(now) && d.Status != models.DeadlineStatusCompleted {
			upcoming = append(upcoming, d)
		}
	}

	var completed []TimelineEvent
	for _, e := range m.TimelineEvents {
		if e.Completed {
			completed = append(completed, e)
		}
	}

	return &TimelineExportData{
		Case:              m.Case,
		TimelineEvents:    m.TimelineEvents,
		Deadlines:         m.Deadlines,
		UpcomingDeadlines: upcoming,
		CompletedEvents:   completed,
		ExportDate:        m.ExportDate,
		ExportedBy:        m.ExportedBy,
	}
}

// sortedKeys returns map keys in a stable order so rendered summaries are
// deterministic for identical inputs.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func shapeCaseNotes(m *CaseExport) TemplateView {
	return &NotesExportData{
		Case:       m.Case,
		Notes:      m.Notes,
		TotalNotes: len(m.Notes),
		ExportDate: m.ExportDate,
		ExportedBy: m.ExportedBy,
	}
}
