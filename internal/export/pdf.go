package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"caseport/internal/errors"
	"caseport/internal/models"
)

// Layout constants for A4 pages measured in points.
const (
	pdfMargin = 72.0
	// Once the vertical cursor passes this line, the next record starts on
	// a fresh page so small entries are never split across a boundary.
	pdfOverflowY = 650.0
)

// Color tiers shared by all PDF templates.
var (
	pdfColorTitle   = [3]int{25, 25, 25}
	pdfColorHeading = [3]int{45, 45, 45}
	pdfColorBody    = [3]int{60, 60, 60}
	pdfColorMuted   = [3]int{120, 120, 120}
	pdfColorRed     = [3]int{192, 57, 43}
	pdfColorGreen   = [3]int{39, 134, 66}
)

// PDFRenderer turns template views into paginated PDF documents.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// RenderCaseSummary renders the case-summary template.
func (r *PDFRenderer) RenderCaseSummary(data *CaseSummaryData) ([]byte, error) {
	return r.render("Case Summary Report", data.ExportedBy, data.ExportDate, func(pdf *fpdf.Fpdf) {
		writeCaseInfo(pdf, data.Case)

		if data.Evidence != nil {
			sectionHeading(pdf, fmt.Sprintf("Evidence (%d)", len(data.Evidence)), pdfColorHeading)
			for _, item := range data.Evidence {
				writeEvidenceItem(pdf, item)
			}
		}

		if data.TimelineEvents != nil {
			sectionHeading(pdf, fmt.Sprintf("Timeline (%d)", len(data.TimelineEvents)), pdfColorHeading)
			for _, event := range data.TimelineEvents {
				writeTimelineEvent(pdf, event)
			}
		}

		if data.Deadlines != nil {
			sectionHeading(pdf, fmt.Sprintf("Deadlines (%d)", len(data.Deadlines)), pdfColorHeading)
			for _, d := range data.Deadlines {
				writeDeadlineItem(pdf, d, time.Now())
			}
		}

		if data.Notes != nil {
			sectionHeading(pdf, fmt.Sprintf("Notes (%d)", len(data.Notes)), pdfColorHeading)
			for _, n := range data.Notes {
				writeNoteItem(pdf, n)
			}
		}

		if data.Facts != nil {
			sectionHeading(pdf, fmt.Sprintf("Facts (%d)", len(data.Facts)), pdfColorHeading)
			for _, f := range data.Facts {
				writeFactItem(pdf, f)
			}
		}

		if data.Documents != nil {
			sectionHeading(pdf, fmt.Sprintf("Documents (%d)", len(data.Documents)), pdfColorHeading)
			for _, d := range data.Documents {
				writeDocumentItem(pdf, d)
			}
		}
	})
}

// RenderEvidenceList renders the evidence-list template.
func (r *PDFRenderer) RenderEvidenceList(data *EvidenceExportData) ([]byte, error) {
	return r.render("Evidence List", data.ExportedBy, data.ExportDate, func(pdf *fpdf.Fpdf) {
		writeCaseInfo(pdf, data.Case)

		sectionHeading(pdf, fmt.Sprintf("Summary by Category (%d items)", data.TotalItems), pdfColorHeading)
		for _, category := range sortedKeys(data.CategorySummary) {
			bodyLine(pdf, fmt.Sprintf("%s: %d", category, data.CategorySummary[category]))
		}
		pdf.Ln(8)

		sectionHeading(pdf, "Evidence Items", pdfColorHeading)
		for _, item := range data.Evidence {
			writeEvidenceItem(pdf, item)
		}
	})
}

// RenderTimeline renders the timeline-report template.
func (r *PDFRenderer) RenderTimeline(data *TimelineExportData) ([]byte, error) {
	return r.render("Timeline Report", data.ExportedBy, data.ExportDate, func(pdf *fpdf.Fpdf) {
		writeCaseInfo(pdf, data.Case)
		now := time.Now()

		sectionHeading(pdf, fmt.Sprintf("Upcoming Deadlines (%d)", len(data.UpcomingDeadlines)), pdfColorRed)
		for _, d := range data.UpcomingDeadlines {
			writeDeadlineItem(pdf, d, now)
		}
		if len(data.UpcomingDeadlines) == 0 {
			mutedLine(pdf, "No upcoming deadlines.")
		}

		sectionHeading(pdf, fmt.Sprintf("Completed Events (%d)", len(data.CompletedEvents)), pdfColorGreen)
		for _, e := range data.CompletedEvents {
			writeTimelineEvent(pdf, e)
		}
		if len(data.CompletedEvents) == 0 {
			mutedLine(pdf, "No completed events.")
		}

		sectionHeading(pdf, fmt.Sprintf("Full Timeline (%d)", len(data.TimelineEvents)), pdfColorHeading)
		for _, e := range data.TimelineEvents {
			writeTimelineEvent(pdf, e)
		}
	})
}

// RenderCaseNotes renders the case-notes template.
func (r *PDFRenderer) RenderCaseNotes(data *NotesExportData) ([]byte, error) {
	return r.render("Case Notes", data.ExportedBy, data.ExportDate, func(pdf *fpdf.Fpdf) {
		writeCaseInfo(pdf, data.Case)

		sectionHeading(pdf, fmt.Sprintf("Notes (%d)", data.TotalNotes), pdfColorHeading)
		for _, n := range data.Notes {
			writeNoteItem(pdf, n)
		}
		if data.TotalNotes == 0 {
			mutedLine(pdf, "No notes recorded.")
		}
	})
}

// render runs the content pass twice: once to learn the page count, then
// again with a footer function stamping "Page i of count" on every page.
// The count cannot be known until the document is fully laid out, so inline
// footer computation is not possible.
func (r *PDFRenderer) render(title, exportedBy string, exportDate time.Time, body func(*fpdf.Fpdf)) ([]byte, error) {
	measure := newPDFDoc(title)
	measure.AddPage()
	body(measure)
	if err := measure.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrRenderFailed, "pdf layout failed", err)
	}
	total := measure.PageCount()

	pdf := newPDFDoc(title)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-54)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(pdfColorMuted[0], pdfColorMuted[1], pdfColorMuted[2])
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of %d", pdf.PageNo(), total),
			"", 1, "C", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Exported by %s on %s", exportedBy,
			exportDate.Format("2006-01-02 15:04")), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	body(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrRenderFailed, "pdf serialization failed", err)
	}
	return buf.Bytes(), nil
}

// newPDFDoc creates an A4 portrait document with the shared header.
func newPDFDoc(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(title, true)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.SetTextColor(pdfColorTitle[0], pdfColorTitle[1], pdfColorTitle[2])
		pdf.CellFormat(0, 24, title, "", 1, "C", false, 0, "")
		pageWidth, _ := pdf.GetPageSize()
		pdf.SetDrawColor(pdfColorMuted[0], pdfColorMuted[1], pdfColorMuted[2])
		pdf.Line(pdfMargin, pdf.GetY(), pageWidth-pdfMargin, pdf.GetY())
		pdf.Ln(14)
	})
	return pdf
}

// ensureRoom forces a page break before a new record once the cursor is
// past the overflow threshold.
func ensureRoom(pdf *fpdf.Fpdf) {
	if pdf.GetY() > pdfOverflowY {
		pdf.AddPage()
	}
}

func sectionHeading(pdf *fpdf.Fpdf, text string, color [3]int) {
	ensureRoom(pdf)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(color[0], color[1], color[2])
	pdf.CellFormat(0, 18, text, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func bodyLine(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(pdfColorBody[0], pdfColorBody[1], pdfColorBody[2])
	pdf.MultiCell(0, 13, text, "", "L", false)
}

func mutedLine(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(pdfColorMuted[0], pdfColorMuted[1], pdfColorMuted[2])
	pdf.MultiCell(0, 13, text, "", "L", false)
}

func itemTitle(pdf *fpdf.Fpdf, text string, color [3]int) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(color[0], color[1], color[2])
	pdf.MultiCell(0, 14, text, "", "L", false)
}

// writeCaseInfo writes the case header block that opens every template.
func writeCaseInfo(pdf *fpdf.Fpdf, info CaseInfo) {
	itemTitle(pdf, info.Title, pdfColorTitle)
	bodyLine(pdf, fmt.Sprintf("Case Number: %s", info.CaseNumber))
	bodyLine(pdf, fmt.Sprintf("Status: %s", info.Status))
	bodyLine(pdf, fmt.Sprintf("Opened: %s", info.CreatedAt.Format("2006-01-02")))
	if info.Description != nil {
		bodyLine(pdf, *info.Description)
	}
	pdf.Ln(6)
}

func writeEvidenceItem(pdf *fpdf.Fpdf, item EvidenceItem) {
	ensureRoom(pdf)
	itemTitle(pdf, item.Title, pdfColorHeading)
	line := fmt.Sprintf("Type: %s    Status: %s", item.EvidenceType, item.Status)
	if item.ObtainedDate != nil {
		line += fmt.Sprintf("    Obtained: %s", item.ObtainedDate.Format("2006-01-02"))
	}
	bodyLine(pdf, line)
	if item.Content != nil {
		bodyLine(pdf, *item.Content)
	}
	if item.FilePath != nil {
		mutedLine(pdf, fmt.Sprintf("File: %s", *item.FilePath))
	}
	pdf.Ln(4)
}

func writeTimelineEvent(pdf *fpdf.Fpdf, event TimelineEvent) {
	ensureRoom(pdf)
	color := pdfColorHeading
	if event.Completed {
		color = pdfColorGreen
	}
	itemTitle(pdf, fmt.Sprintf("%s  [%s]", event.Title, event.EventDate.Format("2006-01-02")), color)
	if event.Description != nil {
		bodyLine(pdf, *event.Description)
	}
	pdf.Ln(4)
}

func writeDeadlineItem(pdf *fpdf.Fpdf, item DeadlineItem, now time.Time) {
	ensureRoom(pdf)
	color := pdfColorHeading
	switch {
	case item.Status == models.DeadlineStatusCompleted:
		color = pdfColorGreen
	case item.DueDate.Before(now):
		// Past due and not completed.
		color = pdfColorRed
	}
	itemTitle(pdf, item.Title, color)
	bodyLine(pdf, fmt.Sprintf("Due: %s    Priority: %s    Status: %s",
		item.DueDate.Format("2006-01-02"), item.Priority, item.Status))
	if item.Description != nil {
		bodyLine(pdf, *item.Description)
	}
	pdf.Ln(4)
}

func writeNoteItem(pdf *fpdf.Fpdf, item NoteItem) {
	ensureRoom(pdf)
	title := "Untitled note"
	if item.Title != nil {
		title = *item.Title
	}
	itemTitle(pdf, fmt.Sprintf("%s  [%s]", title, item.CreatedAt.Format("2006-01-02")), pdfColorHeading)
	bodyLine(pdf, item.Content)
	pdf.Ln(4)
}

func writeFactItem(pdf *fpdf.Fpdf, fact Fact) {
	ensureRoom(pdf)
	bodyLine(pdf, fact.Statement)
	if fact.Source != "" {
		mutedLine(pdf, fmt.Sprintf("Source: %s", fact.Source))
	}
	if fact.Confidence != nil {
		mutedLine(pdf, fmt.Sprintf("Confidence: %.2f", *fact.Confidence))
	}
	pdf.Ln(4)
}

func writeDocumentItem(pdf *fpdf.Fpdf, item DocumentItem) {
	ensureRoom(pdf)
	itemTitle(pdf, item.FileName, pdfColorHeading)
	mutedLine(pdf, item.FilePath)
	if item.Description != nil {
		bodyLine(pdf, *item.Description)
	}
	pdf.Ln(4)
}
