package export

import (
	"bytes"
	"fmt"
	"time"

	"baliance.com/gooxml/color"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"

	"caseport/internal/errors"
	"caseport/internal/models"
)

// DOCXRenderer turns template views into Word documents. Unlike the PDF
// renderer it emits no manual page breaks based on content length: reflow
// is the consuming word processor's job, so only the explicit breaks
// between major sections are written.
type DOCXRenderer struct{}

// NewDOCXRenderer creates a DOCXRenderer.
func NewDOCXRenderer() *DOCXRenderer {
	return &DOCXRenderer{}
}

// RenderCaseSummary renders the case-summary template.
func (r *DOCXRenderer) RenderCaseSummary(data *CaseSummaryData) ([]byte, error) {
	doc := document.New()
	r.decorate(doc, data.Case.Title, data.ExportedBy, data.ExportDate)

	docxTitle(doc, "Case Summary Report")
	docxCaseInfo(doc, data.Case)

	if data.Evidence != nil {
		docxPageBreak(doc)
		docxHeading(doc, fmt.Sprintf("Evidence (%d)", len(data.Evidence)))
		docxEvidenceTable(doc, data.Evidence)
	}

	if data.TimelineEvents != nil {
		docxPageBreak(doc)
		docxHeading(doc, fmt.Sprintf("Timeline (%d)", len(data.TimelineEvents)))
		for _, e := range data.TimelineEvents {
			docxTimelineEvent(doc, e)
		}
	}

	if data.Deadlines != nil {
		docxPageBreak(doc)
		docxHeading(doc, fmt.Sprintf("Deadlines (%d)", len(data.Deadlines)))
		now := time.Now()
		for _, d := range data.Deadlines {
			docxDeadlineItem(doc, d, now)
		}
	}

	if data.Notes != nil {
		docxPageBreak(doc)
		docxHeading(doc, fmt.Sprintf("Notes (%d)", len(data.Notes)))
		for _, n := range data.Notes {
			docxNoteItem(doc, n)
		}
	}

	if data.Facts != nil {
		docxPageBreak(doc)
		docxHeading(doc, fmt.Sprintf("Facts (%d)", len(data.Facts)))
		for _, f := range data.Facts {
			docxFactItem(doc, f)
		}
	}

	if data.Documents != nil {
		docxPageBreak(doc)
		docxHeading(doc, fmt.Sprintf("Documents (%d)", len(data.Documents)))
		for _, d := range data.Documents {
			docxDocumentItem(doc, d)
		}
	}

	return serializeDocx(doc)
}

// RenderEvidenceList renders the evidence-list template.
func (r *DOCXRenderer) RenderEvidenceList(data *EvidenceExportData) ([]byte, error) {
	doc := document.New()
	r.decorate(doc, data.Case.Title, data.ExportedBy, data.ExportDate)

	docxTitle(doc, "Evidence List")
	docxCaseInfo(doc, data.Case)

	docxHeading(doc, fmt.Sprintf("Summary by Category (%d items)", data.TotalItems))
	for _, category := range sortedKeys(data.CategorySummary) {
		docxBody(doc, fmt.Sprintf("%s: %d", category, data.CategorySummary[category]))
	}

	docxHeading(doc, "Evidence Items")
	docxEvidenceTable(doc, data.Evidence)

	return serializeDocx(doc)
}

// RenderTimeline renders the timeline-report template.
func (r *DOCXRenderer) RenderTimeline(data *TimelineExportData) ([]byte, error) {
	doc := document.New()
	r.decorate(doc, data.Case.Title, data.ExportedBy, data.ExportDate)

	docxTitle(doc, "Timeline Report")
	docxCaseInfo(doc, data.Case)
	now := time.Now()

	docxColoredHeading(doc, fmt.Sprintf("Upcoming Deadlines (%d)", len(data.UpcomingDeadlines)), color.DarkRed)
	for _, d := range data.UpcomingDeadlines {
		docxDeadlineItem(doc, d, now)
	}
	if len(data.UpcomingDeadlines) == 0 {
		docxBody(doc, "No upcoming deadlines.")
	}

	docxColoredHeading(doc, fmt.Sprintf("Completed Events (%d)", len(data.CompletedEvents)), color.DarkGreen)
	for _, e := range data.CompletedEvents {
		docxTimelineEvent(doc, e)
	}
	if len(data.CompletedEvents) == 0 {
		docxBody(doc, "No completed events.")
	}

	docxPageBreak(doc)
	docxHeading(doc, fmt.Sprintf("Full Timeline (%d)", len(data.TimelineEvents)))
	for _, e := range data.TimelineEvents {
		docxTimelineEvent(doc, e)
	}

	return serializeDocx(doc)
}

// RenderCaseNotes renders the case-notes template.
func (r *DOCXRenderer) RenderCaseNotes(data *NotesExportData) ([]byte, error) {
	doc := document.New()
	r.decorate(doc, data.Case.Title, data.ExportedBy, data.ExportDate)

	docxTitle(doc, "Case Notes")
	docxCaseInfo(doc, data.Case)

	docxHeading(doc, fmt.Sprintf("Notes (%d)", data.TotalNotes))
	for _, n := range data.Notes {
		docxNoteItem(doc, n)
	}
	if data.TotalNotes == 0 {
		docxBody(doc, "No notes recorded.")
	}

	return serializeDocx(doc)
}

// decorate wires the single body section: 1-inch margins, a right-aligned
// header carrying the case title, and a footer with exporter identity plus
// live CURRENT/TOTAL page fields resolved by the word processor at view
// time.
func (r *DOCXRenderer) decorate(doc *document.Document, caseTitle, exportedBy string, exportDate time.Time) {
	hdr := doc.AddHeader()
	hp := hdr.AddParagraph()
	hp.Properties().SetAlignment(wml.ST_JcRight)
	hrun := hp.AddRun()
	hrun.Properties().SetSize(9 * measurement.Point)
	hrun.Properties().SetColor(color.Gray)
	hrun.AddText(caseTitle)

	ftr := doc.AddFooter()
	fp := ftr.AddParagraph()
	fp.Properties().SetAlignment(wml.ST_JcCenter)
	frun := fp.AddRun()
	frun.Properties().SetSize(8 * measurement.Point)
	frun.Properties().SetColor(color.Gray)
	frun.AddText(fmt.Sprintf("Exported by %s on %s | Page ",
		exportedBy, exportDate.Format("2006-01-02 15:04")))
	frun.AddField(document.FieldCurrentPage)
	frun.AddText(" of ")
	frun.AddField(document.FieldNumberOfPages)

	section := doc.BodySection()
	section.SetHeader(hdr, wml.ST_HdrFtrDefault)
	section.SetFooter(ftr, wml.ST_HdrFtrDefault)
	section.SetPageMargins(measurement.Inch, measurement.Inch, measurement.Inch,
		measurement.Inch, measurement.Inch/2, measurement.Inch/2, 0)
}

func serializeDocx(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrRenderFailed, "docx serialization failed", err)
	}
	return buf.Bytes(), nil
}

func docxTitle(doc *document.Document, text string) {
	p := doc.AddParagraph()
	p.SetStyle("Title")
	p.AddRun().AddText(text)
}

func docxHeading(doc *document.Document, text string) {
	p := doc.AddParagraph()
	p.SetStyle("Heading1")
	p.AddRun().AddText(text)
}

func docxColoredHeading(doc *document.Document, text string, c color.Color) {
	p := doc.AddParagraph()
	p.SetStyle("Heading1")
	run := p.AddRun()
	run.Properties().SetColor(c)
	run.AddText(text)
}

func docxSubheading(doc *document.Document, text string) {
	p := doc.AddParagraph()
	p.SetStyle("Heading2")
	p.AddRun().AddText(text)
}

func docxBody(doc *document.Document, text string) {
	p := doc.AddParagraph()
	run := p.AddRun()
	run.Properties().SetSize(10 * measurement.Point)
	run.AddText(text)
}

func docxMuted(doc *document.Document, text string) {
	p := doc.AddParagraph()
	run := p.AddRun()
	run.Properties().SetSize(9 * measurement.Point)
	run.Properties().SetItalic(true)
	run.Properties().SetColor(color.Gray)
	run.AddText(text)
}

// docxPageBreak inserts an explicit break between major sections: an empty
// paragraph whose page-break-before property forces it onto a fresh page.
func docxPageBreak(doc *document.Document) {
	doc.AddParagraph().Properties().SetPageBreakBefore(true)
}

func docxCaseInfo(doc *document.Document, info CaseInfo) {
	docxSubheading(doc, info.Title)
	docxBody(doc, fmt.Sprintf("Case Number: %s", info.CaseNumber))
	docxBody(doc, fmt.Sprintf("Status: %s", info.Status))
	docxBody(doc, fmt.Sprintf("Opened: %s", info.CreatedAt.Format("2006-01-02")))
	if info.Description != nil {
		docxBody(doc, *info.Description)
	}
}

// docxEvidenceTable writes evidence as a real table: header row plus one
// row per item.
func docxEvidenceTable(doc *document.Document, items []EvidenceItem) {
	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	borders := table.Properties().Borders()
	borders.SetAll(wml.ST_BorderSingle, color.Auto, measurement.Point/2)

	header := table.AddRow()
	for _, label := range []string{"Title", "Type", "Status", "Date", "Description"} {
		cell := header.AddCell()
		run := cell.AddParagraph().AddRun()
		run.Properties().SetBold(true)
		run.AddText(label)
	}

	for _, item := range items {
		row := table.AddRow()
		row.AddCell().AddParagraph().AddRun().AddText(item.Title)
		row.AddCell().AddParagraph().AddRun().AddText(item.EvidenceType)
		row.AddCell().AddParagraph().AddRun().AddText(item.Status)

		date := ""
		if item.ObtainedDate != nil {
			date = item.ObtainedDate.Format("2006-01-02")
		}
		row.AddCell().AddParagraph().AddRun().AddText(date)

		description := ""
		if item.Content != nil {
			description = *item.Content
		}
		row.AddCell().AddParagraph().AddRun().AddText(description)
	}
}

func docxTimelineEvent(doc *document.Document, event TimelineEvent) {
	p := doc.AddParagraph()
	run := p.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(11 * measurement.Point)
	if event.Completed {
		run.Properties().SetColor(color.DarkGreen)
	}
	run.AddText(fmt.Sprintf("%s  [%s]", event.Title, event.EventDate.Format("2006-01-02")))
	if event.Description != nil {
		docxBody(doc, *event.Description)
	}
}

func docxDeadlineItem(doc *document.Document, item DeadlineItem, now time.Time) {
	p := doc.AddParagraph()
	run := p.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(11 * measurement.Point)
	switch {
	case item.Status == models.DeadlineStatusCompleted:
		run.Properties().SetColor(color.DarkGreen)
	case item.DueDate.Before(now):
		run.Properties().SetColor(color.DarkRed)
	}
	run.AddText(item.Title)

	docxBody(doc, fmt.Sprintf("Due: %s    Priority: %s    Status: %s",
		item.DueDate.Format("2006-01-02"), item.Priority, item.Status))
	if item.Description != nil {
		docxBody(doc, *item.Description)
	}
}

func docxNoteItem(doc *document.Document, item NoteItem) {
	title := "Untitled note"
	if item.Title != nil {
		title = *item.Title
	}
	p := doc.AddParagraph()
	run := p.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(11 * measurement.Point)
	run.AddText(fmt.Sprintf("%s  [%s]", title, item.CreatedAt.Format("2006-01-02")))

	docxBody(doc, item.Content)
}

func docxFactItem(doc *document.Document, fact Fact) {
	docxBody(doc, fact.Statement)
	if fact.Source != "" {
		docxMuted(doc, fmt.Sprintf("Source: %s", fact.Source))
	}
	if fact.Confidence != nil {
		docxMuted(doc, fmt.Sprintf("Confidence: %.2f", *fact.Confidence))
	}
}

func docxDocumentItem(doc *document.Document, item DocumentItem) {
	p := doc.AddParagraph()
	run := p.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(11 * measurement.Point)
	run.AddText(item.FileName)

	docxMuted(doc, item.FilePath)
	if item.Description != nil {
		docxBody(doc, *item.Description)
	}
}
