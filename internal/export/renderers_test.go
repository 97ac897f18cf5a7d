// Package export smoke tests for the PDF and DOCX renderers.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"
)

func summaryData(evidenceCount int) *CaseSummaryData {
	desc := "Wrongful termination matter"
	data := &CaseSummaryData{
		Case: CaseInfo{
			ID:          1,
			Title:       "State v. Harmon",
			Description: &desc,
			Status:      "open",
			CaseNumber:  "2025-CV-0042",
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		ExportDate: time.Now(),
		ExportedBy: "jharlow",
	}
	for i := 0; i < evidenceCount; i++ {
		data.Evidence = append(data.Evidence, EvidenceItem{
			Title:        fmt.Sprintf("Exhibit %d", i+1),
			EvidenceType: "document",
			Status:       "collected",
		})
	}
	return data
}

// pdfPageCount counts page objects in the raw PDF output.
func pdfPageCount(data []byte) int {
	// "/Type /Pages" (the tree root) also matches "/Type /Page".
	return strings.Count(string(data), "/Type /Page") - strings.Count(string(data), "/Type /Pages")
}

func TestPDFRenderer_caseSummary(t *testing.T) {
	data := summaryData(3)

	out, err := NewPDFRenderer().RenderCaseSummary(data)
	if err != nil {
		t.Fatalf("RenderCaseSummary() error = %v", err)
	}

	if !strings.HasPrefix(string(out), "%PDF") {
		t.Error("output is not a PDF document")
	}
	if len(out) == 0 {
		t.Fatal("output is empty")
	}
	if pdfPageCount(out) < 1 {
		t.Errorf("page count = %d, want at least 1", pdfPageCount(out))
	}
}

// TestPDFRenderer_overflowPaginates verifies long content spills onto
// additional pages instead of being clipped.
func TestPDFRenderer_overflowPaginates(t *testing.T) {
	data := summaryData(80)

	out, err := NewPDFRenderer().RenderCaseSummary(data)
	if err != nil {
		t.Fatalf("RenderCaseSummary() error = %v", err)
	}

	if pages := pdfPageCount(out); pages < 2 {
		t.Errorf("page count = %d, want overflow onto a second page", pages)
	}
}

func TestPDFRenderer_evidenceList(t *testing.T) {
	data := &EvidenceExportData{
		Case:       summaryData(0).Case,
		ExportDate: time.Now(),
		ExportedBy: "jharlow",
		Evidence: []EvidenceItem{
			{Title: "Contract", EvidenceType: "document"},
			{Title: "Photo set", EvidenceType: "photo"},
		},
		CategorySummary: map[string]int{"document": 1, "photo": 1},
		TotalItems:      2,
	}

	out, err := NewPDFRenderer().RenderEvidenceList(data)
	if err != nil {
		t.Fatalf("RenderEvidenceList() error = %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Error("output is not a PDF document")
	}
}

func TestPDFRenderer_timeline(t *testing.T) {
	now := time.Now()
	data := &TimelineExportData{
		Case:       summaryData(0).Case,
		ExportDate: now,
		ExportedBy: "jharlow",
		TimelineEvents: []TimelineEvent{
			{Title: "Filed", EventDate: now.Add(-240 * time.Hour), EventType: "deadline", Completed: true},
		},
		UpcomingDeadlines: []DeadlineItem{
			{Title: "Hearing", DueDate: now.Add(72 * time.Hour), Priority: "high", Status: "upcoming"},
		},
		CompletedEvents: []TimelineEvent{
			{Title: "Filed", EventDate: now.Add(-240 * time.Hour), EventType: "deadline", Completed: true},
		},
	}

	out, err := NewPDFRenderer().RenderTimeline(data)
	if err != nil {
		t.Fatalf("RenderTimeline() error = %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Error("output is not a PDF document")
	}
}

func TestPDFRenderer_caseNotes(t *testing.T) {
	title := "Call summary"
	data := &NotesExportData{
		Case:       summaryData(0).Case,
		ExportDate: time.Now(),
		ExportedBy: "jharlow",
		Notes: []NoteItem{
			{Title: &title, Content: "Client confirmed the dates.", CreatedAt: time.Now()},
			{Content: "Untitled follow-up.", CreatedAt: time.Now()},
		},
		TotalNotes: 2,
	}

	out, err := NewPDFRenderer().RenderCaseNotes(data)
	if err != nil {
		t.Fatalf("RenderCaseNotes() error = %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF") {
		t.Error("output is not a PDF document")
	}
}

// docxDocumentXML extracts word/document.xml from rendered DOCX bytes.
func docxDocumentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a readable zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		return string(body)
	}
	t.Fatal("word/document.xml missing from output")
	return ""
}

// TestRenderers_deterministicOutput verifies that rendering the same view
// twice yields identical bytes for both formats.
func TestRenderers_deterministicOutput(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	data := &EvidenceExportData{
		Case: CaseInfo{
			ID:         1,
			Title:      "State v. Harmon",
			Status:     "open",
			CaseNumber: "2025-CV-0042",
			CreatedAt:  fixed,
			UpdatedAt:  fixed,
		},
		ExportDate: fixed,
		ExportedBy: "jharlow",
		Evidence: []EvidenceItem{
			{Title: "Contract", EvidenceType: "document"},
			{Title: "Photo set", EvidenceType: "photo"},
		},
		CategorySummary: map[string]int{"document": 1, "photo": 1},
		TotalItems:      2,
	}

	pdfFirst, err := NewPDFRenderer().RenderEvidenceList(data)
	if err != nil {
		t.Fatalf("RenderEvidenceList() error = %v", err)
	}
	pdfSecond, err := NewPDFRenderer().RenderEvidenceList(data)
	if err != nil {
		t.Fatalf("RenderEvidenceList() error = %v", err)
	}
	// The document dictionary stamps a wall-clock creation date; everything
	// else must match.
	creationDate := regexp.MustCompile(`/CreationDate \(D:[^)]*\)`)
	if creationDate.ReplaceAllString(string(pdfFirst), "") != creationDate.ReplaceAllString(string(pdfSecond), "") {
		t.Error("identical input should produce identical PDF content")
	}

	docxFirst, err := NewDOCXRenderer().RenderEvidenceList(data)
	if err != nil {
		t.Fatalf("RenderEvidenceList() error = %v", err)
	}
	docxSecond, err := NewDOCXRenderer().RenderEvidenceList(data)
	if err != nil {
		t.Fatalf("RenderEvidenceList() error = %v", err)
	}
	if xmlFirst, xmlSecond := docxDocumentXML(t, docxFirst), docxDocumentXML(t, docxSecond); xmlFirst != xmlSecond {
		t.Error("identical input should produce identical DOCX content")
	}
}

// TestDOCXRenderer_pageBreaksBetweenSections verifies the explicit breaks
// between major sections survive serialization.
func TestDOCXRenderer_pageBreaksBetweenSections(t *testing.T) {
	data := summaryData(2)
	title := "Memo"
	data.Notes = []NoteItem{{Title: &title, Content: "Check precedent.", CreatedAt: time.Now()}}

	out, err := NewDOCXRenderer().RenderCaseSummary(data)
	if err != nil {
		t.Fatalf("RenderCaseSummary() error = %v", err)
	}

	xml := docxDocumentXML(t, out)
	if breaks := strings.Count(xml, "pageBreakBefore"); breaks < 2 {
		t.Errorf("document.xml has %d page-break-before markers, want one per section", breaks)
	}
}

func TestDOCXRenderer_caseSummary(t *testing.T) {
	out, err := NewDOCXRenderer().RenderCaseSummary(summaryData(3))
	if err != nil {
		t.Fatalf("RenderCaseSummary() error = %v", err)
	}

	if !strings.HasPrefix(string(out), "PK") {
		t.Error("output is not a zip container")
	}
	if len(out) == 0 {
		t.Fatal("output is empty")
	}
}

func TestDOCXRenderer_evidenceList(t *testing.T) {
	data := &EvidenceExportData{
		Case:       summaryData(0).Case,
		ExportDate: time.Now(),
		ExportedBy: "jharlow",
		Evidence: []EvidenceItem{
			{Title: "Contract", EvidenceType: "document", Status: "collected"},
		},
		CategorySummary: map[string]int{"document": 1},
		TotalItems:      1,
	}

	out, err := NewDOCXRenderer().RenderEvidenceList(data)
	if err != nil {
		t.Fatalf("RenderEvidenceList() error = %v", err)
	}
	if !strings.HasPrefix(string(out), "PK") {
		t.Error("output is not a zip container")
	}
}

func TestDOCXRenderer_timeline(t *testing.T) {
	now := time.Now()
	data := &TimelineExportData{
		Case:       summaryData(0).Case,
		ExportDate: now,
		ExportedBy: "jharlow",
		UpcomingDeadlines: []DeadlineItem{
			{Title: "Hearing", DueDate: now.Add(72 * time.Hour), Priority: "high", Status: "upcoming"},
		},
	}

	out, err := NewDOCXRenderer().RenderTimeline(data)
	if err != nil {
		t.Fatalf("RenderTimeline() error = %v", err)
	}
	if !strings.HasPrefix(string(out), "PK") {
		t.Error("output is not a zip container")
	}
}

func TestDOCXRenderer_caseNotes(t *testing.T) {
	data := &NotesExportData{
		Case:       summaryData(0).Case,
		ExportDate: time.Now(),
		ExportedBy: "jharlow",
		Notes: []NoteItem{
			{Content: "Settle before discovery.", CreatedAt: time.Now()},
		},
		TotalNotes: 1,
	}

	out, err := NewDOCXRenderer().RenderCaseNotes(data)
	if err != nil {
		t.Fatalf("RenderCaseNotes() error = %v", err)
	}
	if !strings.HasPrefix(string(out), "PK") {
		t.Error("output is not a zip container")
	}
}
