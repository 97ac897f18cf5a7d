package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"caseport/internal/audit"
	"caseport/internal/db"
	"caseport/internal/errors"
	"caseport/internal/logging"
	"caseport/internal/models"
)

// Service orchestrates one export: access check, aggregation, template
// shaping, rendering, the file write, and the audit record. An export is a
// single synchronous attempt; there is no retry and no background queue.
type Service struct {
	aggregator *Aggregator
	pdf        *PDFRenderer
	docx       *DOCXRenderer
	audit      audit.Recorder
	exportDir  string
}

// NewService creates an export Service writing generated files under
// exportDir unless the caller overrides the destination.
func NewService(repo db.ExportRepository, dec Decrypter, recorder audit.Recorder, exportDir string) *Service {
	return &Service{
		aggregator: NewAggregator(repo, dec),
		pdf:        NewPDFRenderer(),
		docx:       NewDOCXRenderer(),
		audit:      recorder,
		exportDir:  exportDir,
	}
}

// ExportCase runs the full pipeline for the given case and options.
// A nil opts exports the case-summary template as PDF with every section.
func (s *Service) ExportCase(caseID, userID int64, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if caseID <= 0 {
		return nil, errors.New(errors.ErrInvalid, "case id must be positive")
	}
	if userID <= 0 {
		return nil, errors.New(errors.ErrInvalid, "user id must be positive")
	}
	if !opts.Format.Valid() {
		return nil, errors.Newf(errors.ErrInvalidFormat, "unsupported format %q", opts.Format)
	}
	// Reject unknown templates before touching the database.
	if !KnownTemplate(opts.Template) {
		return nil, errors.Newf(errors.ErrInvalidTemplate, "unknown template %q", opts.Template)
	}

	model, err := s.aggregator.Gather(caseID, userID, opts)
	if err != nil {
		return nil, err
	}

	view, err := Reshape(opts.Template, model)
	if err != nil {
		return nil, err
	}

	entry := registry[opts.Template]
	var data []byte
	var action string
	switch opts.Format {
	case FormatPDF:
		data, err = entry.renderPDF(s.pdf, view)
		action = models.ActionExportCasePDF
	case FormatDocx:
		data, err = entry.renderDOCX(s.docx, view)
		action = models.ActionExportCaseDocx
	}
	if err != nil {
		return nil, err
	}

	path := s.resolvePath(caseID, opts, model)
	if err := writeFileAtomic(path, data); err != nil {
		return nil, err
	}

	// Audit only after a successful write, and best-effort: a failed audit
	// insert does not undo a delivered export.
	if auditErr := s.audit.LogAction(audit.Entry{
		UserID:       userID,
		Action:       action,
		ResourceType: models.ResourceTypeCase,
		ResourceID:   caseID,
		Details: map[string]interface{}{
			"template": string(opts.Template),
			"filePath": path,
		},
	}); auditErr != nil {
		logging.Error("audit record write failed after export", auditErr, map[string]interface{}{
			"case_id": caseID,
			"user_id": userID,
		})
	}

	logging.Info("case exported", map[string]interface{}{
		"case_id":  caseID,
		"user_id":  userID,
		"template": string(opts.Template),
		"format":   string(opts.Format),
		"size":     len(data),
	})

	return &Result{
		Success:    true,
		FilePath:   path,
		FileName:   filepath.Base(path),
		Format:     opts.Format,
		Size:       int64(len(data)),
		ExportedAt: model.ExportDate,
		Template:   opts.Template,
	}, nil
}

// ExportCaseToPDF exports a case as PDF.
func (s *Service) ExportCaseToPDF(caseID, userID int64, opts *Options) (*Result, error) {
	opts = withFormat(opts, FormatPDF)
	return s.ExportCase(caseID, userID, opts)
}

// ExportCaseToWord exports a case as DOCX.
func (s *Service) ExportCaseToWord(caseID, userID int64, opts *Options) (*Result, error) {
	opts = withFormat(opts, FormatDocx)
	return s.ExportCase(caseID, userID, opts)
}

// ExportEvidenceList exports the evidence-list template as PDF, gathering
// only the evidence section.
func (s *Service) ExportEvidenceList(caseID, userID int64) (*Result, error) {
	opts := sectionOnlyOptions(TemplateEvidenceList, FormatPDF)
	opts.IncludeEvidence = true
	return s.ExportCase(caseID, userID, opts)
}

// ExportTimelineReport exports the timeline-report template as PDF,
// gathering only the timeline and deadline sections.
func (s *Service) ExportTimelineReport(caseID, userID int64) (*Result, error) {
	opts := sectionOnlyOptions(TemplateTimeline, FormatPDF)
	opts.IncludeTimeline = true
	return s.ExportCase(caseID, userID, opts)
}

// ExportCaseNotesPDF exports the case-notes template as PDF, gathering only
// the notes section.
func (s *Service) ExportCaseNotesPDF(caseID, userID int64) (*Result, error) {
	opts := sectionOnlyOptions(TemplateCaseNotes, FormatPDF)
	opts.IncludeNotes = true
	return s.ExportCase(caseID, userID, opts)
}

// ExportCaseNotesWord exports the case-notes template as DOCX, gathering
// only the notes section.
func (s *Service) ExportCaseNotesWord(caseID, userID int64) (*Result, error) {
	opts := sectionOnlyOptions(TemplateCaseNotes, FormatDocx)
	opts.IncludeNotes = true
	return s.ExportCase(caseID, userID, opts)
}

// withFormat copies opts (or the defaults) with the format pinned.
func withFormat(opts *Options, format Format) *Options {
	if opts == nil {
		opts = DefaultOptions()
	} else {
		clone := *opts
		opts = &clone
	}
	opts.Format = format
	return opts
}

// sectionOnlyOptions returns options with every section excluded; the
// wrapper enables exactly the sections its template needs.
func sectionOnlyOptions(tpl Template, format Format) *Options {
	return &Options{
		Format:   format,
		Template: tpl,
	}
}

// resolvePath computes the destination file path. An explicit OutputPath
// wins; otherwise a deterministic, collision-resistant name is generated
// under the export directory.
func (s *Service) resolvePath(caseID int64, opts *Options, model *CaseExport) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}

	name := opts.FileName
	if name == "" {
		// ISO 8601 with colons and periods stripped, so the name is safe
		// on every filesystem.
		stamp := strings.NewReplacer(":", "", ".", "").Replace(
			model.ExportDate.UTC().Format("2006-01-02T15:04:05.000Z"))
		name = fmt.Sprintf("case-%d-%s-%s.%s", caseID, opts.Template, stamp, opts.Format.Ext())
	}

	return filepath.Join(s.exportDir, name)
}

// writeFileAtomic writes data so readers of the final path never observe a
// partial file: the bytes land in a temp file that is renamed into place.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrIOFailure, "failed to create export directory", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return errors.Wrap(errors.ErrIOFailure, "failed to write export file", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Wrap(errors.ErrIOFailure, "failed to finalize export file", err)
	}

	return nil
}
