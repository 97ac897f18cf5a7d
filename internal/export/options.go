package export

import "time"

// Format selects the output document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
)

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Valid reports whether the format is one the pipeline can render.
func (f Format) Valid() bool {
	return f == FormatPDF || f == FormatDocx
}

// Options controls one export invocation. The include flags are plain
// bools, so a literal like &Options{Template: ...} gathers no sections at
// all and the template will reject the empty model. Start from
// DefaultOptions, which enables every section, and narrow from there; only
// a nil *Options passed to ExportCase is replaced with the defaults.
type Options struct {
	Format   Format
	Template Template

	IncludeEvidence  bool
	IncludeTimeline  bool
	IncludeNotes     bool
	IncludeFacts     bool
	IncludeDocuments bool

	// OutputPath, when set, is used verbatim as the destination file.
	OutputPath string
	// FileName, when set, replaces the generated file name under the
	// export directory. Ignored when OutputPath is set.
	FileName string
}

// DefaultOptions returns options with every section included, the
// case-summary template and PDF output.
func DefaultOptions() *Options {
	return &Options{
		Format:           FormatPDF,
		Template:         TemplateCaseSummary,
		IncludeEvidence:  true,
		IncludeTimeline:  true,
		IncludeNotes:     true,
		IncludeFacts:     true,
		IncludeDocuments: true,
	}
}

// Result summarizes a completed export.
type Result struct {
	Success    bool      `json:"success"`
	FilePath   string    `json:"file_path"`
	FileName   string    `json:"file_name"`
	Format     Format    `json:"format"`
	Size       int64     `json:"size"`
	ExportedAt time.Time `json:"exported_at"`
	Template   Template  `json:"template"`
}
