// Package main provides the caseport command line entry point: it wires the
// storage, crypto, and audit layers together and runs a single case export.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"caseport/internal/audit"
	"caseport/internal/config"
	"caseport/internal/crypto"
	"caseport/internal/db"
	"caseport/internal/export"
	"caseport/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "caseport: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("caseport", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var (
		showVersion   = fs.Bool("version", false, "print the version and exit")
		listTemplates = fs.Bool("list-templates", false, "list available export templates and exit")
		caseID        = fs.Int64("case", 0, "id of the case to export")
		userID        = fs.Int64("user", 0, "id of the user requesting the export")
		template      = fs.String("template", string(export.TemplateCaseSummary), "export template")
		format        = fs.String("format", string(export.FormatPDF), "output format (pdf or docx)")
		output        = fs.String("output", "", "explicit output file path (optional)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "caseport v%s\n", Version)
		return nil
	}
	if *listTemplates {
		for _, info := range export.ListTemplates() {
			fmt.Fprintf(stdout, "%-16s %s\n", info.ID, info.Description)
		}
		return nil
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	logging.Init(os.Stderr, cfg.LogLevel)

	svc, closeDB, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	opts := export.DefaultOptions()
	opts.Template = export.Template(*template)
	opts.Format = export.Format(*format)
	opts.OutputPath = *output

	result, err := svc.ExportCase(*caseID, *userID, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "exported case %d as %s (%d bytes)\n", *caseID, result.Format, result.Size)
	fmt.Fprintln(stdout, result.FilePath)
	return nil
}

// buildService assembles the export pipeline from configuration. The second
// return value closes the underlying database.
func buildService(cfg *config.Config) (*export.Service, func(), error) {
	database, err := db.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Initialize(); err != nil {
		database.Close()
		return nil, nil, err
	}

	encryptor, err := crypto.NewEncryptor(cfg.EncryptionKey)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	repo := db.NewRepository(database)
	svc := export.NewService(repo, encryptor, audit.NewLogger(repo), cfg.ExportDir)
	return svc, func() { database.Close() }, nil
}
