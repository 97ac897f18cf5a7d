// Package main tests for the command line entry point.
package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"caseport/internal/crypto"
	"caseport/internal/db"
	"caseport/internal/models"
)

func TestRun_version(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"-version"}, &buf); err != nil {
		t.Fatalf("run(-version) error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "caseport v") {
		t.Errorf("output = %q, want version banner", buf.String())
	}
}

func TestRun_listTemplates(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"-list-templates"}, &buf); err != nil {
		t.Fatalf("run(-list-templates) error = %v", err)
	}

	out := buf.String()
	for _, id := range []string{"case-summary", "evidence-list", "timeline-report", "case-notes"} {
		if !strings.Contains(out, id) {
			t.Errorf("template listing missing %q:\n%s", id, out)
		}
	}
}

func TestRun_missingEncryptionKey(t *testing.T) {
	t.Setenv("CASEPORT_ENCRYPTION_KEY", "")

	var buf bytes.Buffer
	err := run([]string{"-case", "1", "-user", "1"}, &buf)
	if err == nil {
		t.Fatal("run() should fail without an encryption key")
	}
	if !strings.Contains(err.Error(), "CASEPORT_ENCRYPTION_KEY") {
		t.Errorf("error = %v, want a missing-key message", err)
	}
}

// TestRun_exportEndToEnd seeds a case directly through the repository and
// exports it through the command line path.
func TestRun_exportEndToEnd(t *testing.T) {
	dataDir := t.TempDir()
	exportDir := t.TempDir()

	t.Setenv("CASEPORT_DATA_DIR", dataDir)
	t.Setenv("CASEPORT_EXPORT_DIR", exportDir)
	t.Setenv("CASEPORT_ENCRYPTION_KEY", "cli-test-key")
	t.Setenv("CASEPORT_LOG_LEVEL", "error")

	seedCase(t, dataDir, "cli-test-key")

	outPath := filepath.Join(exportDir, "out.pdf")
	var buf bytes.Buffer
	err := run([]string{"-case", "1", "-user", "1", "-template", "case-summary", "-output", outPath}, &buf)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !strings.Contains(buf.String(), outPath) {
		t.Errorf("output = %q, want the export file path", buf.String())
	}
}

func seedCase(t *testing.T, dataDir, key string) {
	t.Helper()

	database, err := db.Open(dataDir)
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	defer database.Close()

	if err := database.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	encryptor, err := crypto.NewEncryptor(key)
	if err != nil {
		t.Fatalf("NewEncryptor() error = %v", err)
	}
	title, err := encryptor.Encrypt("State v. Harmon")
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	repo := db.NewRepository(database)
	user := &models.User{Username: "jharlow"}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	c := &models.Case{
		UserID:     user.ID,
		Title:      title,
		Status:     models.CaseStatusOpen,
		CaseNumber: "2025-CV-0042",
	}
	if err := repo.CreateCase(c); err != nil {
		t.Fatalf("CreateCase() error = %v", err)
	}
}

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}
