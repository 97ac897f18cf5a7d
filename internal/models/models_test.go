// Package models tests for data model helpers.
package models

import (
	"testing"
	"time"
)

// TestCase_timeHelpers verifies unix timestamp conversion.
func TestCase_timeHelpers(t *testing.T) {
	now := time.Now().Unix()
	c := &Case{CreatedAt: now, UpdatedAt: now}

	if c.CreatedAtTime().Unix() != now {
		t.Errorf("CreatedAtTime() = %v, want unix %d", c.CreatedAtTime(), now)
	}
	if c.UpdatedAtTime().Unix() != now {
		t.Errorf("UpdatedAtTime() = %v, want unix %d", c.UpdatedAtTime(), now)
	}
}

// TestCase_Touch verifies Touch advances the UpdatedAt timestamp.
func TestCase_Touch(t *testing.T) {
	c := &Case{UpdatedAt: 1000}
	c.Touch()

	if c.UpdatedAt == 1000 {
		t.Error("Touch() should update UpdatedAt")
	}
}

// TestDeadline_IsCompleted verifies status derivation.
func TestDeadline_IsCompleted(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{DeadlineStatusCompleted, true},
		{DeadlineStatusUpcoming, false},
		{DeadlineStatusOverdue, false},
	}

	for _, tt := range tests {
		d := &Deadline{Status: tt.status}
		if got := d.IsCompleted(); got != tt.want {
			t.Errorf("IsCompleted() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

// TestEvidence_ObtainedDateTime verifies nil handling.
func TestEvidence_ObtainedDateTime(t *testing.T) {
	e := &Evidence{}
	if !e.ObtainedDateTime().IsZero() {
		t.Error("ObtainedDateTime() should be zero when unset")
	}

	when := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC).Unix()
	e.ObtainedDate = &when
	if e.ObtainedDateTime().Unix() != when {
		t.Errorf("ObtainedDateTime() = %v, want unix %d", e.ObtainedDateTime(), when)
	}
}

// TestTableNames verifies table name mapping stays stable.
func TestTableNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"case", Case{}.TableName(), "cases"},
		{"evidence", Evidence{}.TableName(), "evidence"},
		{"deadline", Deadline{}.TableName(), "deadlines"},
		{"note", Note{}.TableName(), "notes"},
		{"document", Document{}.TableName(), "documents"},
		{"user", User{}.TableName(), "users"},
		{"audit log", AuditLog{}.TableName(), "audit_logs"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s table name = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
