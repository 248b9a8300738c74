package storage

import (
	"testing"
	"time"

	"google.golang.org/api/drive/v3"
)

// TestEscapeQuery tests the escapeQuery function.
func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{"with'quote", "with\\'quote"},
		{"with\\backslash", "with\\\\backslash"},
		{"mixed'and\\special", "mixed\\'and\\\\special"},
	}

	for _, tt := range tests {
		result := escapeQuery(tt.input)
		if result != tt.expected {
			t.Errorf("escapeQuery(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNewFolder(t *testing.T) {
	f := &drive.File{
		Id:          "abc",
		Name:        "2026-08-25",
		CreatedTime: "2026-08-25T10:30:00Z",
	}
	folder := newFolder(f)
	if folder.ID != "abc" {
		t.Errorf("folder.ID = %q, want abc", folder.ID)
	}
	if folder.Name != "2026-08-25" {
		t.Errorf("folder.Name = %q, want 2026-08-25", folder.Name)
	}
	want := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	if !folder.CreatedTime.Equal(want) {
		t.Errorf("folder.CreatedTime = %v, want %v", folder.CreatedTime, want)
	}
}

// TestInterfaceCompliance verifies interface compliance at compile time.
func TestInterfaceCompliance(t *testing.T) {
	var _ FolderAPI = (*DriveStorage)(nil)
	var _ FileAPI = (*DriveStorage)(nil)
}
