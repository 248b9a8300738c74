package storage

import (
	"errors"
	"testing"

	apperrors "github.com/apkship/apkship/internal/errors"
)

func TestNewFolderPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
		wantErr  bool
	}{
		{"single", []string{"Apk"}, "/Apk", false},
		{"nested", []string{"Apk", "MyApp", "2026-08-25"}, "/Apk/MyApp/2026-08-25", false},
		{"empty path", nil, "", true},
		{"empty segment", []string{"Apk", ""}, "", true},
		{"segment with slash", []string{"Apk/MyApp"}, "", true},
		{"dot segment", []string{"."}, "", true},
		{"dotdot segment", []string{"Apk", ".."}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFolderPath(tt.segments...)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidPath) {
					t.Fatalf("NewFolderPath(%v) error = %v, want ErrInvalidPath", tt.segments, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFolderPath(%v) error = %v", tt.segments, err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestNewFolderPath_Immutable(t *testing.T) {
	segments := []string{"Apk", "MyApp"}
	path, err := NewFolderPath(segments...)
	if err != nil {
		t.Fatalf("NewFolderPath() error = %v", err)
	}
	segments[0] = "mutated"
	if path[0] != "Apk" {
		t.Errorf("path[0] = %q, want %q (caller mutation leaked)", path[0], "Apk")
	}
}

func TestParseFolderPath(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"/Apk", "/Apk", false},
		{"/Apk/MyApp", "/Apk/MyApp", false},
		{"/Apk//MyApp/", "/Apk/MyApp", false},
		{"", "", true},
		{"relative/path", "", true},
		{"/", "", true},
		{"/Apk/../MyApp", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFolderPath(tt.input)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidPath) {
					t.Fatalf("ParseFolderPath(%q) error = %v, want ErrInvalidPath", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFolderPath(%q) error = %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}
