package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatFileSize(t *testing.T) {
	s := NewStorageService(t.TempDir())

	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"Zero bytes", 0, "0 Bytes"},
		{"Bytes", 512, "512.0 Bytes"},
		{"KB", 1024, "1.0 KB"},
		{"MB", 1048576, "1.0 MB"},
		{"GB", 1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.FormatFileSize(tt.bytes); got != tt.want {
				t.Errorf("FormatFileSize(%d) = %v, want %v", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestGetFormattedFileSize(t *testing.T) {
	dir := t.TempDir()
	s := NewStorageService(dir)

	if got := s.GetFormattedFileSize(""); got != "0 Bytes" {
		t.Errorf("Expected '0 Bytes' for empty filename, got %q", got)
	}
	if got := s.GetFormattedFileSize("missing.mp4"); got != "0 Bytes" {
		t.Errorf("Expected '0 Bytes' for missing file, got %q", got)
	}

	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, make([]byte, 2048), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if got := s.GetFormattedFileSize("clip.mp4"); got != "2.0 KB" {
		t.Errorf("Expected '2.0 KB', got %q", got)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	s := NewStorageService(dir)

	path := filepath.Join(dir, "clip.mp4")
	if s.FileExists(path) {
		t.Error("Expected FileExists to be false before creation")
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if !s.FileExists(path) {
		t.Error("Expected FileExists to be true after creation")
	}
}
