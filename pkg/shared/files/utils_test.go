package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasExtension(t *testing.T) {
	testCases := []struct {
		path     string
		exts     []string
		expected bool
	}{
		{"scan.json", []string{".json"}, true},
		{"SCAN.JSON", []string{".json"}, true},
		{"scan.json.bak", []string{".json"}, false},
		{"notes.txt", []string{".json"}, false},
		{"report.pdf", []string{".png", ".pdf"}, true},
		{"noext", []string{".json"}, false},
	}

	for _, tc := range testCases {
		if got := HasExtension(tc.path, tc.exts...); got != tc.expected {
			t.Errorf("HasExtension(%q, %v) = %v, expected %v", tc.path, tc.exts, got, tc.expected)
		}
	}
}

func TestWriteFileCreatesParentAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "artifact.png")

	if err := WriteFile(target, []byte("first")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := WriteFile(target, []byte("second")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected overwritten content %q, got %q", "second", string(data))
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()

	if err := ValidatePath(dir); err == nil {
		t.Error("Expected error for directory path")
	}
	if err := ValidatePath(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing path")
	}

	file := filepath.Join(dir, "scan.json")
	if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := ValidatePath(file); err != nil {
		t.Errorf("Unexpected error for regular file: %v", err)
	}
}
