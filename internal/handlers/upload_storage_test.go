package handlers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeDeleteUploadRefusesOutsidePaths(t *testing.T) {
	dir := t.TempDir()

	if err := safeDeleteUpload(dir, "../etc/passwd"); err == nil {
		t.Fatal("expected refusal for path outside uploads")
	}
	if err := safeDeleteUpload(dir, "uploads/../../etc/passwd"); err == nil {
		t.Fatal("expected refusal for traversal inside uploads prefix")
	}
	if err := safeDeleteUpload(dir, "somewhere/else.png"); err == nil {
		t.Fatal("expected refusal for non-upload prefix")
	}
}

func TestSafeDeleteUploadRemovesStoredFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "products")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(sub, "img.png")
	if err := os.WriteFile(target, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := safeDeleteUpload(dir, "uploads/products/img.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}

func TestSafeDeleteUploadIgnoresMissingAndEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := safeDeleteUpload(dir, ""); err != nil {
		t.Fatalf("empty path should be a no-op: %v", err)
	}
	if err := safeDeleteUpload(dir, "uploads/products/missing.png"); err != nil {
		t.Fatalf("missing file should be a no-op: %v", err)
	}
}
