package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFilePreservingRestoresModTime(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "a.txt")
	dstPath := filepath.Join(dstDir, "a.txt")

	if err := os.WriteFile(srcPath, []byte("hello"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	const modTime = 1700000000.5
	if err := CopyFilePreserving(srcPath, dstPath, modTime, AttributeReadOnly, nil); err != nil {
		t.Fatalf("CopyFilePreserving: %v", err)
	}

	data, err := os.ReadFile(dstPath)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected copied content, got %q", data)
	}

	info, err := os.Stat(dstPath)
	if err != nil {
		t.Fatalf("stat destination: %v", err)
	}
	expected := TimeFromUnixSeconds(modTime)
	if !info.ModTime().Equal(expected) {
		t.Fatalf("expected mod time %v, got %v", expected, info.ModTime())
	}
}

func TestCopyFilePreservingSameFileIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := CopyFilePreserving(path, path, 0, 0, nil); err != nil {
		t.Fatalf("expected copying a file onto itself to be a no-op, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected content to survive unchanged, got %q", data)
	}
}

func TestWriteConflictArtifactCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "report.CONFLICT.alice.20240101_000000.txt")

	if err := WriteConflictArtifact(path, []byte("conflicted"), 1700000000, nil); err != nil {
		t.Fatalf("WriteConflictArtifact: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "conflicted" {
		t.Fatalf("expected artifact content, got %q", data)
	}
}
