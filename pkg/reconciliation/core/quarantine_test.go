package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPurgeQuarantineRemovesOnlyOldFiles(t *testing.T) {
	root := t.TempDir()
	quarantineDir := filepath.Join(root, quarantineDirName)
	if err := os.MkdirAll(quarantineDir, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	now := time.Now()
	old := filepath.Join(quarantineDir, "20200101_000000_old.txt")
	fresh := filepath.Join(quarantineDir, "20240101_000000_fresh.txt")
	for _, path := range []string{old, fresh} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	oldTime := now.Add(-365 * 24 * time.Hour)
	if err := os.Chtimes(old, oldTime, oldTime); err != nil {
		t.Fatalf("setup chtimes: %v", err)
	}

	purged, err := PurgeQuarantine(root, 30*24*time.Hour, now, nil)
	if err != nil {
		t.Fatalf("PurgeQuarantine: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected exactly 1 purged file, got %d", purged)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected old quarantined file to be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("expected fresh quarantined file to survive: %v", err)
	}
}

func TestPurgeQuarantineMissingDirectoryIsNotAnError(t *testing.T) {
	purged, err := PurgeQuarantine(t.TempDir(), time.Hour, time.Now(), nil)
	if err != nil {
		t.Fatalf("expected no error for a missing quarantine directory, got %v", err)
	}
	if purged != 0 {
		t.Fatalf("expected 0 purged files, got %d", purged)
	}
}
