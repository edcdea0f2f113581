package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("hello")
	logger.Warnf("uh oh: %d", 1)
	if sub := logger.Sublogger("child"); sub != nil {
		t.Fatalf("expected Sublogger on a nil receiver to return nil, got %+v", sub)
	}
}

func TestLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRoot(LevelWarn, &buf)

	logger.Info("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected info output to be filtered at warn level, got %q", buf.String())
	}

	logger.Warnf("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected warn output to appear, got %q", buf.String())
	}
}

func TestSubloggerPrefixesHierarchically(t *testing.T) {
	var buf bytes.Buffer
	root := NewRoot(LevelInfo, &buf)
	child := root.Sublogger("cycle").Sublogger("scan.left")

	child.Infof("scanning")
	if !strings.Contains(buf.String(), "[cycle.scan.left] scanning") {
		t.Fatalf("expected hierarchical prefix, got %q", buf.String())
	}
}

func TestNameToLevelRoundTrips(t *testing.T) {
	for _, name := range []string{"disabled", "error", "warn", "info", "debug"} {
		level, ok := NameToLevel(name)
		if !ok {
			t.Fatalf("expected %q to be a valid level name", name)
		}
		if level.String() != name {
			t.Fatalf("expected level.String() to round-trip %q, got %q", name, level.String())
		}
	}

	if _, ok := NameToLevel("verbose"); ok {
		t.Fatalf("expected an unrecognized level name to be rejected")
	}
}
