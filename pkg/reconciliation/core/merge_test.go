package core

import "testing"

func TestMergeBothSides(t *testing.T) {
	left := map[string]ScanEntry{
		"a.txt": {Path: "a.txt", ModTime: 100, Size: 10},
	}
	right := map[string]ScanEntry{
		"a.txt": {Path: "a.txt", ModTime: 100, Size: 10},
	}

	merged := Merge(left, right)
	if len(merged) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(merged))
	}
	entry, ok := merged["a.txt"]
	if !ok {
		t.Fatalf("expected entry for a.txt")
	}
	if !entry.BothExist() {
		t.Fatalf("expected both sides to exist")
	}
}

func TestMergeLeftOnly(t *testing.T) {
	left := map[string]ScanEntry{"only-left.txt": {Path: "only-left.txt", ModTime: 1, Size: 1}}
	right := map[string]ScanEntry{}

	merged := Merge(left, right)
	entry := merged["only-left.txt"]
	if !entry.LeftOnly() {
		t.Fatalf("expected left-only entry, got %+v", entry)
	}
}

func TestMergeCaseVariant(t *testing.T) {
	left := map[string]ScanEntry{"Report.txt": {Path: "Report.txt", ModTime: 1, Size: 1}}
	right := map[string]ScanEntry{"report.txt": {Path: "report.txt", ModTime: 2, Size: 1}}

	merged := Merge(left, right)

	canonical, ok := merged["Report.txt"]
	if !ok {
		t.Fatalf("expected a canonical entry under the left's casing")
	}
	if !canonical.Left.Exists || !canonical.Right.Exists {
		t.Fatalf("expected canonical entry to carry both sides, got %+v", canonical)
	}

	variant, ok := merged["report.txt"]
	if !ok {
		t.Fatalf("expected a phantom variant entry under the right's casing")
	}
	if variant.Left.Exists || !variant.Right.Exists {
		t.Fatalf("expected variant entry to carry only the right view, got %+v", variant)
	}
}

func TestMergeDoesNotStealExactCaseMatch(t *testing.T) {
	left := map[string]ScanEntry{
		"Report.txt": {Path: "Report.txt", ModTime: 1, Size: 1},
		"report.txt": {Path: "report.txt", ModTime: 2, Size: 2},
	}
	right := map[string]ScanEntry{
		"report.txt": {Path: "report.txt", ModTime: 3, Size: 2},
	}

	merged := Merge(left, right)

	if merged["report.txt"].Right.ModTime != 3 {
		t.Fatalf("expected report.txt to match its own exact-case right entry, got %+v", merged["report.txt"])
	}
	if merged["Report.txt"].Right.Exists {
		t.Fatalf("Report.txt should not have stolen the report.txt right entry, got %+v", merged["Report.txt"])
	}
}
