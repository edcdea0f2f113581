package core

import (
	"testing"
	"time"
)

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("unable to parse time %q: %v", value, err)
	}
	return parsed
}

func TestOrderActionsGroupsByCategory(t *testing.T) {
	actions := []Action{
		{Kind: ActionCopyLeftToRight, Path: "z.txt", category: categoryPerPathRule},
		{Kind: ActionClashCreate, Path: "conflict.txt", category: categoryContentConflict},
		{Kind: ActionCaseConflict, Path: "Case.txt", category: categoryCaseConflict},
		{Kind: ActionCopyLeftToRight, Path: "a.txt", category: categoryPerPathRule},
		{Kind: ActionDeleteDirLeft, Path: "a/b", category: categoryDirectoryDeletion},
		{Kind: ActionDeleteDirLeft, Path: "a", category: categoryDirectoryDeletion},
	}

	orderActions(actions)

	wantOrder := []string{"Case.txt", "conflict.txt", "a.txt", "z.txt", "a/b", "a"}
	if len(actions) != len(wantOrder) {
		t.Fatalf("expected %d actions, got %d", len(wantOrder), len(actions))
	}
	for i, path := range wantOrder {
		if actions[i].Path != path {
			t.Fatalf("position %d: expected %q, got %q (full order: %+v)", i, path, actions[i].Path, actions)
		}
	}
}

func TestConflictArtifactNamePlacesTimestampAndUserBeforeExtension(t *testing.T) {
	stem, ext := splitStemExt("report.docx")
	if stem != "report" || ext != ".docx" {
		t.Fatalf("expected stem %q ext %q, got %q %q", "report", ".docx", stem, ext)
	}

	stem, ext = splitStemExt("README")
	if stem != "README" || ext != "" {
		t.Fatalf("expected no extension for README, got stem %q ext %q", stem, ext)
	}

	name := conflictArtifactName("report.docx", mustParseTime(t, "2024-01-02T03:04:05Z"))
	if want := "report.CONFLICT." + currentUsername() + ".20240102_030405.docx"; name != want {
		t.Fatalf("expected conflict artifact name %q, got %q", want, name)
	}
}

func TestQuarantineNamePrefixesTimestamp(t *testing.T) {
	name := quarantineName("notes.txt", mustParseTime(t, "2024-01-02T03:04:05Z"))
	if name != "20240102_030405_notes.txt" {
		t.Fatalf("unexpected quarantine name: %q", name)
	}
}
