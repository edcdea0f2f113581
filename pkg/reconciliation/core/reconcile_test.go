package core

import "testing"

func findAction(t *testing.T, actions []Action, kind ActionKind, path string) Action {
	t.Helper()
	for _, a := range actions {
		if a.Kind == kind && a.Path == path {
			return a
		}
	}
	t.Fatalf("expected an action %v for %q, got %+v", kind, path, actions)
	return Action{}
}

func defaultConfig() ReconcileConfig {
	return ReconcileConfig{
		SoftDeleteEnabled:      true,
		SoftDeleteMaxSizeBytes: -1,
		PolicyModifyModify:     ResolutionClash,
		PolicyNewNew:           ResolutionClash,
		PolicyMetadataConflict: ResolutionClash,
	}
}

func TestReconcileNewFileOnLeftCopiesToRight(t *testing.T) {
	current := map[string]FileMetadata{
		"new.txt": {Path: "new.txt", Left: SideView{Exists: true, ModTime: 100, Size: 5}},
	}

	actions := Reconcile("/left", "/right", Snapshot{}, current, defaultConfig(), 0.5, nil, nil)

	findAction(t, actions, ActionCopyLeftToRight, "new.txt")
}

func TestReconcileDeletionPropagatesWhenOtherSideUnchanged(t *testing.T) {
	previous := Snapshot{
		"gone.txt": {
			Path:  "gone.txt",
			Left:  SideView{Exists: true, ModTime: 100, Size: 5},
			Right: SideView{Exists: true, ModTime: 100, Size: 5},
		},
	}
	current := map[string]FileMetadata{
		"gone.txt": {Path: "gone.txt", Right: SideView{Exists: true, ModTime: 100, Size: 5}},
	}

	actions := Reconcile("/left", "/right", previous, current, defaultConfig(), 0.5, nil, nil)

	findAction(t, actions, ActionSoftDeleteRight, "gone.txt")
}

func TestReconcileAuthoritativeChangeOverridesOtherSideDeletion(t *testing.T) {
	previous := Snapshot{
		"edited.txt": {
			Path:  "edited.txt",
			Left:  SideView{Exists: true, ModTime: 100, Size: 5},
			Right: SideView{Exists: true, ModTime: 100, Size: 5},
		},
	}
	current := map[string]FileMetadata{
		"edited.txt": {Path: "edited.txt", Left: SideView{Exists: true, ModTime: 200, Size: 7}},
	}

	actions := Reconcile("/left", "/right", previous, current, defaultConfig(), 0.5, nil, nil)

	findAction(t, actions, ActionCopyLeftToRight, "edited.txt")
}

func TestReconcileModifyModifyClashKeepsNewerAndArchivesOlder(t *testing.T) {
	previous := Snapshot{
		"both.txt": {
			Path:  "both.txt",
			Left:  SideView{Exists: true, ModTime: 100, Size: 5},
			Right: SideView{Exists: true, ModTime: 100, Size: 5},
		},
	}
	current := map[string]FileMetadata{
		"both.txt": {
			Path:  "both.txt",
			Left:  SideView{Exists: true, ModTime: 300, Size: 9},
			Right: SideView{Exists: true, ModTime: 200, Size: 8},
		},
	}

	actions := Reconcile("/left", "/right", previous, current, defaultConfig(), 0.5, nil, nil)

	action := findAction(t, actions, ActionClashCreate, "both.txt")
	if action.Payload == nil || action.Payload.ModTime != 200 {
		t.Fatalf("expected clash payload to capture the older (right) side, got %+v", action.Payload)
	}
}

func TestReconcileRenameDetectedOnLeftPropagatesToRight(t *testing.T) {
	previous := Snapshot{
		"old.txt": {
			Path:  "old.txt",
			Left:  SideView{Exists: true, ModTime: 100, Size: 5},
			Right: SideView{Exists: true, ModTime: 100, Size: 5},
		},
	}
	current := map[string]FileMetadata{
		"new.txt": {Path: "new.txt", Left: SideView{Exists: true, ModTime: 100, Size: 5}},
		"old.txt": {Path: "old.txt", Right: SideView{Exists: true, ModTime: 100, Size: 5}},
	}

	actions := Reconcile("/left", "/right", previous, current, defaultConfig(), 0.5, nil, nil)

	findAction(t, actions, ActionCopyLeftToRight, "new.txt")
	findAction(t, actions, ActionDeleteRight, "old.txt")
}

func TestReconcileOutputOrderingPlacesCaseConflictsFirst(t *testing.T) {
	previous := Snapshot{}
	current := map[string]FileMetadata{
		"newfile.txt": {Path: "newfile.txt", Left: SideView{Exists: true, ModTime: 1, Size: 1}},
		"Dup.txt":     {Path: "Dup.txt", Left: SideView{Exists: true, ModTime: 1, Size: 1}},
		"dup.txt":     {Path: "dup.txt", Right: SideView{Exists: true, ModTime: 2, Size: 1}},
	}

	actions := Reconcile("/left", "/right", previous, current, defaultConfig(), 0.5, nil, nil)

	if len(actions) < 2 {
		t.Fatalf("expected at least 2 actions, got %+v", actions)
	}
	if actions[0].Kind != ActionCaseConflict {
		t.Fatalf("expected the case conflict to sort first, got %+v", actions[0])
	}
}
