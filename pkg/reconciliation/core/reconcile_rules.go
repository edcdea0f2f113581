package core

import "sort"

// applyPerPathRules implements phase 4 of §4.5.1: the deterministic
// per-path table of spec.md §4.5.7, applied to paths left unclaimed by the
// earlier phases.
func (r *reconciler) applyPerPathRules() {
	paths := make([]string, 0, len(r.current))
	for path := range r.current {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if r.claimed[path] {
			continue
		}
		curr := r.current[path]
		prev, hadPrev := r.previous[path]

		if curr.IsDirectory() {
			r.applyDirectoryRule(path, curr)
			continue
		}

		switch {
		case curr.LeftOnly() && !hadPrev:
			r.emit(Action{Kind: ActionCopyLeftToRight, Path: path, Reason: "new file on left"}, categoryPerPathRule)
		case curr.RightOnly() && !hadPrev:
			r.emit(Action{Kind: ActionCopyRightToLeft, Path: path, Reason: "new file on right"}, categoryPerPathRule)
		case curr.LeftOnly() && hadPrev && prev.Right.Exists:
			r.applyOneSideMissingRule(path, curr, prev, true)
		case curr.RightOnly() && hadPrev && prev.Left.Exists:
			r.applyOneSideMissingRule(path, curr, prev, false)
		case curr.BothExist():
			r.applyBothPresentRule(path, curr, prev, hadPrev)
		default:
			// Steady state (e.g. a one-sided file that was always one-sided):
			// nothing in §4.5.7 calls for action.
		}
	}
}

// applyDirectoryRule handles the three directory rows of spec.md §4.5.7.
func (r *reconciler) applyDirectoryRule(path string, curr FileMetadata) {
	switch {
	case curr.LeftOnly():
		r.emit(Action{Kind: ActionCreateDirRight, Path: path, Reason: "directory new on left"}, categoryPerPathRule)
	case curr.RightOnly():
		r.emit(Action{Kind: ActionCreateDirLeft, Path: path, Reason: "directory new on right"}, categoryPerPathRule)
	default:
		// Both sides already carry the directory: none.
	}
}

// applyOneSideMissingRule handles the four "one side vanished since P" rows
// of spec.md §4.5.7. isLeftPresent is true when curr is left-only (i.e. the
// right-side copy disappeared).
func (r *reconciler) applyOneSideMissingRule(path string, curr, prev FileMetadata, isLeftPresent bool) {
	if isLeftPresent {
		switch {
		case r.same(curr.Left.ModTime, prev.Left.ModTime):
			r.emitSoftDeleteOrDelete(path, true, prev.Right.Size, "right deleted, left unchanged: propagating delete")
		case r.changed(curr.Left.ModTime, prev.Left.ModTime):
			r.emit(Action{Kind: ActionCopyLeftToRight, Path: path, Reason: "left authoritative over right deletion"}, categoryPerPathRule)
		}
		return
	}

	switch {
	case r.same(curr.Right.ModTime, prev.Right.ModTime):
		r.emitSoftDeleteOrDelete(path, false, prev.Left.Size, "left deleted, right unchanged: propagating delete")
	case r.changed(curr.Right.ModTime, prev.Right.ModTime):
		r.emit(Action{Kind: ActionCopyRightToLeft, Path: path, Reason: "right authoritative over left deletion"}, categoryPerPathRule)
	}
}

// emitSoftDeleteOrDelete picks SoftDeleteX vs DeleteX per the soft-delete
// gating rule of spec.md §4.5.7; referenceSize is the size of the version
// being removed, used for the size cap check.
func (r *reconciler) emitSoftDeleteOrDelete(path string, isLeft bool, referenceSize int64, reason string) {
	softDelete := r.config.softDeleteApplies(referenceSize)
	var kind ActionKind
	switch {
	case isLeft && softDelete:
		kind = ActionSoftDeleteLeft
	case isLeft && !softDelete:
		kind = ActionDeleteLeft
	case !isLeft && softDelete:
		kind = ActionSoftDeleteRight
	default:
		kind = ActionDeleteRight
	}
	r.emit(Action{Kind: kind, Path: path, Reason: reason}, categoryPerPathRule)
}

// applyBothPresentRule handles the remaining rows of spec.md §4.5.7 where
// both sides carry the file.
func (r *reconciler) applyBothPresentRule(path string, curr, prev FileMetadata, hadPrev bool) {
	if !hadPrev {
		// Reached only when phase 3 found the new-new pair's content
		// already identical; nothing further to do.
		r.emit(Action{Kind: ActionNoop, Path: path, Reason: "new on both sides, already identical"}, categoryPerPathRule)
		return
	}

	leftChanged := r.changed(curr.Left.ModTime, prev.Left.ModTime)
	rightChanged := r.changed(curr.Right.ModTime, prev.Right.ModTime)

	switch {
	case leftChanged && !rightChanged:
		r.emit(Action{Kind: ActionCopyLeftToRight, Path: path, Reason: "left changed"}, categoryPerPathRule)
	case rightChanged && !leftChanged:
		r.emit(Action{Kind: ActionCopyRightToLeft, Path: path, Reason: "right changed"}, categoryPerPathRule)
	case !leftChanged && !rightChanged:
		r.applyAttributeSync(path, curr, prev)
	default:
		// Both changed: should already have been claimed by phase 3's
		// modify-modify check. Defensive no-op if reached anyway.
	}
}

// applyAttributeSync handles the attrs-differ row of spec.md §4.5.7.
func (r *reconciler) applyAttributeSync(path string, curr, prev FileMetadata) {
	if curr.Left.Attributes == curr.Right.Attributes {
		return
	}
	leftAttrsChanged := curr.Left.Attributes != prev.Left.Attributes
	rightAttrsChanged := curr.Right.Attributes != prev.Right.Attributes

	switch {
	case leftAttrsChanged && !rightAttrsChanged:
		r.emit(Action{Kind: ActionSyncAttrsLeftToRight, Path: path, Attributes: curr.Left.Attributes, Reason: "left attributes changed"}, categoryPerPathRule)
	case rightAttrsChanged && !leftAttrsChanged:
		r.emit(Action{Kind: ActionSyncAttrsRightToLeft, Path: path, Attributes: curr.Right.Attributes, Reason: "right attributes changed"}, categoryPerPathRule)
	}
}

// sweepDirectoryDeletions implements phase 5 of §4.5.1, per spec.md §4.5.8.
func (r *reconciler) sweepDirectoryDeletions() {
	paths := make([]string, 0, len(r.previous))
	for path := range r.previous {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if r.claimed[path] {
			continue
		}
		if _, stillPresent := r.current[path]; stillPresent {
			continue
		}
		prev := r.previous[path]
		if !prev.IsDirectory() {
			continue
		}

		if prev.Left.Exists {
			r.emit(Action{Kind: ActionDeleteDirLeft, Path: path, Reason: "directory removed from left"}, categoryDirectoryDeletion)
		}
		if prev.Right.Exists {
			r.emit(Action{Kind: ActionDeleteDirRight, Path: path, Reason: "directory removed from right"}, categoryDirectoryDeletion)
		}
		r.claimed[path] = true
	}
}
