package core

import "sort"

// detectContentConflicts implements phase 3 of §4.5.1: modify-modify,
// new-new, and metadata conflicts, per spec.md §4.5.6.
func (r *reconciler) detectContentConflicts() {
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
		if curr.IsDirectory() || !curr.BothExist() {
			continue
		}

		prev, hadPrev := r.previous[path]
		resolved := false

		if hadPrev {
			leftChanged := r.changed(curr.Left.ModTime, prev.Left.ModTime)
			rightChanged := r.changed(curr.Right.ModTime, prev.Right.ModTime)
			if leftChanged && rightChanged && !r.sameContent(curr.Left, curr.Right) {
				r.claimed[path] = true
				r.resolveContentConflict(path, curr, r.config.PolicyModifyModify, "modify_modify")
				resolved = true
			}
		} else if !r.sameContent(curr.Left, curr.Right) {
			r.claimed[path] = true
			r.resolveContentConflict(path, curr, r.config.PolicyNewNew, "new_new")
			resolved = true
		}

		if resolved {
			continue
		}

		if sizesDifferSignificantly(curr.Left.Size, curr.Right.Size) {
			r.claimed[path] = true
			r.resolveContentConflict(path, curr, r.config.PolicyMetadataConflict, "metadata_conflict")
		}
	}
}

// sizesDifferSignificantly reports whether two sizes differ by more than
// 1% of the larger, per spec.md §4.5.6 "Metadata".
func sizesDifferSignificantly(left, right int64) bool {
	larger, smaller := left, right
	if smaller > larger {
		larger, smaller = smaller, larger
	}
	if larger == 0 {
		return false
	}
	diff := larger - smaller
	return float64(diff) > 0.01*float64(larger)
}

// resolveContentConflict maps a detected conflict through the configured
// per-type policy to a resolution, per spec.md §4.5.6.
func (r *reconciler) resolveContentConflict(path string, curr FileMetadata, policy Resolution, kind string) {
	switch policy {
	case ResolutionClash:
		r.emitClash(path, curr, kind)
	case ResolutionOverwriteNewer:
		r.emitOverwriteNewer(path, curr, kind)
	default: // ResolutionNotifyOnly
		r.emitNotifyOnly(path, curr, kind)
	}
}

// emitClash keeps the newer side and archives the older side's captured
// bytes as a conflict artifact on both sides (spec.md §4.6 "ClashCreate").
// Which side was older is recorded in Reason for logging; the executor
// re-derives it by comparing the two sides' live modification times.
func (r *reconciler) emitClash(path string, curr FileMetadata, kind string) {
	var payload *ConflictPayload
	var olderSide string

	if curr.Left.ModTime >= curr.Right.ModTime {
		olderSide = "right"
		payload = &ConflictPayload{
			Bytes:   r.readSideBytes(r.rightRoot, path),
			ModTime: curr.Right.ModTime,
			Size:    curr.Right.Size,
		}
	} else {
		olderSide = "left"
		payload = &ConflictPayload{
			Bytes:   r.readSideBytes(r.leftRoot, path),
			ModTime: curr.Left.ModTime,
			Size:    curr.Left.Size,
		}
	}

	r.emit(Action{
		Kind:    ActionClashCreate,
		Path:    path,
		Payload: payload,
		Reason:  kind + ": keeping newer, archiving " + olderSide + " as conflict artifact",
	}, categoryContentConflict)

	r.notifier.ConflictDetected(ConflictAlert{
		Path:         path,
		Kind:         kind,
		LeftModTime:  curr.Left.ModTime,
		RightModTime: curr.Right.ModTime,
		LeftSize:     curr.Left.Size,
		RightSize:    curr.Right.Size,
		ActionTaken:  ActionClashCreate,
	})
}

// emitOverwriteNewer copies the newer side over the older; equal mtimes are
// a no-op (spec.md §4.5.6 "overwrite_newer").
func (r *reconciler) emitOverwriteNewer(path string, curr FileMetadata, kind string) {
	switch {
	case curr.Left.ModTime > curr.Right.ModTime:
		r.emit(Action{Kind: ActionCopyLeftToRight, Path: path, Reason: kind + ": left newer"}, categoryContentConflict)
	case curr.Right.ModTime > curr.Left.ModTime:
		r.emit(Action{Kind: ActionCopyRightToLeft, Path: path, Reason: kind + ": right newer"}, categoryContentConflict)
	default:
		r.emit(Action{Kind: ActionNoop, Path: path, Reason: kind + ": equal mtimes, no-op"}, categoryContentConflict)
	}

	r.notifier.ConflictDetected(ConflictAlert{
		Path:         path,
		Kind:         kind,
		LeftModTime:  curr.Left.ModTime,
		RightModTime: curr.Right.ModTime,
		LeftSize:     curr.Left.Size,
		RightSize:    curr.Right.Size,
	})
}

// emitNotifyOnly leaves the conflicting path untouched and alerts, per
// spec.md §4.5.6 "notify_only".
func (r *reconciler) emitNotifyOnly(path string, curr FileMetadata, kind string) {
	r.emit(Action{
		Kind:   ActionNoop,
		Path:   path,
		Reason: kind + ": notify_only policy",
	}, categoryContentConflict)

	r.notifier.ConflictDetected(ConflictAlert{
		Path:         path,
		Kind:         kind,
		LeftModTime:  curr.Left.ModTime,
		RightModTime: curr.Right.ModTime,
		LeftSize:     curr.Left.Size,
		RightSize:    curr.Right.Size,
		ActionTaken:  ActionNoop,
	})
}
