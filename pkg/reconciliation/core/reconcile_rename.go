package core

import "sort"

// renameFingerprint is the (mtime, size) key used to match a disappeared
// path to an appeared one, per spec.md §4.5.5. Rename detection is
// advisory: a false match across unrelated files of identical size created
// in the same second is an acknowledged sharp edge (spec.md §9), not
// mitigated here.
type renameFingerprint struct {
	modTime float64
	size    int64
}

// renameCandidate records the new name each side independently proposes
// for a given old path. An empty string means that side proposed nothing.
type renameCandidate struct {
	left, right string
}

// detectRenames implements phase 2 of §4.5.1, per spec.md §4.5.5.
func (r *reconciler) detectRenames() {
	leftDisappeared, rightDisappeared := r.buildDisappeared()
	leftAppeared, rightAppeared := r.buildAppeared()

	candidates := make(map[string]*renameCandidate)
	r.matchRenameSide(leftDisappeared, leftAppeared, candidates, func(c *renameCandidate, newPath string) {
		c.left = newPath
	})
	r.matchRenameSide(rightDisappeared, rightAppeared, candidates, func(c *renameCandidate, newPath string) {
		c.right = newPath
	})

	oldPaths := make([]string, 0, len(candidates))
	for old := range candidates {
		oldPaths = append(oldPaths, old)
	}
	sort.Strings(oldPaths)

	for _, old := range oldPaths {
		if r.claimed[old] {
			continue
		}
		candidate := candidates[old]
		switch {
		case candidate.left != "" && candidate.right != "":
			if candidate.left == candidate.right {
				r.claimed[old] = true
				r.claimed[candidate.left] = true
			} else {
				r.emitRenameConflict(old, candidate.left, candidate.right)
			}
		case candidate.left != "":
			r.emitOneSidedRename(old, candidate.left, true)
		case candidate.right != "":
			r.emitOneSidedRename(old, candidate.right, false)
		}
	}
}

func (r *reconciler) buildDisappeared() (left, right map[renameFingerprint][]string) {
	left = make(map[renameFingerprint][]string)
	right = make(map[renameFingerprint][]string)

	for path, prev := range r.previous {
		current, ok := r.current[path]
		if prev.Left.Exists && !(ok && current.Left.Exists) {
			key := renameFingerprint{prev.Left.ModTime, prev.Left.Size}
			left[key] = append(left[key], path)
		}
		if prev.Right.Exists && !(ok && current.Right.Exists) {
			key := renameFingerprint{prev.Right.ModTime, prev.Right.Size}
			right[key] = append(right[key], path)
		}
	}
	return left, right
}

func (r *reconciler) buildAppeared() (left, right map[renameFingerprint][]string) {
	left = make(map[renameFingerprint][]string)
	right = make(map[renameFingerprint][]string)

	for path, current := range r.current {
		prev, ok := r.previous[path]
		if current.Left.Exists && !(ok && prev.Left.Exists) {
			key := renameFingerprint{current.Left.ModTime, current.Left.Size}
			left[key] = append(left[key], path)
		}
		if current.Right.Exists && !(ok && prev.Right.Exists) {
			key := renameFingerprint{current.Right.ModTime, current.Right.Size}
			right[key] = append(right[key], path)
		}
	}
	return left, right
}

func (r *reconciler) matchRenameSide(disappeared, appeared map[renameFingerprint][]string, candidates map[string]*renameCandidate, assign func(*renameCandidate, string)) {
	for key, oldPaths := range disappeared {
		if len(oldPaths) != 1 {
			continue
		}
		newPaths, ok := appeared[key]
		if !ok || len(newPaths) != 1 {
			continue
		}
		old, newPath := oldPaths[0], newPaths[0]
		if r.claimed[old] || r.claimed[newPath] {
			continue
		}
		candidate, exists := candidates[old]
		if !exists {
			candidate = &renameCandidate{}
			candidates[old] = candidate
		}
		assign(candidate, newPath)
	}
}

// emitRenameConflict handles two sides disagreeing on the new name for the
// same old path: left's rename is canonical, right's becomes a conflict
// artifact (spec.md §4.5.5).
func (r *reconciler) emitRenameConflict(old, leftNew, rightNew string) {
	rightMeta := r.current[rightNew]

	payload := &ConflictPayload{
		Bytes:   r.readSideBytes(r.rightRoot, rightNew),
		ModTime: rightMeta.Right.ModTime,
		Size:    rightMeta.Right.Size,
	}

	r.claimed[old] = true
	r.claimed[leftNew] = true
	r.claimed[rightNew] = true

	r.emit(Action{
		Kind:          ActionRenameConflict,
		Path:          leftNew,
		SecondaryPath: rightNew,
		Payload:       payload,
		Reason:        "rename conflict: " + old + " -> " + leftNew + " vs " + rightNew,
	}, categoryRenameConflict)

	r.notifier.ConflictDetected(ConflictAlert{
		Path:        leftNew,
		Kind:        "rename_conflict",
		ActionTaken: ActionRenameConflict,
	})
}

// emitOneSidedRename handles a rename observed on only one side: it is
// propagated by copying the new name's content to the other side and
// deleting the old name there.
func (r *reconciler) emitOneSidedRename(old, newPath string, observedOnLeft bool) {
	r.claimed[old] = true
	r.claimed[newPath] = true

	if observedOnLeft {
		r.emit(Action{Kind: ActionCopyLeftToRight, Path: newPath, Reason: "propagate rename from left: " + old + " -> " + newPath}, categoryRename)
		r.emit(Action{Kind: ActionDeleteRight, Path: old, Reason: "rename propagated, removing old name"}, categoryRename)
	} else {
		r.emit(Action{Kind: ActionCopyRightToLeft, Path: newPath, Reason: "propagate rename from right: " + old + " -> " + newPath}, categoryRename)
		r.emit(Action{Kind: ActionDeleteLeft, Path: old, Reason: "rename propagated, removing old name"}, categoryRename)
	}
}
