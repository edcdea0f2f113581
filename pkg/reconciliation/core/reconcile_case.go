package core

import (
	"sort"
	"strings"
)

// detectCaseChanges implements phase 1 of §4.5.1: case-change and
// case-conflict detection, per spec.md §4.5.4.
func (r *reconciler) detectCaseChanges() {
	buckets := make(map[string][]string)
	for path := range r.current {
		lower := strings.ToLower(path)
		buckets[lower] = append(buckets[lower], path)
	}

	lowers := make([]string, 0, len(buckets))
	for lower := range buckets {
		lowers = append(lowers, lower)
	}
	sort.Strings(lowers)

	for _, lower := range lowers {
		keys := buckets[lower]
		switch len(keys) {
		case 1:
			r.detectPureCaseChange(lower, keys[0])
		case 2:
			sort.Strings(keys)
			r.detectCaseConflict(lower, keys[0], keys[1])
		default:
			// |B| >= 3: left to the other phases, per spec.md §4.5.4.
		}
	}
}

// findPreviousCaseVariant looks for a previous-snapshot key that matches
// lower case-insensitively but differs in actual casing from candidate.
func (r *reconciler) findPreviousCaseVariant(lower, candidate string) (string, bool) {
	for path := range r.previous {
		if path != candidate && strings.ToLower(path) == lower {
			return path, true
		}
	}
	return "", false
}

// detectPureCaseChange handles the |B| == 1 case: current shows a single
// casing C for this path, and every side that has it already agrees on C
// (otherwise merge would have produced a second, variant entry and we'd be
// in the |B| == 2 branch instead). If the previous snapshot recorded a
// different casing, there is nothing left to change on disk — both sides
// already match — but the path is claimed so rename detection doesn't
// mistake the casing bookkeeping for an unrelated rename.
func (r *reconciler) detectPureCaseChange(lower, current string) {
	if _, inPrevious := r.previous[current]; inPrevious {
		return
	}
	previousKey, found := r.findPreviousCaseVariant(lower, current)
	if !found {
		return
	}
	r.claimed[current] = true
	r.claimed[previousKey] = true
}

// detectCaseConflict handles the |B| == 2 case. One of keyA/keyB carries a
// Left view (the canonical merged entry) and the other carries only a
// Right view (the phantom variant merge.go emits when the two sides
// disagree on casing).
func (r *reconciler) detectCaseConflict(lower, keyA, keyB string) {
	metaA, metaB := r.current[keyA], r.current[keyB]

	var leftKey, rightKey string
	var leftMeta, rightMeta FileMetadata
	switch {
	case metaA.Left.Exists && metaB.Right.Exists && !metaB.Left.Exists:
		leftKey, leftMeta = keyA, metaA
		rightKey, rightMeta = keyB, metaB
	case metaB.Left.Exists && metaA.Right.Exists && !metaA.Left.Exists:
		leftKey, leftMeta = keyB, metaB
		rightKey, rightMeta = keyA, metaA
	default:
		// Doesn't match the shape merge.go produces for a genuine case
		// split; leave it for the other phases.
		return
	}

	previousKey, foundPrevious := r.findPreviousCaseVariantAmong(lower, leftKey, rightKey)

	// A change to the same casing on both sides only ever produces |B| ==
	// 1; by construction leftKey != rightKey here, so this is always one
	// of sub-cases (a), (b), or (c) in spec.md §4.5.4, and all three are
	// handled identically: emit a CaseConflict.

	leftModTime := leftMeta.Left.ModTime
	rightModTime := rightMeta.Right.ModTime

	var winnerKey, loserKey string
	var loserRoot, loserRelative string
	var loserModTime float64
	var loserSize int64

	if leftModTime == rightModTime {
		// Tie-break: left wins.
		winnerKey, loserKey = leftKey, rightKey
		loserRoot, loserRelative = r.rightRoot, rightKey
		loserModTime, loserSize = rightMeta.Right.ModTime, rightMeta.Right.Size
	} else if leftModTime > rightModTime {
		winnerKey, loserKey = leftKey, rightKey
		loserRoot, loserRelative = r.rightRoot, rightKey
		loserModTime, loserSize = rightMeta.Right.ModTime, rightMeta.Right.Size
	} else {
		winnerKey, loserKey = rightKey, leftKey
		loserRoot, loserRelative = r.leftRoot, leftKey
		loserModTime, loserSize = leftMeta.Left.ModTime, leftMeta.Left.Size
	}

	payload := &ConflictPayload{
		Bytes:   r.readSideBytes(loserRoot, loserRelative),
		ModTime: loserModTime,
		Size:    loserSize,
	}

	r.claimed[leftKey] = true
	r.claimed[rightKey] = true
	if foundPrevious {
		r.claimed[previousKey] = true
	}

	r.emit(Action{
		Kind:          ActionCaseConflict,
		Path:          winnerKey,
		SecondaryPath: loserKey,
		Payload:       payload,
		Reason:        "case conflict: " + leftKey + " vs " + rightKey,
	}, categoryCaseConflict)

	r.notifier.ConflictDetected(ConflictAlert{
		Path:         winnerKey,
		Kind:         "case_conflict",
		LeftModTime:  leftMeta.Left.ModTime,
		RightModTime: rightMeta.Right.ModTime,
		LeftSize:     leftMeta.Left.Size,
		RightSize:    rightMeta.Right.Size,
		ActionTaken:  ActionCaseConflict,
	})
}

func (r *reconciler) findPreviousCaseVariantAmong(lower, leftKey, rightKey string) (string, bool) {
	for path := range r.previous {
		if strings.ToLower(path) != lower {
			continue
		}
		if path != leftKey && path != rightKey {
			return path, true
		}
	}
	return "", false
}
