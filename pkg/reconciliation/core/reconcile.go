package core

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/foldersync/foldersync/pkg/logging"
)

// Resolution is a conflict resolution policy (spec.md §3
// conflict_policy.*), mirrored here independently of the configuration
// package so that core has no dependency on it; the cycle orchestrator
// translates configuration.ConflictResolution into this type.
type Resolution int

const (
	ResolutionClash Resolution = iota
	ResolutionNotifyOnly
	ResolutionOverwriteNewer
)

// ReconcileConfig carries the subset of configuration the reconciler needs,
// per spec.md §3's configuration view.
type ReconcileConfig struct {
	SoftDeleteEnabled bool
	// SoftDeleteMaxSizeBytes caps the size of a file eligible for
	// quarantine. A negative value means no cap.
	SoftDeleteMaxSizeBytes int64

	PolicyModifyModify     Resolution
	PolicyNewNew           Resolution
	PolicyMetadataConflict Resolution
}

// softDeleteApplies reports whether a removed file of the given size
// should be quarantined rather than hard-deleted (spec.md §4.5.7 "Soft-
// delete gating").
func (c ReconcileConfig) softDeleteApplies(size int64) bool {
	if !c.SoftDeleteEnabled {
		return false
	}
	if c.SoftDeleteMaxSizeBytes < 0 {
		return true
	}
	return size <= c.SoftDeleteMaxSizeBytes
}

// reconciler holds the mutable state threaded through the five phases of
// §4.5.1. It is constructed fresh for every cycle.
type reconciler struct {
	leftRoot, rightRoot string
	previous            Snapshot
	current             map[string]FileMetadata
	config              ReconcileConfig
	tolerance           float64
	notifier            Notifier
	logger              *logging.Logger

	// claimed tracks paths already handled by an earlier phase so later
	// phases skip them, per spec.md §4.5.1.
	claimed map[string]bool
	actions []Action
	now     time.Time
}

// Reconcile is the pure(-ish; it reads file contents from disk only to
// capture conflict payloads, never to confirm same-content) function from (previous, current, config, tolerance) to an ordered list
// of actions, per spec.md §4.5.
func Reconcile(leftRoot, rightRoot string, previous Snapshot, current map[string]FileMetadata, config ReconcileConfig, tolerance float64, notifier Notifier, logger *logging.Logger) []Action {
	if notifier == nil {
		notifier = DiscardNotifier{}
	}
	r := &reconciler{
		leftRoot:  leftRoot,
		rightRoot: rightRoot,
		previous:  previous,
		current:   current,
		config:    config,
		tolerance: tolerance,
		notifier:  notifier,
		logger:    logger,
		claimed:   make(map[string]bool),
		now:       time.Now(),
	}

	r.detectCaseChanges()
	r.detectRenames()
	r.detectContentConflicts()
	r.applyPerPathRules()
	r.sweepDirectoryDeletions()

	orderActions(r.actions)
	return r.actions
}

// emit appends an action, tagging it with the output-ordering bucket for
// the phase that produced it (spec.md §4.5.9). Every phase must pass its
// own category explicitly: several phases share ActionKind values (e.g.
// rename propagation and per-path rules both use CopyLeftToRight), so the
// category cannot be inferred from the kind alone.
func (r *reconciler) emit(a Action, cat actionCategory) {
	a.category = cat
	r.actions = append(r.actions, a)
}

// changed reports whether curr's mtime exceeds prev's by more than
// tolerance, per spec.md §4.5.2.
func (r *reconciler) changed(curr, prev float64) bool {
	return curr > prev+r.tolerance
}

// same reports whether curr and prev are within tolerance of each other.
func (r *reconciler) same(curr, prev float64) bool {
	return math.Abs(curr-prev) <= r.tolerance
}

// sameContent applies the same-content heuristic of spec.md §4.5.3: equal
// sizes and mtimes within tolerance of one another.
func (r *reconciler) sameContent(left, right SideView) bool {
	if !left.Exists || !right.Exists {
		return false
	}
	if left.Size != right.Size {
		return false
	}
	return r.same(left.ModTime, right.ModTime)
}

// readSideBytes reads the on-disk content of relativePath from the given
// root, used to capture a conflict payload at detection time. Errors are
// swallowed to an empty payload with a warning: a missing/unreadable file
// being preserved as a conflict artifact is still better than aborting the
// cycle over it (spec.md §7: executor/per-action errors are never fatal).
func (r *reconciler) readSideBytes(root, relativePath string) []byte {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relativePath)))
	if err != nil {
		r.logger.Warnf("unable to capture conflict payload for %q: %v", relativePath, err)
		return nil
	}
	return data
}
