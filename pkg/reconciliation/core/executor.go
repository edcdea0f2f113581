package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/foldersync/foldersync/pkg/filesystem"
	"github.com/foldersync/foldersync/pkg/logging"
)

// ExecutionOutcome classifies how an action's execution went, per spec.md
// §4.6 "Contract": success, recoverable failure, or fatal.
type ExecutionOutcome int

const (
	OutcomeSuccess ExecutionOutcome = iota
	OutcomeFailure
	OutcomeFatal
)

// ExecutionResult pairs an action with how it went, for the cycle
// orchestrator's end-of-cycle report.
type ExecutionResult struct {
	Action  Action
	Outcome ExecutionOutcome
	Err     error
}

// Executor applies a reconciled action list to the filesystem, per spec.md
// §4.6. It is constructed fresh per cycle.
type Executor struct {
	leftRoot, rightRoot string
	dryRun              bool
	notifier            Notifier
	logger              *logging.Logger
}

// NewExecutor constructs an Executor. dryRun converts every action to a log
// entry instead of issuing filesystem calls (spec.md §4.6 "Dry-run mode").
func NewExecutor(leftRoot, rightRoot string, dryRun bool, notifier Notifier, logger *logging.Logger) *Executor {
	if notifier == nil {
		notifier = DiscardNotifier{}
	}
	return &Executor{
		leftRoot:  leftRoot,
		rightRoot: rightRoot,
		dryRun:    dryRun,
		notifier:  notifier,
		logger:    logger,
	}
}

// Execute applies actions in the order given (the caller is expected to have
// already run orderActions via Reconcile). It stops at the first fatal
// outcome; recoverable failures are recorded and execution continues, per
// spec.md §4.6 "Contract" and §7. A cancelled context is honored between
// actions: the in-flight action finishes (including its alert bookkeeping)
// before Execute returns, per spec.md §5 "Cancellation".
func (e *Executor) Execute(ctx context.Context, actions []Action) []ExecutionResult {
	results := make([]ExecutionResult, 0, len(actions))
	for _, action := range actions {
		outcome, err := e.executeOne(action)
		if err != nil {
			e.notifier.ErrorOccurred(ErrorAlert{Path: action.Path, Kind: action.Kind, Message: err.Error()})
		}
		results = append(results, ExecutionResult{Action: action, Outcome: outcome, Err: err})
		if outcome == OutcomeFatal {
			break
		}
		if ctx.Err() != nil {
			e.logger.Warnf("cycle cancelled after %d/%d actions", len(results), len(actions))
			break
		}
	}
	return results
}

func (e *Executor) executeOne(action Action) (ExecutionOutcome, error) {
	if e.dryRun {
		e.logger.Infof("[dry-run] %s %s", action.Kind, action.Path)
		return OutcomeSuccess, nil
	}

	switch action.Kind {
	case ActionNoop:
		return OutcomeSuccess, nil
	case ActionCopyLeftToRight:
		return e.executeCopy(action, e.leftRoot, e.rightRoot)
	case ActionCopyRightToLeft:
		return e.executeCopy(action, e.rightRoot, e.leftRoot)
	case ActionDeleteLeft:
		return e.executeDelete(action, e.leftRoot)
	case ActionDeleteRight:
		return e.executeDelete(action, e.rightRoot)
	case ActionSoftDeleteLeft:
		return e.executeSoftDelete(action, e.leftRoot)
	case ActionSoftDeleteRight:
		return e.executeSoftDelete(action, e.rightRoot)
	case ActionClashCreate:
		return e.executeClashCreate(action)
	case ActionCaseConflict:
		return e.executeCaseConflict(action)
	case ActionRenameConflict:
		return e.executeRenameConflict(action)
	case ActionRenameLeft:
		return e.executeRenameInPlace(action, e.leftRoot)
	case ActionRenameRight:
		return e.executeRenameInPlace(action, e.rightRoot)
	case ActionCreateDirLeft:
		return e.executeCreateDir(action, e.leftRoot)
	case ActionCreateDirRight:
		return e.executeCreateDir(action, e.rightRoot)
	case ActionDeleteDirLeft:
		return e.executeDeleteDir(action, e.leftRoot)
	case ActionDeleteDirRight:
		return e.executeDeleteDir(action, e.rightRoot)
	case ActionSyncAttrsLeftToRight:
		return e.executeSyncAttrs(action, e.rightRoot)
	case ActionSyncAttrsRightToLeft:
		return e.executeSyncAttrs(action, e.leftRoot)
	default:
		return OutcomeFailure, fmt.Errorf("unrecognized action kind %v", action.Kind)
	}
}

// absolute resolves a relative path against a root.
func absolute(root, relativePath string) string {
	return filepath.Join(root, filepath.FromSlash(relativePath))
}

// executeCopy implements spec.md §4.6 "Copy".
func (e *Executor) executeCopy(action Action, srcRoot, dstRoot string) (ExecutionOutcome, error) {
	srcPath := absolute(srcRoot, action.Path)
	dstPath := absolute(dstRoot, action.Path)

	info, err := os.Stat(srcPath)
	if err != nil {
		return OutcomeFailure, fmt.Errorf("unable to stat source %q: %w", srcPath, err)
	}
	attrs, err := filesystem.Attributes(srcPath)
	if err != nil {
		e.logger.Warnf("unable to read attributes for %q: %v", srcPath, err)
	}

	modTime := float64(info.ModTime().UnixNano()) / 1e9
	if err := filesystem.CopyFilePreserving(srcPath, dstPath, modTime, attrs, e.logger); err != nil {
		return OutcomeFailure, fmt.Errorf("copy %q failed: %w", action.Path, err)
	}
	// float64 seconds cannot carry every nanosecond of the source mtime, so
	// the exact value is restored on the destination here.
	if err := os.Chtimes(dstPath, info.ModTime(), info.ModTime()); err != nil {
		e.logger.Warnf("unable to restore exact modification time on %q: %v", dstPath, err)
	}
	e.logger.Debugf("copied %q (%s)", action.Path, humanize.Bytes(uint64(info.Size())))
	return OutcomeSuccess, nil
}

// executeDelete implements spec.md §4.6 "Delete (hard)".
func (e *Executor) executeDelete(action Action, root string) (ExecutionOutcome, error) {
	path := absolute(root, action.Path)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			e.logger.Warnf("delete target %q already absent", path)
			return OutcomeSuccess, nil
		}
		return OutcomeFailure, fmt.Errorf("unable to delete %q: %w", path, err)
	}
	return OutcomeSuccess, nil
}

// quarantineDirName is the sibling directory soft-deleted files are moved
// into, per spec.md §4.5.7 "Soft-delete gating".
const quarantineDirName = ".deleted"

// executeSoftDelete implements spec.md §4.6 "Soft-delete": moves the file
// into a `.deleted/` sibling directory within the same root, falling back
// to copy+unlink if the rename fails (e.g. a cross-device quarantine
// mount).
func (e *Executor) executeSoftDelete(action Action, root string) (ExecutionOutcome, error) {
	srcPath := absolute(root, action.Path)
	quarantineDir := filepath.Join(root, quarantineDirName)
	if err := os.MkdirAll(quarantineDir, 0o755); err != nil {
		return OutcomeFailure, fmt.Errorf("unable to create quarantine directory: %w", err)
	}

	destPath := filepath.Join(quarantineDir, quarantineName(filepath.Base(srcPath), e.conflictArtifactTimestamp()))

	if err := os.Rename(srcPath, destPath); err == nil {
		return OutcomeSuccess, nil
	} else if os.IsNotExist(err) {
		e.logger.Warnf("soft-delete target %q already absent", srcPath)
		return OutcomeSuccess, nil
	} else {
		e.logger.Warnf("soft-delete rename failed for %q, falling back to copy+unlink: %v", srcPath, err)
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return OutcomeSuccess, nil
		}
		return OutcomeFailure, fmt.Errorf("unable to stat %q for soft-delete fallback: %w", srcPath, err)
	}
	if err := e.overwriteWithSource(srcPath, destPath, info); err != nil {
		return OutcomeFailure, fmt.Errorf("soft-delete fallback copy failed: %w", err)
	}
	if err := os.Remove(srcPath); err != nil {
		return OutcomeFailure, fmt.Errorf("soft-delete fallback unlink failed: %w", err)
	}
	return OutcomeSuccess, nil
}

// executeCreateDir implements spec.md §4.6 "Directory create / delete".
func (e *Executor) executeCreateDir(action Action, root string) (ExecutionOutcome, error) {
	path := absolute(root, action.Path)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return OutcomeFailure, fmt.Errorf("unable to create directory %q: %w", path, err)
	}
	return OutcomeSuccess, nil
}

// executeDeleteDir re-checks emptiness before removing, per spec.md §4.6:
// "DeleteDirX must re-check emptiness and skip (warn) otherwise."
func (e *Executor) executeDeleteDir(action Action, root string) (ExecutionOutcome, error) {
	path := absolute(root, action.Path)
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			e.logger.Warnf("directory %q already absent", path)
			return OutcomeSuccess, nil
		}
		return OutcomeFailure, fmt.Errorf("unable to read directory %q: %w", path, err)
	}
	if len(entries) > 0 {
		e.logger.Warnf("refusing to delete non-empty directory %q", path)
		return OutcomeSuccess, nil
	}
	if err := os.Remove(path); err != nil {
		return OutcomeFailure, fmt.Errorf("unable to remove directory %q: %w", path, err)
	}
	return OutcomeSuccess, nil
}

// executeSyncAttrs implements spec.md §4.6 "SyncAttrs".
func (e *Executor) executeSyncAttrs(action Action, root string) (ExecutionOutcome, error) {
	path := absolute(root, action.Path)
	if err := filesystem.SetAttributes(path, action.Attributes); err != nil {
		return OutcomeFailure, fmt.Errorf("unable to set attributes on %q: %w", path, err)
	}
	return OutcomeSuccess, nil
}

// executeRenameInPlace handles the ActionRenameLeft/ActionRenameRight
// variants. The reconciler's current phases never emit these (one-sided
// rename propagation uses copy+delete instead, since the destination
// content must actually exist on the other side); they remain implemented
// defensively since they are valid Action variants per spec.md §3.
func (e *Executor) executeRenameInPlace(action Action, root string) (ExecutionOutcome, error) {
	oldPath := absolute(root, action.Path)
	newPath := absolute(root, action.SecondaryPath)
	if err := filesystem.RenameCasePreserving(oldPath, newPath); err != nil {
		return OutcomeFailure, fmt.Errorf("unable to rename %q to %q: %w", oldPath, newPath, err)
	}
	return OutcomeSuccess, nil
}

// conflictArtifactTimestamp is the single point of "now" for artifact
// naming within one executor, so a multi-file action (e.g. ClashCreate
// writing to both sides) uses one consistent timestamp.
func (e *Executor) conflictArtifactTimestamp() time.Time {
	return time.Now()
}
