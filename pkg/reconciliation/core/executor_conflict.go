package core

import (
	"fmt"
	"os"

	"github.com/foldersync/foldersync/pkg/filesystem"
)

// fileExists reports whether path currently exists on disk, following
// symlinks.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// executeClashCreate implements spec.md §4.6 "ClashCreate": archives the
// older side's captured bytes as a conflict artifact on both sides, then
// overwrites the older side with the newer side's current content.
func (e *Executor) executeClashCreate(action Action) (ExecutionOutcome, error) {
	if action.Payload == nil {
		return OutcomeFailure, fmt.Errorf("clash action for %q missing payload", action.Path)
	}

	leftPath := absolute(e.leftRoot, action.Path)
	rightPath := absolute(e.rightRoot, action.Path)

	leftInfo, err := os.Stat(leftPath)
	if err != nil {
		return OutcomeFailure, fmt.Errorf("unable to stat %q on left: %w", action.Path, err)
	}
	rightInfo, err := os.Stat(rightPath)
	if err != nil {
		return OutcomeFailure, fmt.Errorf("unable to stat %q on right: %w", action.Path, err)
	}

	timestamp := e.conflictArtifactTimestamp()
	artifactRelative := conflictArtifactPath(action.Path, timestamp)
	if err := e.writeArtifactBothSides(artifactRelative, action.Payload); err != nil {
		return OutcomeFailure, err
	}

	// Left wins ties, matching the reconciler's tie-break (spec.md §4.5.6).
	if !leftInfo.ModTime().Before(rightInfo.ModTime()) {
		if err := e.overwriteWithSource(leftPath, rightPath, leftInfo); err != nil {
			return OutcomeFailure, fmt.Errorf("unable to overwrite older right copy: %w", err)
		}
	} else {
		if err := e.overwriteWithSource(rightPath, leftPath, rightInfo); err != nil {
			return OutcomeFailure, fmt.Errorf("unable to overwrite older left copy: %w", err)
		}
	}
	return OutcomeSuccess, nil
}

// overwriteWithSource copies srcPath's content over dstPath, preserving
// srcPath's modification time and attributes.
func (e *Executor) overwriteWithSource(srcPath, dstPath string, srcInfo os.FileInfo) error {
	attrs, err := filesystem.Attributes(srcPath)
	if err != nil {
		e.logger.Warnf("unable to read attributes for %q: %v", srcPath, err)
	}
	modTime := float64(srcInfo.ModTime().UnixNano()) / 1e9
	return filesystem.CopyFilePreserving(srcPath, dstPath, modTime, attrs, e.logger)
}

// writeArtifactBothSides writes a conflict artifact's captured bytes to the
// same relative path under both roots.
func (e *Executor) writeArtifactBothSides(artifactRelative string, payload *ConflictPayload) error {
	leftArtifact := absolute(e.leftRoot, artifactRelative)
	rightArtifact := absolute(e.rightRoot, artifactRelative)
	if err := filesystem.WriteConflictArtifact(leftArtifact, payload.Bytes, payload.ModTime, e.logger); err != nil {
		return fmt.Errorf("unable to write conflict artifact on left: %w", err)
	}
	if err := filesystem.WriteConflictArtifact(rightArtifact, payload.Bytes, payload.ModTime, e.logger); err != nil {
		return fmt.Errorf("unable to write conflict artifact on right: %w", err)
	}
	return nil
}

// executeCaseConflict implements spec.md §4.6 "CaseConflict": the payload
// (the older casing's captured bytes) becomes a conflict artifact on both
// sides, and the newer casing becomes canonical on both sides. The root
// still holding the losing casing gets its file replaced by a fresh copy
// of the winner's current content under the winning name.
func (e *Executor) executeCaseConflict(action Action) (ExecutionOutcome, error) {
	if action.Payload == nil {
		return OutcomeFailure, fmt.Errorf("case conflict action for %q missing payload", action.Path)
	}
	winnerKey, loserKey := action.Path, action.SecondaryPath

	timestamp := e.conflictArtifactTimestamp()
	artifactRelative := conflictArtifactPath(loserKey, timestamp)
	if err := e.writeArtifactBothSides(artifactRelative, action.Payload); err != nil {
		return OutcomeFailure, err
	}

	if fileExists(absolute(e.leftRoot, loserKey)) {
		if err := e.replaceLosingCasing(e.leftRoot, e.rightRoot, winnerKey, loserKey); err != nil {
			return OutcomeFailure, fmt.Errorf("unable to resolve case conflict on left: %w", err)
		}
	}
	if fileExists(absolute(e.rightRoot, loserKey)) {
		if err := e.replaceLosingCasing(e.rightRoot, e.leftRoot, winnerKey, loserKey); err != nil {
			return OutcomeFailure, fmt.Errorf("unable to resolve case conflict on right: %w", err)
		}
	}
	return OutcomeSuccess, nil
}

// replaceLosingCasing removes fixRoot's file under the losing casing (its
// bytes are already archived) and replaces it with a fresh copy of the
// winning casing's current content, sourced from winnerRoot.
func (e *Executor) replaceLosingCasing(fixRoot, winnerRoot, winnerKey, loserKey string) error {
	loserPath := absolute(fixRoot, loserKey)
	if err := os.Remove(loserPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unable to remove losing casing %q: %w", loserPath, err)
	}

	winnerSrcPath := absolute(winnerRoot, winnerKey)
	info, err := os.Stat(winnerSrcPath)
	if err != nil {
		return fmt.Errorf("unable to stat winner source %q: %w", winnerSrcPath, err)
	}
	return e.overwriteWithSource(winnerSrcPath, absolute(fixRoot, winnerKey), info)
}

// executeRenameConflict implements spec.md §4.6 "RenameConflict": left's
// new name is canonical on both sides, right's new name's captured bytes
// become a conflict artifact on both sides, and right's own copy under its
// new name is removed (superseded by the canonical name).
func (e *Executor) executeRenameConflict(action Action) (ExecutionOutcome, error) {
	if action.Payload == nil {
		return OutcomeFailure, fmt.Errorf("rename conflict action for %q missing payload", action.Path)
	}
	leftNew, rightNew := action.Path, action.SecondaryPath

	timestamp := e.conflictArtifactTimestamp()
	artifactRelative := conflictArtifactPath(rightNew, timestamp)
	if err := e.writeArtifactBothSides(artifactRelative, action.Payload); err != nil {
		return OutcomeFailure, err
	}

	leftSrcPath := absolute(e.leftRoot, leftNew)
	info, err := os.Stat(leftSrcPath)
	if err != nil {
		return OutcomeFailure, fmt.Errorf("unable to stat canonical source %q: %w", leftSrcPath, err)
	}
	if err := e.overwriteWithSource(leftSrcPath, absolute(e.rightRoot, leftNew), info); err != nil {
		return OutcomeFailure, fmt.Errorf("unable to write canonical name on right: %w", err)
	}

	rightNewPath := absolute(e.rightRoot, rightNew)
	if err := os.Remove(rightNewPath); err != nil && !os.IsNotExist(err) {
		return OutcomeFailure, fmt.Errorf("unable to remove superseded %q: %w", rightNewPath, err)
	}
	return OutcomeSuccess, nil
}
