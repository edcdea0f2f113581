package core

import (
	"math"
	"os"
	"path/filepath"

	"github.com/foldersync/foldersync/pkg/logging"
	"github.com/foldersync/foldersync/pkg/must"
)

// probeFileName is the throwaway file name used to measure round-trip mtime
// fidelity between the two roots.
const probeFileName = ".foldersync-probe"

// ProbeTolerance measures modification-time precision loss between leftRoot
// and rightRoot by round-tripping a throwaway file, per spec.md §4.1. It
// never aborts the caller: any I/O failure falls back to the conservative
// 2.0 second default.
func ProbeTolerance(leftRoot, rightRoot string, logger *logging.Logger) float64 {
	tolerance, err := probeTolerance(leftRoot, rightRoot, logger)
	if err != nil {
		logger.Warnf("mtime probe failed, falling back to conservative tolerance: %v", err)
		return 2.0
	}
	return tolerance
}

func probeTolerance(leftRoot, rightRoot string, logger *logging.Logger) (float64, error) {
	sourcePath := filepath.Join(leftRoot, probeFileName)
	destPath := filepath.Join(rightRoot, probeFileName)
	defer must.OSRemove(sourcePath, logger)
	defer must.OSRemove(destPath, logger)

	if err := os.WriteFile(sourcePath, []byte("foldersync-probe"), 0o600); err != nil {
		return 0, err
	}

	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return 0, err
	}
	sourceModTime := sourceInfo.ModTime()

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(destPath, data, 0o600); err != nil {
		return 0, err
	}
	if err := os.Chtimes(destPath, sourceModTime, sourceModTime); err != nil {
		return 0, err
	}

	destInfo, err := os.Stat(destPath)
	if err != nil {
		return 0, err
	}
	destModTime := destInfo.ModTime()

	delta := math.Abs(destModTime.Sub(sourceModTime).Seconds())

	if delta >= 1.0 {
		return 2.0, nil
	}
	if delta > 0.001 {
		return math.Max(1.0, 2*delta), nil
	}
	return 0.1, nil
}
