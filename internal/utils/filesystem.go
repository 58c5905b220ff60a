package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProjectRoot walks upward from startDir looking for the nearest
// directory (inclusive) containing the marker file. If the filesystem root
// is reached without finding it, startDir itself is returned. This degraded
// mode keeps the tool usable in relocated or packaged deployments where the
// marker is absent, and guarantees termination.
func FindProjectRoot(startDir, markerName string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s to an absolute path: %w", startDir, err)
	}
	startAbs := currentDir

	for {
		markerPath := filepath.Join(currentDir, markerName)
		_, err := os.Stat(markerPath)
		// No error means the marker exists.
		if err == nil {
			return currentDir, nil
		} else if !os.IsNotExist(err) {
			// Return any error that's not "file not found" (like permission issues)
			return "", fmt.Errorf("error checking for %s at %s: %w", markerName, currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)

		// Reached the filesystem root without finding the marker.
		if parentDir == currentDir {
			return startAbs, nil
		}
		currentDir = parentDir
	}
}

// FindProjectRootFromWd runs FindProjectRoot starting at the process
// working directory.
func FindProjectRootFromWd(markerName string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return FindProjectRoot(wd, markerName)
}
