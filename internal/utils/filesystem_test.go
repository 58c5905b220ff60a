package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectRoot_MarkerInStartDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "stormkeys-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := os.WriteFile(filepath.Join(tmpDir, "mvnw"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to create marker: %v", err)
	}

	root, err := FindProjectRoot(tmpDir, "mvnw")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if mustEval(t, root) != mustEval(t, tmpDir) {
		t.Errorf("Expected root %s, got: %s", tmpDir, root)
	}
}

func TestFindProjectRoot_MarkerInAncestor(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "stormkeys-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := os.WriteFile(filepath.Join(tmpDir, "mvnw"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to create marker: %v", err)
	}

	nested := filepath.Join(tmpDir, "auth", "src", "main")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}

	root, err := FindProjectRoot(nested, "mvnw")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if mustEval(t, root) != mustEval(t, tmpDir) {
		t.Errorf("Expected root %s, got: %s", tmpDir, root)
	}
}

func TestFindProjectRoot_FallbackToStartDir(t *testing.T) {
	// No ancestor of a fresh temp dir carries the marker, so the walk must
	// terminate at the filesystem root and fall back to the start.
	tmpDir, err := os.MkdirTemp("", "stormkeys-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	root, err := FindProjectRoot(tmpDir, "stormkeys-marker-that-never-exists")
	if err != nil {
		t.Fatalf("Expected no error in degraded mode, got: %v", err)
	}
	if mustEval(t, root) != mustEval(t, tmpDir) {
		t.Errorf("Expected fallback to %s, got: %s", tmpDir, root)
	}
}

func TestFindProjectRoot_NearestAncestorWins(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "stormkeys-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Markers at two levels: the walk must stop at the nearest one.
	inner := filepath.Join(tmpDir, "sub")
	if err := os.MkdirAll(inner, 0755); err != nil {
		t.Fatalf("Failed to create inner dir: %v", err)
	}
	for _, dir := range []string{tmpDir, inner} {
		if err := os.WriteFile(filepath.Join(dir, "mvnw"), []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatalf("Failed to create marker: %v", err)
		}
	}

	root, err := FindProjectRoot(inner, "mvnw")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if mustEval(t, root) != mustEval(t, inner) {
		t.Errorf("Expected nearest root %s, got: %s", inner, root)
	}
}

// mustEval resolves symlinks so macOS /var vs /private/var temp paths compare equal.
func mustEval(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", path, err)
	}
	return resolved
}
