// Package testutil provides small helpers for testing headerguard
// components against real temporary trees.
//
// All test data is defined inline in the tests, not in external fixture
// files; each test gets an isolated t.TempDir tree.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree materializes files under dir from a map of slash-separated
// relative paths to contents, creating parent directories as needed.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// ReadTreeFile reads one file back from a tree built with WriteTree.
func ReadTreeFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
