package test

import (
	"path/filepath"
	"testing"
)

// TmpFile returns the path for a throwaway database file. It lives in the
// test's temporary directory and is cleaned up with it.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "spendiq.db")
}
