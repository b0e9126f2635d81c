package staging

import (
	"fmt"
	"os"
	"path/filepath"

	logger "psh/internal/log"
)

// RootRegistry knows which directories are already provisioned project
// roots. The production implementation reads the per-directory project
// records; tests substitute a fixed list.
type RootRegistry interface {
	FindEnclosingRoot(path string) (string, bool)
}

// CreateRoot creates the project root directory and resolves it to an
// absolute path. The directory must not already exist.
func CreateRoot(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("directory %s already exists", path)
	}
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return absolute, nil
}

// RemoveRoot removes the whole directory tree. Removing a path that is
// already gone is not an error; rollback must never fail on a clean slate.
func RemoveRoot(path string) {
	if err := os.RemoveAll(path); err != nil {
		logger.Log.Errorf("Failed to remove %s during rollback: %v", path, err)
	}
}

// IsNested reports whether candidatePath's parent sits inside an already
// provisioned project root.
func IsNested(candidatePath string, registry RootRegistry) bool {
	parent := filepath.Dir(candidatePath)
	_, nested := registry.FindEnclosingRoot(parent)
	return nested
}

// Transaction scopes the lifetime of a staged project root. Every exit path
// of a provisioning run calls Rollback; it removes the root unless Commit
// ran first, so a new failure branch cannot forget cleanup.
type Transaction struct {
	Root      string
	committed bool
}

// Begin creates the root directory and opens a transaction over it.
func Begin(path string) (*Transaction, error) {
	absolute, err := CreateRoot(path)
	if err != nil {
		return nil, err
	}
	return &Transaction{Root: absolute}, nil
}

func (t *Transaction) Commit() {
	t.committed = true
}

func (t *Transaction) Rollback() {
	if t.committed {
		return
	}
	logger.Log.Debugf("Rolling back staged directory %s", t.Root)
	RemoveRoot(t.Root)
}
