package staging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fixedRegistry struct {
	roots []string
}

func (r *fixedRegistry) FindEnclosingRoot(path string) (string, bool) {
	for _, root := range r.roots {
		if path == root || strings.HasPrefix(path, root+string(os.PathSeparator)) {
			return root, true
		}
	}
	return "", false
}

func TestCreateRoot(t *testing.T) {
	t.Run("CreatesAndResolves", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "project")
		absolute, err := CreateRoot(target)
		if err != nil {
			t.Fatal(err)
		}
		if !filepath.IsAbs(absolute) {
			t.Errorf("Expected an absolute path, got %s", absolute)
		}
		if _, err := os.Stat(absolute); err != nil {
			t.Errorf("Expected the directory to exist: %v", err)
		}
	})

	t.Run("FailsIfExists", func(t *testing.T) {
		target := t.TempDir()
		if _, err := CreateRoot(target); err == nil {
			t.Errorf("Expected an error for an existing directory")
		}
	})
}

func TestRemoveRoot(t *testing.T) {
	target := filepath.Join(t.TempDir(), "project")
	if err := os.MkdirAll(filepath.Join(target, "nested", "deep"), os.ModePerm); err != nil {
		t.Fatal(err)
	}

	RemoveRoot(target)
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("Expected the tree to be gone")
	}

	// Removing again must be harmless
	RemoveRoot(target)
}

func TestTransaction(t *testing.T) {
	t.Run("RollbackRemoves", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "project")
		tx, err := Begin(target)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(tx.Root, "partial.txt"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		tx.Rollback()
		if _, err := os.Stat(target); !os.IsNotExist(err) {
			t.Errorf("Rollback must remove the whole tree")
		}
	})

	t.Run("CommitKeeps", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "project")
		tx, err := Begin(target)
		if err != nil {
			t.Fatal(err)
		}

		tx.Commit()
		tx.Rollback()
		if _, err := os.Stat(target); err != nil {
			t.Errorf("Rollback after commit must keep the tree: %v", err)
		}
	})
}

func TestIsNested(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "outer")
	registry := &fixedRegistry{roots: []string{root}}

	if !IsNested(filepath.Join(root, "inner"), registry) {
		t.Errorf("Direct child of a provisioned root is nested")
	}
	if !IsNested(filepath.Join(root, "a", "b", "inner"), registry) {
		t.Errorf("Deep descendant of a provisioned root is nested")
	}
	if IsNested(filepath.Join(base, "sibling"), registry) {
		t.Errorf("Sibling of a provisioned root is not nested")
	}
}
