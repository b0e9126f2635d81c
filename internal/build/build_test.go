package build

import (
	"os"
	"path/filepath"
	"testing"
)

func writeHook(t *testing.T, directory, script string) {
	t.Helper()
	hookPath := filepath.Join(directory, HookRelativePath)
	if err := os.MkdirAll(filepath.Dir(hookPath), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(hookPath, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestBuild(t *testing.T) {
	t.Run("RunsHookWithEnvironment", func(t *testing.T) {
		directory := t.TempDir()
		writeHook(t, directory, "touch built-$PSH_ENVIRONMENT\n")

		if err := NewTrigger().Build(directory, "master"); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(filepath.Join(directory, "built-master")); err != nil {
			t.Errorf("Expected the hook to run in the project directory: %v", err)
		}
	})

	t.Run("EnvironmentIsNotShellParsed", func(t *testing.T) {
		directory := t.TempDir()
		writeHook(t, directory, `printf '%s' "$PSH_ENVIRONMENT" > env.txt`+"\n")

		hostile := "master;touch escaped"
		if err := NewTrigger().Build(directory, hostile); err != nil {
			t.Fatal(err)
		}
		content, err := os.ReadFile(filepath.Join(directory, "env.txt"))
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != hostile {
			t.Errorf("Expected the environment verbatim, got %q", content)
		}
		if _, err := os.Stat(filepath.Join(directory, "escaped")); !os.IsNotExist(err) {
			t.Errorf("Environment value must never reach the shell parser")
		}
	})

	t.Run("FailingHook", func(t *testing.T) {
		directory := t.TempDir()
		writeHook(t, directory, "echo broken >&2\nexit 1\n")

		if err := NewTrigger().Build(directory, "master"); err == nil {
			t.Errorf("Expected an error from a failing hook")
		}
	})

	t.Run("NoHookIsNoOp", func(t *testing.T) {
		if err := NewTrigger().Build(t.TempDir(), "master"); err != nil {
			t.Errorf("A project without a hook builds trivially: %v", err)
		}
	})
}
