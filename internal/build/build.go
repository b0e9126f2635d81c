package build

import (
	"fmt"
	"os"
	"path/filepath"

	logger "psh/internal/log"
	"psh/internal/sh"
)

// HookRelativePath is where a project may ship its local build hook,
// relative to the provisioned root.
const HookRelativePath = ".psh/hooks/build"

// Trigger runs the project's build hook in the provisioned directory.
// Provisioning never depends on the build succeeding; the caller downgrades
// any error to a warning.
type Trigger struct{}

func NewTrigger() *Trigger {
	return &Trigger{}
}

func (t *Trigger) Build(directory, environment string) error {
	hookPath := filepath.Join(directory, HookRelativePath)
	if _, err := os.Stat(hookPath); os.IsNotExist(err) {
		logger.Log.Debugf("No build hook at %s, nothing to build locally", hookPath)
		return nil
	}

	logger.Log.Infof("Running build hook for environment %s", environment)
	// The hook path is fixed relative to the working directory and the
	// environment travels as a variable, so neither is shell-parsed.
	buildCmd := sh.ShellCommand("sh " + HookRelativePath)
	out, err := sh.ExecuteShellCommand(sh.DirectoryPath(directory), buildCmd, "PSH_ENVIRONMENT="+environment)
	if err != nil {
		return fmt.Errorf("build hook failed: %w", err)
	}
	if out != "" {
		logger.Log.Debugf("Build hook output: %s", out)
	}
	return nil
}
