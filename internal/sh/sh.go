package sh

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type DirectoryPath string
type ShellCommand string

// ExecuteShellCommand runs command in cwd. Extra KEY=VALUE pairs are added
// to the inherited environment; values never pass through the shell parser.
func ExecuteShellCommand(cwd DirectoryPath, command ShellCommand, extraEnv ...string) (string, error) {
	cmd := exec.Command("sh", "-c", string(command))
	cmd.Dir = string(cwd)
	cmd.Env = append(os.Environ(), extraEnv...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%s: %w", strings.TrimSpace(stderr.String()), err)
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
