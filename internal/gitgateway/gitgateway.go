package gitgateway

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"

	logger "psh/internal/log"
)

// RemoteName is the fixed name under which the platform repository is
// registered on every provisioned clone, distinct from git's default
// "origin" so user-added remotes never collide with it.
const RemoteName = "platform"

// RemoteState classifies a remote repository from a single HEAD probe.
type RemoteState int

const (
	RemoteUnreachable RemoteState = iota
	RemoteEmpty
	RemotePopulated
)

func (s RemoteState) String() string {
	switch s {
	case RemoteEmpty:
		return "empty"
	case RemotePopulated:
		return "populated"
	default:
		return "unreachable"
	}
}

// Gateway performs the git operations of a provisioning run.
type Gateway struct{}

func NewGateway() *Gateway {
	return &Gateway{}
}

// ProbeHead lists the remote's references without cloning and classifies the
// repository. It never mutates the remote.
func (g *Gateway) ProbeHead(url string) RemoteState {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: RemoteName,
		URLs: []string{url},
	})
	refs, err := remote.List(&git.ListOptions{})
	if err != nil {
		if errors.Is(err, transport.ErrEmptyRemoteRepository) {
			return RemoteEmpty
		}
		logger.Log.Debugf("Probing %s failed: %v", url, err)
		return RemoteUnreachable
	}
	for _, ref := range refs {
		if ref.Name() == plumbing.HEAD {
			return RemotePopulated
		}
	}
	// Reachable but nothing to point HEAD at
	return RemoteEmpty
}

// InitRepository creates a fresh repository rooted at path. The path must
// not already contain one.
func (g *Gateway) InitRepository(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	if _, err := git.PlainInit(path, false); err != nil {
		return fmt.Errorf("failed to initialize repository at %s: %w", path, err)
	}
	return nil
}

// CloneRepository clones a single branch of url into destination, with the
// remote registered as RemoteName. On failure the caller rolls back the
// whole staged tree, so nothing partial survives.
func (g *Gateway) CloneRepository(url, destination, branch string) error {
	_, err := git.PlainClone(destination, false, &git.CloneOptions{
		URL:           url,
		RemoteName:    RemoteName,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s (branch %s): %w", url, branch, err)
	}
	return nil
}

// EnsureRemote registers url under RemoteName on the repository at path,
// replacing any previous registration. Safe to call on both the init and
// the clone path; the end state is always exactly one remote by that name.
func (g *Gateway) EnsureRemote(path, url string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	if err := repo.DeleteRemote(RemoteName); err != nil && !errors.Is(err, git.ErrRemoteNotFound) {
		return fmt.Errorf("failed to replace remote %s: %w", RemoteName, err)
	}
	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: RemoteName,
		URLs: []string{url},
	})
	if err != nil {
		return fmt.Errorf("failed to register remote %s: %w", RemoteName, err)
	}
	return nil
}

// HasTrackedFiles reports whether the working tree at path contains anything
// besides the git metadata directory. A clone of a branch with no files
// looks the same as an empty repository to everything downstream.
func (g *Gateway) HasTrackedFiles(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	for _, entry := range entries {
		if entry.Name() != git.GitDirName {
			return true, nil
		}
	}
	return false, nil
}
