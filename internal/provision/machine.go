package provision

import (
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"

	"psh/internal/api"
	"psh/internal/color"
	"psh/internal/gitgateway"
	logger "psh/internal/log"
	"psh/internal/metadata"
	"psh/internal/staging"
)

// RepositoryDir is the subdirectory of the project root that holds the
// working copy.
const RepositoryDir = "repository"

// DefaultEnvironmentID is selected when several environments exist and no
// interactive choice is possible.
const DefaultEnvironmentID = "main"

// Gateway is the slice of git behavior the state machine drives. The
// production implementation is gitgateway.Gateway.
type Gateway interface {
	ProbeHead(url string) gitgateway.RemoteState
	InitRepository(path string) error
	CloneRepository(url, destination, branch string) error
	EnsureRemote(path, url string) error
	HasTrackedFiles(path string) (bool, error)
}

// EnvironmentLister exposes the project's known environments. The production
// implementation is the api.Client.
type EnvironmentLister interface {
	Environments(projectID string) (map[string]api.Environment, error)
}

// Selector is the interactive choice collaborator. It is only consulted when
// more than one environment exists; when it is not interactive the machine
// falls back to DefaultEnvironmentID.
type Selector interface {
	Interactive() bool
	Select(prompt string, choices map[string]string) (string, error)
}

// RecordWriter persists the association between a staged root and its
// remote project. The production implementation is metadata.FileWriter.
type RecordWriter interface {
	Write(root string, record *metadata.ProjectRecord) error
}

// Machine drives a single provisioning run. One writer, no readers: the
// target directory belongs exclusively to the run until a terminal outcome
// is reported.
type Machine struct {
	gateway  Gateway
	resolver EnvironmentLister
	selector Selector
	registry staging.RootRegistry
	recorder RecordWriter
}

func NewMachine(gateway Gateway, resolver EnvironmentLister, selector Selector, registry staging.RootRegistry, recorder RecordWriter) *Machine {
	return &Machine{
		gateway:  gateway,
		resolver: resolver,
		selector: selector,
		registry: registry,
		recorder: recorder,
	}
}

// Provision materializes a local working copy of the project in
// targetDirectory. Every exit path reports a terminal Outcome; on any
// failure after the directory is created, the whole tree is removed again.
func (m *Machine) Provision(descriptor *api.ProjectDescriptor, targetDirectory string, requestedEnvironment string) Outcome {
	if _, err := os.Stat(targetDirectory); err == nil {
		return Outcome{Code: TargetDirectoryExists, Directory: targetDirectory}
	}
	if staging.IsNested(targetDirectory, m.registry) {
		return Outcome{Code: NestedProvisioning, Directory: targetDirectory}
	}

	tx, err := staging.Begin(targetDirectory)
	if err != nil {
		return Outcome{Code: DirectoryCreationFailed, Directory: targetDirectory, Err: err}
	}
	// Rollback is a no-op once the transaction is committed; every failure
	// branch below restores absence through this single path.
	defer tx.Rollback()
	root := tx.Root

	record := &metadata.ProjectRecord{
		ProjectID:     descriptor.ID,
		Title:         descriptor.Title,
		GitURL:        descriptor.GitURL,
		APIHost:       descriptor.Host,
		ProvisionedAt: time.Now().UTC(),
	}
	if err := m.recorder.Write(root, record); err != nil {
		return Outcome{Code: DirectoryCreationFailed, Directory: root, Err: err}
	}

	environment, selectErr := m.selectEnvironment(descriptor, requestedEnvironment)
	if selectErr != nil {
		return Outcome{Code: selectErr.code, Environment: requestedEnvironment, Directory: root, Err: selectErr.cause}
	}

	repositoryPath := filepath.Join(root, RepositoryDir)
	remoteState := m.gateway.ProbeHead(descriptor.GitURL)
	logger.Log.Debugf("Remote %s probed as %s", descriptor.GitURL, remoteState)

	switch remoteState {
	case gitgateway.RemoteUnreachable:
		return Outcome{Code: RemoteConnectionFailed, Environment: environment, Directory: root}

	case gitgateway.RemoteEmpty:
		if err := m.gateway.InitRepository(repositoryPath); err != nil {
			return Outcome{Code: InitFailed, Environment: environment, Directory: root, Err: err}
		}
		if err := m.gateway.EnsureRemote(repositoryPath, descriptor.GitURL); err != nil {
			return Outcome{Code: InitFailed, Environment: environment, Directory: root, Err: err}
		}
		tx.Commit()
		logger.Log.Infof("Initialized empty repository for %s in %s", color.FgMagenta(descriptor.ID), color.FgMagenta(root))
		return Outcome{Code: InitializedEmpty, Environment: environment, Directory: root}

	default: // populated
		if err := m.gateway.CloneRepository(descriptor.GitURL, repositoryPath, environment); err != nil {
			return Outcome{Code: CloneFailed, Environment: environment, Directory: root, Err: err}
		}
		// Same remote name convention regardless of which path ran.
		if err := m.gateway.EnsureRemote(repositoryPath, descriptor.GitURL); err != nil {
			return Outcome{Code: CloneFailed, Environment: environment, Directory: root, Err: err}
		}
		tracked, err := m.gateway.HasTrackedFiles(repositoryPath)
		if err != nil {
			logger.Log.Errorf("Failed to inspect working tree of %s: %v", repositoryPath, err)
		}
		tx.Commit()
		logger.Log.Infof("Cloned %s (%s) to %s", color.FgMagenta(descriptor.ID), color.FgCyan(environment), color.FgMagenta(root))
		return Outcome{Code: Provisioned, Environment: environment, Directory: root, HasTrackedFiles: tracked}
	}
}

type selectionError struct {
	code  OutcomeCode
	cause error
}

// selectEnvironment applies the selection policy: an explicitly requested
// environment must exist; a single known environment is taken as-is; with
// several, the interactive selector decides, or DefaultEnvironmentID when
// there is no terminal to ask on.
func (m *Machine) selectEnvironment(descriptor *api.ProjectDescriptor, requested string) (string, *selectionError) {
	environments, err := m.resolver.Environments(descriptor.ID)
	if err != nil {
		return "", &selectionError{code: RemoteConnectionFailed, cause: err}
	}

	if requested != "" {
		if _, known := environments[requested]; !known {
			return "", &selectionError{code: EnvironmentNotFound}
		}
		return requested, nil
	}

	switch {
	case len(environments) == 1:
		return lo.Keys(environments)[0], nil
	case len(environments) > 1 && m.selector.Interactive():
		choices := lo.MapValues(environments, func(environment api.Environment, _ string) string {
			return environment.Title
		})
		selected, err := m.selector.Select("Select the environment to check out", choices)
		if err != nil {
			logger.Log.Debugf("Selection aborted, using %s: %v", DefaultEnvironmentID, err)
			return DefaultEnvironmentID, nil
		}
		return selected, nil
	default:
		return DefaultEnvironmentID, nil
	}
}
