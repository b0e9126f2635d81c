package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

// LocalStateDir is created inside every provisioned project root. Its
// presence (with a readable record) is what marks a directory as a
// provisioned project.
const LocalStateDir = ".psh/local"
const RecordFileName = "project.yaml"

var ErrNoRecord = errors.New("no project record")

// ProjectRecord associates a local directory with the remote project it was
// provisioned from. Written once during staging, read afterwards by anything
// that needs to recognize a provisioned root.
type ProjectRecord struct {
	ProjectID     string    `yaml:"projectId"`
	Title         string    `yaml:"title"`
	GitURL        string    `yaml:"gitUrl"`
	APIHost       string    `yaml:"apiHost"`
	ProvisionedAt time.Time `yaml:"provisionedAt"`
}

func recordPath(root string) string {
	return filepath.Join(root, LocalStateDir, RecordFileName)
}

// FileWriter persists project records through Write; it exists so callers
// can take the writer as a collaborator and substitute it in tests.
type FileWriter struct{}

func (FileWriter) Write(root string, record *ProjectRecord) error {
	return Write(root, record)
}

func Write(root string, record *ProjectRecord) error {
	stateDir := filepath.Join(root, LocalStateDir)
	if err := os.MkdirAll(stateDir, os.ModePerm); err != nil {
		return fmt.Errorf("could not create local state directory: %w", err)
	}
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal project record: %w", err)
	}
	if err := os.WriteFile(recordPath(root), data, 0644); err != nil {
		return fmt.Errorf("could not write project record: %w", err)
	}
	return nil
}

func Load(root string) (*ProjectRecord, error) {
	data, err := os.ReadFile(recordPath(root))
	if os.IsNotExist(err) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("could not read project record: %w", err)
	}
	var record ProjectRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("could not unmarshal project record: %w", err)
	}
	return &record, nil
}

// FindEnclosingRoot walks up from path looking for a directory that carries a
// project record. Used as the provisioned-roots registry behind the nested
// provisioning guard.
func FindEnclosingRoot(path string) (string, *ProjectRecord, bool) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", nil, false
	}
	for {
		if record, err := Load(dir); err == nil {
			return dir, record, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, false
		}
		dir = parent
	}
}
