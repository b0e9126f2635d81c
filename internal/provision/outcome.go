package provision

// OutcomeCode identifies the terminal result of a provisioning run.
type OutcomeCode int

const (
	Provisioned OutcomeCode = iota
	InitializedEmpty
	TargetDirectoryExists
	NestedProvisioning
	DirectoryCreationFailed
	EnvironmentNotFound
	RemoteConnectionFailed
	InitFailed
	CloneFailed
)

func (c OutcomeCode) String() string {
	switch c {
	case Provisioned:
		return "provisioned"
	case InitializedEmpty:
		return "initialized-empty"
	case TargetDirectoryExists:
		return "target-directory-exists"
	case NestedProvisioning:
		return "nested-provisioning"
	case DirectoryCreationFailed:
		return "directory-creation-failed"
	case EnvironmentNotFound:
		return "environment-not-found"
	case RemoteConnectionFailed:
		return "remote-connection-failed"
	case InitFailed:
		return "init-failed"
	default:
		return "clone-failed"
	}
}

// Outcome is the terminal result of a run. The machine never writes user
// facing text; the presenter renders one of these instead.
type Outcome struct {
	Code            OutcomeCode
	Environment     string
	Directory       string
	HasTrackedFiles bool
	Err             error
}

func (o Outcome) Success() bool {
	return o.Code == Provisioned || o.Code == InitializedEmpty
}

// BuildEligible reports whether a build should be attempted. A clone whose
// working tree holds nothing but git metadata is treated the same as an
// empty repository: there is nothing to build.
func (o Outcome) BuildEligible() bool {
	return o.Code == Provisioned && o.HasTrackedFiles
}
