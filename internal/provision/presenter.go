package provision

import (
	"fmt"
	"io"

	"psh/internal/api"
	"psh/internal/color"
	"psh/internal/ext"
	"psh/internal/gitgateway"
)

// Presenter turns outcomes into terminal text. All user-facing wording for
// a provisioning run lives here.
type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) Render(outcome Outcome, descriptor *api.ProjectDescriptor) {
	directory := ext.ReplaceHomeDirWithTilde(outcome.Directory)

	switch outcome.Code {
	case Provisioned:
		fmt.Fprintf(p.out, "Provisioned %s (%s) in %s\n",
			color.FgMagenta(descriptor.Title), color.FgCyan(outcome.Environment), color.FgMagenta(directory))

	case InitializedEmpty:
		fmt.Fprintf(p.out, "Initialized an empty repository for %s in %s\n",
			color.FgMagenta(descriptor.Title), color.FgMagenta(directory))
		fmt.Fprintf(p.out, "Commit and push to the %s remote to trigger the first build.\n",
			color.FgCyan(gitgateway.RemoteName))

	case TargetDirectoryExists:
		fmt.Fprintf(p.out, "%s: the directory %s already exists\n",
			color.FgRed("Cannot provision"), color.FgMagenta(directory))

	case NestedProvisioning:
		fmt.Fprintf(p.out, "%s: %s is inside another provisioned project\n",
			color.FgRed("Cannot provision"), color.FgMagenta(directory))

	case DirectoryCreationFailed:
		fmt.Fprintf(p.out, "%s: %v\n", color.FgRed("Failed to stage the project directory"), outcome.Err)

	case EnvironmentNotFound:
		fmt.Fprintf(p.out, "%s: environment %s does not exist for %s\n",
			color.FgRed("Cannot provision"), color.FgCyan(outcome.Environment), color.FgMagenta(descriptor.Title))

	case RemoteConnectionFailed:
		fmt.Fprintf(p.out, "%s: could not reach the repository for %s\n",
			color.FgRed("Provisioning failed"), color.FgMagenta(descriptor.Title))
		fmt.Fprintf(p.out, "Check your network connection and access to %s.\n", color.FgCyan(descriptor.GitURL))

	case InitFailed:
		fmt.Fprintf(p.out, "%s: %v\n", color.FgRed("Failed to initialize the repository"), outcome.Err)

	case CloneFailed:
		fmt.Fprintf(p.out, "%s: could not clone %s\n",
			color.FgRed("Provisioning failed"), color.FgCyan(descriptor.GitURL))
		if outcome.Err != nil {
			fmt.Fprintf(p.out, "%v\n", outcome.Err)
		}
	}
}

// RenderBuildWarning reports a failed build without failing provisioning.
func (p *Presenter) RenderBuildWarning(err error) {
	fmt.Fprintf(p.out, "%s: %v\n", color.FgYellow("Warning: the initial build failed"), err)
}

// RenderBuildSkipped explains why no build ran after a successful clone.
func (p *Presenter) RenderBuildSkipped() {
	fmt.Fprintf(p.out, "The repository has no files yet, skipping the initial build.\n")
}
