package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"psh/internal/api"
	"psh/internal/build"
	"psh/internal/color"
	"psh/internal/ext"
	"psh/internal/gitgateway"
	logger "psh/internal/log"
	"psh/internal/metadata"
	"psh/internal/prompt"
	"psh/internal/provision"
)

var getFlags struct {
	environment string
	host        string
	noBuild     bool
	verbose     bool
}

var getCmd = &cobra.Command{
	Use:   "get <project-id> [directory]",
	Short: "Provision a local copy of a platform project",
	Long: `Resolve a project through the platform API, clone its repository (or
initialize a fresh one when the remote is still empty), link the local copy
back to the remote, and run the initial build.

The directory defaults to the project identifier. The platform token is read
from the ` + api.EnvTokenVariableName + ` environment variable.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func init() {
	f := getCmd.Flags()
	f.StringVarP(&getFlags.environment, "environment", "e", "", "Environment (branch) to check out")
	f.StringVar(&getFlags.host, "host", "", "Platform API host (default: "+api.DefaultHost+")")
	f.BoolVar(&getFlags.noBuild, "no-build", false, "Skip the initial build after provisioning")
	f.BoolVar(&getFlags.verbose, "verbose", false, "Print verbose output")
}

func runGet(cmd *cobra.Command, args []string) error {
	logger.InitLogger(getFlags.verbose)

	projectID := args[0]
	directory := projectID
	if len(args) > 1 {
		directory = args[1]
	}

	token := api.RetrieveTokenFromEnv()
	if token == "" {
		return fmt.Errorf("platform token env variable %s not set", color.FgRed(api.EnvTokenVariableName))
	}
	host := ext.DefaultValue(getFlags.host, api.DefaultHost)
	client := api.NewClient(token, host)

	descriptor, err := client.ResolveProject(projectID)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("project %s not found on %s", color.FgMagenta(projectID), color.FgCyan(host))
	}
	if err != nil {
		return fmt.Errorf("failed to resolve project %s: %w", projectID, err)
	}

	machine := provision.NewMachine(
		gitgateway.NewGateway(),
		client,
		prompt.NewTerminalSelector(),
		metadata.RecordRegistry{},
		metadata.FileWriter{},
	)
	outcome := machine.Provision(descriptor, directory, getFlags.environment)

	presenter := provision.NewPresenter(os.Stdout)
	presenter.Render(outcome, descriptor)
	if !outcome.Success() {
		logger.Log.Errorf("Provisioning %s ended with %s", projectID, outcome.Code)
		os.Exit(1)
	}

	if buildSkipNoticeNeeded(outcome, getFlags.noBuild) {
		presenter.RenderBuildSkipped()
	}
	if outcome.BuildEligible() && !getFlags.noBuild {
		if err := build.NewTrigger().Build(outcome.Directory, outcome.Environment); err != nil {
			// A failed build does not undo a successful provisioning run.
			presenter.RenderBuildWarning(err)
		}
	}
	return nil
}

// buildSkipNoticeNeeded reports whether to explain that no build will run:
// only when a build was wanted in the first place and the clone turned out
// to have nothing to build.
func buildSkipNoticeNeeded(outcome provision.Outcome, noBuild bool) bool {
	return !noBuild && outcome.Code == provision.Provisioned && !outcome.HasTrackedFiles
}
