package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the sortnorris command tree
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sortnorris <extensionListFile> <sourceDir> <targetDir>",
		Short: "Sort files into a date-partitioned tree, removing duplicates",
		Long: `sortnorris moves every file whose extension is listed in the extension
list file from the source tree into <targetDir>/YYYY/MM/DD, dated by the
file's change time (modification time when unavailable).

A file whose name already exists at its destination is deleted when the
content is identical, and moved under a numbered name (name_001.ext)
otherwise. Every action is recorded in _Index.txt, moved files get an
"ls -l" line in _verify.sh and failures go to failure.txt.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Args:          exactRunArgs,
		RunE:          runRelocate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd)
	addRunFlags(cmd)

	cmd.AddCommand(NewExtensionsCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// exactRunArgs prints the usage when the positional argument count is wrong
func exactRunArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 3 {
		return nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return usageFailure(fmt.Errorf("expected 3 arguments (extension list, source, target), got %d", len(args)))
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
