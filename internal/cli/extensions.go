package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sdejongh/sortnorris/internal/platform"
	"github.com/sdejongh/sortnorris/pkg/extensions"
	"github.com/sdejongh/sortnorris/pkg/storage"
)

// DefaultExtensionList is where the extensions command writes when -o is not given
const DefaultExtensionList = "fileTypes.dat"

// NewExtensionsCommand creates the extensions command
func NewExtensionsCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "extensions <dir>",
		Short: "Write the extensions found under a directory",
		Long: `Scan a directory tree and write every distinct file extension, one per
line, in a format the relocation command accepts as its extension list.
Use "-o -" to print the list instead of writing a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := validateDirectory("dir", args[0])
			if err != nil {
				return usageFailure(err)
			}

			backend := storage.NewLocal()
			defer backend.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			set, err := extensions.Discover(ctx, backend, root)
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			if outputPath == "-" {
				return extensions.WriteList(cmd.OutOrStdout(), set)
			}

			if err := writeExtensionList(ctx, backend, outputPath, set); err != nil {
				return &ExitError{Code: 2, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d extensions under %s, written to %s\n",
				set.Len(), root, platform.NormalizePath(outputPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", DefaultExtensionList, "file to write, - for standard output")

	return cmd
}

func writeExtensionList(ctx context.Context, backend storage.Backend, path string, set extensions.Set) (err error) {
	var w io.WriteCloser
	w, err = backend.Create(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return extensions.WriteList(w, set)
}
