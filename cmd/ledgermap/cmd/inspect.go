package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerscope/ledgermap/internal/cmd/globals"
	"github.com/ledgerscope/ledgermap/internal/cmd/output"
	"github.com/ledgerscope/ledgermap/pkg/archive"
	"github.com/ledgerscope/ledgermap/pkg/errors"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.zip>...",
	Short: "List the recognized tables found in export archives",
	Long: `Inspect reports, for each recognized Oracle export CSV, whether the given
archives contain it and how many data rows it carries. Useful for checking
an export before generating artifacts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	blobs := make([][]byte, 0, len(args))
	for _, path := range args {
		blob, err := os.ReadFile(path)
		if err != nil {
			return errors.WrapIO("read", path, err)
		}
		blobs = append(blobs, blob)
	}

	set, err := archive.Extract(cmd.Context(), blobs...)
	if err != nil {
		return err
	}

	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(flags.Output)
	if err != nil {
		return err
	}

	return output.NewFormatter(output.DetectFormat(string(format))).
		Format(cmd.OutOrStdout(), set.Summary())
}
