package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/ledgerscope/ledgermap"
	"github.com/ledgerscope/ledgermap/pkg/constants"
	"github.com/ledgerscope/ledgermap/pkg/diagram"
	"github.com/ledgerscope/ledgermap/pkg/errors"
	"github.com/ledgerscope/ledgermap/pkg/logging"
)

var (
	generateOutput    string
	generateDiagram   string
	generateTitle     string
	generateLink      bool
	generateStyleFile string
)

var generateCmd = &cobra.Command{
	Use:   "generate <archive.zip>...",
	Short: "Generate relationship artifacts from export archives",
	Long: `Generate reads one or more Oracle ERP setup export zip archives, reconciles
the recognized CSVs into relationship tables, and writes an Excel workbook
and a draw.io diagram. The archives are treated as one logical export.

By default the artifact paths derive from the first archive argument.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "",
		"Workbook path (default "+constants.DefaultWorkbookName+")")
	generateCmd.Flags().StringVarP(&generateDiagram, "diagram", "d", "",
		"Diagram path (default derives from the workbook path)")
	generateCmd.Flags().StringVarP(&generateTitle, "title", "t", constants.DefaultDiagramTitle,
		"Diagram title")
	generateCmd.Flags().BoolVar(&generateLink, "link", true,
		"Print the shareable viewer URL")
	generateCmd.Flags().StringVar(&generateStyleFile, "styles", "",
		"YAML file overriding diagram colors")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.Default()
	ctx = logging.WithLogger(ctx, log)

	blobs := make([][]byte, 0, len(args))
	for _, path := range args {
		blob, err := os.ReadFile(path)
		if err != nil {
			return errors.WrapIO("read", path, err)
		}
		blobs = append(blobs, blob)
	}

	opts := []ledgermap.Option{ledgermap.WithTitle(generateTitle)}
	if generateStyleFile != "" {
		styles, err := loadStyles(generateStyleFile)
		if err != nil {
			return err
		}
		opts = append(opts, ledgermap.WithStyles(styles))
	}

	artifacts, err := ledgermap.Generate(ctx, blobs, opts...)
	if err != nil {
		return err
	}

	workbookPath := generateOutput
	if workbookPath == "" {
		workbookPath = constants.DefaultWorkbookName
	}
	diagramPath := generateDiagram
	if diagramPath == "" {
		// Same basename as the workbook, so the default pair is
		// DefaultWorkbookName plus DefaultDiagramName.
		diagramPath = replaceExt(workbookPath, ".drawio")
	}

	if err := os.WriteFile(workbookPath, artifacts.Workbook, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", workbookPath, err)
	}
	if err := os.WriteFile(diagramPath, artifacts.Diagram, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", diagramPath, err)
	}

	log.Info().
		Str("workbook", workbookPath).
		Str("diagram", diagramPath).
		Int("business_units", len(artifacts.BusinessUnits)).
		Int("cost_orgs", len(artifacts.CostOrgs)).
		Msg("wrote artifacts")

	if generateLink {
		fmt.Fprintln(cmd.OutOrStdout(), artifacts.ViewerURL)
	}
	return nil
}

func loadStyles(path string) (diagram.Styles, error) {
	styles := diagram.DefaultStyles()
	data, err := os.ReadFile(path)
	if err != nil {
		return styles, errors.WrapIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, &styles); err != nil {
		return styles, errors.WrapParse("yaml", path, err)
	}
	return styles, nil
}

// replaceExt swaps the file extension, appending when the path has none.
func replaceExt(path, ext string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/' && path[i] != '\\'; i-- {
		if path[i] == '.' {
			return path[:i] + ext
		}
	}
	return path + ext
}
