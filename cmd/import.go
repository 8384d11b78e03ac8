package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envault/envault/internal/audit"
	"github.com/envault/envault/internal/ui"
	"github.com/envault/envault/internal/workflows"
)

var (
	importReplace bool
	importDryRun  bool
)

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace the stored map instead of merging")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "preview the import without saving")
}

var importCmd = &cobra.Command{
	Use:   "import PATTERN...",
	Short: "Imports plaintext dotenv files into the encrypted store",
	Long: `Reads plaintext dotenv files and folds their variables into the
encrypted env store. Patterns may be literal paths or globs (with **
support):

  envault import .env.local
  envault import 'config/**/.env.*'

By default imported variables are merged over the stored ones; --replace
discards the stored map first. A store that doesn't exist yet is created.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Importing env files...", verbose)
		defer cleanup()

		s, err := newStore(cmd)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve store paths: %v", err)
		}

		mode := workflows.ImportModeMerge
		if importReplace {
			mode = workflows.ImportModeReplace
		}

		result, err := workflows.Import(cmd.Context(), workflows.ImportOptions{
			Store:    s,
			Patterns: args,
			Mode:     mode,
			DryRun:   importDryRun,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to import env files: %v", err)
		}

		if !result.DryRun {
			audit.Log(audit.Entry{
				Operation:  "import",
				File:       s.FilePath,
				Mode:       result.Mode.String(),
				FilesCount: len(result.Files),
				VarsCount:  result.TotalVars,
			})
		}

		counts := fmt.Sprintf("%d file(s): %d added, %d replaced, %d total variable(s)",
			len(result.Files), result.VarsAdded, result.VarsReplaced, result.TotalVars)
		if result.DryRun {
			spinner.FinalMSG = ui.Warning.Sprint("[dry-run]") + " Would import " + counts
		} else {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Imported " + counts
		}
		return nil
	},
}
