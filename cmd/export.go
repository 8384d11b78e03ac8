package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envault/envault/internal/audit"
	"github.com/envault/envault/internal/ui"
	"github.com/envault/envault/internal/workflows"
)

var exportCmd = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Writes the decrypted variables as plaintext dotenv",
	Long: `Decrypts the env store and renders it as plaintext dotenv text.

With a PATH argument the text is written to that file (mode 0600);
without one it is printed to stdout for piping:

  envault export .env.plain
  envault export | grep DATABASE

The output contains your secrets in the clear. Don't commit it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStore(cmd)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve store paths: %v", err)
		}

		outputPath := ""
		if len(args) == 1 {
			outputPath = args[0]
		}

		exists, err := s.Exists()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to check env store: %v", err)
		}

		// Plain stdout output: no spinner, the content IS the output.
		if outputPath == "" {
			if !exists {
				fmt.Println(notInitializedMessage())
				return nil
			}
			result, err := workflows.Export(cmd.Context(), workflows.ExportOptions{Store: s})
			if err != nil {
				return Logger.ErrorfAndReturn("failed to export env store: %v", err)
			}
			audit.Log(audit.Entry{Operation: "export", File: s.FilePath, VarsCount: result.VarCount})
			fmt.Print(result.Content)
			return nil
		}

		spinner, cleanup := startSpinner("Exporting env store...", verbose)
		defer cleanup()

		if !exists {
			spinner.FinalMSG = notInitializedMessage()
			return nil
		}

		result, err := workflows.Export(cmd.Context(), workflows.ExportOptions{
			Store:      s,
			OutputPath: outputPath,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to export env store: %v", err)
		}

		audit.Log(audit.Entry{
			Operation:  "export",
			File:       s.FilePath,
			VarsCount:  result.VarCount,
			OutputPath: result.OutputPath,
		})

		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Exported %d variable(s) to ", result.VarCount) +
			ui.Path.Sprint(result.OutputPath) + "\n" +
			ui.Warning.Sprint("!") + " The file holds plaintext secrets. Don't commit it."
		return nil
	},
}
