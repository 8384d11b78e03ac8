package cmd

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/envault/envault/internal/audit"
	"github.com/envault/envault/internal/ui"
	"github.com/envault/envault/internal/utils"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Creates the encrypted env file and its key",
	Long: `Creates an empty encrypted env file and generates its symmetric key.

The key is written with owner-only permissions. If the store already
exists, init refuses to touch it; run 'envault clear' first to start over.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if utils.IsTerminal() {
			figure.NewFigure("envault", "", true).Print()
		}

		spinner, cleanup := startSpinner("Initializing envault...", verbose)
		defer cleanup()

		s, err := newStore(cmd)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve store paths: %v", err)
		}

		exists, err := s.Exists()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to check env store: %v", err)
		}
		if exists {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Envault has already been initialized\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envault clear") + " first to start over"
			return nil
		}

		if err := s.Save(map[string]string{}, nil); err != nil {
			return Logger.ErrorfAndReturn("failed to initialize env store: %v", err)
		}

		audit.Log(audit.Entry{Operation: "init", File: s.FilePath})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Envault initialized successfully!\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envault set NAME") + " to store your first secret"
		return nil
	},
}
