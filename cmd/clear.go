package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envault/envault/internal/audit"
	"github.com/envault/envault/internal/ui"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Deletes the encrypted env file and its key",
	Long: `Deletes both the encrypted env file and its key.

This is irreversible: without the key the env file cannot be decrypted.
Clearing an already-absent store is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Clearing envault...", verbose)
		defer cleanup()

		s, err := newStore(cmd)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve store paths: %v", err)
		}

		existed, err := s.Exists()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to check env store: %v", err)
		}
		if err := s.Clear(); err != nil {
			return Logger.ErrorfAndReturn("failed to clear env store: %v", err)
		}

		if existed {
			audit.Log(audit.Entry{Operation: "clear", File: s.FilePath})
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed the env file and its key"
		} else {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Nothing to clear " + ui.Muted.Sprint("store was not initialized")
		}
		return nil
	},
}
