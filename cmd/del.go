package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/envault/envault/internal/audit"
	everrors "github.com/envault/envault/internal/errors"
	"github.com/envault/envault/internal/ui"
)

var strictDel bool

func init() {
	delCmd.Flags().BoolVar(&strictDel, "strict", false, "fail if the variable is not set")
}

var delCmd = &cobra.Command{
	Use:   "del NAME",
	Short: "Deletes an environment variable from the encrypted file",
	Long: `Deletes a variable from the encrypted env file and from the current
process environment.

Deleting a variable that isn't set is a no-op, so the command is safe to
repeat in scripts. Pass --strict to fail instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		spinner, cleanup := startSpinner("Deleting variable...", verbose)
		defer cleanup()

		s, err := newStore(cmd)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve store paths: %v", err)
		}

		exists, err := s.Exists()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to check env store: %v", err)
		}
		if !exists {
			spinner.FinalMSG = notInitializedMessage()
			return nil
		}

		if err := s.Delete(name, strictDel); err != nil {
			if errors.Is(err, everrors.ErrNameNotFound) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + ui.Highlight.Sprint(name) + " is not set"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to delete %s: %v", name, err)
		}

		audit.Log(audit.Entry{Operation: "del", Name: name, File: s.FilePath})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted " + ui.Highlight.Sprint(name)
		return nil
	},
}
