package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envault/envault/internal/audit"
	"github.com/envault/envault/internal/ui"
	"github.com/envault/envault/internal/utils"
)

var setCmd = &cobra.Command{
	Use:   "set NAME [VALUE]",
	Short: "Sets an environment variable in the encrypted file",
	Long: `Sets a variable in the encrypted env file and mirrors it into the
current process environment.

The value can be given as a second argument or piped on stdin. If
neither is present, it is entered at a hidden prompt so it never lands
in shell history:

  envault set API_TOKEN abc123
  cat token.txt | envault set API_TOKEN
  envault set API_TOKEN`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		// Resolve the value before the spinner starts so the hidden
		// prompt isn't fighting the spinner for the terminal.
		value, err := resolveSetValue(args, name)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read value: %v", err)
		}

		spinner, cleanup := startSpinner("Saving variable...", verbose)
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

		if err := s.Set(name, value); err != nil {
			return Logger.ErrorfAndReturn("failed to set %s: %v", name, err)
		}

		audit.Log(audit.Entry{Operation: "set", Name: name, File: s.FilePath})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Set " + ui.Highlight.Sprint(name)
		return nil
	},
}

func resolveSetValue(args []string, name string) (string, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	if !utils.IsTerminal() {
		data, err := utils.ReadStdin()
		if err != nil {
			return "", err
		}
		return utils.TrimTrailingNewline(string(data)), nil
	}
	value, err := utils.ReadSecret("Enter value for " + name + ": ")
	if err != nil {
		return "", err
	}
	return string(value), nil
}
