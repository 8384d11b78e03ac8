package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/envault/envault/internal/store"
	"github.com/envault/envault/internal/ui"
)

var showValues bool

func init() {
	showCmd.Flags().BoolVar(&showValues, "values", false, "print values instead of masking them")
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Lists the variables in the encrypted file",
	Long: `Lists the variable names stored in the encrypted env file.

Values are masked by default; pass --values to print them. Nothing is
written into the process environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Reading env store...", verbose)
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

		env, err := s.Load(store.LoadOptions{})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load env store: %v", err)
		}

		if len(env) == 0 {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Store is empty"
			return nil
		}

		names := make([]string, 0, len(env))
		for name := range env {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		b.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" %d variable(s) stored:\n", len(env)))
		for _, name := range names {
			if showValues {
				b.WriteString("  " + ui.Highlight.Sprint(name) + "=" + env[name] + "\n")
			} else {
				b.WriteString("  " + ui.Highlight.Sprint(name) + "=" + ui.Muted.Sprint("masked") + "\n")
			}
		}

		spinner.FinalMSG = b.String()
		return nil
	},
}
