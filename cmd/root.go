package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envault/envault/internal/configs"
	logger "github.com/envault/envault/internal/logging"
	"github.com/envault/envault/internal/store"
)

var (
	envFile string
	keyPath string
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "envault",
		Short: "Manage encrypted .env files",
		Long: `Envault keeps environment variables in an encrypted file instead of a
plaintext .env, so credentials never sit readable in a project directory.

The encrypted file lives beside your project (default ./.env) while the
key that unlocks it stays in your user config directory. Both paths can
be overridden with flags or config.toml.

Typical workflow:

  envault init                  create the encrypted file and its key
  envault set DATABASE_URL      add a secret (prompted, hidden input)
  envault show                  list stored variable names
  envault export                print the decrypted variables
  envault clear                 delete the file and its key

Run 'envault help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing envault command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&envFile, "file", configs.DefaultEnvFile, "path of the encrypted env file")
	RootCmd.PersistentFlags().StringVar(&keyPath, "key", "", "path of the key file (default: under the user config dir)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(delCmd)
	RootCmd.AddCommand(clearCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
}

// newStore builds the store for the current invocation. Flags win over
// config.toml, which wins over the built-in defaults. An empty key path is
// resolved by the store itself.
func newStore(cmd *cobra.Command) (*store.Store, error) {
	filePath := envFile
	if !cmd.Flags().Changed("file") {
		config, err := configs.LoadConfig()
		if err != nil {
			return nil, err
		}
		if config.EnvFile != "" {
			filePath = config.EnvFile
		}
	}

	return store.New(filePath, keyPath), nil
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global flag variables to their default
// values for testing.
func ResetGlobalState() {
	envFile = configs.DefaultEnvFile
	keyPath = ""
	verbose = false
	debug = false
	strictDel = false
	showValues = false
	importReplace = false
	importDryRun = false
}
