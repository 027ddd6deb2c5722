package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	dbPath  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "agentchat",
	Short: "Local-first chat sessions with a remote inference agent",
	Long: `agentchat keeps your chat history in a local sqlite store, lets you run
multiple sessions side by side, and sends each message with a bounded context
window to a remote inference endpoint.

Quick start:
  agentchat chat                    # open the chat REPL
  agentchat sessions list           # list stored sessions
  agentchat export 2 --format md    # export a transcript`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the sqlite session store (default from AGENTCHAT_DB_PATH)")
}
