package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/iishyfishyy/shelp/internal/config"
	"github.com/iishyfishyy/shelp/internal/ollama"
	"github.com/iishyfishyy/shelp/internal/session"
	"github.com/iishyfishyy/shelp/internal/ui"

	"github.com/spf13/cobra"
)

var (
	// version is set by goreleaser at build time
	version = "dev"

	// CLI flags
	setupFlag bool
	modelFlag string
	copyFlag  bool
)

// debugEnv enables [DEBUG] diagnostics on stderr. It never changes behavior,
// only what gets logged.
const debugEnv = "SHELP_DEBUG"

func main() {
	rootCmd := &cobra.Command{
		Use:   "shelp [instruction]",
		Short: "Turn plain English into a shell command",
		Long: `shelp asks a locally running Ollama model to translate a natural-language
instruction into a single shell command, shows it, and runs it after you
confirm with Enter. Any other input cancels.`,
		Version:      version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().BoolVarP(&setupFlag, "setup", "s", false, "Select and persist the model to use")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Use this model for this run only (not persisted)")
	rootCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "Copy the generated command to the clipboard instead of running it")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	debug := os.Getenv(debugEnv) != ""
	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Main: raw args: %q\n", os.Args)
	}

	ctrl := session.NewController(ollama.NewClient(), config.FileStore{}, ui.NewTerminal())
	ctrl.ModelOverride = modelFlag
	ctrl.CopyOnly = copyFlag
	ctrl.Debug = debug

	if setupFlag {
		_, err := ctrl.Setup()
		return err
	}

	return ctrl.Run(cmd.Context(), strings.Join(args, " "))
}
