// tiltdodge is a tilt-controlled dodge game for the terminal.
//
// Usage:
//
//	tiltdodge play                - Play with keyboard tilt
//	tiltdodge play --sensor bridge - Steer with a phone over websocket
//	tiltdodge serve               - Start SSH server for remote play
//	tiltdodge recordings          - List recorded rounds
//	tiltdodge replay <id>         - Re-simulate a recorded round
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for the first round
//	--db <path>     - Set database path (default: ~/.tiltdodge/recordings.db)
//	--config <path> - Use a custom game config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt-dodge/internal/config"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tiltdodge",
	Short: "Tilt Dodge - dodge falling blocks by tilting",
	Long: `Tilt Dodge slides a block along the bottom of the screen while
obstacles fall from the top. Tilt (or press left/right) to get out of the
way. One hit ends the round.

Available commands:
  play        - Play in this terminal
  serve       - Start SSH server for remote play
  recordings  - List recorded rounds
  replay      - Re-simulate a recorded round

Examples:
  tiltdodge play
  tiltdodge play --sensor bridge --bridge-addr :8090
  tiltdodge serve --ssh :2222
  tiltdodge replay 3f2a9c1e-...`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tiltdodge/recordings.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadConfig loads the game config or exits.
func loadConfig() config.DodgeConfig {
	cfg, err := config.LoadDodge(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
