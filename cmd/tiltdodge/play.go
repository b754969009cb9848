package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilt-dodge/internal/core"
	"github.com/vovakirdan/tilt-dodge/internal/platform/tui"
	"github.com/vovakirdan/tilt-dodge/internal/sensor"
	"github.com/vovakirdan/tilt-dodge/internal/storage"
)

var (
	flagSensor     string
	flagBridgeAddr string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a round in this terminal.

Controls:
  Left/A/H   - Tilt left
  Right/D/L  - Tilt right
  R/Enter    - Restart (after game over), or click RESTART
  Q/Ctrl+C   - Quit

Sensors:
  keyboard - Each key press tilts for one sensor tick
  bridge   - Open the printed URL on a phone and tilt it

Examples:
  tiltdodge play
  tiltdodge play --seed 42
  tiltdodge play --sensor bridge --bridge-addr :8090
  tiltdodge play --config ./my-dodge.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSensor, "sensor", "keyboard", "Tilt source: keyboard, bridge")
	playCmd.Flags().StringVar(&flagBridgeAddr, "bridge-addr", sensor.DefaultBridgeConfig().Address, "Listen address for the phone bridge")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
	}

	switch flagSensor {
	case "keyboard":
	case "bridge":
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tiltdodge-bridge",
		})
		bridgeCfg := sensor.DefaultBridgeConfig()
		bridgeCfg.Address = flagBridgeAddr

		bridge := sensor.NewBridge(bridgeCfg, logger)
		if err := bridge.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting bridge: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			//nolint:errcheck // Exiting anyway
			bridge.Shutdown(ctx)
		}()

		fmt.Printf("Open http://<this-host>%s on your phone, then press Enter to start\n", bridge.Addr())
		//nolint:errcheck // Any input starts the game
		fmt.Scanln()
		opts.Source = bridge
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown sensor %q (use keyboard or bridge)\n", flagSensor)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open recordings database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	opts.Store = store

	runErr := tui.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
