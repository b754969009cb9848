package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt-dodge/internal/config"
	"github.com/vovakirdan/tilt-dodge/internal/core"
	"github.com/vovakirdan/tilt-dodge/internal/dodge"
	"github.com/vovakirdan/tilt-dodge/internal/loop"
	"github.com/vovakirdan/tilt-dodge/internal/platform/tui"
	"github.com/vovakirdan/tilt-dodge/internal/sensor"
	"github.com/vovakirdan/tilt-dodge/internal/storage"
)

var (
	flagReplayLimit time.Duration
	flagShow        bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded round",
	Long: `Feed a recording's tilts back through the simulation on a virtual
clock and report how the round ends. The run stops when a block hits, the
recorded tilts run out, or --limit of virtual time has passed.

Examples:
  tiltdodge replay 3f2a9c1e-...
  tiltdodge replay 3f2a9c1e-... --show
  tiltdodge replay 3f2a9c1e-... --limit 30s`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().DurationVar(&flagReplayLimit, "limit", 5*time.Minute, "Maximum virtual time to simulate")
	replayCmd.Flags().BoolVar(&flagShow, "show", false, "Print the final frame")
}

func runReplay(_ *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tiltdodge-replay",
	})

	cfg := loadConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening recordings database: %v\n", err)
		os.Exit(1)
	}
	rec, err := store.Recording(args[0])
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading recording: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "Error: no recording %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'tiltdodge recordings' to see stored rounds.")
		os.Exit(1)
	}

	sim, out := replay(cfg, rec, flagReplayLimit)

	logger.Info("replay finished",
		"id", rec.ID,
		"seed", rec.Seed,
		"elapsed", out.Elapsed,
		"recorded", rec.Duration,
		"spawned", out.Spawned,
		"sensor_ticks", out.SensorTicks,
		"over", out.Over,
		"exhausted", out.Starved,
	)

	if flagShow {
		vp := core.NewViewport(
			int(math.Round(rec.ScreenW/cfg.Viewport.CellWidth)),
			int(math.Round(rec.ScreenH/cfg.Viewport.CellHeight)),
			cfg.Viewport.CellWidth,
			cfg.Viewport.CellHeight,
		)
		screen := core.NewScreen(vp.Cols, vp.Rows)
		sim.Render(screen, vp)
		fmt.Println(tui.RenderScreen(screen))
	}
}

// replay re-runs a recording on a virtual clock.
func replay(cfg config.DodgeConfig, rec *storage.Recording, limit time.Duration) (*dodge.Sim, loop.Outcome) {
	sim := dodge.New(cfg, rec.ScreenW, rec.ScreenH, rec.Seed)
	st := loop.NewStepper(sim, sensor.NewScript(rec.Tilts), loop.IntervalsFrom(cfg.Timing))
	return sim, st.Run(limit)
}
