package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt-dodge/internal/storage"
)

var (
	flagLimit  int
	flagDelete string
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "List recorded rounds",
	Long: `Display the most recent recorded rounds, newest first.

Every finished round is recorded with its seed, playfield size and one tilt
value per sensor tick, so it can be re-simulated with 'tiltdodge replay'.

Examples:
  tiltdodge recordings
  tiltdodge recordings --limit 50
  tiltdodge recordings --delete 3f2a9c1e-...`,
	Args: cobra.NoArgs,
	Run:  runRecordings,
}

func init() {
	recordingsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of recordings to show")
	recordingsCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the recording with this ID")
}

func runRecordings(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening recordings database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagDelete != "" {
		if err := store.DeleteRecording(flagDelete); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting recording: %v\n", err)
			return
		}
		fmt.Printf("Deleted %s\n", flagDelete)
		return
	}

	recs, err := store.Recordings(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving recordings: %v\n", err)
		return
	}

	if len(recs) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println()
		fmt.Println("Play 'tiltdodge play' to record your first round!")
		return
	}

	fmt.Println(recordingsTable(recs).View())
	fmt.Println()
	fmt.Println("Run 'tiltdodge replay <id>' to re-simulate a round.")
}

// recordingsTable lays recordings out as a static bubbles table.
func recordingsTable(recs []storage.Recording) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 36},
		{Title: "Seed", Width: 20},
		{Title: "Field", Width: 11},
		{Title: "Length", Width: 8},
		{Title: "Ticks", Width: 6},
		{Title: "Date", Width: 16},
	}

	rows := make([]table.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, table.Row{
			r.ID,
			strconv.FormatInt(r.Seed, 10),
			fmt.Sprintf("%.0fx%.0f", r.ScreenW, r.ScreenH),
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			strconv.Itoa(r.SampleCount),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	// Nothing is selected in a printed table
	styles.Selected = lipgloss.NewStyle()

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2), // Header plus its border
		table.WithStyles(styles),
	)
}
