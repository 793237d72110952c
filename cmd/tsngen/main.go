// Command tsngen works with TSN cycle schedules: it allocates slot
// budgets, plans deterministic baseline schedules from a port list,
// records them, and verifies recorded schedules by re-asserting them
// into a fresh solving session.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tsngen",
	Short: "tsngen manages TSN cycle timing structures and slot schedules.",
	Long: `tsngen manages TSN cycle timing structures and slot schedules. ` +
		`It can allocate a slot budget across priorities, plan a baseline ` +
		`schedule for a list of ports, and verify a recorded schedule by ` +
		`reloading it into a fresh solving session.`,
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	// Optional overrides such as TSNGEN_DB; a missing file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
