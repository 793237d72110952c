package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/schedlab/tsngen/cycle"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Print the per-priority slot counts for a budget and mode.",
	Run: func(cmd *cobra.Command, _ []string) {
		slots, _ := cmd.Flags().GetInt("slots")
		priorities, _ := cmd.Flags().GetInt("priorities")
		modeName, _ := cmd.Flags().GetString("mode")

		mode, ok := cycle.ParseArrangementMode(modeName)
		if !ok {
			log.Fatal().Str("mode", modeName).
				Msg("unknown arrangement mode")
		}

		counts := cycle.AllocateSlots(slots, priorities, mode)

		for priority, count := range counts {
			fmt.Printf("priority %d: %d slot(s)\n", priority, count)
		}
	},
}

func init() {
	allocateCmd.Flags().Int("slots", 1, "total slot budget")
	allocateCmd.Flags().Int("priorities", 8, "number of priority levels")
	allocateCmd.Flags().String("mode", cycle.AggressiveDescent.String(),
		"arrangement mode: aggressive-descent, equal-distribution, "+
			"or max-capacity")

	rootCmd.AddCommand(allocateCmd)
}
