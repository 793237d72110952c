package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/schedlab/tsngen/recording"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cycles and slot assignments in a recording.",
	Run: func(cmd *cobra.Command, _ []string) {
		input, _ := cmd.Flags().GetString("input")

		reader, err := recording.NewReader(input)
		if err != nil {
			log.Fatal().Err(err).Str("file", input).
				Msg("cannot open recording")
		}
		defer reader.Close()

		records, err := reader.Cycles()
		if err != nil {
			log.Fatal().Err(err).Msg("cannot read recorded cycles")
		}

		for _, rec := range records {
			printCycle(reader, rec)
		}
	},
}

func printCycle(reader *recording.Reader, rec recording.CycleRecord) {
	fmt.Printf("%s (port %s): duration %g, start %g, bounds [%g, %g]\n",
		rec.Name, rec.Port, rec.Duration, rec.Start,
		rec.LowerBound, rec.UpperBound)

	store, err := reader.Solution(rec.Instance)
	if err != nil {
		log.Fatal().Err(err).Str("cycle", rec.Name).
			Msg("cannot load solution")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tpriority\tslot\tstart\tduration")

	for _, priority := range store.Recorded() {
		starts := store.SlotStarts(priority)
		durations := store.SlotDurations(priority)

		for j := range starts {
			fmt.Fprintf(w, "\t%d\t%d\t%g\t%g\n",
				priority, j, starts[j], durations[j])
		}
	}

	w.Flush()
}

func init() {
	showCmd.Flags().StringP("input", "i", "",
		"recording file to print")
	_ = showCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(showCmd)
}
