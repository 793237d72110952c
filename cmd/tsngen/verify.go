package main

import (
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/schedlab/tsngen/cycle"
	"github.com/schedlab/tsngen/recording"
	"github.com/schedlab/tsngen/solver"
	"github.com/schedlab/tsngen/solver/solvertest"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a recorded schedule by reloading it into a fresh session.",
	Long: `Verify restores every recorded cycle, rebuilds its symbolic ` +
		`bindings in a fresh in-memory solving session, re-asserts the ` +
		`recorded values as constraints, and checks that the solved slot ` +
		`starts reproduce the recording exactly.`,
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

		ok := true
		for _, rec := range records {
			if !verifyCycle(reader, rec) {
				ok = false
			}
		}

		if !ok {
			os.Exit(1)
		}

		log.Info().Int("cycles", len(records)).Msg("schedule verified")
	},
}

func verifyCycle(reader *recording.Reader, rec recording.CycleRecord) bool {
	c, err := rec.Restore()
	if err != nil {
		log.Error().Err(err).Str("cycle", rec.Name).
			Msg("cannot restore cycle")
		return false
	}

	store, err := reader.Solution(rec.Instance)
	if err != nil {
		log.Error().Err(err).Str("cycle", rec.Name).
			Msg("cannot load solution")
		return false
	}

	s := solvertest.New()
	b := cycle.Bind(s, c)
	cycle.Reload(s, b, store)

	outcome, m := s.Check()
	if outcome != solver.Sat {
		log.Error().Str("cycle", rec.Name).
			Stringer("outcome", outcome).
			Msg("reloaded constraints are not satisfiable")
		return false
	}

	for _, priority := range store.Recorded() {
		for j := 0; j < c.SlotsFor(priority); j++ {
			v, ok := m.Value(b.SlotStart(priority, j))
			if !ok || math.Abs(v-store.SlotStart(priority, j)) > 1e-9 {
				log.Error().Str("cycle", rec.Name).
					Int("priority", priority).
					Int("slot", j).
					Msg("slot start does not reproduce the recording")
				return false
			}
		}
	}

	return true
}

func init() {
	verifyCmd.Flags().StringP("input", "i", "",
		"recording file to verify")
	_ = verifyCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(verifyCmd)
}
