package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/schedlab/tsngen/cycle"
	"github.com/schedlab/tsngen/monitoring"
	"github.com/schedlab/tsngen/recording"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a baseline schedule for the configured ports.",
	Long: `Plan builds one cycle per configured port, allocates its slot ` +
		`budget, places the slots with a deterministic greedy strategy, and ` +
		`records the result. The placement is a baseline, not an optimized ` +
		`schedule: it pins every cycle at its upper duration bound and lays ` +
		`slots out back to back in priority order.`,
	Run: func(cmd *cobra.Command, _ []string) {
		configPath, _ := cmd.Flags().GetString("config")
		output, _ := cmd.Flags().GetString("output")
		monitor, _ := cmd.Flags().GetBool("monitor")
		monitorPort, _ := cmd.Flags().GetInt("monitor-port")

		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load configuration")
		}

		cycles, err := buildCycles(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot build cycles")
		}

		var m *monitoring.Monitor
		if monitor {
			m = monitoring.NewMonitor().WithPortNumber(monitorPort)
			for _, c := range cycles {
				m.RegisterCycle(c)
			}
			m.StartServer()
		}

		recorder := recording.NewRecorder(databasePath(output))
		defer recorder.Close()

		for _, c := range cycles {
			var pass *monitoring.SolvePass
			if m != nil {
				pass = m.CreateSolvePass(c.PortName())
				pass.EnterPhase("placing")
			}

			placeGreedy(c)
			recorder.RecordCycle(c)

			if pass != nil {
				pass.Complete("planned")
			}

			log.Info().
				Str("port", c.PortName()).
				Str("cycle", c.Name()).
				Float64("duration", c.CycleDuration()).
				Ints("slots_per_priority", c.SlotsPerPriority()).
				Msg("planned cycle")
		}
	},
}

// placeGreedy fills a cycle's solution with a deterministic placement:
// the duration is pinned at the upper bound and slot instances are laid
// out back to back from the cycle start, highest priority first. Slot
// durations shrink below the configured maximum when the budget does not
// fit the cycle otherwise.
func placeGreedy(c *cycle.Cycle) {
	duration := c.UpperBoundCycleTime()

	totalInstances := 0
	for _, n := range c.SlotsPerPriority() {
		totalInstances += n
	}

	slotDuration := c.MaximumSlotDuration()
	if totalInstances > 0 && duration/float64(totalInstances) < slotDuration {
		slotDuration = duration / float64(totalInstances)
	}

	cursor := 0.0
	for priority, n := range c.SlotsPerPriority() {
		if n == 0 {
			continue
		}

		starts := make([]float64, n)
		durations := make([]float64, n)
		for j := range starts {
			starts[j] = cursor
			durations[j] = slotDuration
			cursor += slotDuration
		}

		c.Solution().RecordSlot(priority, starts, durations)
	}

	c.SetCycleDuration(duration)
	c.SetCycleStart(c.FirstCycleStart())
}

func init() {
	planCmd.Flags().StringP("config", "c", "tsngen.yaml",
		"port configuration file")
	planCmd.Flags().StringP("output", "o", "",
		"recording path (default $TSNGEN_DB, or a generated name)")
	planCmd.Flags().Bool("monitor", false,
		"serve planning state over HTTP")
	planCmd.Flags().Int("monitor-port", 0,
		"monitoring port (0 picks a free port)")

	rootCmd.AddCommand(planCmd)
}
