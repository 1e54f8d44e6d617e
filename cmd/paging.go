package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/input"
	"github.com/inference-sim/memsim/sim/paging"
	"github.com/inference-sim/memsim/sim/trace"
)

var (
	referencesText    string // Comma/space separated page references
	frameCount        int    // Number of resident slots
	replacementPolicy string // fifo, lru, optimal
	pagingPreset      string // Named preset used when no inputs are given
)

// pagingCmd replays a reference string and prints the step trace
var pagingCmd = &cobra.Command{
	Use:   "paging",
	Short: "Replay a page-reference string under FIFO, LRU or Optimal replacement",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := pagingInputs(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runPaging(cmd.OutOrStdout(), cfg, outputFormat); err != nil {
			logrus.Fatalf("Replay failed: %v", err)
		}
	},
}

// pagingInputs resolves inputs with precedence scenario file > flags > preset.
func pagingInputs(cmd *cobra.Command) (sim.PagingConfig, error) {
	if scenarioPath != "" {
		sc, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			return sim.PagingConfig{}, err
		}
		if sc.Paging == nil {
			return sim.PagingConfig{}, fmt.Errorf("scenario %s has no paging section", scenarioPath)
		}
		cfg := *sc.Paging
		if cmd.Flags().Changed("policy") {
			cfg.Policy = replacementPolicy
		}
		return cfg, nil
	}

	cfg, ok := sim.PagingPreset(pagingPreset)
	if !ok {
		return sim.PagingConfig{}, fmt.Errorf("unknown paging preset %q", pagingPreset)
	}
	if cmd.Flags().Changed("refs") {
		parsed := input.ParseReferences(referencesText)
		for _, r := range parsed.Rejected {
			logrus.Warnf("--refs: ignoring token %d %q: %s", r.Position, r.Token, r.Reason)
		}
		cfg.References = parsed.Values
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = frameCount
	}
	cfg.Policy = replacementPolicy
	return cfg, nil
}

// runPaging validates cfg, runs the replayer and writes the result.
func runPaging(w io.Writer, cfg sim.PagingConfig, format string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	policy, err := paging.ParseReplacementPolicy(cfg.Policy)
	if err != nil {
		return err
	}

	logrus.Infof("Replaying %d references with %d frames under %s", len(cfg.References), cfg.Frames, policy)
	result, err := paging.Replay(cfg.References, cfg.Frames, policy)
	if err != nil {
		return err
	}

	if format == formatJSON {
		return writeJSON(w, pagingReport{
			References: cfg.References,
			Result:     result,
			Summary:    trace.SummarizePaging(result.Trace),
		})
	}
	renderReplay(w, result)
	return nil
}

func init() {
	pagingCmd.Flags().StringVar(&referencesText, "refs", "", "Page references, comma or space separated (e.g. \"7 0 1 2 0 3\")")
	pagingCmd.Flags().IntVar(&frameCount, "frames", 3, "Number of frames (resident slots)")
	pagingCmd.Flags().StringVar(&replacementPolicy, "policy", "fifo", "Replacement policy (fifo, lru, optimal)")
	pagingCmd.Flags().StringVar(&pagingPreset, "preset", "small", "Preset supplying inputs not given by flags (small, medium)")

	rootCmd.AddCommand(pagingCmd)
}
