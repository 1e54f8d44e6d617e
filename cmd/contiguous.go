package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/alloc"
	"github.com/inference-sim/memsim/sim/input"
	"github.com/inference-sim/memsim/sim/trace"
)

var (
	regionsText      string // Comma/space separated region capacities
	requestsText     string // Comma/space separated request sizes
	placementPolicy  string // first-fit, best-fit, worst-fit
	contiguousPreset string // Named preset used when no inputs are given
)

// contiguousCmd places requests into regions and prints the step trace
var contiguousCmd = &cobra.Command{
	Use:   "contiguous",
	Short: "Run first-fit, best-fit or worst-fit contiguous allocation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := contiguousInputs(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runContiguous(cmd.OutOrStdout(), cfg, outputFormat); err != nil {
			logrus.Fatalf("Allocation failed: %v", err)
		}
	},
}

// contiguousInputs resolves inputs with precedence scenario file > flags > preset.
func contiguousInputs(cmd *cobra.Command) (sim.ContiguousConfig, error) {
	if scenarioPath != "" {
		sc, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			return sim.ContiguousConfig{}, err
		}
		if sc.Contiguous == nil {
			return sim.ContiguousConfig{}, fmt.Errorf("scenario %s has no contiguous section", scenarioPath)
		}
		cfg := *sc.Contiguous
		if cmd.Flags().Changed("policy") {
			cfg.Policy = placementPolicy
		}
		return cfg, nil
	}

	cfg, ok := sim.ContiguousPreset(contiguousPreset)
	if !ok {
		return sim.ContiguousConfig{}, fmt.Errorf("unknown contiguous preset %q", contiguousPreset)
	}
	if cmd.Flags().Changed("regions") {
		cfg.Regions = parseSizesFlag("regions", regionsText)
	}
	if cmd.Flags().Changed("requests") {
		cfg.Requests = parseSizesFlag("requests", requestsText)
	}
	cfg.Policy = placementPolicy
	return cfg, nil
}

// parseSizesFlag keeps the valid tokens of a size list and warns about the rest.
func parseSizesFlag(name, text string) []int {
	parsed := input.ParseSizes(text)
	for _, r := range parsed.Rejected {
		logrus.Warnf("--%s: ignoring token %d %q: %s", name, r.Position, r.Token, r.Reason)
	}
	return parsed.Values
}

// runContiguous validates cfg, runs the allocator and writes the result.
func runContiguous(w io.Writer, cfg sim.ContiguousConfig, format string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	policy, err := alloc.ParsePlacementPolicy(cfg.Policy)
	if err != nil {
		return err
	}

	logrus.Infof("Allocating %d requests into %d regions with %s", len(cfg.Requests), len(cfg.Regions), policy)
	result, err := alloc.Allocate(cfg.Regions, cfg.Requests, policy)
	if err != nil {
		return err
	}

	if format == formatJSON {
		return writeJSON(w, allocationReport{
			Regions:  cfg.Regions,
			Requests: cfg.Requests,
			Result:   result,
			Summary:  trace.SummarizeAllocation(result.Trace),
		})
	}
	renderAllocation(w, cfg.Regions, result)
	return nil
}

func init() {
	contiguousCmd.Flags().StringVar(&regionsText, "regions", "", "Region capacities, comma or space separated (e.g. \"80,30,60,120,20\")")
	contiguousCmd.Flags().StringVar(&requestsText, "requests", "", "Request sizes, comma or space separated (e.g. \"15,20,90,10,35,50\")")
	contiguousCmd.Flags().StringVar(&placementPolicy, "policy", "first-fit", "Placement policy (first-fit, best-fit, worst-fit)")
	contiguousCmd.Flags().StringVar(&contiguousPreset, "preset", "default", "Preset supplying inputs not given by flags")

	rootCmd.AddCommand(contiguousCmd)
}
