package cmd

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/workload"
)

var (
	genConfig workload.GenerateConfig
	genFormat string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random, reproducible scenario file",
	Long:  "Draws region capacities, request sizes and a reference string from a seeded RNG and writes a scenario to stdout. The same seed always yields the same scenario.",
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := workload.Generate(genConfig)
		if err != nil {
			logrus.Fatalf("Generate failed: %v", err)
		}
		if err := writeScenario(cmd.OutOrStdout(), sc, genFormat); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// writeScenario encodes sc as YAML or TOML.
func writeScenario(w io.Writer, sc *sim.Scenario, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml":
		data, err = yaml.Marshal(sc)
	case "toml":
		data, err = toml.Marshal(sc)
	default:
		return fmt.Errorf("unknown scenario format %q (want yaml or toml)", format)
	}
	if err != nil {
		return fmt.Errorf("%s marshal failed: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

func init() {
	generateCmd.Flags().Int64Var(&genConfig.Seed, "seed", 42, "Seed for scenario generation")
	generateCmd.Flags().IntVar(&genConfig.Regions, "regions", 5, "Number of regions (1-12, 0 skips the contiguous section)")
	generateCmd.Flags().IntVar(&genConfig.Requests, "requests", 6, "Number of requests (1-16)")
	generateCmd.Flags().IntVar(&genConfig.References, "refs", 13, "Length of the reference string (1-64, 0 skips the paging section)")
	generateCmd.Flags().IntVar(&genConfig.Frames, "frames", 3, "Number of frames (1-8)")
	generateCmd.Flags().StringVar(&genConfig.Placement, "placement", "", "Placement policy written into the scenario")
	generateCmd.Flags().StringVar(&genConfig.Replacement, "replacement", "", "Replacement policy written into the scenario")
	generateCmd.Flags().StringVar(&genFormat, "format", "yaml", "Scenario encoding (yaml, toml)")

	rootCmd.AddCommand(generateCmd)
}
