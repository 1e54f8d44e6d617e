package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/memsim/sim"
	"github.com/inference-sim/memsim/sim/alloc"
	"github.com/inference-sim/memsim/sim/paging"
	"github.com/inference-sim/memsim/sim/trace"
)

var (
	compareContiguousPreset string
	comparePagingPreset     string
)

// policyAllocation is one row of the contiguous comparison.
type policyAllocation struct {
	Policy  alloc.PlacementPolicy    `json:"policy"`
	Summary *trace.AllocationSummary `json:"summary"`
}

// policyReplay is one row of the paging comparison.
type policyReplay struct {
	Policy  paging.ReplacementPolicy `json:"policy"`
	Summary *trace.PagingSummary     `json:"summary"`
}

// compareReport is the JSON document written by `compare --output json`.
type compareReport struct {
	Contiguous []policyAllocation `json:"contiguous,omitempty"`
	Paging     []policyReplay     `json:"paging,omitempty"`
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every policy on the same inputs and summarize side by side",
	Long:  "Runs every placement policy on the contiguous inputs and every replacement policy on the paging inputs. Each run is independent. Inputs come from --scenario or from the named presets.",
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := compareInputs()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runCompare(cmd.OutOrStdout(), sc, outputFormat); err != nil {
			logrus.Fatalf("Compare failed: %v", err)
		}
	},
}

// compareInputs uses every section of the scenario file, or both presets.
func compareInputs() (*sim.Scenario, error) {
	if scenarioPath != "" {
		return sim.LoadScenario(scenarioPath)
	}
	c, ok := sim.ContiguousPreset(compareContiguousPreset)
	if !ok {
		return nil, fmt.Errorf("unknown contiguous preset %q", compareContiguousPreset)
	}
	p, ok := sim.PagingPreset(comparePagingPreset)
	if !ok {
		return nil, fmt.Errorf("unknown paging preset %q", comparePagingPreset)
	}
	return &sim.Scenario{Contiguous: &c, Paging: &p}, nil
}

func runCompare(w io.Writer, sc *sim.Scenario, format string) error {
	if err := sc.Validate(); err != nil {
		return err
	}

	var report compareReport
	if c := sc.Contiguous; c != nil {
		results, err := alloc.Compare(c.Regions, c.Requests)
		if err != nil {
			return err
		}
		for _, p := range alloc.Policies() {
			report.Contiguous = append(report.Contiguous, policyAllocation{Policy: p, Summary: trace.SummarizeAllocation(results[p].Trace)})
		}
	}
	if p := sc.Paging; p != nil {
		results, err := paging.Compare(p.References, p.Frames)
		if err != nil {
			return err
		}
		for _, policy := range paging.Policies() {
			report.Paging = append(report.Paging, policyReplay{Policy: policy, Summary: trace.SummarizePaging(results[policy].Trace)})
		}
	}

	if format == formatJSON {
		return writeJSON(w, report)
	}
	renderCompare(w, sc, report)
	return nil
}

func renderCompare(w io.Writer, sc *sim.Scenario, report compareReport) {
	if len(report.Contiguous) > 0 {
		headerColor.Fprintf(w, "Contiguous allocation (%d regions, %d requests)\n", len(sc.Contiguous.Regions), len(sc.Contiguous.Requests))
		headerColor.Fprintf(w, "%-10s  %8s  %13s  %11s\n", "POLICY", "PLACED", "FRAGMENTATION", "UTILIZATION")
		for _, row := range report.Contiguous {
			s := row.Summary
			fmt.Fprintf(w, "%-10s  %8s  %13d  %10.1f%%\n", row.Policy, fmt.Sprintf("%d/%d", s.Placed, s.Requests), s.TotalInternalFragmentation, 100*s.Utilization)
		}
	}
	if len(report.Paging) > 0 {
		headerColor.Fprintf(w, "Paging (%d references, %d frames)\n", len(sc.Paging.References), sc.Paging.Frames)
		headerColor.Fprintf(w, "%-10s  %6s  %6s  %9s\n", "POLICY", "HITS", "FAULTS", "HIT RATIO")
		for _, row := range report.Paging {
			s := row.Summary
			fmt.Fprintf(w, "%-10s  %6d  %6d  %8.1f%%\n", row.Policy, s.Hits, s.Faults, 100*s.HitRatio)
		}
	}
}

func init() {
	compareCmd.Flags().StringVar(&compareContiguousPreset, "contiguous-preset", "default", "Contiguous preset used without --scenario")
	compareCmd.Flags().StringVar(&comparePagingPreset, "paging-preset", "small", "Paging preset used without --scenario (small, medium)")

	rootCmd.AddCommand(compareCmd)
}
