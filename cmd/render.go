package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/inference-sim/memsim/sim/alloc"
	"github.com/inference-sim/memsim/sim/paging"
	"github.com/inference-sim/memsim/sim/trace"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

var (
	hitColor      = color.New(color.FgGreen)
	faultColor    = color.New(color.FgRed)
	unplacedColor = color.New(color.FgYellow)
	headerColor   = color.New(color.Bold)
)

// allocationReport is the JSON document written by `contiguous --output json`.
type allocationReport struct {
	Regions  []int                    `json:"regions"`
	Requests []int                    `json:"requests"`
	Result   *alloc.Result            `json:"result"`
	Summary  *trace.AllocationSummary `json:"summary"`
}

// pagingReport is the JSON document written by `paging --output json`.
type pagingReport struct {
	References []int                `json:"references"`
	Result     *paging.Result[int]  `json:"result"`
	Summary    *trace.PagingSummary `json:"summary"`
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal failed: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderAllocation prints one row per request followed by the summary.
func renderAllocation(w io.Writer, regions []int, r *alloc.Result) {
	headerColor.Fprintf(w, "Policy: %s  Regions: %v\n", r.Policy, regions)
	headerColor.Fprintf(w, "%4s  %5s  %6s  %8s  %8s  %s\n", "REQ", "SIZE", "REGION", "CAPACITY", "LEFTOVER", "CANDIDATES")
	for _, s := range r.Trace.Steps {
		if s.Placed() {
			fmt.Fprintf(w, "%4d  %5d  %6d  %8d  %8d  %s\n",
				s.RequestIndex, s.RequestSize, s.ChosenRegion, regions[s.ChosenRegion], s.Leftover, candidateList(s.Candidates))
		} else {
			unplacedColor.Fprintf(w, "%4d  %5d  %6s  %8s  %8s  %s\n",
				s.RequestIndex, s.RequestSize, "-", "-", "-", "(none)")
		}
		if explain {
			fmt.Fprintf(w, "      %s\n", s.Reason)
		}
	}

	summary := trace.SummarizeAllocation(r.Trace)
	fmt.Fprintf(w, "Placed: %d/%d  Used regions: %d/%d  Internal fragmentation: %d  Utilization: %.1f%%\n",
		summary.Placed, summary.Requests, r.UsedCount, len(regions), r.TotalInternalFragmentation, 100*summary.Utilization)
}

func candidateList(cands []trace.Candidate) string {
	if len(cands) == 0 {
		return "(none)"
	}
	parts := make([]string, len(cands))
	for i, c := range cands {
		parts[i] = strconv.Itoa(c.RegionIndex)
	}
	return strings.Join(parts, ",")
}

// renderReplay prints one row per reference followed by the summary.
func renderReplay[P comparable](w io.Writer, r *paging.Result[P]) {
	headerColor.Fprintf(w, "Policy: %s  Frames: %d\n", r.Policy, r.Frames)
	headerColor.Fprintf(w, "%4s  %6s  %-6s  %-*s  %s\n", "REF", "PAGE", "RESULT", slotsWidth(r.Frames), "SLOTS", "EVICTED")
	for _, s := range r.Steps() {
		outcome := fmt.Sprintf("%-6s", strings.ToUpper(string(s.Outcome)))
		if s.Hit() {
			outcome = hitColor.Sprint(outcome)
		} else {
			outcome = faultColor.Sprint(outcome)
		}
		evicted := "-"
		if s.Evicted != nil {
			evicted = fmt.Sprint(*s.Evicted)
		}
		fmt.Fprintf(w, "%4d  %6v  %s  %-*s  %s\n", s.Index+1, s.Page, outcome, slotsWidth(r.Frames), formatSlots(s.SlotsAfter), evicted)
		if explain {
			fmt.Fprintf(w, "      %s\n", s.Reason)
		}
	}

	summary := trace.SummarizePaging(r.Trace)
	fmt.Fprintf(w, "Hits: %d  Faults: %d  Hit ratio: %.1f%%\n", r.HitCount, r.FaultCount, 100*summary.HitRatio)
}

func formatSlots[P comparable](slots []*P) string {
	parts := make([]string, len(slots))
	for i, p := range slots {
		if p == nil {
			parts[i] = "-"
		} else {
			parts[i] = fmt.Sprint(*p)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func slotsWidth(frames int) int {
	return max(len("SLOTS"), 3*frames+1)
}
