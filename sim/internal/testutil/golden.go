// Package testutil provides shared test infrastructure for the memsim engines.
// It consolidates golden dataset types used across the sim/alloc and
// sim/paging test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Allocation []GoldenAllocationCase `json:"allocation"`
	Paging     []GoldenPagingCase     `json:"paging"`
}

// GoldenAllocationCase is one expected contiguous allocation run.
type GoldenAllocationCase struct {
	Name     string `json:"name"`
	Regions  []int  `json:"regions"`
	Requests []int  `json:"requests"`
	Policy   string `json:"policy"`

	// Chosen region per request, -1 for unplaced
	Chosen                     []int `json:"chosen"`
	UsedCount                  int   `json:"used_count"`
	TotalInternalFragmentation int   `json:"total_internal_fragmentation"`
}

// GoldenPagingCase is one expected paging replay.
type GoldenPagingCase struct {
	Name       string `json:"name"`
	References []int  `json:"references"`
	Frames     int    `json:"frames"`
	Policy     string `json:"policy"`

	HitCount   int   `json:"hit_count"`
	FaultCount int   `json:"fault_count"`
	Evicted    []int `json:"evicted"`     // displaced pages in order
	FinalSlots []int `json:"final_slots"` // -1 for an empty slot
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}
