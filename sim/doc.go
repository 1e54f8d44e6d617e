// Package sim provides the shared contracts of the memsim simulation engine.
//
// # Reading Guide
//
// The engine is split into two structurally parallel components that share
// a trace model:
//   - sim/alloc/: contiguous allocation of requests into fixed regions
//     (first-fit, best-fit, worst-fit; whole-region consumption)
//   - sim/paging/: replay of a page-reference string against a fixed number
//     of slots (FIFO, LRU, Optimal)
//   - sim/trace/: append-only step records produced by both components
//
// Boundary collaborators live beside the engine and are never called by it:
//   - sim/input/: free-text parsing into validated integer sequences
//   - sim/workload/: seeded synthetic scenario generation
//
// This package holds what both components and the boundary agree on:
// ValidationError, the policy name registries, and the Scenario file model.
//
// # Determinism
//
// Every engine call is a pure function of its inputs. There is no package
// state, no randomness and no I/O; re-running with the same inputs yields
// identical results. Exploring a variation means calling the engine again.
package sim
