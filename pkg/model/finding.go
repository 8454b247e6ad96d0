package model

import "fmt"

// FindingKind identifies the class of defect a Finding reports.
type FindingKind string

const (
	FindingMalformedLine      FindingKind = "malformed_line"
	FindingMissingTimestamp   FindingKind = "missing_timestamp"
	FindingDuplicateTimestamp FindingKind = "duplicate_timestamp"
	FindingIncompleteRun      FindingKind = "incomplete_run"
	FindingEmptyLog           FindingKind = "empty_log"
)

// kindRank fixes the report order of defect kinds within a group.
var kindRank = map[FindingKind]int{
	FindingMalformedLine:      0,
	FindingMissingTimestamp:   1,
	FindingDuplicateTimestamp: 2,
	FindingIncompleteRun:      3,
	FindingEmptyLog:           4,
}

// Finding is one detected logfile defect. Produced once, never mutated.
type Finding struct {
	Kind       FindingKind  `json:"kind"`
	Simulation SimulationID `json:"simulation"`
	// Timestamp is the defective value: the missing or duplicated timestamp
	// in picoseconds, the truncated final timestamp for incomplete runs, or
	// the 1-based line number for malformed lines.
	Timestamp uint64 `json:"timestamp"`
	Detail    string `json:"detail"`
}

// String renders the finding as one human-readable report line.
func (f Finding) String() string {
	switch f.Kind {
	case FindingMalformedLine:
		return fmt.Sprintf("line %d: %s", f.Timestamp, f.Detail)
	case FindingEmptyLog:
		return f.Detail
	default:
		return fmt.Sprintf("%s: %s", f.Simulation, f.Detail)
	}
}

// Less orders findings by run, clone, kind, then timestamp, giving
// reports a stable, reproducible layout.
func (f Finding) Less(other Finding) bool {
	if f.Simulation != other.Simulation {
		return f.Simulation.Less(other.Simulation)
	}
	if kindRank[f.Kind] != kindRank[other.Kind] {
		return kindRank[f.Kind] < kindRank[other.Kind]
	}
	return f.Timestamp < other.Timestamp
}
