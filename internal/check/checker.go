// Package check validates a complete logfile for missing timestamps,
// duplicate timestamps, and truncated runs.
package check

import (
	"fmt"
	"sort"

	"github.com/trajlog-project/trajlog/pkg/model"
)

// Checker holds the sampling expectations a logfile is validated against.
type Checker struct {
	// sampleInterval is the fallback inter-frame interval (ps) when a
	// group has too few distinct timestamps to infer one.
	sampleInterval uint64
	// checkpointInterval is the boundary (ps) the final timestamp of each
	// group must be a multiple of.
	checkpointInterval uint64
}

// NewChecker creates a checker with the given intervals in picoseconds.
func NewChecker(sampleInterval, checkpointInterval uint64) *Checker {
	return &Checker{
		sampleInterval:     sampleInterval,
		checkpointInterval: checkpointInterval,
	}
}

// Result is the outcome of checking one logfile.
type Result struct {
	Records     int             `json:"records"`
	Simulations int             `json:"simulations"`
	Clean       bool            `json:"clean"`
	Findings    []model.Finding `json:"findings"`
}

// Check validates the loaded records and merges in any parse findings the
// reader produced. The returned findings are ordered by run, clone, kind,
// then timestamp.
func (c *Checker) Check(records []model.LogRecord, parseFindings []model.Finding) *Result {
	findings := append([]model.Finding(nil), parseFindings...)

	if len(records) == 0 && len(parseFindings) == 0 {
		findings = append(findings, model.Finding{
			Kind:   model.FindingEmptyLog,
			Detail: "logfile contains no records",
		})
	}

	groups := make(map[model.SimulationID][]uint64)
	for _, r := range records {
		groups[r.Simulation()] = append(groups[r.Simulation()], r.Timestamp)
	}

	for sim, timestamps := range groups {
		findings = append(findings, c.checkGroup(sim, timestamps)...)
	}

	sort.Slice(findings, func(i, j int) bool { return findings[i].Less(findings[j]) })

	return &Result{
		Records:     len(records),
		Simulations: len(groups),
		Clean:       len(findings) == 0,
		Findings:    findings,
	}
}

// checkGroup runs the duplicate, missing-timestamp, and completeness checks
// on one simulation's timestamps.
func (c *Checker) checkGroup(sim model.SimulationID, timestamps []uint64) []model.Finding {
	var findings []model.Finding

	counts := make(map[uint64]int, len(timestamps))
	for _, ts := range timestamps {
		counts[ts]++
	}
	distinct := make([]uint64, 0, len(counts))
	for ts := range counts {
		distinct = append(distinct, ts)
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })

	for _, ts := range distinct {
		if counts[ts] > 1 {
			findings = append(findings, model.Finding{
				Kind:       model.FindingDuplicateTimestamp,
				Simulation: sim,
				Timestamp:  ts,
				Detail:     fmt.Sprintf("duplicate timestamp %dps (%d records)", ts, counts[ts]),
			})
		}
	}

	interval := c.inferInterval(distinct)
	max := distinct[len(distinct)-1]
	// Timestamp 0 is mandatory, so the expected sequence always starts
	// there regardless of the first present value.
	for expected := uint64(0); expected < max; expected += interval {
		if counts[expected] == 0 {
			findings = append(findings, model.Finding{
				Kind:       model.FindingMissingTimestamp,
				Simulation: sim,
				Timestamp:  expected,
				Detail:     fmt.Sprintf("missing timestamp %dps", expected),
			})
		}
	}

	if max%c.checkpointInterval != 0 {
		findings = append(findings, model.Finding{
			Kind:       model.FindingIncompleteRun,
			Simulation: sim,
			Timestamp:  max,
			Detail:     fmt.Sprintf("last timestamp (%dps) is not a multiple of %d", max, c.checkpointInterval),
		})
	}

	return findings
}

// inferInterval estimates the sampling interval as the minimum positive gap
// between consecutive sorted distinct timestamps. Known limitation: a group
// with genuinely variable-interval sampling gets its smallest gap as the
// expected interval and the wider gaps reported as missing timestamps.
func (c *Checker) inferInterval(distinct []uint64) uint64 {
	if len(distinct) < 2 {
		return c.sampleInterval
	}
	min := uint64(0)
	for i := 1; i < len(distinct); i++ {
		gap := distinct[i] - distinct[i-1]
		if gap > 0 && (min == 0 || gap < min) {
			min = gap
		}
	}
	if min == 0 {
		return c.sampleInterval
	}
	return min
}
