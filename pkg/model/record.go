package model

import "fmt"

// LogRecord is one observed sampled instant of one clone's trajectory.
// Within a well-formed logfile, timestamps are pairwise distinct for a
// fixed (project, run, clone).
type LogRecord struct {
	Project   uint64 `json:"project"`
	Run       uint64 `json:"run"`
	Clone     uint64 `json:"clone"`
	Timestamp uint64 `json:"timestamp"`
}

// SimulationID identifies one simulation: a (project, run, clone) triple.
type SimulationID struct {
	Project uint64 `json:"project"`
	Run     uint64 `json:"run"`
	Clone   uint64 `json:"clone"`
}

// Simulation returns the record's simulation identity.
func (r LogRecord) Simulation() SimulationID {
	return SimulationID{Project: r.Project, Run: r.Run, Clone: r.Clone}
}

// String formats the ID in the PROJ<p>/RUN<r>/CLONE<c> display form.
func (id SimulationID) String() string {
	return fmt.Sprintf("PROJ%d/RUN%d/CLONE%d", id.Project, id.Run, id.Clone)
}

// Less orders simulation IDs by run, then clone, then project. Run-major
// ordering keeps reports grouped the way operators browse the hierarchy.
func (id SimulationID) Less(other SimulationID) bool {
	if id.Run != other.Run {
		return id.Run < other.Run
	}
	if id.Clone != other.Clone {
		return id.Clone < other.Clone
	}
	return id.Project < other.Project
}

// ClonePath locates one traversal leaf during collection. Not persisted.
type ClonePath struct {
	Run   uint64
	Clone uint64
	Dir   string
}
