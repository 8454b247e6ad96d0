// Package collect walks a project's RUN/CLONE hierarchy and appends one
// logfile record per distinct sampled timestamp per clone.
package collect

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/trajlog-project/trajlog/internal/framelist"
	"github.com/trajlog-project/trajlog/internal/logfile"
	"github.com/trajlog-project/trajlog/pkg/config"
	"github.com/trajlog-project/trajlog/pkg/errclass"
	"github.com/trajlog-project/trajlog/pkg/logging"
	"github.com/trajlog-project/trajlog/pkg/model"
)

var (
	runDirPattern   = regexp.MustCompile(`^RUN([0-9]+)$`)
	cloneDirPattern = regexp.MustCompile(`^CLONE([0-9]+)$`)
	trailingDigits  = regexp.MustCompile(`([0-9]+)$`)
)

// Walker traverses one project directory and drives per-clone processing.
type Walker struct {
	cfg       *config.Config
	converter *Converter
	appender  *logfile.Appender
}

// NewWalker creates a walker writing to the given appender.
func NewWalker(cfg *config.Config, appender *logfile.Appender) *Walker {
	return &Walker{
		cfg:       cfg,
		converter: NewConverter(cfg),
		appender:  appender,
	}
}

// Summary reports what one collection pass did.
type Summary struct {
	Project         uint64 `json:"project"`
	RunsVisited     int    `json:"runs_visited"`
	ClonesProcessed int    `json:"clones_processed"`
	ClonesSkipped   int    `json:"clones_skipped"`
	RecordsWritten  int    `json:"records_written"`
}

// ProjectID extracts the project's numeric identifier from the trailing
// digits of the directory's basename. A name without trailing digits is a
// fatal configuration fault, never silently defaulted.
func ProjectID(projectDir string) (uint64, error) {
	base := filepath.Base(filepath.Clean(projectDir))
	m := trailingDigits.FindStringSubmatch(base)
	if m == nil {
		return 0, errclass.ErrProjectIDMissing.WithMessagef("project directory %q has no trailing digits", base)
	}
	id, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, errclass.ErrProjectIDMissing.WithMessagef("project directory %q: %v", base, err)
	}
	return id, nil
}

// Collect resets the output logfile and walks every (run, clone) pair under
// projectDir. Clone-local faults are logged and skipped; fatal faults abort
// immediately, leaving already-appended records intact.
func (w *Walker) Collect(projectDir string) (*Summary, error) {
	project, err := ProjectID(projectDir)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Project: project}

	if err := w.appender.Reset(); err != nil {
		return nil, err
	}

	runs, maxRun, err := numberedDirs(projectDir, runDirPattern)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		logging.Info("no run directories under project, nothing to collect", map[string]any{
			"project": project,
			"dir":     projectDir,
		})
		return summary, nil
	}

	// Iterate the full 0..max range so sparse numbering is skipped
	// explicitly, never reordered.
	for run := uint64(0); run <= maxRun; run++ {
		runDir, ok := runs[run]
		if !ok {
			logging.Debug("run index absent, skipped", map[string]any{"run": run})
			continue
		}
		summary.RunsVisited++
		if err := w.collectRun(project, run, runDir, summary); err != nil {
			return summary, err
		}
	}

	logging.Info("collection finished", map[string]any{
		"project":          project,
		"runs_visited":     summary.RunsVisited,
		"clones_processed": summary.ClonesProcessed,
		"clones_skipped":   summary.ClonesSkipped,
		"records_written":  summary.RecordsWritten,
	})
	return summary, nil
}

func (w *Walker) collectRun(project, run uint64, runDir string, summary *Summary) error {
	clones, maxClone, err := numberedDirs(runDir, cloneDirPattern)
	if err != nil {
		return err
	}
	if len(clones) == 0 {
		logging.Info("run has no clone directories, skipped", map[string]any{"run": run, "dir": runDir})
		return nil
	}

	for clone := uint64(0); clone <= maxClone; clone++ {
		cloneDir, ok := clones[clone]
		if !ok {
			logging.Debug("clone index absent, skipped", map[string]any{"run": run, "clone": clone})
			continue
		}
		path := model.ClonePath{Run: run, Clone: clone, Dir: cloneDir}
		written, err := w.collectClone(project, path)
		if err != nil {
			if errclass.IsFatal(err) {
				return err
			}
			logging.Warn("clone skipped", map[string]any{
				"run":    run,
				"clone":  clone,
				"reason": err.Error(),
			})
			summary.ClonesSkipped++
			continue
		}
		summary.ClonesProcessed++
		summary.RecordsWritten += written
	}
	return nil
}

// collectClone processes one clone end to end: locate the trajectory,
// ensure the frame listing, parse it, and append one record per distinct
// timestamp in ascending order.
func (w *Walker) collectClone(project uint64, path model.ClonePath) (int, error) {
	trajPath := filepath.Join(path.Dir, w.cfg.Artifacts.Trajectory)
	if !fileExists(trajPath) {
		return 0, errclass.ErrTrajectoryMissing.WithMessagef("no trajectory at %s", trajPath)
	}
	topolPath := filepath.Join(path.Dir, w.cfg.Artifacts.Topology)

	listing, err := w.converter.EnsureListing(trajPath, topolPath)
	if err != nil {
		return 0, err
	}

	set, err := framelist.Parse(listing)
	if err != nil {
		return 0, err
	}
	if collisions := set.Collisions(); len(collisions) > 0 {
		logging.Debug("repeated frame times collapsed", map[string]any{
			"run":        path.Run,
			"clone":      path.Clone,
			"collisions": len(collisions),
		})
	}

	values := set.Values()
	if len(values) == 0 {
		logging.Warn("frame listing has no frames, nothing appended", map[string]any{
			"run":     path.Run,
			"clone":   path.Clone,
			"listing": listing,
		})
		return 0, nil
	}

	records := make([]model.LogRecord, 0, len(values))
	for _, ts := range values {
		records = append(records, model.LogRecord{
			Project:   project,
			Run:       path.Run,
			Clone:     path.Clone,
			Timestamp: ts,
		})
	}
	if err := w.appender.AppendBlock(records); err != nil {
		return 0, err
	}

	logging.Info("clone processed", map[string]any{
		"run":     path.Run,
		"clone":   path.Clone,
		"records": len(records),
	})
	return len(records), nil
}

// numberedDirs lists the subdirectories of dir whose names match pattern,
// keyed by their integer suffix, along with the maximum suffix present.
// Unmatched entries are ignored.
func numberedDirs(dir string, pattern *regexp.Regexp) (map[uint64]string, uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, errclass.ErrProjectUnreadable.WithMessagef("list %s: %v", dir, err)
	}

	dirs := make(map[uint64]string)
	var max uint64
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			continue
		}
		dirs[n] = filepath.Join(dir, entry.Name())
		if n > max {
			max = n
		}
	}
	return dirs, max, nil
}
