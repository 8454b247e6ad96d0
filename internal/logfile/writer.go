// Package logfile implements the four-column fixed-width logfile format
// shared by the collector and the checker.
package logfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/trajlog-project/trajlog/pkg/errclass"
	"github.com/trajlog-project/trajlog/pkg/model"
)

// lineFormat is the canonical record layout: project, run, clone, timestamp,
// right-aligned, four spaces between fields. Values wider than the declared
// width simply widen the field. Fixed for compatibility with existing
// logfiles, do not change.
const lineFormat = "%4d    %3d    %3d    %6d\n"

// FormatRecord renders one record as its canonical logfile line.
func FormatRecord(r model.LogRecord) string {
	return fmt.Sprintf(lineFormat, r.Project, r.Run, r.Clone, r.Timestamp)
}

// Appender writes per-clone record blocks to the output logfile. Each block
// is an open-append-close transaction, so a failure mid-collection leaves a
// syntactically valid, partially complete logfile.
type Appender struct {
	path string
}

// NewAppender creates an appender for the given output path.
func NewAppender(path string) *Appender {
	return &Appender{path: path}
}

// Path returns the output logfile path.
func (a *Appender) Path() string {
	return a.path
}

// Reset deletes any pre-existing logfile and creates a fresh empty one.
// Failure here aborts the whole collection.
func (a *Appender) Reset() error {
	if err := os.Remove(a.path); err != nil && !os.IsNotExist(err) {
		return errclass.ErrOutputUnwritable.WithMessagef("remove %s: %v", a.path, err)
	}
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return errclass.ErrOutputUnwritable.WithMessagef("create %s: %v", a.path, err)
	}
	if err := f.Close(); err != nil {
		return errclass.ErrOutputUnwritable.WithMessagef("close %s: %v", a.path, err)
	}
	return nil
}

// AppendBlock appends one clone's records in a single transaction. Records
// must already be in ascending timestamp order.
func (a *Appender) AppendBlock(records []model.LogRecord) error {
	if len(records) == 0 {
		return nil
	}

	var block strings.Builder
	for _, r := range records {
		block.WriteString(FormatRecord(r))
	}

	f, err := os.OpenFile(a.path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errclass.ErrOutputUnwritable.WithMessagef("open %s: %v", a.path, err)
	}
	if _, err := f.WriteString(block.String()); err != nil {
		f.Close()
		return errclass.ErrOutputUnwritable.WithMessagef("append %s: %v", a.path, err)
	}
	if err := f.Close(); err != nil {
		return errclass.ErrOutputUnwritable.WithMessagef("close %s: %v", a.path, err)
	}
	return nil
}
