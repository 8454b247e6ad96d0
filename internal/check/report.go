package check

import (
	"strings"

	"github.com/trajlog-project/trajlog/pkg/errclass"
	"github.com/trajlog-project/trajlog/pkg/fsutil"
	"github.com/trajlog-project/trajlog/pkg/model"
)

// RenderReport formats findings as a plain-text report, one finding per
// line. Clean groups produce no output, so a clean logfile yields an empty
// report.
func RenderReport(findings []model.Finding) string {
	var b strings.Builder
	for _, f := range findings {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteReport writes the findings report to path atomically.
func WriteReport(path string, findings []model.Finding) error {
	if err := fsutil.AtomicWrite(path, []byte(RenderReport(findings)), 0644); err != nil {
		return errclass.ErrReportUnwritable.WithMessagef("%v", err)
	}
	return nil
}
