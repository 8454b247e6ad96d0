package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trajlog-project/trajlog/pkg/model"
)

func TestRenderReport_OneLinePerFinding(t *testing.T) {
	sim := model.SimulationID{Project: 1797, Run: 0, Clone: 1}
	findings := []model.Finding{
		{Kind: model.FindingMissingTimestamp, Simulation: sim, Timestamp: 200, Detail: "missing timestamp 200ps"},
		{Kind: model.FindingIncompleteRun, Simulation: sim, Timestamp: 950, Detail: "last timestamp (950ps) is not a multiple of 1000"},
	}

	report := RenderReport(findings)
	assert.Equal(t,
		"PROJ1797/RUN0/CLONE1: missing timestamp 200ps\n"+
			"PROJ1797/RUN0/CLONE1: last timestamp (950ps) is not a multiple of 1000\n",
		report)
}

func TestRenderReport_NoFindingsIsEmpty(t *testing.T) {
	assert.Empty(t, RenderReport(nil))
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	findings := []model.Finding{
		{Kind: model.FindingEmptyLog, Detail: "logfile contains no records"},
	}

	require.NoError(t, WriteReport(path, findings))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "logfile contains no records\n", string(content))
}

func TestWriteReport_UnwritableDir(t *testing.T) {
	err := WriteReport(filepath.Join(t.TempDir(), "missing", "report.txt"), nil)
	require.Error(t, err)
}
