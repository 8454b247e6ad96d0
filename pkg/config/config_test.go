package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trajlog-project/trajlog/pkg/config"
	"github.com/trajlog-project/trajlog/pkg/errclass"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gmx", cfg.Converter.Command)
	assert.Equal(t, "trjconv", cfg.Converter.Subcommand)
	assert.Equal(t, "1", cfg.Converter.SelectionGroup)
	assert.Equal(t, "traj_comp.xtc", cfg.Artifacts.Trajectory)
	assert.Equal(t, ".pdb", cfg.Artifacts.ListingExt)
	assert.EqualValues(t, 100, cfg.Intervals.Sample)
	assert.EqualValues(t, 1000, cfg.Intervals.Checkpoint)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("converter:\n  command: trjcat\nartifacts:\n  trajectory: frame0.xtc\nintervals:\n  sample: 250\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), content, 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "trjcat", cfg.Converter.Command)
	assert.Equal(t, "frame0.xtc", cfg.Artifacts.Trajectory)
	assert.EqualValues(t, 250, cfg.Intervals.Sample)
	// Untouched keys keep defaults.
	assert.Equal(t, "topol.tpr", cfg.Artifacts.Topology)
	assert.EqualValues(t, 1000, cfg.Intervals.Checkpoint)
}

func TestLoad_InvalidYAMLIsFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("converter: ["), 0644))

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrConfigInvalid))
	assert.True(t, errclass.IsFatal(err))
}

func TestValidate_RejectsZeroIntervals(t *testing.T) {
	cfg := config.Default()
	cfg.Intervals.Checkpoint = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrConfigInvalid))
}

func TestValidate_RejectsListingExtWithoutDot(t *testing.T) {
	cfg := config.Default()
	cfg.Artifacts.ListingExt = "pdb"
	require.Error(t, cfg.Validate())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Converter.SelectionGroup = "0"
	require.NoError(t, config.Save(dir, cfg))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "0", loaded.Converter.SelectionGroup)
}
