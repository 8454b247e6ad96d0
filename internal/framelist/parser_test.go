package framelist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trajlog-project/trajlog/pkg/errclass"
)

func writeListing(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleListing = `TITLE     Protein in water t=   0.00000 step= 0
ATOM      1  N   MET A   1      27.340  24.430   2.614
TER
ENDMDL
TITLE     Protein in water t= 500.00000 step= 250000
ATOM      1  N   MET A   1      27.340  24.430   2.614
TITLE     Protein in water t= 1000.00000 step= 500000
REMARK this line is ignored t= 9999.0
`

func TestParse_ExtractsTitleTimes(t *testing.T) {
	path := writeListing(t, "traj.pdb", sampleListing)

	set, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, []uint64{0, 500, 1000}, set.Values())
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 0, set.Skipped())
}

func TestParse_TruncatesFractionalTime(t *testing.T) {
	path := writeListing(t, "traj.pdb",
		"TITLE t= 99.99999\nTITLE t= 100.00001\nTITLE t= 100.5\n")

	set, err := Parse(path)
	require.NoError(t, err)

	// 99.99999 truncates to 99, both 100.x values collapse to 100.
	assert.Equal(t, []uint64{99, 100}, set.Values())
	assert.Equal(t, 2, set.Count(100))
}

func TestParse_AttachedMarker(t *testing.T) {
	path := writeListing(t, "traj.pdb", "TITLE frame t=250.0 step= 1\n")

	set, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, []uint64{250}, set.Values())
}

func TestParse_CollisionsAreDiagnosticOnly(t *testing.T) {
	path := writeListing(t, "traj.pdb",
		"TITLE t= 100.0\nTITLE t= 100.0\nTITLE t= 200.0\n")

	set, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, []uint64{100, 200}, set.Values(), "duplicates collapse in the value set")
	assert.Equal(t, map[uint64]int{100: 2}, set.Collisions())
}

func TestParse_SkipsUnparsableTimes(t *testing.T) {
	path := writeListing(t, "traj.pdb",
		"TITLE t= abc\nTITLE t= -5.0\nTITLE no marker here\nTITLE t= 300.0\n")

	set, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, []uint64{300}, set.Values())
	assert.Equal(t, 3, set.Skipped())
}

func TestParse_GzippedListing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.pdb.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleListing))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	set, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 500, 1000}, set.Values())
}

func TestParse_MissingFileIsFatal(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.pdb"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrListingUnreadable))
	assert.True(t, errclass.IsFatal(err))
}

func TestParse_EmptyListing(t *testing.T) {
	path := writeListing(t, "traj.pdb", "")

	set, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Values())
}
