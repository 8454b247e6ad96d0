// Package framelist extracts sampled timestamps from the frame-listing
// artifact the trajectory converter materializes for each clone.
package framelist

import (
	"bufio"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/trajlog-project/trajlog/pkg/errclass"
	"github.com/trajlog-project/trajlog/pkg/logging"
)

const (
	// headerKeyword starts every frame header line in the listing.
	headerKeyword = "TITLE"
	// timeMarker precedes the frame time on a header line.
	timeMarker = "t="
)

// TimestampSet maps each distinct timestamp to its occurrence count within
// one frame listing. Only the key set flows downstream; a count above one
// means the converter emitted the same instant more than once and the
// collector collapses it to a single record.
type TimestampSet struct {
	counts  map[uint64]int
	skipped int
}

// Len returns the number of distinct timestamps.
func (s *TimestampSet) Len() int {
	return len(s.counts)
}

// Count returns how many frame headers carried ts.
func (s *TimestampSet) Count(ts uint64) int {
	return s.counts[ts]
}

// Skipped returns the number of header lines whose time could not be parsed.
func (s *TimestampSet) Skipped() int {
	return s.skipped
}

// Values returns the distinct timestamps sorted ascending.
func (s *TimestampSet) Values() []uint64 {
	values := make([]uint64, 0, len(s.counts))
	for ts := range s.counts {
		values = append(values, ts)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// Collisions returns the timestamps that appeared more than once, with their
// counts. Diagnostic only.
func (s *TimestampSet) Collisions() map[uint64]int {
	dup := make(map[uint64]int)
	for ts, n := range s.counts {
		if n > 1 {
			dup[ts] = n
		}
	}
	return dup
}

// Parse reads the frame listing at path and returns its timestamp set.
// Listings with a .gz suffix are decompressed transparently. The caller has
// already confirmed the file exists, so an open failure here is fatal.
func Parse(path string) (*TimestampSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errclass.ErrListingUnreadable.WithMessagef("open %s: %v", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, errclass.ErrListingUnreadable.WithMessagef("gunzip %s: %v", path, err)
		}
		defer gz.Close()
		r = gz
	}

	set, err := parse(r)
	if err != nil {
		return nil, errclass.ErrListingUnreadable.WithMessagef("read %s: %v", path, err)
	}
	if set.skipped > 0 {
		logging.Warn("frame headers with unparsable time skipped", map[string]any{
			"listing": path,
			"skipped": set.skipped,
		})
	}
	return set, nil
}

func parse(r io.Reader) (*TimestampSet, error) {
	set := &TimestampSet{counts: make(map[uint64]int)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != headerKeyword {
			continue
		}
		ts, ok := frameTime(fields)
		if !ok {
			set.skipped++
			continue
		}
		set.counts[ts]++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// frameTime finds the t= marker among the header fields and truncates the
// floating-point time that follows it. Fractional picoseconds are discarded,
// so frames differing only in the fraction collapse to one timestamp.
func frameTime(fields []string) (uint64, bool) {
	var raw string
	for i, f := range fields {
		if f == timeMarker && i+1 < len(fields) {
			raw = fields[i+1]
			break
		}
		if strings.HasPrefix(f, timeMarker) && len(f) > len(timeMarker) {
			raw = f[len(timeMarker):]
			break
		}
	}
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return uint64(v), true
}
