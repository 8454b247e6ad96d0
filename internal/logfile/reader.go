package logfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/trajlog-project/trajlog/pkg/errclass"
	"github.com/trajlog-project/trajlog/pkg/model"
)

// ParseLine parses one logfile line back into a record. The reverse of
// FormatRecord, tolerant of field widths since values may widen fields.
func ParseLine(line string) (model.LogRecord, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return model.LogRecord{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	var values [4]uint64
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return model.LogRecord{}, fmt.Errorf("field %d %q is not a non-negative integer", i+1, f)
		}
		values[i] = v
	}
	return model.LogRecord{
		Project:   values[0],
		Run:       values[1],
		Clone:     values[2],
		Timestamp: values[3],
	}, nil
}

// Read loads a complete logfile. Malformed lines become findings rather than
// aborting the read; an unopenable logfile is fatal.
func Read(path string) ([]model.LogRecord, []model.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errclass.ErrLogfileUnreadable.WithMessagef("open %s: %v", path, err)
	}
	defer f.Close()

	var (
		records  []model.LogRecord
		findings []model.Finding
		lineNo   uint64
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		record, err := ParseLine(line)
		if err != nil {
			findings = append(findings, model.Finding{
				Kind:      model.FindingMalformedLine,
				Timestamp: lineNo,
				Detail:    fmt.Sprintf("%v: %q", err, strings.TrimSpace(line)),
			})
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errclass.ErrLogfileUnreadable.WithMessagef("read %s: %v", path, err)
	}
	return records, findings, nil
}
