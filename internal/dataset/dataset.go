// Package dataset loads process records for the scheduling engine.
//
// Two layouts are accepted. The text layout has a header line followed by
// whitespace-separated records:
//
//	name arrival_time burst_time priority
//	P1   0            5          2
//
// The CSV layout carries the same columns separated by commas; its header is
// optional. In both layouts the priority column may be omitted, in which case
// the process gets process.NoPriority. Lines starting with '#' are comments.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Barritosaurus/schedsim/internal/process"
)

// Format selects the record layout.
type Format string

const (
	FormatAuto Format = ""
	FormatText Format = "text"
	FormatCSV  Format = "csv"
)

// ParseFormat resolves a format name; the empty string means auto-detect.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatText, FormatCSV:
		return f, nil
	case "auto":
		return FormatAuto, nil
	}
	return "", fmt.Errorf("%w: unknown dataset format %q", process.ErrInvalidParameter, s)
}

// Options controls loading.
type Options struct {
	Format Format
	// MaxProcesses caps the set; records past the cap are rejected and
	// reported. Zero means unbounded.
	MaxProcesses int
}

// Result is the loaded set plus the records that did not fit.
type Result struct {
	Set      *process.Set
	Rejected []string
}

// Overflow reports the rejected records as an ErrCapacityExceeded error, or
// nil when everything fit.
func (r *Result) Overflow() error {
	if len(r.Rejected) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d record(s) over the limit of %d were rejected: %s",
		process.ErrCapacityExceeded, len(r.Rejected), r.Set.Cap(), strings.Join(r.Rejected, ", "))
}

// LoadFile opens path and loads it. With FormatAuto a .csv extension selects
// the CSV layout and anything else the text layout.
func LoadFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%v: error opening dataset file", err)
	}
	defer f.Close()

	if opts.Format == FormatAuto {
		opts.Format = FormatText
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			opts.Format = FormatCSV
		}
	}
	return Load(f, opts)
}

// Load reads records from r. Malformed or invalid records fail the whole load;
// records past the capacity are collected in Result.Rejected.
func Load(r io.Reader, opts Options) (*Result, error) {
	res := &Result{Set: process.NewSet(opts.MaxProcesses)}
	add := func(line int, fields []string) error {
		p, err := parseRecord(fields)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := res.Set.Add(p); err != nil {
			if errors.Is(err, process.ErrCapacityExceeded) {
				res.Rejected = append(res.Rejected, p.Name)
				return nil
			}
			return fmt.Errorf("line %d: %w", line, err)
		}
		return nil
	}

	var err error
	switch opts.Format {
	case FormatCSV:
		err = readCSV(r, add)
	case FormatText, FormatAuto:
		err = readText(r, add)
	default:
		err = fmt.Errorf("%w: unknown dataset format %q", process.ErrInvalidParameter, opts.Format)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func readText(r io.Reader, add func(int, []string) error) error {
	sc := bufio.NewScanner(r)
	line, headerSeen := 0, false
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		if err := add(line, strings.Fields(text)); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: reading dataset", err)
	}
	return nil
}

func readCSV(r io.Reader, add func(int, []string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	first := true
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: reading CSV", err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(fields) {
				continue
			}
		}
		if err := add(line, fields); err != nil {
			return err
		}
	}
}

// isHeader treats a first row whose arrival column is not a number as a header.
func isHeader(fields []string) bool {
	if len(fields) < 2 {
		return true
	}
	_, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	return err != nil
}

func parseRecord(fields []string) (process.Process, error) {
	if len(fields) < 3 {
		return process.Process{}, fmt.Errorf("%w: want name, arrival and burst, got %d field(s)",
			process.ErrInvalidParameter, len(fields))
	}
	name := strings.TrimSpace(fields[0])
	arrival, err := parseInt("arrival_time", fields[1])
	if err != nil {
		return process.Process{}, err
	}
	burst, err := parseInt("burst_time", fields[2])
	if err != nil {
		return process.Process{}, err
	}
	priority := process.NoPriority
	if len(fields) > 3 && strings.TrimSpace(fields[3]) != "" {
		if priority, err = parseInt("priority", fields[3]); err != nil {
			return process.Process{}, err
		}
	}

	p := process.New(name, arrival, burst, priority)
	if err := p.Validate(); err != nil {
		return process.Process{}, err
	}
	return p, nil
}

func parseInt(field, s string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", process.ErrInvalidParameter, field, s)
	}
	return i, nil
}
