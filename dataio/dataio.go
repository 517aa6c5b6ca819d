// Package dataio reads the numeric input matrices handed to the art2a command
// and writes per-vector cluster assignments.
//
// Supported input layouts:
//
//	csv        comma-separated, optional header row
//	tsv        tab-separated, optional header row
//	whitespace any run of blanks separates fields
//
// Blank lines and lines starting with '#' are skipped in every layout.
package dataio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"github.com/katalvlaran/art2a/vecmath"
)

// Format is an input layout.
type Format int

const (
	// FormatWhitespace separates fields by blanks.
	FormatWhitespace Format = iota
	// FormatCSV separates fields by commas.
	FormatCSV
	// FormatTSV separates fields by tabs.
	FormatTSV
)

// Sentinel errors.
var (
	ErrNoData       = errors.New("dataio: no data rows")
	ErrParse        = errors.New("dataio: cannot parse number")
	ErrBadFormat    = errors.New("dataio: unknown input format")
	ErrFieldCount   = errors.New("dataio: wrong number of fields")
	ErrBadPrecision = errors.New("dataio: precision must be 32 or 64")
)

// ParseFormat maps "csv", "tsv" and "whitespace" (or "txt") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "whitespace", "txt", "":
		return FormatWhitespace, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
}

// FormatFromPath guesses the layout from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".tsv", ".tab":
		return FormatTSV
	default:
		return FormatWhitespace
	}
}

// ValidatePrecision accepts 32 and 64.
func ValidatePrecision(bits int) error {
	if bits != 32 && bits != 64 {
		return fmt.Errorf("%w: got %d", ErrBadPrecision, bits)
	}

	return nil
}

// ReadOptions configures Read.
type ReadOptions struct {
	Format Format
	Header bool // first data line holds column names
}

// Read parses a matrix of T from r. Every row must have as many fields as the
// first one; shape and value validation beyond that is left to art2a.Prepare.
func Read[T vecmath.Float](r io.Reader, opts ReadOptions) ([][]T, error) {
	var (
		records [][]string
		err     error
	)
	switch opts.Format {
	case FormatCSV, FormatTSV:
		records, err = readDelimited(r, opts.Format)
	case FormatWhitespace:
		records, err = readWhitespace(r)
	default:
		return nil, ErrBadFormat
	}
	if err != nil {
		return nil, err
	}
	if opts.Header && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	var (
		bits  = int(unsafe.Sizeof(T(0))) * 8
		width = len(records[0])
		rows  = make([][]T, len(records))
	)
	for i, rec := range records {
		if len(rec) != width {
			return nil, fmt.Errorf("%w: row %d has %d, want %d", ErrFieldCount, i, len(rec), width)
		}
		rows[i] = make([]T, width)
		for j, f := range rec {
			v, perr := strconv.ParseFloat(strings.TrimSpace(f), bits)
			if perr != nil {
				return nil, fmt.Errorf("%w: row %d, column %d: %q", ErrParse, i, j, f)
			}
			rows[i][j] = T(v)
		}
	}

	return rows, nil
}

func readDelimited(r io.Reader, f Format) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if f == FormatTSV {
		cr.Comma = '\t'
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataio: read delimited input: %w", err)
	}

	return records, nil
}

func readWhitespace(r io.Reader) ([][]string, error) {
	var records [][]string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, strings.Fields(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataio: read input: %w", err)
	}

	return records, nil
}

// WriteOccupationCSV writes "vector,cluster" followed by one line per input
// vector; null vectors carry cluster -1.
func WriteOccupationCSV(w io.Writer, occupation []int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"vector", "cluster"}); err != nil {
		return err
	}
	for i, c := range occupation {
		if err := cw.Write([]string{strconv.Itoa(i), strconv.Itoa(c)}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
