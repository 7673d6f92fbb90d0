package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVOptions controls how ReadCSV splits and cleans fields.
type CSVOptions struct {
	Delimiter rune // Field delimiter; zero means ','.
	TrimSpace bool // Trim leading and trailing whitespace from every field.
	Comment   rune // Lines starting with this rune are skipped; zero disables.
}

// DefaultCSVOptions returns comma-separated fields with whitespace trimmed.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: ',', TrimSpace: true}
}

// ReadCSV reads a CSV stream whose first record is the header. Empty fields
// are kept as the empty string, a category of their own.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.Comment = opts.Comment
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv: missing header: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if opts.TrimSpace {
		trimAll(header)
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		if opts.TrimSpace {
			trimAll(rec)
		}
		records = append(records, rec)
	}
	return FromRecords(header, records)
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, opts)
}

func trimAll(fields []string) {
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
}
