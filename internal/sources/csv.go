// Package sources implements the C3 source readers: Open Food Facts,
// EU Ecolabel, and B-Corp CSV streaming, plus the eagerly-loaded TCO and
// FTI YAML tables (spec §4.2: "CSV readers: parse header row once, then
// emit (headers, row) pairs; the processor does typed deserialization" and
// "YAML sources are small and loaded eagerly into advisor tables").
// Grounded on original_source/condensing/src/advisors.rs's per-source
// `load` methods, which all share the same "missing file ⇒ warn ⇒ behave
// as empty" degradation rule this package follows via Row-level readers
// that never fail on a missing path.
package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Row is one CSV data row paired with the header row read once at open
// time, so a processor stage can look fields up by name.
type Row struct {
	Headers []string
	Values  []string
}

// Get returns the value in the named column, if the row has that many
// columns and the column exists in Headers.
func (r Row) Get(column string) (string, bool) {
	for i, h := range r.Headers {
		if h == column && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return "", false
}

// CsvReader streams a CSV file's data rows, each carrying a shared
// reference to the header row.
type CsvReader struct {
	f       *os.File
	reader  *csv.Reader
	headers []string
}

// OpenCsv opens path and reads its header row. A missing file is not an
// error: it logs a warning and returns a reader whose Next immediately
// reports io.EOF, matching every advisor's "missing file ⇒ empty table"
// degradation rule.
func OpenCsv(path string, logger *logrus.Logger) (*CsvReader, error) {
	return openDelimited(path, ',', logger)
}

// OpenTsv is OpenCsv for tab-separated exports (Open Food Facts ships its
// product dump as TSV, not CSV).
func OpenTsv(path string, logger *logrus.Logger) (*CsvReader, error) {
	return openDelimited(path, '\t', logger)
}

func openDelimited(path string, comma rune, logger *logrus.Logger) (*CsvReader, error) {
	f, err := os.Open(path)
	if err != nil {
		if logger != nil {
			logger.WithError(err).Warnf("sources: could not open %s, treating as empty", path)
		}
		return &CsvReader{}, nil
	}

	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	headers, err := reader.Read()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return &CsvReader{}, nil
		}
		return nil, fmt.Errorf("sources: read header of %s: %w", path, err)
	}

	return &CsvReader{f: f, reader: reader, headers: headers}, nil
}

// Next returns the next data row, or io.EOF when exhausted. Rows the CSV
// parser rejects are logged and skipped, never fatal. The field count is not
// checked against the header: a short row is returned as read, and Row.Get
// reports its missing trailing columns as absent.
func (r *CsvReader) Next(logger *logrus.Logger) (Row, error) {
	if r.reader == nil {
		return Row{}, io.EOF
	}
	for {
		values, err := r.reader.Read()
		if err == io.EOF {
			return Row{}, io.EOF
		}
		if err != nil {
			if logger != nil {
				logger.WithError(err).Warn("sources: skipping malformed csv row")
			}
			continue
		}
		return Row{Headers: r.headers, Values: values}, nil
	}
}

// Close releases the underlying file, if one was opened.
func (r *CsvReader) Close() error {
	if r.f == nil {
		return nil
	}
	return r.f.Close()
}

// ForEachRow opens path, streams every row through fn, and closes the
// reader afterward.
func ForEachRow(path string, logger *logrus.Logger, fn func(Row) error) error {
	return forEachDelimited(path, ',', logger, fn)
}

// ForEachTsvRow is ForEachRow for tab-separated files.
func ForEachTsvRow(path string, logger *logrus.Logger, fn func(Row) error) error {
	return forEachDelimited(path, '\t', logger, fn)
}

func forEachDelimited(path string, comma rune, logger *logrus.Logger, fn func(Row) error) error {
	reader, err := openDelimited(path, comma, logger)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		row, err := reader.Next(logger)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
