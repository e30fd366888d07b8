package wikidata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Line is one raw dump line, still JSON-encoded, paired with the offset it
// was read from (used only for diagnostics in the error report).
type Line struct {
	Raw   []byte
	Index int
}

// Dump streams a gzipped Wikidata JSON dump (one JSON array of entities,
// formatted with one entity per line) one line at a time, stripping the
// outer array brackets and each line's trailing comma. Grounded on C2's
// "stream-decompress a gzipped JSON dump, emit one entity record per
// message" contract; klauspost/compress is used in place of the standard
// library's compress/gzip for its faster inflate path on multi-gigabyte
// dumps (see DESIGN.md's DOMAIN STACK wiring for C2).
type Dump struct {
	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
	index   int
}

// OpenDump opens path (a gzipped Wikidata JSON dump) for streaming.
func OpenDump(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wikidata: open dump %s: %w", path, err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("wikidata: open gzip reader %s: %w", path, err)
	}
	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &Dump{file: f, gz: gz, scanner: scanner}, nil
}

// Next returns the next entity line, with its outer-array decoration
// stripped, or io.EOF when the dump is exhausted.
func (d *Dump) Next() (Line, error) {
	for d.scanner.Scan() {
		raw := stripArrayDecoration(d.scanner.Bytes())
		d.index++
		if len(raw) == 0 {
			continue
		}
		// Copy: bufio.Scanner reuses its buffer on the next Scan.
		owned := make([]byte, len(raw))
		copy(owned, raw)
		return Line{Raw: owned, Index: d.index}, nil
	}
	if err := d.scanner.Err(); err != nil {
		return Line{}, fmt.Errorf("wikidata: scan dump: %w", err)
	}
	return Line{}, io.EOF
}

// Close releases the gzip reader and underlying file.
func (d *Dump) Close() error {
	gzErr := d.gz.Close()
	fileErr := d.file.Close()
	if gzErr != nil {
		return fmt.Errorf("wikidata: close gzip reader: %w", gzErr)
	}
	if fileErr != nil {
		return fmt.Errorf("wikidata: close dump file: %w", fileErr)
	}
	return nil
}

// stripArrayDecoration trims the leading "[" / trailing "]" that bracket
// the whole dump and the per-line "," / trailing whitespace Wikidata's
// pretty-printed export adds.
func stripArrayDecoration(line []byte) []byte {
	s := strings.TrimSpace(string(line))
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	return []byte(s)
}
