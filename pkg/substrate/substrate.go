// Package substrate defines the common per-source normalized record shape
// (spec §3 "Lifecycles", §4.3) and the streaming JSON-lines writer/reader
// every condenser and crystalizer stage uses to persist it.
//
// A substrate file holds one kind of record — a "cataloger" substrate
// enumerates producers/products (Wikidata, Open Food Facts); a "reviewer"
// substrate asserts certifications against already-known entities (BCorp,
// EU Ecolabel, TCO, FTI). Both share the same envelope: an ExternalId plus
// either a Producer or a Product payload.
package substrate

import (
	"bufio"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind distinguishes a cataloger substrate (enumerates entities) from a
// reviewer substrate (asserts certifications/scores against them).
type Kind string

const (
	KindCatalog Kind = "catalog"
	KindReview  Kind = "review"
)

// Refs holds raw, not-yet-coagulated references a record makes to other
// entities: the manufacturers a product names, and the products it follows
// or is followed by. These are recorded as the WikiId the source actually
// asserted; crystalization (spec §4.7 step 1: "rewrite every... reference to
// producers, predecessors, successors") resolves each one through the
// coagulate into a canonical UniqueId. The resolved form lives only on
// models.Product — Refs never appears in an emitted collection.
type Refs struct {
	ManufacturerWiki []ids.WikiId `json:"manufacturer_wiki,omitempty"`
	FollowsWiki      []ids.WikiId `json:"follows_wiki,omitempty"`
	FollowedByWiki   []ids.WikiId `json:"followed_by_wiki,omitempty"`
}

// Record is one line of a substrate file: an externally-scoped ID plus
// whichever of Producer/Product this record describes. A record may carry
// both if a single source row yields both a producer and a product (e.g.
// Wikidata items that are simultaneously a manufacturer and a product).
type Record struct {
	ExternalId ids.ExternalId   `json:"external_id"`
	Producer   *models.Producer `json:"producer,omitempty"`
	Product    *models.Product  `json:"product,omitempty"`
	Refs       Refs             `json:"refs,omitempty"`
}

// Writer streams Records as newline-delimited JSON, one per call to Write.
type Writer struct {
	w   *bufio.Writer
	f   io.Closer
	enc func(v interface{}) ([]byte, error)
}

// CreateWriter truncates/creates path and returns a Writer over it.
func CreateWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("substrate: create %s: %w", path, err)
	}
	return &Writer{w: bufio.NewWriter(f), f: f, enc: json.Marshal}, nil
}

// Write appends one record as a JSON line.
func (w *Writer) Write(r Record) error {
	b, err := w.enc(r)
	if err != nil {
		return fmt.Errorf("substrate: marshal record %s: %w", r.ExternalId, err)
	}
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("substrate: write record %s: %w", r.ExternalId, err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("substrate: write newline: %w", err)
	}
	return nil
}

// Close flushes buffered output and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		_ = w.f.Close()
		return fmt.Errorf("substrate: flush: %w", err)
	}
	return w.f.Close()
}

// Reader streams Records from a newline-delimited JSON file.
type Reader struct {
	scanner *bufio.Scanner
	f       io.Closer
}

// OpenReader opens path for streaming substrate reads.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("substrate: open %s: %w", path, err)
	}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Reader{scanner: scanner, f: f}, nil
}

// Next reads the next record, returning io.EOF when the file is exhausted.
func (r *Reader) Next() (Record, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return Record{}, fmt.Errorf("substrate: scan: %w", err)
		}
		return Record{}, io.EOF
	}
	line := r.scanner.Bytes()
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Record{}, fmt.Errorf("substrate: unmarshal line: %w", err)
	}
	return rec, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error { return r.f.Close() }

// ForEach reads every record in the file, calling fn for each. A non-nil
// error from fn aborts iteration and is returned.
func ForEach(path string, fn func(Record) error) error {
	r, err := OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}
