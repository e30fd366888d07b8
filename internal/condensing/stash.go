// Package condensing implements the C7 condenser: per-source stages that
// turn raw dump/source rows into substrate files, using C1's flow runtime
// and C4's advisors. Catalogers (Wikidata, Open Food Facts) enumerate new
// producers/products; reviewers (BCorp, EU Ecolabel, TCO, FTI) assert
// certifications against entities a cataloger will also emit.
//
// Grounded on spec §2/§4.1/§4.3 and
// original_source/condensing/src/advisors.rs for the per-source lookup
// shape each stage consults.
package condensing

import (
	"sort"

	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

// Stash is the terminal flow.Consumer for every condensing stage: it
// accumulates every record a stage's workers emit, then on Finish sorts by
// external id and writes the substrate file in one pass (spec §4.3: "a
// stash consumer merges them all, then on finish runs post-processing and
// writes outputs" + §5: "Output files are sorted before writing").
type Stash struct {
	path    string
	records []substrate.Record
}

// NewStash returns a Stash that will write to path on Finish.
func NewStash(path string) *Stash {
	return &Stash{path: path}
}

// Consume appends one record. Stash is not safe for concurrent use by
// multiple goroutines; flow.SpawnConsumer drives exactly one goroutine per
// consumer, so this is never a concern in practice.
func (s *Stash) Consume(r substrate.Record) error {
	s.records = append(s.records, r)
	return nil
}

// Finish sorts the accumulated records by external id and writes them to
// the substrate file.
func (s *Stash) Finish() error {
	sort.Slice(s.records, func(i, j int) bool {
		return s.records[i].ExternalId.Inner < s.records[j].ExternalId.Inner
	})

	w, err := substrate.CreateWriter(s.path)
	if err != nil {
		return err
	}
	for _, r := range s.records {
		if err := w.Write(r); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}

// Len reports how many records have been accumulated so far (used by tests).
func (s *Stash) Len() int { return len(s.records) }
