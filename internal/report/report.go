// Package report implements the error taxonomy of spec §7: parse errors,
// ID validation errors, and cross-reference errors are accumulated here
// grouped by data set and error kind, then printed once at the end of a
// run. Reports are operational aids only — they are never persisted.
package report

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// Kind names one of the non-fatal error categories a run can accumulate.
type Kind string

const (
	// KindParse: a record could not be parsed at all (§7 kind 2).
	KindParse Kind = "parse_error"
	// KindInvalidId: a VAT/GTIN/WikiId failed validation (§7 kind 3).
	KindInvalidId Kind = "invalid_id"
	// KindDanglingReference: a crystalization-time cross-reference to a
	// record not present anywhere (§7 kind 4).
	KindDanglingReference Kind = "dangling_reference"
	// KindStale: an origin input is newer than the substrate condensed
	// from it, reported by the `update` subcommand's freshness check.
	KindStale Kind = "stale_source"
)

type key struct {
	dataSet ids.DataSetId
	kind    Kind
}

// Report accumulates warnings across a run, grouped by (data set, kind),
// safe for concurrent use by flow workers.
type Report struct {
	mu       sync.Mutex
	counts   map[key]int
	examples map[key][]string
}

// New returns an empty Report.
func New() *Report {
	return &Report{
		counts:   map[key]int{},
		examples: map[key][]string{},
	}
}

// maxExamples bounds how many example messages are retained per group so a
// pathological run cannot blow up memory while still giving a diagnostic.
const maxExamples = 5

// Add records one occurrence of kind within dataSet, with a human-readable
// message describing the specific record.
func (r *Report) Add(dataSet ids.DataSetId, kind Kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{dataSet: dataSet, kind: kind}
	r.counts[k]++
	if len(r.examples[k]) < maxExamples {
		r.examples[k] = append(r.examples[k], message)
	}
}

// Count returns how many times kind has been recorded for dataSet.
func (r *Report) Count(dataSet ids.DataSetId, kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key{dataSet: dataSet, kind: kind}]
}

// Total returns the total number of accumulated warnings across all groups.
func (r *Report) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, c := range r.counts {
		total += c
	}
	return total
}

// Print logs a grouped summary, one line per (data set, kind), sorted for
// stable output. Intended to run once at the end of a stage.
func (r *Report) Print(logger *logrus.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.counts) == 0 {
		logger.Info("report: no warnings recorded")
		return
	}

	keysSorted := make([]key, 0, len(r.counts))
	for k := range r.counts {
		keysSorted = append(keysSorted, k)
	}
	sort.Slice(keysSorted, func(i, j int) bool {
		if keysSorted[i].dataSet != keysSorted[j].dataSet {
			return keysSorted[i].dataSet < keysSorted[j].dataSet
		}
		return keysSorted[i].kind < keysSorted[j].kind
	})

	for _, k := range keysSorted {
		entry := logger.WithFields(logrus.Fields{
			"data_set": k.dataSet,
			"kind":     k.kind,
			"count":    r.counts[k],
		})
		entry.Warn("report group")
		for _, ex := range r.examples[k] {
			entry.Debug(ex)
		}
	}
}

// ConfigError signals a fatal configuration problem (§7 kind 1): a missing
// input path or an unwritable output path. The run aborts before any work
// starts.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("report: configuration error for %s: %s", e.Path, e.Reason)
}

// InvariantError signals a fatal internal invariant violation (§7 kind 6):
// e.g. non-unique keys in an emitted vertex collection. The run aborts with
// this diagnostic.
type InvariantError struct {
	Collection string
	Detail     string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("report: invariant violated in collection %s: %s", e.Collection, e.Detail)
}
