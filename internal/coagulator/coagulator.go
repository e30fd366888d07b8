// Package coagulator implements the identity-resolution stage (spec §4.6,
// §8, §9): it consumes every external ID seen across all sources, together
// with the individual IDs (VAT numbers, domains, GTINs, Wikidata QIDs, ...)
// those externals claim, and assigns each external a UniqueId such that
// externals sharing an individual ID land in the same cluster.
//
// The algorithm runs in two phases against a Bucket-backed adjacency graph:
// a fill phase that records, for every external, its individual IDs, and
// for every individual ID, the externals that claim it; and a cluster phase
// that walks the graph in input order, assigning a fresh UniqueId to each
// unvisited external and then flooding its transitive closure.
//
// Grounded on original_source/lab/src/coagulating.rs, which this package
// follows exactly in algorithm shape (including consuming each
// individual-to-externals adjacency list at most once during the flood, so
// the closure terminates and costs no more than one pass over the graph).
package coagulator

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// EntityKind distinguishes the producer and product coagulation runs, which
// use disjoint buckets and disjoint UniqueId sequences.
type EntityKind string

const (
	KindProducer EntityKind = "producer"
	KindProduct  EntityKind = "product"
)

// IndividualID is one claimed identifier: a kind tag (e.g. "vat", "wiki",
// "domain", "gtin", "ean") plus its value. Two externals that both claim
// the same IndividualID belong to the same cluster.
type IndividualID struct {
	Kind  string
	Value string
}

func (i IndividualID) String() string {
	return i.Kind + ":" + i.Value
}

// Input is one external's record of the individual IDs it claims,
// presented to the Coagulator in the order it should be processed — that
// order determines which external in a cluster "wins" the lowest UniqueId,
// and must be stable across runs for reproducibility (spec §8).
type Input struct {
	External    ids.ExternalId
	Individuals []IndividualID
}

// Result is the outcome of one coagulation run: every external's assigned
// UniqueId, plus the two counters reported in spec §8 scenarios.
type Result struct {
	Assignments map[string]ids.UniqueId
	NumClusters uint64
	NumEmptyIds uint64
}

// Lookup returns the UniqueId assigned to external, if any.
func (r *Result) Lookup(external ids.ExternalId) (ids.UniqueId, bool) {
	id, ok := r.Assignments[external.String()]
	return id, ok
}

// Coagulator runs the fill+cluster algorithm against a pair of Buckets
// (external→individuals and individual→externals) for one EntityKind.
type Coagulator struct {
	ext2ind Bucket
	ind2ext Bucket
	logger  *logrus.Logger
}

// New builds a Coagulator against the given store, using the bucket-naming
// convention "<kind>_ext2ind" / "<kind>_ind2ext" so that producer and
// product runs against the same Store never collide.
func New(store *Store, kind EntityKind, logger *logrus.Logger) *Coagulator {
	return &Coagulator{
		ext2ind: store.Bucket(string(kind) + "_ext2ind"),
		ind2ext: store.Bucket(string(kind) + "_ind2ext"),
		logger:  logger,
	}
}

// NewWithBuckets builds a Coagulator directly against caller-supplied
// Buckets, letting tests use in-memory buckets instead of a bbolt Store.
func NewWithBuckets(ext2ind, ind2ext Bucket, logger *logrus.Logger) *Coagulator {
	return &Coagulator{ext2ind: ext2ind, ind2ext: ind2ext, logger: logger}
}

// Fill records the adjacency graph for every input: external→individuals,
// and individual→externals (both directions sorted and deduped, per spec
// §4.6 step 1). Fill must run to completion for every input before Cluster
// is called.
func (c *Coagulator) Fill(inputs []Input) error {
	for _, in := range inputs {
		extKey := in.External.String()

		indKeys := make([]string, 0, len(in.Individuals))
		for _, ind := range in.Individuals {
			indKeys = append(indKeys, ind.String())
		}
		sort.Strings(indKeys)
		indKeys = dedupSorted(indKeys)

		if err := c.ext2ind.Put(extKey, indKeys); err != nil {
			return fmt.Errorf("coagulator: fill external %s: %w", extKey, err)
		}

		for _, indKey := range indKeys {
			existing, _, err := c.ind2ext.Get(indKey)
			if err != nil {
				return fmt.Errorf("coagulator: fill individual %s: %w", indKey, err)
			}
			if err := c.ind2ext.Put(indKey, appendSortedDedup(existing, extKey)); err != nil {
				return fmt.Errorf("coagulator: fill individual %s: %w", indKey, err)
			}
		}
	}
	return nil
}

// Cluster walks inputs in order, assigning a fresh UniqueId to each
// external not yet visited, then flooding its transitive closure through
// the adjacency graph built by Fill. Each individual's adjacency list is
// consumed (deleted) the first time the flood reaches it, so every edge is
// walked at most once regardless of cluster size.
func (c *Coagulator) Cluster(inputs []Input) (*Result, error) {
	seq := ids.NewUniqueIdSequence()
	assigned := make(map[string]ids.UniqueId, len(inputs))
	var numEmpty uint64

	for _, in := range inputs {
		extKey := in.External.String()
		if _, done := assigned[extKey]; done {
			continue
		}

		uid := seq.Increment()
		assigned[extKey] = uid

		indKeys, _, err := c.ext2ind.Get(extKey)
		if err != nil {
			return nil, fmt.Errorf("coagulator: cluster external %s: %w", extKey, err)
		}
		if len(indKeys) == 0 {
			numEmpty++
			continue
		}

		frontier := indKeys
		for len(frontier) > 0 {
			var next []string
			for _, indKey := range frontier {
				externals, ok, err := c.ind2ext.Get(indKey)
				if err != nil {
					return nil, fmt.Errorf("coagulator: cluster individual %s: %w", indKey, err)
				}
				if !ok {
					continue
				}
				if err := c.ind2ext.Delete(indKey); err != nil {
					return nil, fmt.Errorf("coagulator: consume individual %s: %w", indKey, err)
				}
				for _, ext := range externals {
					if _, done := assigned[ext]; done {
						continue
					}
					assigned[ext] = uid
					theirInds, _, err := c.ext2ind.Get(ext)
					if err != nil {
						return nil, fmt.Errorf("coagulator: cluster external %s: %w", ext, err)
					}
					next = append(next, theirInds...)
				}
			}
			frontier = next
		}
	}

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"clusters":  seq.Len(),
			"empty_ids": numEmpty,
		}).Info("coagulation complete")
	}

	return &Result{Assignments: assigned, NumClusters: seq.Len(), NumEmptyIds: numEmpty}, nil
}

// Run is the Fill+Cluster convenience entry point used by the stage wiring
// in internal/app.
func (c *Coagulator) Run(inputs []Input) (*Result, error) {
	if err := c.Fill(inputs); err != nil {
		return nil, err
	}
	return c.Cluster(inputs)
}

func dedupSorted(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:1]
	for _, v := range values[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
