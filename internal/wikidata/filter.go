package wikidata

import (
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// PrefilterResult is the output of the first pass: every class and
// manufacturer QID referenced by any item in the dump (spec §4.6/C6: "First
// pass: collect class/manufacturer ID sets").
type PrefilterResult struct {
	Classes       map[uint64]struct{}
	Manufacturers map[uint64]struct{}
}

func newPrefilterResult() PrefilterResult {
	return PrefilterResult{
		Classes:       map[uint64]struct{}{},
		Manufacturers: map[uint64]struct{}{},
	}
}

// PrefilterCollector is a flow.Consumer-shaped accumulator for the first
// pass: every item's classes, superclasses, and manufacturers feed the
// PrefilterResult sets.
type PrefilterCollector struct {
	result PrefilterResult
}

// NewPrefilterCollector returns an empty collector.
func NewPrefilterCollector() *PrefilterCollector {
	return &PrefilterCollector{result: newPrefilterResult()}
}

// Consume folds one item's referenced classes and manufacturers into the
// running result.
func (c *PrefilterCollector) Consume(item *Item) error {
	for _, id := range item.GetClasses() {
		c.result.Classes[id] = struct{}{}
	}
	for _, id := range item.GetSuperclasses() {
		c.result.Classes[id] = struct{}{}
	}
	for _, id := range item.GetManufacturerIds() {
		c.result.Manufacturers[id] = struct{}{}
	}
	return nil
}

// Finish is a no-op; the accumulated result is read via Result.
func (c *PrefilterCollector) Finish() error { return nil }

// Result returns the accumulated PrefilterResult.
func (c *PrefilterCollector) Result() PrefilterResult { return c.result }

// FilterProcessor is the second pass (spec §4.6/C6): "drop unrelated items,
// re-emit filtered dump". An item survives if it is itself a product
// candidate (has a manufacturer), an organisation candidate, or if its QID
// was referenced as a class or manufacturer during the first pass.
type FilterProcessor struct {
	prefilter PrefilterResult
}

// NewFilterProcessor builds a FilterProcessor against a completed
// PrefilterResult.
func NewFilterProcessor(prefilter PrefilterResult) *FilterProcessor {
	return &FilterProcessor{prefilter: prefilter}
}

// Process emits item unchanged if it is relevant, or nothing otherwise.
func (f *FilterProcessor) Process(item *Item, out chan<- *Item) error {
	if f.isRelevant(item) {
		out <- item
	}
	return nil
}

// Finish is a no-op: the filter emits nothing on channel close.
func (f *FilterProcessor) Finish(out chan<- *Item) error { return nil }

func (f *FilterProcessor) isRelevant(item *Item) bool {
	if item.HasManufacturer() {
		return true
	}
	if item.IsOrganisation() {
		return true
	}
	id, err := ids.ParseWikiId(item.Id)
	if err != nil {
		return false
	}
	numeric := uint64(id)
	if _, ok := f.prefilter.Classes[numeric]; ok {
		return true
	}
	if _, ok := f.prefilter.Manufacturers[numeric]; ok {
		return true
	}
	return false
}

// ResolveCategory returns the first of the item's classes that belongs to
// the curated coreProductCategories set, used by the condenser to assign a
// product's category path (spec §4.7's category vertex derivation starts
// from this classification).
func ResolveCategory(item *Item) (uint64, bool) {
	for _, id := range item.GetClasses() {
		if coreProductCategories[id] {
			return id, true
		}
	}
	for _, id := range item.GetSuperclasses() {
		if coreProductCategories[id] {
			return id, true
		}
	}
	return 0, false
}

// IsIgnoredClass reports whether id is one of the classes the condenser's
// uncategorized-class diagnostic should never flag (spec supplement,
// grounded on original_source/condenser/src/analysis.rs's IGNORED_CLASSES).
func IsIgnoredClass(id uint64) bool {
	return ignoredClasses[id]
}
