package advisors

import (
	"github.com/transpaer/transpaer-knowledge/internal/wikidata"
)

// WikidataAdvisor exposes the class/manufacturer sets collected by the
// Wikidata prefilter pass to other condensing stages, grounded on
// original_source/condensing/src/advisors.rs's WikidataAdvisor (which wraps
// the equivalent lab-stage prefilter output).
type WikidataAdvisor struct {
	prefilter wikidata.PrefilterResult
}

// NewWikidataAdvisor wraps an already-computed prefilter result.
func NewWikidataAdvisor(prefilter wikidata.PrefilterResult) *WikidataAdvisor {
	return &WikidataAdvisor{prefilter: prefilter}
}

// HasManufacturerId reports whether id was ever referenced as a
// manufacturer in the dump.
func (a *WikidataAdvisor) HasManufacturerId(id uint64) bool {
	_, ok := a.prefilter.Manufacturers[id]
	return ok
}

// HasClassId reports whether id was ever referenced as a class (instance-of
// or subclass-of target) in the dump.
func (a *WikidataAdvisor) HasClassId(id uint64) bool {
	_, ok := a.prefilter.Classes[id]
	return ok
}
