package advisors

import (
	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// similarityThreshold is the minimum Jaro-Winkler score a fuzzy name lookup
// accepts, and only when exactly one candidate clears it (spec Open
// Question iii: "resolve iff similarity > 0.85 and the match is unique").
const similarityThreshold = 0.85

// NameMatchAdvisor resolves a free-text company or brand name to a curated
// Wikidata id, grounded on original_source/condensing/src/advisors.rs's
// SustainityMatchesAdvisor. It is shared by the EU Ecolabel and Open Food
// Facts condensing paths, each of which only has a name to work with, not a
// Wikidata id.
type NameMatchAdvisor struct {
	exact map[string]ids.WikiId
	names []string
}

// NewNameMatchAdvisor loads path's curated name/id table.
func NewNameMatchAdvisor(path string, logger *logrus.Logger) (*NameMatchAdvisor, error) {
	entries, err := sources.ReadMatches(path, logger)
	if err != nil {
		return nil, err
	}

	a := &NameMatchAdvisor{exact: map[string]ids.WikiId{}}
	for _, e := range entries {
		key := normalizeName(e.Name)
		a.exact[key] = e.WikiId
		a.names = append(a.names, key)
	}
	return a, nil
}

// Resolve returns the Wikidata id for name, either an exact normalized match
// or, failing that, the single curated name whose similarity exceeds
// similarityThreshold. Resolve returns ok=false if no candidate clears the
// threshold, or if more than one does (an ambiguous match is treated as no
// match, matching the original's conservative iii decision).
func (a *NameMatchAdvisor) Resolve(name string) (ids.WikiId, bool) {
	key := normalizeName(name)
	if id, ok := a.exact[key]; ok {
		return id, true
	}

	var best string
	bestScore := 0.0
	candidates := 0
	for _, candidate := range a.names {
		score := jaroWinkler(key, candidate)
		if score > similarityThreshold {
			candidates++
			if score > bestScore {
				bestScore = score
				best = candidate
			}
		}
	}
	if candidates != 1 {
		return 0, false
	}
	return a.exact[best], true
}
