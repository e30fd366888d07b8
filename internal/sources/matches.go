package sources

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// MatchEntry is one curated name-to-Wikidata-id pairing, grounded on
// original_source/condensing/src/advisors.rs's SustainityMatchesAdvisor: a
// hand-reviewed table resolving ambiguous company/brand names to a single
// Wikidata id, shared by the EU Ecolabel and Open Food Facts
// condensing paths wherever automatic name matching is too ambiguous to
// trust on its own (spec Open Question iii).
type MatchEntry struct {
	Name   string     `yaml:"name"`
	WikiId ids.WikiId `yaml:"wiki_id"`
}

// ReadMatches loads path's curated name/Wikidata-id table.
func ReadMatches(path string, logger *logrus.Logger) ([]MatchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil {
			logger.WithError(err).Warnf("sources: could not open %s, treating as empty", path)
		}
		return nil, nil
	}
	var entries []MatchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
