package sources

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// TcoEntry is one curated TCO Certified brand, grounded on
// original_source/condensing/src/advisors.rs's TcoAdvisor::load: a small,
// hand-maintained YAML table mapping a Wikidata id straight to a brand name,
// loaded eagerly rather than streamed (spec §4.2).
type TcoEntry struct {
	WikiId ids.WikiId `yaml:"wiki_id"`
	Brand  string     `yaml:"brand"`
}

// ReadTco loads path's YAML list of TcoEntry values. A missing file yields
// an empty list and a warning, matching the CSV sources' degradation rule.
func ReadTco(path string, logger *logrus.Logger) ([]TcoEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil {
			logger.WithError(err).Warnf("sources: could not open %s, treating as empty", path)
		}
		return nil, nil
	}
	var entries []TcoEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
