package sources

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// FtiEntry is one curated Fashion Transparency Index score, grounded on
// original_source/condensing/src/advisors.rs's FashionTransparencyIndexAdvisor.
// The original flags a loaded table that repeats a Wikidata id as a source
// error (SourcesCheckError::RepeatedIds); ReadFti reproduces that check.
type FtiEntry struct {
	WikiId ids.WikiId `yaml:"wiki_id"`
	Name   string     `yaml:"name"`
	Score  int        `yaml:"score"`
}

// ErrRepeatedWikiId is returned when a FTI table assigns more than one entry
// to the same Wikidata id.
type ErrRepeatedWikiId struct {
	WikiId ids.WikiId
}

func (e ErrRepeatedWikiId) Error() string {
	return fmt.Sprintf("sources: fti table repeats wiki id %s", e.WikiId)
}

// ReadFti loads path's YAML list of FtiEntry values and rejects duplicate
// Wikidata ids.
func ReadFti(path string, logger *logrus.Logger) ([]FtiEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil {
			logger.WithError(err).Warnf("sources: could not open %s, treating as empty", path)
		}
		return nil, nil
	}
	var entries []FtiEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	seen := make(map[ids.WikiId]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.WikiId]; ok {
			return nil, ErrRepeatedWikiId{WikiId: e.WikiId}
		}
		seen[e.WikiId] = struct{}{}
	}
	return entries, nil
}
