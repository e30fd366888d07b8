package advisors

import (
	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
)

// FtiAdvisor resolves a producer's Wikidata id to a Fashion Transparency
// Index score, grounded on
// original_source/condensing/src/advisors.rs's FashionTransparencyIndexAdvisor.
type FtiAdvisor struct {
	byWikiId map[ids.WikiId]sources.FtiEntry
}

// NewFtiAdvisor loads path's curated FTI score table.
func NewFtiAdvisor(path string, logger *logrus.Logger) (*FtiAdvisor, error) {
	entries, err := sources.ReadFti(path, logger)
	if err != nil {
		return nil, err
	}
	byWikiId := make(map[ids.WikiId]sources.FtiEntry, len(entries))
	for _, e := range entries {
		byWikiId[e.WikiId] = e
	}
	return &FtiAdvisor{byWikiId: byWikiId}, nil
}

// Cert returns an FtiCert for wikiId, if it has a scored entry.
func (a *FtiAdvisor) Cert(wikiId ids.WikiId) (*models.FtiCert, bool) {
	entry, ok := a.byWikiId[wikiId]
	if !ok {
		return nil, false
	}
	return &models.FtiCert{Score: entry.Score}, true
}
