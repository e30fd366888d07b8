package advisors

import (
	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
)

// TcoAdvisor resolves a producer's Wikidata id to a TCO Certified brand
// name, grounded on original_source/condensing/src/advisors.rs's
// TcoAdvisor.
type TcoAdvisor struct {
	byWikiId map[ids.WikiId]string
}

// NewTcoAdvisor loads path's curated TCO brand table.
func NewTcoAdvisor(path string, logger *logrus.Logger) (*TcoAdvisor, error) {
	entries, err := sources.ReadTco(path, logger)
	if err != nil {
		return nil, err
	}
	byWikiId := make(map[ids.WikiId]string, len(entries))
	for _, e := range entries {
		byWikiId[e.WikiId] = e.Brand
	}
	return &TcoAdvisor{byWikiId: byWikiId}, nil
}

// Cert returns a TcoCert for wikiId, if it is a certified brand.
func (a *TcoAdvisor) Cert(wikiId ids.WikiId) (*models.TcoCert, bool) {
	brand, ok := a.byWikiId[wikiId]
	if !ok {
		return nil, false
	}
	return &models.TcoCert{BrandName: brand}, true
}
