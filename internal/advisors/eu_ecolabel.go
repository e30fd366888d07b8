package advisors

import (
	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// EuEcolabelMatch is a VAT id resolved, via the shared name-match advisor,
// to a Wikidata id; the condenser uses it to fold an Ecolabel-certified
// product back into the producer the Wikidata cataloger already emitted.
type EuEcolabelMatch struct {
	WikiId ids.WikiId
}

// EuEcolabelAdvisor resolves a VAT id to its Wikidata match, grounded on
// original_source/condensing/src/advisors.rs's EuEcolabelAdvisor, which
// joins the EU catalogue's product_or_service_name against the curated
// name-match table at load time rather than per lookup.
type EuEcolabelAdvisor struct {
	byVat map[ids.VatId]EuEcolabelMatch
}

// NewEuEcolabelAdvisor loads path's EU Ecolabel catalogue and resolves each
// row's name through matches.
func NewEuEcolabelAdvisor(path string, matches *NameMatchAdvisor, logger *logrus.Logger) (*EuEcolabelAdvisor, error) {
	records, err := sources.ReadEuEcolabel(path, logger)
	if err != nil {
		return nil, err
	}

	byVat := make(map[ids.VatId]EuEcolabelMatch, len(records))
	for _, r := range records {
		wikiId, ok := matches.Resolve(r.ProductOrServiceName)
		if !ok {
			continue
		}
		byVat[r.VatId] = EuEcolabelMatch{WikiId: wikiId}
	}
	return &EuEcolabelAdvisor{byVat: byVat}, nil
}

// Match looks up the Wikidata id resolved for a VAT id.
func (a *EuEcolabelAdvisor) Match(vat ids.VatId) (EuEcolabelMatch, bool) {
	m, ok := a.byVat[vat]
	return m, ok
}
