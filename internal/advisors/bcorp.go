package advisors

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
)

// BCorpAdvisor resolves a producer's domain to a B-Corp certification,
// grounded on original_source/condensing/src/advisors.rs's BCorpAdvisor.
type BCorpAdvisor struct {
	byDomain map[ids.Domain]string
}

// NewBCorpAdvisor loads path's B-Corp company registry.
func NewBCorpAdvisor(path string, logger *logrus.Logger) (*BCorpAdvisor, error) {
	records, err := sources.ReadBCorp(path, logger)
	if err != nil {
		return nil, err
	}

	byDomain := make(map[ids.Domain]string, len(records))
	for _, r := range records {
		byDomain[r.Domain] = r.CompanyName
	}
	return &BCorpAdvisor{byDomain: byDomain}, nil
}

// CertFromDomains returns a BCorpCert if any of the given domains matches a
// registered B-Corp company.
func (a *BCorpAdvisor) CertFromDomains(domains []ids.Domain) (*models.BCorpCert, bool) {
	for _, d := range domains {
		if name, ok := a.byDomain[d]; ok {
			return &models.BCorpCert{Id: GuessLinkId(name)}, true
		}
	}
	return nil, false
}

// GuessLinkId derives the bcorporation.net directory slug from a company
// name: lowercase, strip periods, replace runs of whitespace with a single
// dash (grounded on advisors.rs's guess_link_id_from_company_name).
func GuessLinkId(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, ".", "")
	fields := strings.Fields(name)
	return strings.Join(fields, "-")
}
