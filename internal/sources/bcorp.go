package sources

import (
	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// BCorpRecord is one row of the B-Corp company registry CSV, grounded on
// original_source/condensing/src/advisors.rs's BCorpAdvisor::load, which
// reads a "company_name"/"website" pair per row.
type BCorpRecord struct {
	CompanyName string
	Domain      ids.Domain
}

// ReadBCorp streams path's rows into typed BCorpRecords, skipping rows with
// no usable domain. A missing file yields zero records (ForEachRow's
// degrade-to-empty rule).
func ReadBCorp(path string, logger *logrus.Logger) ([]BCorpRecord, error) {
	var records []BCorpRecord
	err := ForEachRow(path, logger, func(row Row) error {
		name, _ := row.Get("company_name")
		website, ok := row.Get("website")
		if !ok || website == "" {
			return nil
		}
		domain, err := ids.ParseDomain(website)
		if err != nil {
			if logger != nil {
				logger.WithError(err).Debugf("sources: bcorp row %q has unusable website", name)
			}
			return nil
		}
		records = append(records, BCorpRecord{CompanyName: name, Domain: domain})
		return nil
	})
	return records, err
}
