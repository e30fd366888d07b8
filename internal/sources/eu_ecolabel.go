package sources

import (
	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// EuEcolabelRecord is one row of the EU Ecolabel product/license catalogue,
// grounded on original_source/condensing/src/advisors.rs's EuEcolabelAdvisor
// (EuEcolabelCompany/EuEcolabelProduct): a VAT-identified company offering a
// named product or service, the name the matches advisor joins against
// (spec §4.2's "EU Ecolabel: VAT id ⇒ curated name match ⇒ Wikidata id").
type EuEcolabelRecord struct {
	VatId                ids.VatId
	ProductOrServiceName string
}

// ReadEuEcolabel streams path's rows into typed EuEcolabelRecords, skipping
// rows without a usable VAT id.
func ReadEuEcolabel(path string, logger *logrus.Logger) ([]EuEcolabelRecord, error) {
	var records []EuEcolabelRecord
	err := ForEachRow(path, logger, func(row Row) error {
		rawVat, ok := row.Get("vat_number")
		if !ok || rawVat == "" {
			return nil
		}
		vat, err := ids.ParseVatId(rawVat)
		if err != nil {
			if logger != nil {
				logger.WithError(err).Debug("sources: eu_ecolabel row has unusable vat id")
			}
			return nil
		}
		name, _ := row.Get("product_or_service_name")
		records = append(records, EuEcolabelRecord{VatId: vat, ProductOrServiceName: name})
		return nil
	})
	return records, err
}
