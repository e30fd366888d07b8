package sources

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// OpenFoodFactsRecord is one row of the Open Food Facts product export,
// grounded on original_source/condensing/src/advisors.rs's
// OpenFoodFactsAdvisor (country_tag ⇒ Regions) and the wider product export
// schema: a GTIN-keyed row carrying a manufacturing-country tag list and,
// where present, a labels/brand field the cataloger uses to link back to a
// Wikidata manufacturer.
type OpenFoodFactsRecord struct {
	Gtin         string
	CountryTags  []string
	Brands       []string
	Labels       []string
	ManufacturerPlaces []string
}

// ReadOpenFoodFacts streams path's TSV export (Open Food Facts ships
// tab-separated, not comma-separated, dumps) into typed records.
func ReadOpenFoodFacts(path string, logger *logrus.Logger) ([]OpenFoodFactsRecord, error) {
	var records []OpenFoodFactsRecord
	err := ForEachTsvRow(path, logger, func(row Row) error {
		code, ok := row.Get("code")
		if !ok || code == "" {
			return nil
		}
		countries, _ := row.Get("countries_tags")
		brands, _ := row.Get("brands_tags")
		labels, _ := row.Get("labels_tags")
		places, _ := row.Get("manufacturing_places_tags")
		records = append(records, OpenFoodFactsRecord{
			Gtin:               code,
			CountryTags:        splitTags(countries),
			Brands:             splitTags(brands),
			Labels:             splitTags(labels),
			ManufacturerPlaces: splitTags(places),
		})
		return nil
	})
	return records, err
}

func splitTags(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
