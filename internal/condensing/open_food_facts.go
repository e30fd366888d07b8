package condensing

import (
	"strconv"

	"github.com/transpaer/transpaer-knowledge/internal/advisors"
	"github.com/transpaer/transpaer-knowledge/internal/report"
	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

// OpenFoodFactsCataloger turns one Open Food Facts export row into a
// Product substrate record, resolving its regions through the
// OpenFoodFactsAdvisor and its manufacturer through the shared name-match
// advisor when a brand tag is present (spec §4.4's Open Food Facts region
// advisor).
type OpenFoodFactsCataloger struct {
	regions *advisors.OpenFoodFactsAdvisor
	matches *advisors.NameMatchAdvisor
	report  *report.Report
}

// NewOpenFoodFactsCataloger builds a cataloger against the given advisors.
func NewOpenFoodFactsCataloger(regions *advisors.OpenFoodFactsAdvisor, matches *advisors.NameMatchAdvisor, r *report.Report) *OpenFoodFactsCataloger {
	return &OpenFoodFactsCataloger{regions: regions, matches: matches, report: r}
}

// Process implements flow.Processor[sources.OpenFoodFactsRecord, substrate.Record].
func (c *OpenFoodFactsCataloger) Process(row sources.OpenFoodFactsRecord, out chan<- substrate.Record) error {
	gtin, err := ids.ParseGtin(row.Gtin)
	if err != nil {
		c.report.Add(ids.DataSetOpenFoodFacts, report.KindInvalidId, "open_food_facts: "+row.Gtin)
		return nil
	}

	p := models.NewProduct(0)
	p.Ids.Gtin[gtin] = struct{}{}
	p.Regions = c.regions.Regions(row.CountryTags)
	for _, brand := range row.Brands {
		p.Names = p.Names.Add(models.Text{Text: brand, Source: models.SourceOpenFoodFacts})
	}

	rec := substrate.Record{
		ExternalId: ids.NewExternalId(ids.DataSetOpenFoodFacts, strconv.FormatUint(uint64(gtin), 10)),
		Product:    &p,
	}

	if len(row.Brands) > 0 {
		if wikiId, ok := c.matches.Resolve(row.Brands[0]); ok {
			rec.Refs.ManufacturerWiki = []ids.WikiId{wikiId}
		}
	}

	out <- rec
	return nil
}

// Finish is a no-op: every OFF row maps to exactly one substrate record.
func (c *OpenFoodFactsCataloger) Finish(out chan<- substrate.Record) error { return nil }
