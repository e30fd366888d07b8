package condensing

import (
	"strconv"

	"github.com/transpaer/transpaer-knowledge/internal/report"
	"github.com/transpaer/transpaer-knowledge/internal/wikidata"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

// WikidataCataloger turns one filtered Wikidata item into a substrate
// record: an organisation item becomes a Producer, everything else that
// survived the filter (spec §4.6/C6) becomes a Product. Grounded on
// original_source/lab/src/wikidata.rs's ItemExt-driven record construction.
type WikidataCataloger struct {
	report *report.Report
}

// NewWikidataCataloger returns a cataloger recording malformed-id warnings
// to r.
func NewWikidataCataloger(r *report.Report) *WikidataCataloger {
	return &WikidataCataloger{report: r}
}

// Process implements flow.Processor[*wikidata.Item, substrate.Record].
func (c *WikidataCataloger) Process(item *wikidata.Item, out chan<- substrate.Record) error {
	wikiId, err := ids.ParseWikiId(item.Id)
	if err != nil {
		c.report.Add(ids.DataSetWikidata, report.KindInvalidId, "wikidata: "+item.Id)
		return nil
	}

	external := ids.NewExternalId(ids.DataSetWikidata, item.Id)
	rec := substrate.Record{ExternalId: external}

	if item.IsOrganisation() {
		rec.Producer = buildProducerFromItem(item, wikiId)
	} else {
		rec.Product = buildProductFromItem(item, wikiId)
		rec.Refs = substrate.Refs{
			ManufacturerWiki: parseWikiIds(item.GetManufacturerIds()),
			FollowsWiki:      parseWikiIds(item.GetFollows()),
			FollowedByWiki:   parseWikiIds(item.GetFollowedBy()),
		}
	}

	out <- rec
	return nil
}

// Finish is a no-op: the Wikidata cataloger emits exactly one record per
// processed item, nothing accumulates across the channel close.
func (c *WikidataCataloger) Finish(out chan<- substrate.Record) error { return nil }

func parseWikiIds(numeric []uint64) []ids.WikiId {
	out := make([]ids.WikiId, len(numeric))
	for i, n := range numeric {
		out[i] = ids.WikiId(n)
	}
	return out
}

func buildProducerFromItem(item *wikidata.Item, wikiId ids.WikiId) *models.Producer {
	p := models.NewProducer(0)
	p.Ids.Wiki[wikiId] = struct{}{}
	for _, vat := range item.GetEuVatNumbers() {
		if v, err := ids.ParseVatId(vat); err == nil {
			p.Ids.Vat[v] = struct{}{}
		}
	}
	for _, site := range item.GetOfficialWebsites() {
		p.Websites[site] = struct{}{}
		if d, err := ids.ParseDomain(site); err == nil {
			p.Ids.Domains[d] = struct{}{}
		}
	}
	for _, l := range item.GetAllLabels() {
		p.Names = p.Names.Add(models.Text{Text: l.Value, Source: models.SourceWikidata})
	}
	for _, l := range item.GetAllDescriptions() {
		p.Descriptions = p.Descriptions.Add(models.Text{Text: l.Value, Source: models.SourceWikidata})
	}
	for _, logo := range item.GetLogoImages() {
		p.Logos = p.Logos.Add(models.Image{Image: logo, Source: models.SourceWikidata})
	}
	return &p
}

func buildProductFromItem(item *wikidata.Item, wikiId ids.WikiId) *models.Product {
	p := models.NewProduct(0)
	p.Ids.Wiki[wikiId] = struct{}{}
	for _, gtin := range item.GetGtins() {
		if g, err := ids.ParseGtin(gtin); err == nil {
			p.Ids.Gtin[g] = struct{}{}
		}
	}
	for _, l := range item.GetAllLabels() {
		p.Names = p.Names.Add(models.Text{Text: l.Value, Source: models.SourceWikidata})
	}
	for _, l := range item.GetAllDescriptions() {
		p.Descriptions = p.Descriptions.Add(models.Text{Text: l.Value, Source: models.SourceWikidata})
	}
	for _, img := range item.GetImages() {
		p.Images = p.Images.Add(models.Image{Image: img, Source: models.SourceWikidata})
	}
	if category, ok := wikidata.ResolveCategory(item); ok {
		p.Categories[strconv.FormatUint(category, 10)] = struct{}{}
	}
	return &p
}
