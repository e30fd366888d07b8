package condensing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/transpaer/transpaer-knowledge/internal/advisors"
	"github.com/transpaer/transpaer-knowledge/internal/report"
	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/internal/wikidata"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

func decodeItem(t *testing.T, raw string) *wikidata.Item {
	t.Helper()
	var e wikidata.Entity
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	if e.Item == nil {
		t.Fatal("expected an item")
	}
	return e.Item
}

func TestWikidataCatalogerEmitsProducerForOrganisation(t *testing.T) {
	item := decodeItem(t, `{
		"type": "item", "id": "Q5",
		"labels": {"en": {"language": "en", "value": "Acme Corp"}},
		"descriptions": {},
		"claims": {
			"P3608": [{"mainsnak": {"property": "P3608", "snaktype": "value", "datavalue": {"type": "string", "value": "BE0123456789"}}}]
		}
	}`)

	r := report.New()
	c := NewWikidataCataloger(r)
	out := make(chan substrate.Record, 1)
	if err := c.Process(item, out); err != nil {
		t.Fatalf("process: %v", err)
	}
	rec := <-out

	if rec.Producer == nil || rec.Product != nil {
		t.Fatalf("expected a producer-only record, got %+v", rec)
	}
	if _, ok := rec.Producer.Ids.Wiki[ids.WikiId(5)]; !ok {
		t.Error("expected wiki id 5 on producer")
	}
	if _, ok := rec.Producer.Ids.Vat[ids.VatId("BE0123456789")]; !ok {
		t.Error("expected vat id carried through")
	}
}

func TestWikidataCatalogerEmitsProductWithRefs(t *testing.T) {
	item := decodeItem(t, `{
		"type": "item", "id": "Q100",
		"labels": {"en": {"language": "en", "value": "Widget"}},
		"descriptions": {},
		"claims": {
			"P176": [{"mainsnak": {"property": "P176", "snaktype": "value", "datavalue": {"type": "wikibase-entityid", "value": {"entity-type": "item", "id": "Q5", "numeric-id": 5}}}}]
		}
	}`)

	r := report.New()
	c := NewWikidataCataloger(r)
	out := make(chan substrate.Record, 1)
	if err := c.Process(item, out); err != nil {
		t.Fatalf("process: %v", err)
	}
	rec := <-out

	if rec.Product == nil || rec.Producer != nil {
		t.Fatalf("expected a product-only record, got %+v", rec)
	}
	if len(rec.Refs.ManufacturerWiki) != 1 || rec.Refs.ManufacturerWiki[0] != ids.WikiId(5) {
		t.Errorf("expected manufacturer ref [5], got %v", rec.Refs.ManufacturerWiki)
	}
}

func TestWikidataCatalogerReportsInvalidId(t *testing.T) {
	item := decodeItem(t, `{"type": "item", "id": "not-a-qid", "labels": {}, "descriptions": {}, "claims": {}}`)

	r := report.New()
	c := NewWikidataCataloger(r)
	out := make(chan substrate.Record, 1)
	if err := c.Process(item, out); err != nil {
		t.Fatalf("process: %v", err)
	}
	select {
	case rec := <-out:
		t.Fatalf("expected no record emitted, got %+v", rec)
	default:
	}
	if r.Count(ids.DataSetWikidata, report.KindInvalidId) != 1 {
		t.Error("expected one invalid-id warning recorded")
	}
}

func TestOpenFoodFactsCatalogerResolvesManufacturer(t *testing.T) {
	matchesPath := writeYaml(t, `
- name: Acme
  wiki_id: 5
`)
	matches, err := advisors.NewNameMatchAdvisor(matchesPath, nil)
	if err != nil {
		t.Fatalf("build matches advisor: %v", err)
	}
	regions := advisors.NewOpenFoodFactsAdvisor()
	r := report.New()
	c := NewOpenFoodFactsCataloger(regions, matches, r)

	row := sources.OpenFoodFactsRecord{
		Gtin:        "04003994155486",
		CountryTags: []string{"en:france"},
		Brands:      []string{"Acme"},
	}
	out := make(chan substrate.Record, 1)
	if err := c.Process(row, out); err != nil {
		t.Fatalf("process: %v", err)
	}
	rec := <-out

	if rec.Product == nil {
		t.Fatal("expected a product record")
	}
	if len(rec.Refs.ManufacturerWiki) != 1 || rec.Refs.ManufacturerWiki[0] != ids.WikiId(5) {
		t.Errorf("expected resolved manufacturer ref, got %v", rec.Refs.ManufacturerWiki)
	}
}

func TestOpenFoodFactsCatalogerRejectsBadGtin(t *testing.T) {
	regions := advisors.NewOpenFoodFactsAdvisor()
	matches := emptyMatchesAdvisor(t)
	r := report.New()
	c := NewOpenFoodFactsCataloger(regions, matches, r)

	out := make(chan substrate.Record, 1)
	if err := c.Process(sources.OpenFoodFactsRecord{Gtin: "x"}, out); err != nil {
		t.Fatalf("process: %v", err)
	}
	select {
	case rec := <-out:
		t.Fatalf("expected no record, got %+v", rec)
	default:
	}
	if r.Count(ids.DataSetOpenFoodFacts, report.KindInvalidId) != 1 {
		t.Error("expected one invalid-id warning")
	}
}

func TestBCorpReviewerAssertsCertification(t *testing.T) {
	rev := NewBCorpReviewer()
	out := make(chan substrate.Record, 1)
	row := sources.BCorpRecord{CompanyName: "Acme Corp", Domain: ids.Domain("acme.example")}
	if err := rev.Process(row, out); err != nil {
		t.Fatalf("process: %v", err)
	}
	rec := <-out
	if rec.Producer == nil || rec.Producer.Certifications.BCorp == nil {
		t.Fatal("expected a producer asserting a bcorp certification")
	}
}

func TestEuEcolabelReviewerDropsUnresolvedName(t *testing.T) {
	matches := emptyMatchesAdvisor(t)
	r := report.New()
	rev := NewEuEcolabelReviewer(matches, r)
	out := make(chan substrate.Record, 1)
	row := sources.EuEcolabelRecord{VatId: ids.VatId("BE0123456789"), ProductOrServiceName: "Unknown Co"}
	if err := rev.Process(row, out); err != nil {
		t.Fatalf("process: %v", err)
	}
	select {
	case rec := <-out:
		t.Fatalf("expected no record, got %+v", rec)
	default:
	}
	if r.Count(ids.DataSetEuEcolabel, report.KindInvalidId) != 1 {
		t.Error("expected one invalid-id warning")
	}
}

func TestStashSortsByExternalIdAndWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")
	s := NewStash(path)

	_ = s.Consume(substrate.Record{ExternalId: ids.NewExternalId(ids.DataSetBCorp, "b")})
	_ = s.Consume(substrate.Record{ExternalId: ids.NewExternalId(ids.DataSetBCorp, "a")})
	if s.Len() != 2 {
		t.Fatalf("got len %d, want 2", s.Len())
	}
	if err := s.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}

	var recs []substrate.Record
	if err := substrate.ForEach(path, func(r substrate.Record) error {
		recs = append(recs, r)
		return nil
	}); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 2 || recs[0].ExternalId.Inner != "a" || recs[1].ExternalId.Inner != "b" {
		t.Fatalf("expected sorted [a, b], got %+v", recs)
	}
}

func writeYaml(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func emptyMatchesAdvisor(t *testing.T) *advisors.NameMatchAdvisor {
	t.Helper()
	m, err := advisors.NewNameMatchAdvisor(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("build empty matches advisor: %v", err)
	}
	return m
}
