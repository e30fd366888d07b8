package models

import (
	"reflect"
	"testing"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

func TestRegionsMergeLaws(t *testing.T) {
	us := NewRegionsList([]string{"US"})
	de := NewRegionsList([]string{"DE"})
	fr := NewRegionsList([]string{"FR"})

	if got := us.Merge(World()); got.Kind != kindName(RegionsWorld) {
		t.Errorf("World should absorb: got %+v", got)
	}
	if got := World().Merge(us); got.Kind != kindName(RegionsWorld) {
		t.Errorf("World should absorb (other direction): got %+v", got)
	}
	if got := us.Merge(Unknown()); !reflect.DeepEqual(got, us) {
		t.Errorf("Unknown should be identity: got %+v, want %+v", got, us)
	}
	if got := Unknown().Merge(us); !reflect.DeepEqual(got, us) {
		t.Errorf("Unknown should be identity (other direction): got %+v, want %+v", got, us)
	}

	usde := NewRegionsList([]string{"US", "DE"})
	dfr := NewRegionsList([]string{"DE", "FR"})
	got := usde.Merge(dfr)
	want := NewRegionsList([]string{"DE", "FR", "US"})
	if !reflect.DeepEqual(got, want) {
		t.Errorf("list merge = %+v, want %+v", got, want)
	}

	// Idempotent.
	if got2 := got.Merge(got); !reflect.DeepEqual(got2, got) {
		t.Errorf("list merge not idempotent: %+v vs %+v", got2, got)
	}
	// Commutative.
	if got3 := dfr.Merge(usde); !reflect.DeepEqual(got3, want) {
		t.Errorf("list merge not commutative: %+v vs %+v", got3, want)
	}
	_ = fr
}

func TestCertificationsMergeOrderIndependence(t *testing.T) {
	a := Certifications{BCorp: &BCorpCert{Id: "b1"}, EuEcolabel: &EuEcolabelCert{}}
	b := Certifications{Tco: &TcoCert{BrandName: "t1"}}

	ab := a.Merge(b)
	ba := b.Merge(a)

	if ab.NumCerts() != 3 {
		t.Errorf("a.Merge(b) should have 3 certs, got %d", ab.NumCerts())
	}
	if ba.NumCerts() != 3 {
		t.Errorf("b.Merge(a) should have 3 certs, got %d", ba.NumCerts())
	}
	if !reflect.DeepEqual(ab, ba) {
		t.Errorf("merge should be order-independent for disjoint fields: %+v vs %+v", ab, ba)
	}
}

func TestCertificationsMergeIdempotent(t *testing.T) {
	a := Certifications{Fti: &FtiCert{Score: 80}}
	merged := a.Merge(a)
	if !reflect.DeepEqual(a, merged) {
		t.Errorf("merge should be idempotent: %+v vs %+v", a, merged)
	}
}

func TestCertificationsNeverInheritsEuEcolabel(t *testing.T) {
	producer := Certifications{EuEcolabel: &EuEcolabelCert{}, BCorp: &BCorpCert{Id: "b1"}}
	product := Certifications{}
	result := product.InheritFromProducer(producer)
	if result.EuEcolabel != nil {
		t.Error("EuEcolabel must never be inherited from producer to product")
	}
	if result.BCorp == nil {
		t.Error("BCorp should be inherited")
	}
}

func TestProducerJSONRoundTripPreservesIdsAndWebsites(t *testing.T) {
	p := NewProducer(0)
	p.Ids.Wiki[ids.WikiId(100)] = struct{}{}
	p.Ids.Vat["DE123456789"] = struct{}{}
	p.Ids.Domains["acme.example"] = struct{}{}
	p.Websites["https://acme.example"] = struct{}{}
	p.Names = p.Names.Add(Text{Text: "Acme", Source: SourceWikidata})

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Producer
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := got.Ids.Wiki[ids.WikiId(100)]; !ok {
		t.Errorf("wiki id lost in round-trip: %+v", got.Ids)
	}
	if _, ok := got.Ids.Vat["DE123456789"]; !ok {
		t.Errorf("vat id lost in round-trip: %+v", got.Ids)
	}
	if _, ok := got.Ids.Domains["acme.example"]; !ok {
		t.Errorf("domain lost in round-trip: %+v", got.Ids)
	}
	if _, ok := got.Websites["https://acme.example"]; !ok {
		t.Errorf("website lost in round-trip: %+v", got.Websites)
	}
	if !reflect.DeepEqual(got.Names, p.Names) {
		t.Errorf("names = %+v, want %+v", got.Names, p.Names)
	}
}

func TestProductJSONRoundTripPreservesIdsAndCategories(t *testing.T) {
	p := NewProduct(0)
	p.Ids.Wiki[ids.WikiId(200)] = struct{}{}
	p.Ids.Gtin[ids.Gtin(1234567890123)] = struct{}{}
	p.Categories["electronics/smartphone"] = struct{}{}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Product
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := got.Ids.Wiki[ids.WikiId(200)]; !ok {
		t.Errorf("wiki id lost in round-trip: %+v", got.Ids)
	}
	if _, ok := got.Ids.Gtin[ids.Gtin(1234567890123)]; !ok {
		t.Errorf("gtin lost in round-trip: %+v", got.Ids)
	}
	if _, ok := got.Categories["electronics/smartphone"]; !ok {
		t.Errorf("category lost in round-trip: %+v", got.Categories)
	}
}

func TestTextSetDualSourceKept(t *testing.T) {
	var s TextSet
	s = s.Add(Text{Text: "Acme", Source: SourceWikidata})
	s = s.Add(Text{Text: "Acme", Source: SourceOpenFoodFacts})
	s = s.Add(Text{Text: "Acme", Source: SourceWikidata})
	if len(s) != 2 {
		t.Errorf("expected 2 distinct (text, source) entries, got %d: %+v", len(s), s)
	}
}
