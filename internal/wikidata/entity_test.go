package wikidata

import "testing"

const sampleItemJSON = `{
  "type": "item",
  "id": "Q42",
  "labels": {"en": {"language": "en", "value": "Acme Widget"}},
  "descriptions": {},
  "claims": {
    "P176": [{"mainsnak": {"property": "P176", "snaktype": "value", "datavalue": {"type": "wikibase-entityid", "value": {"entity-type": "item", "id": "Q7", "numeric-id": 7}}}}],
    "P31": [{"mainsnak": {"property": "P31", "snaktype": "value", "datavalue": {"type": "wikibase-entityid", "value": {"entity-type": "item", "id": "Q22645", "numeric-id": 22645}}}}],
    "P856": [{"mainsnak": {"property": "P856", "snaktype": "value", "datavalue": {"type": "string", "value": "https://acme.example/widget"}}}]
  }
}`

func decodeSample(t *testing.T) *Item {
	t.Helper()
	var e Entity
	if err := json.Unmarshal([]byte(sampleItemJSON), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Item == nil {
		t.Fatal("expected an item, got nil")
	}
	return e.Item
}

func TestDecodeItemBasics(t *testing.T) {
	item := decodeSample(t)
	if item.Id != "Q42" {
		t.Errorf("got id %q, want Q42", item.Id)
	}
	if label, ok := item.GetLabel("en"); !ok || label != "Acme Widget" {
		t.Errorf("got label %q, ok=%v", label, ok)
	}
}

func TestDecodeItemManufacturerClaim(t *testing.T) {
	item := decodeSample(t)
	if !item.HasManufacturer() {
		t.Fatal("expected item to have a manufacturer claim")
	}
	ids := item.GetManufacturerIds()
	if len(ids) != 1 || ids[0] != 7 {
		t.Errorf("got manufacturer ids %v, want [7]", ids)
	}
}

func TestDecodeItemClassesAndWebsite(t *testing.T) {
	item := decodeSample(t)
	classes := item.GetClasses()
	if len(classes) != 1 || classes[0] != 22645 {
		t.Errorf("got classes %v, want [22645]", classes)
	}
	sites := item.GetOfficialWebsites()
	if len(sites) != 1 || sites[0] != "https://acme.example/widget" {
		t.Errorf("got websites %v", sites)
	}
}

func TestDecodeNonItemEntityIsIgnored(t *testing.T) {
	var e Entity
	if err := json.Unmarshal([]byte(`{"type": "property", "id": "P31"}`), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !e.Ignored || e.Item != nil {
		t.Error("expected a property entity to be marked ignored with no Item")
	}
}
