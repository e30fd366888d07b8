package wikidata

import "testing"

func TestPrefilterCollectsClassesAndManufacturers(t *testing.T) {
	collector := NewPrefilterCollector()
	product := withClass(withManufacturer(newItem("Q1"), 100), 22645)

	if err := collector.Consume(product); err != nil {
		t.Fatal(err)
	}

	result := collector.Result()
	if _, ok := result.Manufacturers[100]; !ok {
		t.Error("expected manufacturer 100 to be recorded")
	}
	if _, ok := result.Classes[22645]; !ok {
		t.Error("expected class 22645 to be recorded")
	}
}

func TestFilterKeepsProductsOrganisationsAndReferencedClasses(t *testing.T) {
	prefilter := newPrefilterResult()
	prefilter.Classes[22645] = struct{}{}
	prefilter.Manufacturers[100] = struct{}{}
	filter := NewFilterProcessor(prefilter)

	cases := []struct {
		name string
		item *Item
		want bool
	}{
		{"product with manufacturer", withManufacturer(newItem("Q5"), 999), true},
		{"referenced manufacturer", newItem("Q100"), true},
		{"referenced class", newItem("Q22645"), true},
		{"unrelated item", newItem("Q999999"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := make(chan *Item, 1)
			if err := filter.Process(c.item, out); err != nil {
				t.Fatal(err)
			}
			close(out)
			_, got := <-out
			if got != c.want {
				t.Errorf("got emitted=%v, want %v", got, c.want)
			}
		})
	}
}

func newItem(id string) *Item {
	return &Item{
		Id:     id,
		Labels: map[string]Label{},
		Claims: map[string][]Claim{},
	}
}

func withManufacturer(item *Item, manufacturerId uint64) *Item {
	item.Claims[PropertyManufacturer] = []Claim{entityClaim(PropertyManufacturer, manufacturerId)}
	return item
}

func withClass(item *Item, classId uint64) *Item {
	item.Claims[PropertyInstanceOf] = append(item.Claims[PropertyInstanceOf], entityClaim(PropertyInstanceOf, classId))
	return item
}

func entityClaim(property string, numericId uint64) Claim {
	dv := DataValue{Type: "wikibase-entityid"}
	dv.Value.EntityId = &EntityIdInfo{NumericId: numericId}
	return Claim{Mainsnak: Mainsnak{Property: property, Datavalue: dv}}
}
