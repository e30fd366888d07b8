// Package wikidata implements the Wikidata dump reader (C2) and the
// prefilter/filter stage (C6): streaming one entity record per JSON dump
// line, then a two-pass class/manufacturer-aware filter that drops items
// unrelated to producers or products before the condenser ever sees them.
//
// The entity shape is grounded on original_source/wikidata/src/data.rs (a
// partial re-implementation of the public Wikidata JSON dump schema); the
// ItemExt-style accessor methods below follow
// original_source/lab/src/wikidata.rs's `ItemExt` trait, adapted to Go's
// method-on-struct idiom instead of a trait extension.
package wikidata

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Label is one language-tagged string: a short name, description, or alias.
type Label struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// EntityIdInfo names a claim's target entity by both its full ID ("Q123")
// and numeric ID (123).
type EntityIdInfo struct {
	Id        string `json:"id"`
	NumericId uint64 `json:"numeric-id"`
}

// DataValue is a claim's payload: either a string, or a reference to
// another Wikidata entity. Only the two shapes the filter and condenser
// actually consume are modeled; anything else decodes with an empty Go
// zero value and is treated as absent by the accessor methods.
type DataValue struct {
	Type  string
	Value struct {
		StringValue string
		EntityId    *EntityIdInfo
	}
}

// UnmarshalJSON decodes a DataValue's "value" field according to its
// sibling "type" tag: "string" values decode to a plain string;
// "wikibase-entityid" values decode to an EntityIdInfo.
func (d *DataValue) UnmarshalJSON(data []byte) error {
	type alias struct {
		Type  string              `json:"type"`
		Value jsoniter.RawMessage `json:"value"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("wikidata: decode datavalue: %w", err)
	}
	d.Type = a.Type
	switch a.Type {
	case "string", "monolingualtext":
		var s string
		if err := json.Unmarshal(a.Value, &s); err == nil {
			d.Value.StringValue = s
		}
	case "wikibase-entityid":
		var info struct {
			EntityType string `json:"entity-type"`
			Id         string `json:"id"`
			NumericId  uint64 `json:"numeric-id"`
		}
		if err := json.Unmarshal(a.Value, &info); err == nil && info.EntityType == "item" {
			d.Value.EntityId = &EntityIdInfo{Id: info.Id, NumericId: info.NumericId}
		}
	}
	return nil
}

// Mainsnak is the primary value of one claim.
type Mainsnak struct {
	Property  string    `json:"property"`
	Snaktype  string    `json:"snaktype"`
	Datavalue DataValue `json:"datavalue"`
}

// Claim is one statement attached to a property ID.
type Claim struct {
	Mainsnak Mainsnak `json:"mainsnak"`
}

// Item is a Wikidata "Q" entity: the only entity kind the filter and
// condenser inspect (properties carry no product/producer information).
type Item struct {
	Id          string              `json:"id"`
	Labels      map[string]Label    `json:"labels"`
	Descriptions map[string]Label   `json:"descriptions"`
	Claims      map[string][]Claim  `json:"claims"`
}

// Entity is one decoded dump line: either an Item ("Q"-prefixed) or some
// other entity kind the pipeline ignores.
type Entity struct {
	Item    *Item
	Ignored bool
}

// UnmarshalJSON decodes one dump line, keeping only "item" entities.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("wikidata: decode entity: %w", err)
	}
	if probe.Type != "item" {
		e.Ignored = true
		return nil
	}
	var item Item
	if err := json.Unmarshal(data, &item); err != nil {
		return fmt.Errorf("wikidata: decode item: %w", err)
	}
	e.Item = &item
	return nil
}

// HasProperty reports whether the item carries at least one claim for
// propertyId.
func (i *Item) HasProperty(propertyId string) bool {
	claims, ok := i.Claims[propertyId]
	return ok && len(claims) > 0
}

// GetStrings returns every string-valued claim for propertyId.
func (i *Item) GetStrings(propertyId string) []string {
	var out []string
	for _, c := range i.Claims[propertyId] {
		if c.Mainsnak.Datavalue.Type == "string" && c.Mainsnak.Datavalue.Value.StringValue != "" {
			out = append(out, c.Mainsnak.Datavalue.Value.StringValue)
		}
	}
	return out
}

// GetEntityIds returns the numeric IDs of every item-typed claim for
// propertyId.
func (i *Item) GetEntityIds(propertyId string) []uint64 {
	var out []uint64
	for _, c := range i.Claims[propertyId] {
		if id := c.Mainsnak.Datavalue.Value.EntityId; id != nil {
			out = append(out, id.NumericId)
		}
	}
	return out
}

// Relates reports whether the item carries a propertyId claim pointing at
// the given full entity ID (e.g. "Q123").
func (i *Item) Relates(propertyId, entityId string) bool {
	for _, c := range i.Claims[propertyId] {
		if id := c.Mainsnak.Datavalue.Value.EntityId; id != nil && id.Id == entityId {
			return true
		}
	}
	return false
}

// GetLabel returns the label in the given language, if present.
func (i *Item) GetLabel(language string) (string, bool) {
	label, ok := i.Labels[language]
	return label.Value, ok
}

// GetAllLabels returns every language-tagged label value on the item.
func (i *Item) GetAllLabels() []Label {
	out := make([]Label, 0, len(i.Labels))
	for _, l := range i.Labels {
		out = append(out, l)
	}
	return out
}

// GetAllDescriptions returns every language-tagged description value.
func (i *Item) GetAllDescriptions() []Label {
	out := make([]Label, 0, len(i.Descriptions))
	for _, l := range i.Descriptions {
		out = append(out, l)
	}
	return out
}

// HasManufacturer reports whether this item claims a manufacturer,
// the signal the prefilter uses to decide an item is a candidate product.
func (i *Item) HasManufacturer() bool { return i.HasProperty(PropertyManufacturer) }

// GetManufacturerIds returns the numeric QIDs of this item's manufacturers.
func (i *Item) GetManufacturerIds() []uint64 { return i.GetEntityIds(PropertyManufacturer) }

// GetClasses returns the numeric QIDs this item is a direct instance of.
func (i *Item) GetClasses() []uint64 { return i.GetEntityIds(PropertyInstanceOf) }

// GetSuperclasses returns the numeric QIDs this item is a subclass of.
func (i *Item) GetSuperclasses() []uint64 { return i.GetEntityIds(PropertySubclassOf) }

// IsInstanceOf reports whether this item is a direct instance of the given
// full class ID (e.g. "Q123").
func (i *Item) IsInstanceOf(classId string) bool { return i.Relates(PropertyInstanceOf, classId) }

// GetFollows/GetFollowedBy return the numeric QIDs of predecessor/successor
// products (spec §3: Product.Follows/FollowedBy).
func (i *Item) GetFollows() []uint64     { return i.GetEntityIds(PropertyFollows) }
func (i *Item) GetFollowedBy() []uint64  { return i.GetEntityIds(PropertyFollowedBy) }

// GetOfficialWebsites returns the item's official-website URLs.
func (i *Item) GetOfficialWebsites() []string { return i.GetStrings(PropertyOfficialWebsite) }

// GetImages/GetLogoImages return the item's image/logo-image filenames.
func (i *Item) GetImages() []string     { return i.GetStrings(PropertyImage) }
func (i *Item) GetLogoImages() []string { return i.GetStrings(PropertyLogoImage) }

// GetGtins returns the item's GTIN claims, in their raw (unnormalized)
// string form — callers parse them with pkg/ids.ParseGtin.
func (i *Item) GetGtins() []string { return i.GetStrings(PropertyGtin) }

// GetEuVatNumbers returns the item's EU VAT number claims.
func (i *Item) GetEuVatNumbers() []string { return i.GetStrings(PropertyEuVatNumber) }

// IsOrganisation reports whether this item should be treated as a producer
// candidate (spec §4.6/§4.7): it has a VAT number, or it has no
// manufacturer of its own and is an instance of a known organisation class.
func (i *Item) IsOrganisation() bool {
	if len(i.GetEuVatNumbers()) > 0 {
		return true
	}
	if i.HasManufacturer() {
		return false
	}
	for _, class := range i.GetClasses() {
		if organisationClasses[class] {
			return true
		}
	}
	return false
}
