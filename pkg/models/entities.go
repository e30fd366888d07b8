package models

import (
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProducerIdSet holds every individual ID known for one producer.
type ProducerIdSet struct {
	Wiki    map[ids.WikiId]struct{} `json:"-"`
	Vat     map[ids.VatId]struct{}  `json:"-"`
	Domains map[ids.Domain]struct{} `json:"-"`
}

func NewProducerIdSet() ProducerIdSet {
	return ProducerIdSet{
		Wiki:    map[ids.WikiId]struct{}{},
		Vat:     map[ids.VatId]struct{}{},
		Domains: map[ids.Domain]struct{}{},
	}
}

// Merge unions two producer ID sets.
func (s ProducerIdSet) Merge(other ProducerIdSet) ProducerIdSet {
	result := NewProducerIdSet()
	for w := range s.Wiki {
		result.Wiki[w] = struct{}{}
	}
	for w := range other.Wiki {
		result.Wiki[w] = struct{}{}
	}
	for v := range s.Vat {
		result.Vat[v] = struct{}{}
	}
	for v := range other.Vat {
		result.Vat[v] = struct{}{}
	}
	for d := range s.Domains {
		result.Domains[d] = struct{}{}
	}
	for d := range other.Domains {
		result.Domains[d] = struct{}{}
	}
	return result
}

// sortedWiki returns s sorted by numeric value, for deterministic wire output.
func sortedWiki(s map[ids.WikiId]struct{}) []ids.WikiId {
	out := make([]ids.WikiId, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedVat(s map[ids.VatId]struct{}) []ids.VatId {
	out := make([]ids.VatId, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedDomains(s map[ids.Domain]struct{}) []ids.Domain {
	out := make([]ids.Domain, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedGtin(s map[ids.Gtin]struct{}) []ids.Gtin {
	out := make([]ids.Gtin, 0, len(s))
	for g := range s {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ProductIdSet holds every individual ID known for one product.
type ProductIdSet struct {
	Wiki map[ids.WikiId]struct{} `json:"-"`
	Gtin map[ids.Gtin]struct{}   `json:"-"`
	Ean  map[ids.Ean]struct{}    `json:"-"`
}

func NewProductIdSet() ProductIdSet {
	return ProductIdSet{
		Wiki: map[ids.WikiId]struct{}{},
		Gtin: map[ids.Gtin]struct{}{},
		Ean:  map[ids.Ean]struct{}{},
	}
}

func (s ProductIdSet) Merge(other ProductIdSet) ProductIdSet {
	result := NewProductIdSet()
	for w := range s.Wiki {
		result.Wiki[w] = struct{}{}
	}
	for w := range other.Wiki {
		result.Wiki[w] = struct{}{}
	}
	for g := range s.Gtin {
		result.Gtin[g] = struct{}{}
	}
	for g := range other.Gtin {
		result.Gtin[g] = struct{}{}
	}
	for e := range s.Ean {
		result.Ean[e] = struct{}{}
	}
	for e := range other.Ean {
		result.Ean[e] = struct{}{}
	}
	return result
}

// Producer is an organisation: a manufacturer, brand owner, or retailer.
type Producer struct {
	Id             ids.UniqueId     `json:"id"`
	Ids            ProducerIdSet    `json:"-"`
	Names          TextSet          `json:"names"`
	Descriptions   TextSet          `json:"descriptions"`
	Logos          ImageSet         `json:"logos"`
	Websites       map[string]struct{} `json:"-"`
	Certifications Certifications   `json:"certifications"`
}

func NewProducer(id ids.UniqueId) Producer {
	return Producer{
		Id:       id,
		Ids:      NewProducerIdSet(),
		Websites: map[string]struct{}{},
	}
}

// Merge combines two partial Producer records believed to describe the same
// canonical entity (commutative/associative per spec §4.3/§8).
func (p Producer) Merge(other Producer) Producer {
	result := p
	result.Ids = p.Ids.Merge(other.Ids)
	result.Names = p.Names.Merge(other.Names)
	result.Descriptions = p.Descriptions.Merge(other.Descriptions)
	result.Logos = p.Logos.Merge(other.Logos)
	result.Certifications = p.Certifications.Merge(other.Certifications)
	websites := map[string]struct{}{}
	for w := range p.Websites {
		websites[w] = struct{}{}
	}
	for w := range other.Websites {
		websites[w] = struct{}{}
	}
	result.Websites = websites
	return result
}

// SortedWebsites returns the websites set as a sorted slice, for
// deterministic emission.
func (p Producer) SortedWebsites() []string {
	out := make([]string, 0, len(p.Websites))
	for w := range p.Websites {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// producerWire is the on-disk shape of a Producer. Ids and Websites carry
// real json keys here even though Ids is excluded (json:"-") from the
// in-memory struct's default field tags: that tag exists to keep individual
// IDs out of the crystalizer's vertex-payload projection (they already get
// their own wiki/vat/domain vertex collections, so toPayload strips
// "ids_wiki"/"ids_vat"/"ids_domains" back out after marshaling), not to keep
// them out of the substrate round-trip that coagulate/crystalize depend on
// across process boundaries. Websites has no dedicated collection, so it is
// not stripped and reaches the organisation vertex payload directly.
type producerWire struct {
	Id             ids.UniqueId   `json:"id"`
	IdsWiki        []ids.WikiId   `json:"ids_wiki,omitempty"`
	IdsVat         []ids.VatId    `json:"ids_vat,omitempty"`
	IdsDomains     []ids.Domain   `json:"ids_domains,omitempty"`
	Names          TextSet        `json:"names"`
	Descriptions   TextSet        `json:"descriptions"`
	Logos          ImageSet       `json:"logos"`
	Websites       []string       `json:"websites,omitempty"`
	Certifications Certifications `json:"certifications"`
}

// MarshalJSON writes the full on-disk form, including individual IDs and
// websites, so a substrate round-trip through pkg/substrate preserves them.
func (p Producer) MarshalJSON() ([]byte, error) {
	return json.Marshal(producerWire{
		Id:             p.Id,
		IdsWiki:        sortedWiki(p.Ids.Wiki),
		IdsVat:         sortedVat(p.Ids.Vat),
		IdsDomains:     sortedDomains(p.Ids.Domains),
		Names:          p.Names,
		Descriptions:   p.Descriptions,
		Logos:          p.Logos,
		Websites:       p.SortedWebsites(),
		Certifications: p.Certifications,
	})
}

// UnmarshalJSON restores a Producer from its on-disk form.
func (p *Producer) UnmarshalJSON(data []byte) error {
	var w producerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = NewProducer(w.Id)
	for _, id := range w.IdsWiki {
		p.Ids.Wiki[id] = struct{}{}
	}
	for _, id := range w.IdsVat {
		p.Ids.Vat[id] = struct{}{}
	}
	for _, id := range w.IdsDomains {
		p.Ids.Domains[id] = struct{}{}
	}
	p.Names = w.Names
	p.Descriptions = w.Descriptions
	p.Logos = w.Logos
	for _, site := range w.Websites {
		p.Websites[site] = struct{}{}
	}
	p.Certifications = w.Certifications
	return nil
}

// Product is a consumer product manufactured or sold by one or more producers.
type Product struct {
	Id             ids.UniqueId       `json:"id"`
	Ids            ProductIdSet       `json:"-"`
	Names          TextSet            `json:"names"`
	Descriptions   TextSet            `json:"descriptions"`
	Images         ImageSet           `json:"images"`
	Categories     map[string]struct{} `json:"-"`
	Regions        Regions            `json:"regions"`
	Manufacturers  map[ids.UniqueId]struct{} `json:"-"`
	Follows        map[ids.UniqueId]struct{} `json:"-"`
	FollowedBy     map[ids.UniqueId]struct{} `json:"-"`
	Certifications Certifications     `json:"certifications"`
	// WarrantyMonths is the manufacturer warranty length, when a source
	// reports one; feeds the WarrantyLength score branch (spec §4.5).
	WarrantyMonths *int               `json:"warranty_months,omitempty"`
	Score          *SustainityScore   `json:"score,omitempty"`
}

func NewProduct(id ids.UniqueId) Product {
	return Product{
		Id:            id,
		Ids:           NewProductIdSet(),
		Categories:    map[string]struct{}{},
		Regions:       Unknown(),
		Manufacturers: map[ids.UniqueId]struct{}{},
		Follows:       map[ids.UniqueId]struct{}{},
		FollowedBy:    map[ids.UniqueId]struct{}{},
	}
}

// Merge combines two partial Product records believed to describe the same
// canonical entity.
func (p Product) Merge(other Product) Product {
	result := p
	result.Ids = p.Ids.Merge(other.Ids)
	result.Names = p.Names.Merge(other.Names)
	result.Descriptions = p.Descriptions.Merge(other.Descriptions)
	result.Images = p.Images.Merge(other.Images)
	result.Regions = p.Regions.Merge(other.Regions)
	result.Certifications = p.Certifications.Merge(other.Certifications)

	categories := map[string]struct{}{}
	for c := range p.Categories {
		categories[c] = struct{}{}
	}
	for c := range other.Categories {
		categories[c] = struct{}{}
	}
	result.Categories = categories

	result.Manufacturers = mergeIdSet(p.Manufacturers, other.Manufacturers)
	result.Follows = mergeIdSet(p.Follows, other.Follows)
	result.FollowedBy = mergeIdSet(p.FollowedBy, other.FollowedBy)

	if other.WarrantyMonths != nil {
		result.WarrantyMonths = other.WarrantyMonths
	}
	return result
}

func mergeIdSet(a, b map[ids.UniqueId]struct{}) map[ids.UniqueId]struct{} {
	result := map[ids.UniqueId]struct{}{}
	for id := range a {
		result[id] = struct{}{}
	}
	for id := range b {
		result[id] = struct{}{}
	}
	return result
}

// SortedCategories returns the category paths sorted for deterministic
// emission.
func (p Product) SortedCategories() []string {
	out := make([]string, 0, len(p.Categories))
	for c := range p.Categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// productWire is the on-disk shape of a Product. Ids and Categories carry
// real json keys here for the same reason producerWire's do: the in-memory
// struct's json:"-" tags serve the vertex-payload projection, not the
// substrate round-trip. Manufacturers/Follows/FollowedBy are deliberately
// left off the wire form: they are resolved from a record's raw Refs during
// a single crystalize run and never read back from a previously-written
// substrate file.
type productWire struct {
	Id             ids.UniqueId     `json:"id"`
	IdsWiki        []ids.WikiId     `json:"ids_wiki,omitempty"`
	IdsGtin        []ids.Gtin       `json:"ids_gtin,omitempty"`
	IdsEan         []ids.Ean        `json:"ids_ean,omitempty"`
	Names          TextSet          `json:"names"`
	Descriptions   TextSet          `json:"descriptions"`
	Images         ImageSet         `json:"images"`
	Categories     []string         `json:"categories,omitempty"`
	Regions        Regions          `json:"regions"`
	Certifications Certifications   `json:"certifications"`
	WarrantyMonths *int             `json:"warranty_months,omitempty"`
	Score          *SustainityScore `json:"score,omitempty"`
}

// MarshalJSON writes the full on-disk form, including individual IDs and
// categories, so a substrate round-trip through pkg/substrate preserves
// them.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productWire{
		Id:             p.Id,
		IdsWiki:        sortedWiki(p.Ids.Wiki),
		IdsGtin:        sortedGtin(p.Ids.Gtin),
		IdsEan:         sortedGtin(p.Ids.Ean),
		Names:          p.Names,
		Descriptions:   p.Descriptions,
		Images:         p.Images,
		Categories:     p.SortedCategories(),
		Regions:        p.Regions,
		Certifications: p.Certifications,
		WarrantyMonths: p.WarrantyMonths,
		Score:          p.Score,
	})
}

// UnmarshalJSON restores a Product from its on-disk form.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w productWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = NewProduct(w.Id)
	for _, id := range w.IdsWiki {
		p.Ids.Wiki[id] = struct{}{}
	}
	for _, id := range w.IdsGtin {
		p.Ids.Gtin[id] = struct{}{}
	}
	for _, id := range w.IdsEan {
		p.Ids.Ean[id] = struct{}{}
	}
	p.Names = w.Names
	p.Descriptions = w.Descriptions
	p.Images = w.Images
	for _, c := range w.Categories {
		p.Categories[c] = struct{}{}
	}
	p.Regions = w.Regions
	p.Certifications = w.Certifications
	p.WarrantyMonths = w.WarrantyMonths
	p.Score = w.Score
	return nil
}
