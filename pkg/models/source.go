// Package models implements the core entity shapes of the knowledge graph:
// producers, products, certifications, and the sustainity score tree, along
// with the provenance-tagged text/image values and the merge rules that
// combine partial records coming from different substrates.
package models

// Source names the data set a free-text field, ID, or certification came
// from. Every multi-lingual name/description/logo carries one.
type Source string

const (
	SourceWikidata      Source = "wikidata"
	SourceOpenFoodFacts Source = "open_food_facts"
	SourceEuEcolabel    Source = "eu_ecolabel"
	SourceBCorp         Source = "bcorp"
	SourceFti           Source = "fti"
	SourceTco           Source = "tco"
	SourceOther         Source = "other"
)

// Text is a free-text value tagged with the source it came from. Equality
// is over both fields, so the same string from two sources is kept twice.
type Text struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// Image is a reference to an image (URL or identifier) tagged with source.
type Image struct {
	Image  string `json:"image"`
	Source Source `json:"source"`
}

// TextSet is a set of Text values deduplicated on (text, source).
type TextSet []Text

// Add inserts t if not already present, returning the (possibly unchanged) set.
func (s TextSet) Add(t Text) TextSet {
	for _, existing := range s {
		if existing == t {
			return s
		}
	}
	return append(s, t)
}

// Merge unions two text sets (see spec §4.3: "Set of texts/images: Set union").
func (s TextSet) Merge(other TextSet) TextSet {
	result := s
	for _, t := range other {
		result = result.Add(t)
	}
	return result
}

// ImageSet is a set of Image values deduplicated on (image, source).
type ImageSet []Image

func (s ImageSet) Add(i Image) ImageSet {
	for _, existing := range s {
		if existing == i {
			return s
		}
	}
	return append(s, i)
}

func (s ImageSet) Merge(other ImageSet) ImageSet {
	result := s
	for _, i := range other {
		result = result.Add(i)
	}
	return result
}
