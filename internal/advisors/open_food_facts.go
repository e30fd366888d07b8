package advisors

import (
	"strings"

	"github.com/transpaer/transpaer-knowledge/pkg/models"
)

// offCountryTagToIso maps Open Food Facts' "en:country-name" country tags to
// ISO-3166 alpha-2 codes, grounded on
// original_source/condensing/src/advisors.rs's OpenFoodFactsAdvisor, which
// carries the equivalent static table for the tags the dataset actually
// uses.
var offCountryTagToIso = map[string]string{
	"en:france":         "FR",
	"en:germany":        "DE",
	"en:spain":          "ES",
	"en:italy":          "IT",
	"en:belgium":        "BE",
	"en:united-kingdom": "GB",
	"en:united-states":  "US",
	"en:netherlands":    "NL",
	"en:switzerland":    "CH",
	"en:poland":         "PL",
	"en:portugal":       "PT",
	"en:austria":        "AT",
	"en:sweden":         "SE",
	"en:denmark":        "DK",
	"en:world":          "",
}

// OpenFoodFactsAdvisor turns a product's countries_tags list into a Regions
// value.
type OpenFoodFactsAdvisor struct{}

// NewOpenFoodFactsAdvisor returns an advisor backed by the built-in country
// tag table; Open Food Facts ships no separate region file to load.
func NewOpenFoodFactsAdvisor() *OpenFoodFactsAdvisor {
	return &OpenFoodFactsAdvisor{}
}

// Regions resolves a list of OFF country tags to a Regions value: "en:world"
// maps to the absorbing World region, unrecognized or empty tag lists map to
// Unknown, and everything else becomes a sorted ISO code list.
func (a *OpenFoodFactsAdvisor) Regions(countryTags []string) models.Regions {
	var codes []string
	for _, tag := range countryTags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		iso, ok := offCountryTagToIso[tag]
		if !ok {
			continue
		}
		if tag == "en:world" {
			return models.World()
		}
		if iso != "" {
			codes = append(codes, iso)
		}
	}
	if len(codes) == 0 {
		return models.Unknown()
	}
	return models.NewRegionsList(codes)
}
