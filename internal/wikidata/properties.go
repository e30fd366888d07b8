package wikidata

// Wikidata property IDs the filter and condenser read. Grounded on the
// property names used throughout original_source/lab/src/wikidata.rs's
// `ItemExt` implementation (manufacturer, instance-of, subclass-of,
// official website, image, logo image, GTIN, EU VAT number, follows,
// followed-by).
const (
	PropertyInstanceOf       = "P31"
	PropertySubclassOf       = "P279"
	PropertyManufacturer     = "P176"
	PropertyOfficialWebsite  = "P856"
	PropertyImage            = "P18"
	PropertyLogoImage        = "P154"
	PropertyGtin             = "P3962"
	PropertyEuVatNumber      = "P3608"
	PropertyFollows          = "P155"
	PropertyFollowedBy       = "P156"
)

// organisationClasses are Wikidata classes that mark an item as an
// organisation candidate even without a VAT number (spec §4.6: "is_product"
// / "is_organisation" classification), grounded on
// original_source/lab/src/wikidata.rs's `organisations` module.
var organisationClasses = buildClassSet([]uint64{
	4830453,  // business
	891723,   // public company
	431289,   // brand
	721646,   // retail chain
	1762059,  // fashion house
	6881511,  // enterprise
	4382945,  // online shop
	18043413, // supermarket chain
	206361,   // concern
	614084,   // consumer cooperative
	726870,   // brick and mortar
	783794,   // company
	658255,   // subsidiary
	2549179,  // department store chain
	216107,   // department store
	1252971,  // food manufacturer
})

func buildClassSet(ids []uint64) map[uint64]bool {
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
