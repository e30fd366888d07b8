package models

// ScoreCategory tags one node of the Sustainity score tree (spec §4.5).
type ScoreCategory string

const (
	ScoreCategoryRoot                   ScoreCategory = "root"
	ScoreCategoryDataAvailability       ScoreCategory = "data_availability"
	ScoreCategoryProducerKnown          ScoreCategory = "producer_known"
	ScoreCategoryProductionPlaceKnown   ScoreCategory = "production_place_known"
	ScoreCategoryIdKnown                ScoreCategory = "id_known"
	ScoreCategoryCategoryAssigned       ScoreCategory = "category_assigned"
	ScoreCategoryCategory               ScoreCategory = "category"
	ScoreCategoryWarrantyLength         ScoreCategory = "warranty_length"
	ScoreCategoryNumCerts               ScoreCategory = "num_certifications"
	ScoreCategoryAtLeastOneCert         ScoreCategory = "at_least_one_certification"
	ScoreCategoryAtLeastTwoCerts        ScoreCategory = "at_least_two_certifications"
)

// ScoreBranch is one node in the weighted score tree: a category tag, its
// weight relative to its siblings, the computed subscore in [0,1], and any
// children.
type ScoreBranch struct {
	Category ScoreCategory  `json:"category"`
	Weight   float64        `json:"weight"`
	Score    float64        `json:"score"`
	Branches []ScoreBranch  `json:"branches,omitempty"`
}

// SustainityScore is the product-level score: the full weighted tree plus
// its computed total in [0,1].
type SustainityScore struct {
	Tree  ScoreBranch `json:"tree"`
	Total float64     `json:"total"`
}
