// Package score computes the per-product Sustainity score (spec §4.5): a
// weighted tree of sub-scores, each in [0,1], folded into a single total.
// Grounded on original_source/models/src/models.rs's SustainityScoreCategory
// enum and score-tree shape; the weights themselves are an external
// constant table (weights.go), matching the spec's explicit statement that
// the weighting formula is out of the core's scope — only the tree shape
// and the "deterministic, idempotent, pure function of (product,
// manufacturer-presence, categories)" contract is.
package score

import (
	"github.com/transpaer/transpaer-knowledge/pkg/models"
)

// maxWarrantyMonths caps the WarrantyLength branch: a warranty at or beyond
// five years scores 1.0, shorter warranties scale linearly.
const maxWarrantyMonths = 60

// maxCerts is the number of certification badges models.Certifications can
// carry; NumCerts scales linearly against it.
const maxCerts = 4

// Calculate computes a product's SustainityScore. manufacturerKnown
// reflects whether the product has at least one resolved manufacturer
// (spec §4.5: "producer known" is part of data availability, computed from
// manufacturer presence rather than from the product alone).
func Calculate(product *models.Product, manufacturerKnown bool, weights Weights) models.SustainityScore {
	placeKnown := product.Regions.Kind == "list" || product.Regions.Kind == "world"
	idKnown := len(product.Ids.Wiki) > 0 || len(product.Ids.Gtin) > 0 || len(product.Ids.Ean) > 0
	categoryAssigned := len(product.Categories) > 0

	numCerts := product.Certifications.NumCerts()
	atLeastOne := numCerts >= 1
	atLeastTwo := numCerts >= 2

	warrantyScore := 0.0
	if product.WarrantyMonths != nil {
		warrantyScore = clamp01(float64(*product.WarrantyMonths) / maxWarrantyMonths)
	}
	numCertsScore := clamp01(float64(numCerts) / maxCerts)

	dataAvailability := []weighted{
		{weights.ProducerKnown, leaf(models.ScoreCategoryProducerKnown, weights.ProducerKnown, boolScore(manufacturerKnown))},
		{weights.PlaceKnown, leaf(models.ScoreCategoryProductionPlaceKnown, weights.PlaceKnown, boolScore(placeKnown))},
		{weights.IdKnown, leaf(models.ScoreCategoryIdKnown, weights.IdKnown, boolScore(idKnown))},
	}
	dataAvailabilityBranch := branch(models.ScoreCategoryDataAvailability, weights.DataAvailability, dataAvailability)

	root := []weighted{
		{weights.DataAvailability, dataAvailabilityBranch},
		{weights.CategoryAssigned, leaf(models.ScoreCategoryCategoryAssigned, weights.CategoryAssigned, boolScore(categoryAssigned))},
		{weights.WarrantyLength, leaf(models.ScoreCategoryWarrantyLength, weights.WarrantyLength, warrantyScore)},
		{weights.NumCerts, leaf(models.ScoreCategoryNumCerts, weights.NumCerts, numCertsScore)},
		{weights.AtLeastOneCert, leaf(models.ScoreCategoryAtLeastOneCert, weights.AtLeastOneCert, boolScore(atLeastOne))},
		{weights.AtLeastTwoCerts, leaf(models.ScoreCategoryAtLeastTwoCerts, weights.AtLeastTwoCerts, boolScore(atLeastTwo))},
	}
	tree := branch(models.ScoreCategoryRoot, 1, root)

	return models.SustainityScore{Tree: tree, Total: tree.Score}
}

type weighted struct {
	weight float64
	branch models.ScoreBranch
}

func leaf(category models.ScoreCategory, weight, score float64) models.ScoreBranch {
	return models.ScoreBranch{Category: category, Weight: weight, Score: score}
}

func branch(category models.ScoreCategory, weight float64, children []weighted) models.ScoreBranch {
	branches := make([]models.ScoreBranch, 0, len(children))
	for _, c := range children {
		branches = append(branches, c.branch)
	}
	return models.ScoreBranch{
		Category: category,
		Weight:   weight,
		Score:    weightedAverage(children),
		Branches: branches,
	}
}

func weightedAverage(children []weighted) float64 {
	var totalWeight, totalScore float64
	for _, c := range children {
		totalWeight += c.weight
		totalScore += c.weight * c.branch.Score
	}
	if totalWeight == 0 {
		return 0
	}
	return totalScore / totalWeight
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
