package score

import (
	"testing"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
)

func TestCalculateIsPureAndDeterministic(t *testing.T) {
	product := models.NewProduct(ids.UniqueId(1))
	product.Categories["electronics/phone"] = struct{}{}
	product.Regions = models.World()

	a := Calculate(&product, true, DefaultWeights)
	b := Calculate(&product, true, DefaultWeights)
	if a.Total != b.Total {
		t.Fatalf("score not deterministic: %v vs %v", a.Total, b.Total)
	}

	// Calling again must not mutate the product and change the outcome
	// (idempotent per spec §4.5).
	c := Calculate(&product, true, DefaultWeights)
	if c.Total != a.Total {
		t.Fatalf("score not idempotent: %v vs %v", a.Total, c.Total)
	}
}

func TestCalculateZeroScoreForEmptyProduct(t *testing.T) {
	product := models.NewProduct(ids.UniqueId(1))
	result := Calculate(&product, false, DefaultWeights)
	if result.Total != 0 {
		t.Errorf("expected zero score for a fully empty product, got %v", result.Total)
	}
}

func TestCalculateRewardsCertifications(t *testing.T) {
	none := models.NewProduct(ids.UniqueId(1))
	withCert := models.NewProduct(ids.UniqueId(2))
	withCert.Certifications.BCorp = &models.BCorpCert{Id: "x"}

	noneScore := Calculate(&none, false, DefaultWeights)
	certScore := Calculate(&withCert, false, DefaultWeights)
	if certScore.Total <= noneScore.Total {
		t.Errorf("expected certified product to score higher: %v vs %v", certScore.Total, noneScore.Total)
	}
}

func TestCalculateTotalIsBounded(t *testing.T) {
	product := models.NewProduct(ids.UniqueId(1))
	product.Categories["a"] = struct{}{}
	product.Regions = models.World()
	product.Ids.Wiki[ids.WikiId(1)] = struct{}{}
	months := 120
	product.WarrantyMonths = &months
	product.Certifications.BCorp = &models.BCorpCert{Id: "x"}
	product.Certifications.Fti = &models.FtiCert{Score: 90}
	product.Certifications.Tco = &models.TcoCert{BrandName: "b"}
	euCert := models.EuEcolabelCert{}
	product.Certifications.EuEcolabel = &euCert

	result := Calculate(&product, true, DefaultWeights)
	if result.Total < 0 || result.Total > 1 {
		t.Errorf("total score %v out of [0,1]", result.Total)
	}
	if result.Total != 1 {
		t.Errorf("fully-populated product should score 1.0, got %v", result.Total)
	}
}
