package models

// BCorpCert marks a BCorp-certified entity.
type BCorpCert struct {
	Id string `json:"id"`
}

// EuEcolabelCert marks an EU Ecolabel certified product. It carries no
// fields of its own (spec §3: "EuEcolabel{}"); the advisor-side
// match_accuracy (Open Question ii) lives on the substrate record, not here.
type EuEcolabelCert struct{}

// FtiCert carries a Fashion Transparency Index score in [0, 100].
type FtiCert struct {
	Score int `json:"score"`
}

// TcoCert marks TCO Certified brands.
type TcoCert struct {
	BrandName string `json:"brand_name"`
}

// Certifications holds the four optional certification badges a producer or
// product may carry. Merge is field-wise, later-set-wins; EU Ecolabel is
// never inherited from a producer to its products (spec §4.7 step 3).
type Certifications struct {
	BCorp      *BCorpCert      `json:"bcorp,omitempty"`
	EuEcolabel *EuEcolabelCert `json:"eu_ecolabel,omitempty"`
	Fti        *FtiCert        `json:"fti,omitempty"`
	Tco        *TcoCert        `json:"tco,omitempty"`
}

// Merge combines two Certifications field-wise: a non-nil field in other
// overrides the corresponding field in c. Idempotent and order-dependent
// only in the trivial sense that equal inputs commute (spec §8 scenario 5).
func (c Certifications) Merge(other Certifications) Certifications {
	result := c
	if other.BCorp != nil {
		result.BCorp = other.BCorp
	}
	if other.EuEcolabel != nil {
		result.EuEcolabel = other.EuEcolabel
	}
	if other.Fti != nil {
		result.Fti = other.Fti
	}
	if other.Tco != nil {
		result.Tco = other.Tco
	}
	return result
}

// NumCerts counts how many of the four badges are present.
func (c Certifications) NumCerts() int {
	n := 0
	if c.BCorp != nil {
		n++
	}
	if c.EuEcolabel != nil {
		n++
	}
	if c.Fti != nil {
		n++
	}
	if c.Tco != nil {
		n++
	}
	return n
}

// InheritFromProducer copies BCorp, FTI and TCO certifications from a
// producer into a product's certifications, field-wise and without
// overriding fields the product already set itself. EU Ecolabel is never
// inherited (spec §4.7 step 3; original_source/models/src/models.rs
// `inherit()`).
func (c Certifications) InheritFromProducer(producer Certifications) Certifications {
	result := c
	if result.BCorp == nil {
		result.BCorp = producer.BCorp
	}
	if result.Fti == nil {
		result.Fti = producer.Fti
	}
	if result.Tco == nil {
		result.Tco = producer.Tco
	}
	return result
}
