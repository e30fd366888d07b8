package score

// Weights is the external constant table the spec §4.5 contract leaves
// unspecified ("the exact weights are an external constant table; the
// core's contract is a deterministic, idempotent, pure function"). Values
// are relative weights among siblings, not required to sum to any
// particular total — Calculate normalizes as it folds the tree.
type Weights struct {
	DataAvailability float64
	ProducerKnown    float64
	PlaceKnown       float64
	IdKnown          float64

	CategoryAssigned float64
	WarrantyLength   float64
	NumCerts         float64
	AtLeastOneCert   float64
	AtLeastTwoCerts  float64
}

// DefaultWeights mirrors the relative emphasis the original scorer placed
// on data completeness versus certification signals: data availability and
// category assignment carry the most weight since they are prerequisites
// for every other comparison the frontend can make.
var DefaultWeights = Weights{
	DataAvailability: 3,
	ProducerKnown:    1,
	PlaceKnown:       1,
	IdKnown:          1,

	CategoryAssigned: 2,
	WarrantyLength:   1,
	NumCerts:         1,
	AtLeastOneCert:   1,
	AtLeastTwoCerts:  1,
}
