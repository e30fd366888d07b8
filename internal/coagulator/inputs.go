package coagulator

import (
	"github.com/transpaer/transpaer-knowledge/pkg/models"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

// BuildInputs reads every listed substrate file and splits its records into
// the producer-kind and product-kind coagulation inputs, in the order
// encountered. Substrate files are themselves written in external-id sorted
// order by the condenser's Stash, so this order is stable across runs
// (spec §4.6/§8's reproducibility requirement).
func BuildInputs(paths []string) (producers []Input, products []Input, err error) {
	for _, path := range paths {
		readErr := substrate.ForEach(path, func(rec substrate.Record) error {
			if rec.Producer != nil {
				producers = append(producers, Input{
					External:    rec.ExternalId,
					Individuals: producerIndividuals(rec.Producer),
				})
			}
			if rec.Product != nil {
				products = append(products, Input{
					External:    rec.ExternalId,
					Individuals: productIndividuals(rec.Product),
				})
			}
			return nil
		})
		if readErr != nil {
			return nil, nil, readErr
		}
	}
	return producers, products, nil
}

func producerIndividuals(p *models.Producer) []IndividualID {
	var out []IndividualID
	for w := range p.Ids.Wiki {
		out = append(out, IndividualID{Kind: "wiki", Value: w.String()})
	}
	for v := range p.Ids.Vat {
		out = append(out, IndividualID{Kind: "vat", Value: v.String()})
	}
	for d := range p.Ids.Domains {
		out = append(out, IndividualID{Kind: "domain", Value: d.String()})
	}
	return out
}

func productIndividuals(p *models.Product) []IndividualID {
	var out []IndividualID
	for w := range p.Ids.Wiki {
		out = append(out, IndividualID{Kind: "wiki", Value: w.String()})
	}
	for g := range p.Ids.Gtin {
		out = append(out, IndividualID{Kind: "gtin", Value: g.String()})
	}
	for e := range p.Ids.Ean {
		out = append(out, IndividualID{Kind: "ean", Value: e.String()})
	}
	return out
}
