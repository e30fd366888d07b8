// Package crystalizer implements the C9 crystalization stage: it re-reads
// every substrate file, rewrites external ids and raw Wikidata cross
// references through the coagulate, merges same-UniqueId partial records in
// memory, inherits certifications, computes scores, and derives the final
// vertex/edge collections (spec §4.7).
package crystalizer

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/transpaer/transpaer-knowledge/internal/coagulator"
	"github.com/transpaer/transpaer-knowledge/internal/report"
	"github.com/transpaer/transpaer-knowledge/internal/score"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Merger implements crystalization steps 1-3 (spec §4.7): rewrite every
// record's external id (and its raw Wikidata references) through the
// coagulate, merge same-UniqueId partial records, then — once every
// substrate has been consumed — inherit certifications and compute scores.
type Merger struct {
	producerResult *coagulator.Result
	productResult  *coagulator.Result
	report         *report.Report

	producers map[ids.UniqueId]models.Producer
	products  map[ids.UniqueId]models.Product
}

// NewMerger returns an empty Merger against the given producer/product
// coagulation results, logging unresolved references to r.
func NewMerger(producerResult, productResult *coagulator.Result, r *report.Report) *Merger {
	return &Merger{
		producerResult: producerResult,
		productResult:  productResult,
		report:         r,
		producers:      map[ids.UniqueId]models.Producer{},
		products:       map[ids.UniqueId]models.Product{},
	}
}

// Process folds one substrate record into the in-memory merge state (spec
// §4.7 steps 1-2). A reference that cannot be resolved through the
// coagulate — the record's own external id, or a manufacturer/follows/
// followed-by Wikidata id — is logged to the report and dropped (§7 kind 4);
// it never fails the run.
func (m *Merger) Process(rec substrate.Record) {
	if rec.Producer != nil {
		if uid, ok := m.producerResult.Lookup(rec.ExternalId); ok {
			p := *rec.Producer
			p.Id = uid
			m.mergeProducer(uid, p)
		} else {
			m.report.Add(rec.ExternalId.DataSet, report.KindDanglingReference, "unresolved producer external id "+rec.ExternalId.String())
		}
	}

	if rec.Product != nil {
		if uid, ok := m.productResult.Lookup(rec.ExternalId); ok {
			p := *rec.Product
			p.Id = uid
			for _, manufacturerUid := range m.resolveProducers(rec.Refs.ManufacturerWiki, rec.ExternalId) {
				p.Manufacturers[manufacturerUid] = struct{}{}
			}
			for _, followedUid := range m.resolveProducts(rec.Refs.FollowsWiki, rec.ExternalId) {
				p.Follows[followedUid] = struct{}{}
			}
			for _, followerUid := range m.resolveProducts(rec.Refs.FollowedByWiki, rec.ExternalId) {
				p.FollowedBy[followerUid] = struct{}{}
			}
			m.mergeProduct(uid, p)
		} else {
			m.report.Add(rec.ExternalId.DataSet, report.KindDanglingReference, "unresolved product external id "+rec.ExternalId.String())
		}
	}
}

func (m *Merger) mergeProducer(uid ids.UniqueId, p models.Producer) {
	if existing, ok := m.producers[uid]; ok {
		p = existing.Merge(p)
	}
	m.producers[uid] = p
}

func (m *Merger) mergeProduct(uid ids.UniqueId, p models.Product) {
	if existing, ok := m.products[uid]; ok {
		p = existing.Merge(p)
	}
	m.products[uid] = p
}

func (m *Merger) resolveProducers(wikiIds []ids.WikiId, source ids.ExternalId) []ids.UniqueId {
	var out []ids.UniqueId
	for _, w := range wikiIds {
		external := ids.NewExternalId(ids.DataSetWikidata, w.String())
		uid, ok := m.producerResult.Lookup(external)
		if !ok {
			m.report.Add(source.DataSet, report.KindDanglingReference, "unresolved manufacturer wiki id "+w.String())
			continue
		}
		out = append(out, uid)
	}
	return out
}

func (m *Merger) resolveProducts(wikiIds []ids.WikiId, source ids.ExternalId) []ids.UniqueId {
	var out []ids.UniqueId
	for _, w := range wikiIds {
		external := ids.NewExternalId(ids.DataSetWikidata, w.String())
		uid, ok := m.productResult.Lookup(external)
		if !ok {
			m.report.Add(source.DataSet, report.KindDanglingReference, "unresolved follows/followed-by wiki id "+w.String())
			continue
		}
		out = append(out, uid)
	}
	return out
}

// Finalize implements step 3: copy BCorp/FTI/TCO certifications from every
// product's resolved manufacturers into the product (never EU Ecolabel),
// then compute each product's sustainity score. Must run after every
// substrate file has been Process-ed.
func (m *Merger) Finalize(weights score.Weights) {
	for uid, p := range m.products {
		manufacturerKnown := len(p.Manufacturers) > 0
		for manufacturerUid := range p.Manufacturers {
			if producer, ok := m.producers[manufacturerUid]; ok {
				p.Certifications = p.Certifications.InheritFromProducer(producer.Certifications)
			}
		}
		result := score.Calculate(&p, manufacturerKnown, weights)
		p.Score = &result
		m.products[uid] = p
	}
}

// Producers returns the merged, finalized producer map.
func (m *Merger) Producers() map[ids.UniqueId]models.Producer { return m.producers }

// Products returns the merged, finalized product map.
func (m *Merger) Products() map[ids.UniqueId]models.Product { return m.products }

// toPayload flattens v (a Producer or Product) into the map shape
// substrate.Vertex uses for its free-form payload, going through JSON
// rather than reflection since every field's wire name is already defined
// by its own json tags. exclude names fields that belong on the substrate
// round-trip (individual IDs and categories — each already has its
// own dedicated vertex/edge collection, spec §4.7 step 4) but not in the
// public vertex payload itself.
func toPayload(v interface{}, exclude ...string) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	for _, k := range exclude {
		delete(m, k)
	}
	return m, nil
}
