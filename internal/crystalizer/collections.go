package crystalizer

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

// maxCategoryProducts bounds the categories collection: a category with at
// least this many products is useless for alternatives search and would
// dominate storage (spec §4.7 step 4), so its vertex and edges are dropped.
const maxCategoryProducts = 300_000

// Collections holds every derived vertex/edge collection crystalization
// builds from the merged producers/products (spec §4.7 step 4, §6.2), each
// already sorted by its stable key (step 5).
type Collections struct {
	Organisations []substrate.Vertex
	Products      []substrate.Vertex

	OrganisationKeywords     []substrate.Vertex
	OrganisationKeywordEdges []substrate.Edge
	ProductKeywords          []substrate.Vertex
	ProductKeywordEdges      []substrate.Edge

	// IdVertices/IdEdges are keyed by id kind: "vat", "wiki", "domain",
	// "gtin", "ean".
	IdVertices map[string][]substrate.Vertex
	IdEdges    map[string][]substrate.Edge

	Categories    []substrate.Vertex
	CategoryEdges []substrate.Edge

	ManufacturingEdges []substrate.Edge
}

// BuildCollections derives every collection from the merged producer/product
// maps.
func BuildCollections(producers map[ids.UniqueId]models.Producer, products map[ids.UniqueId]models.Product) (*Collections, error) {
	organisations := newVertexEdgeSet()
	productVertices := newVertexEdgeSet()
	orgKeywords := newVertexEdgeSet()
	productKeywords := newVertexEdgeSet()
	idSets := map[string]*vertexEdgeSet{
		"vat": newVertexEdgeSet(), "wiki": newVertexEdgeSet(), "domain": newVertexEdgeSet(),
		"gtin": newVertexEdgeSet(), "ean": newVertexEdgeSet(),
	}
	categorySet := newVertexEdgeSet()
	var manufacturingEdges []substrate.Edge

	for uid, p := range producers {
		payload, err := toPayload(p, "ids_wiki", "ids_vat", "ids_domains")
		if err != nil {
			return nil, fmt.Errorf("crystalizer: marshal organisation %s: %w", uid, err)
		}
		organisations.addVertex(substrate.Vertex{Key: uid.String(), Payload: payload})

		entityRef := "organisations/" + uid.String()
		for _, kw := range tokenizeNames(p.Names) {
			key := keywordKey("organisation_keywords", kw)
			orgKeywords.addVertex(substrate.Vertex{Key: key, Payload: map[string]interface{}{"keyword": kw}})
			orgKeywords.addEdge(substrate.Edge{From: "organisation_keywords/" + key, To: entityRef})
		}

		for w := range p.Ids.Wiki {
			idSets["wiki"].addVertex(substrate.Vertex{Key: w.String()})
			idSets["wiki"].addEdge(substrate.Edge{From: "wiki/" + w.String(), To: entityRef})
		}
		for v := range p.Ids.Vat {
			idSets["vat"].addVertex(substrate.Vertex{Key: v.String()})
			idSets["vat"].addEdge(substrate.Edge{From: "vat/" + v.String(), To: entityRef})
		}
		for d := range p.Ids.Domains {
			idSets["domain"].addVertex(substrate.Vertex{Key: d.String()})
			idSets["domain"].addEdge(substrate.Edge{From: "domain/" + d.String(), To: entityRef})
		}
	}

	categoryCounts := map[string]int{}
	for _, p := range products {
		for category := range p.Categories {
			categoryCounts[category]++
		}
	}

	for uid, p := range products {
		payload, err := toPayload(p, "ids_wiki", "ids_gtin", "ids_ean", "categories")
		if err != nil {
			return nil, fmt.Errorf("crystalizer: marshal product %s: %w", uid, err)
		}
		productVertices.addVertex(substrate.Vertex{Key: uid.String(), Payload: payload})

		entityRef := "products/" + uid.String()
		for _, kw := range tokenizeNames(p.Names) {
			key := keywordKey("product_keywords", kw)
			productKeywords.addVertex(substrate.Vertex{Key: key, Payload: map[string]interface{}{"keyword": kw}})
			productKeywords.addEdge(substrate.Edge{From: "product_keywords/" + key, To: entityRef})
		}

		for w := range p.Ids.Wiki {
			idSets["wiki"].addVertex(substrate.Vertex{Key: w.String()})
			idSets["wiki"].addEdge(substrate.Edge{From: "wiki/" + w.String(), To: entityRef})
		}
		for g := range p.Ids.Gtin {
			idSets["gtin"].addVertex(substrate.Vertex{Key: g.String()})
			idSets["gtin"].addEdge(substrate.Edge{From: "gtin/" + g.String(), To: entityRef})
		}
		for e := range p.Ids.Ean {
			idSets["ean"].addVertex(substrate.Vertex{Key: e.String()})
			idSets["ean"].addEdge(substrate.Edge{From: "ean/" + e.String(), To: entityRef})
		}

		for category := range p.Categories {
			if categoryCounts[category] >= maxCategoryProducts {
				continue
			}
			categorySet.addVertex(substrate.Vertex{Key: category})
			categorySet.addEdge(substrate.Edge{From: "categories/" + category, To: entityRef})
		}

		for manufacturerUid := range p.Manufacturers {
			manufacturingEdges = append(manufacturingEdges, substrate.Edge{
				From: "organisations/" + manufacturerUid.String(),
				To:   entityRef,
			})
		}
	}

	idVertices := map[string][]substrate.Vertex{}
	idEdges := map[string][]substrate.Edge{}
	for kind, set := range idSets {
		idVertices[kind] = set.sortedVertices()
		idEdges[kind] = set.sortedEdges()
	}

	sort.Slice(manufacturingEdges, func(i, j int) bool {
		if manufacturingEdges[i].From != manufacturingEdges[j].From {
			return manufacturingEdges[i].From < manufacturingEdges[j].From
		}
		return manufacturingEdges[i].To < manufacturingEdges[j].To
	})

	return &Collections{
		Organisations:            organisations.sortedVertices(),
		Products:                 productVertices.sortedVertices(),
		OrganisationKeywords:     orgKeywords.sortedVertices(),
		OrganisationKeywordEdges: orgKeywords.sortedEdges(),
		ProductKeywords:          productKeywords.sortedVertices(),
		ProductKeywordEdges:      productKeywords.sortedEdges(),
		IdVertices:               idVertices,
		IdEdges:                  idEdges,
		Categories:               categorySet.sortedVertices(),
		CategoryEdges:            categorySet.sortedEdges(),
		ManufacturingEdges:       manufacturingEdges,
	}, nil
}

// tokenizeNames implements the keyword tokenization rule (spec §4.7 step 4):
// split every name on whitespace, lowercase, drop empty tokens, dedupe.
func tokenizeNames(names models.TextSet) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range names {
		for _, tok := range strings.Fields(strings.ToLower(t.Text)) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	return out
}

// keywordKey builds a keyword vertex's key: the collection name joined with
// the keyword's hex md5 (spec §6.2's "Key format for keyword vertices:
// <collection>/<md5hex>"). crypto/md5 is used deliberately here: this is a
// wire-format constant the spec fixes byte-for-byte, not a hash-table
// implementation choice, so no third-party hash library applies.
func keywordKey(collection, keyword string) string {
	sum := md5.Sum([]byte(keyword))
	return collection + "/" + hex.EncodeToString(sum[:])
}

// vertexEdgeSet deduplicates vertices by key and edges by (from, to) while
// one collection is being accumulated across many producers/products,
// mirroring pkg/substrate.Gather's accumulate-then-sort shape but over the
// richer Vertex/Edge types Gather's comparable-only constraint can't hold.
type vertexEdgeSet struct {
	vertices map[string]substrate.Vertex
	edgeSeen map[string]struct{}
	edges    []substrate.Edge
}

func newVertexEdgeSet() *vertexEdgeSet {
	return &vertexEdgeSet{vertices: map[string]substrate.Vertex{}, edgeSeen: map[string]struct{}{}}
}

func (s *vertexEdgeSet) addVertex(v substrate.Vertex) {
	if _, ok := s.vertices[v.Key]; !ok {
		s.vertices[v.Key] = v
	}
}

func (s *vertexEdgeSet) addEdge(e substrate.Edge) {
	key := e.From + "->" + e.To
	if _, ok := s.edgeSeen[key]; ok {
		return
	}
	s.edgeSeen[key] = struct{}{}
	s.edges = append(s.edges, e)
}

func (s *vertexEdgeSet) sortedVertices() []substrate.Vertex {
	out := make([]substrate.Vertex, 0, len(s.vertices))
	for _, v := range s.vertices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (s *vertexEdgeSet) sortedEdges() []substrate.Edge {
	out := append([]substrate.Edge{}, s.edges...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
