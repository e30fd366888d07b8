package crystalizer

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/coagulator"
	"github.com/transpaer/transpaer-knowledge/internal/config"
	"github.com/transpaer/transpaer-knowledge/internal/report"
	"github.com/transpaer/transpaer-knowledge/internal/score"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

// Run executes crystalization end to end (spec §4.7): it streams every
// substrate file under cfg.Substrate through a Merger, finalizes scores,
// derives the output collections, and writes them under cfg.Target.
func Run(cfg *config.Config, producerResult, productResult *coagulator.Result, weights score.Weights, logger *logrus.Logger) (*report.Report, error) {
	r := report.New()

	if err := config.EnsureDir(cfg.Target); err != nil {
		return r, fmt.Errorf("crystalizer: prepare target dir: %w", err)
	}

	paths, err := substrateFiles(cfg.Substrate)
	if err != nil {
		return r, fmt.Errorf("crystalizer: list substrate files: %w", err)
	}

	merger := NewMerger(producerResult, productResult, r)
	for _, path := range paths {
		if err := substrate.ForEach(path, func(rec substrate.Record) error {
			merger.Process(rec)
			return nil
		}); err != nil {
			return r, fmt.Errorf("crystalizer: read %s: %w", path, err)
		}
	}
	merger.Finalize(weights)

	collections, err := BuildCollections(merger.Producers(), merger.Products())
	if err != nil {
		return r, fmt.Errorf("crystalizer: build collections: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"organisations": len(collections.Organisations),
		"products":      len(collections.Products),
	}).Info("crystalizer: collections built")

	if err := writeCollections(cfg.Target, collections); err != nil {
		return r, err
	}

	return r, nil
}

// substrateFiles lists every *.jsonl file directly under dir, sorted, so
// Merger.Process consumes them in a stable order (spec §8 reproducibility).
func substrateFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func writeCollections(targetDir string, c *Collections) error {
	write := func(name string, vertices []substrate.Vertex, edges []substrate.Edge) error {
		if vertices != nil {
			w := substrate.NewCollectionWriter(filepath.Join(targetDir, name+".jsonl"))
			if err := w.WriteVertices(vertices); err != nil {
				return fmt.Errorf("crystalizer: write %s vertices: %w", name, err)
			}
		}
		if edges != nil {
			w := substrate.NewCollectionWriter(filepath.Join(targetDir, name+"_edges.jsonl"))
			if err := w.WriteEdges(edges); err != nil {
				return fmt.Errorf("crystalizer: write %s edges: %w", name, err)
			}
		}
		return nil
	}

	if err := write("organisations", c.Organisations, nil); err != nil {
		return err
	}
	if err := write("products", c.Products, nil); err != nil {
		return err
	}
	if err := write("organisation_keywords", c.OrganisationKeywords, c.OrganisationKeywordEdges); err != nil {
		return err
	}
	if err := write("product_keywords", c.ProductKeywords, c.ProductKeywordEdges); err != nil {
		return err
	}
	if err := write("categories", c.Categories, c.CategoryEdges); err != nil {
		return err
	}
	if err := write("manufacturing", nil, c.ManufacturingEdges); err != nil {
		return err
	}

	for kind, vertices := range c.IdVertices {
		if err := write(kind, vertices, c.IdEdges[kind]); err != nil {
			return err
		}
	}

	return nil
}
