package condensing

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/advisors"
	"github.com/transpaer/transpaer-knowledge/internal/config"
	"github.com/transpaer/transpaer-knowledge/internal/flow"
	"github.com/transpaer/transpaer-knowledge/internal/report"
	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/internal/wikidata"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Paths names every origin/support file the condensing stages read, all
// relative to cfg.Origin/cfg.Support/cfg.Cache.
type Paths struct {
	WikidataDump     string
	OpenFoodFactsTsv string
	EuEcolabelCsv    string
	BCorpCsv         string
	TcoYaml          string
	FtiYaml          string
	MatchesYaml      string
}

// DefaultPaths returns the conventional origin/support/cache file names
// under cfg (spec §6.1's input file table). The Wikidata dump is read from
// cfg.Cache because condensing consumes the already-filtered dump the C6
// filter stage wrote there, not the raw origin dump.
func DefaultPaths(cfg *config.Config) Paths {
	return Paths{
		WikidataDump:     filepath.Join(cfg.Cache, "wikidata-filtered.json.gz"),
		OpenFoodFactsTsv: filepath.Join(cfg.Origin, "en.openfoodfacts.org.products.csv"),
		EuEcolabelCsv:    filepath.Join(cfg.Origin, "eu_ecolabel_products.csv"),
		BCorpCsv:         filepath.Join(cfg.Origin, "bcorp.csv"),
		TcoYaml:          filepath.Join(cfg.Origin, "tco.yaml"),
		FtiYaml:          filepath.Join(cfg.Origin, "fashion_transparency_index.yaml"),
		MatchesYaml:      filepath.Join(cfg.Support, "matches.yaml"),
	}
}

// outputPaths names the substrate file each stage writes, all siblings
// under cfg.Substrate.
type outputPaths struct {
	wikidata, openFoodFacts, bcorp, euEcolabel, tco, fti string
}

func newOutputPaths(cfg *config.Config) outputPaths {
	return outputPaths{
		wikidata:      filepath.Join(cfg.Substrate, "wikidata.jsonl"),
		openFoodFacts: filepath.Join(cfg.Substrate, "open_food_facts.jsonl"),
		bcorp:         filepath.Join(cfg.Substrate, "bcorp.jsonl"),
		euEcolabel:    filepath.Join(cfg.Substrate, "eu_ecolabel.jsonl"),
		tco:           filepath.Join(cfg.Substrate, "tco.jsonl"),
		fti:           filepath.Join(cfg.Substrate, "fti.jsonl"),
	}
}

// Run executes every condensing stage, writing one substrate file per
// source into cfg.Substrate. A stage's per-record failures are folded into
// the returned Report (spec §7 kinds 2/3); Run itself only fails on I/O or
// pipeline join errors.
func Run(ctx context.Context, cfg *config.Config, paths Paths, logger *logrus.Logger) (*report.Report, error) {
	r := report.New()

	if err := config.EnsureDir(cfg.Substrate); err != nil {
		return r, fmt.Errorf("condensing: prepare substrate dir: %w", err)
	}

	advisorSet, err := advisors.Load(advisors.Paths{
		BCorpCsv:      paths.BCorpCsv,
		EuEcolabelCsv: paths.EuEcolabelCsv,
		MatchesYaml:   paths.MatchesYaml,
		TcoYaml:       paths.TcoYaml,
		FtiYaml:       paths.FtiYaml,
	}, logger)
	if err != nil {
		return r, fmt.Errorf("condensing: load advisors: %w", err)
	}

	out := newOutputPaths(cfg)

	if err := runWikidata(ctx, paths.WikidataDump, out.wikidata, r, logger); err != nil {
		return r, err
	}
	if err := runOpenFoodFacts(ctx, paths.OpenFoodFactsTsv, out.openFoodFacts, advisorSet, r, logger); err != nil {
		return r, err
	}
	if err := runBCorp(ctx, paths.BCorpCsv, out.bcorp, logger); err != nil {
		return r, err
	}
	if err := runEuEcolabel(ctx, paths.EuEcolabelCsv, out.euEcolabel, advisorSet, r, logger); err != nil {
		return r, err
	}
	if err := runTco(ctx, paths.TcoYaml, out.tco, logger); err != nil {
		return r, err
	}
	if err := runFti(ctx, paths.FtiYaml, out.fti, logger); err != nil {
		return r, err
	}

	return r, nil
}

// runWikidata streams the already-filtered dump through the cataloger and
// into a Stash.
func runWikidata(ctx context.Context, dumpPath, outPath string, r *report.Report, logger *logrus.Logger) error {
	dump, err := wikidata.OpenDump(dumpPath)
	if err != nil {
		return fmt.Errorf("condensing: open filtered dump: %w", err)
	}
	defer dump.Close()

	f := flow.New(ctx, logger)
	items := flow.NewChannel[*wikidata.Item](0)
	records := flow.NewChannel[substrate.Record](0)

	flow.SpawnProducer(f, "wikidata-dump", func(ctx context.Context, out chan<- *wikidata.Item) error {
		for {
			line, err := dump.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			var entity wikidata.Entity
			if err := json.Unmarshal(line.Raw, &entity); err != nil {
				r.Add(ids.DataSetWikidata, report.KindParse, fmt.Sprintf("line %d: %v", line.Index, err))
				continue
			}
			if entity.Item == nil {
				continue
			}
			select {
			case out <- entity.Item:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}, items)

	flow.SpawnProcessors(f, "wikidata-cataloger", 0, func() flow.Processor[*wikidata.Item, substrate.Record] {
		return NewWikidataCataloger(r)
	}, items, records)

	flow.SpawnConsumer(f, "wikidata-stash", NewStash(outPath), records)

	return f.Join()
}

// runOpenFoodFacts loads the OFF export eagerly (it is already batched by
// ReadOpenFoodFacts) and feeds every row through the cataloger.
func runOpenFoodFacts(ctx context.Context, path, outPath string, advisorSet *advisors.Set, r *report.Report, logger *logrus.Logger) error {
	rows, err := sources.ReadOpenFoodFacts(path, logger)
	if err != nil {
		return fmt.Errorf("condensing: read open food facts: %w", err)
	}

	f := flow.New(ctx, logger)
	in := flow.NewChannel[sources.OpenFoodFactsRecord](0)
	records := flow.NewChannel[substrate.Record](0)

	flow.SpawnProducer(f, "open-food-facts-rows", func(ctx context.Context, out chan<- sources.OpenFoodFactsRecord) error {
		return emitAll(ctx, rows, out)
	}, in)

	regionsAdvisor := advisors.NewOpenFoodFactsAdvisor()
	flow.SpawnProcessors(f, "open-food-facts-cataloger", 0, func() flow.Processor[sources.OpenFoodFactsRecord, substrate.Record] {
		return NewOpenFoodFactsCataloger(regionsAdvisor, advisorSet.Matches, r)
	}, in, records)

	flow.SpawnConsumer(f, "open-food-facts-stash", NewStash(outPath), records)

	return f.Join()
}

func runBCorp(ctx context.Context, path, outPath string, logger *logrus.Logger) error {
	rows, err := sources.ReadBCorp(path, logger)
	if err != nil {
		return fmt.Errorf("condensing: read bcorp: %w", err)
	}

	f := flow.New(ctx, logger)
	in := flow.NewChannel[sources.BCorpRecord](0)
	records := flow.NewChannel[substrate.Record](0)

	flow.SpawnProducer(f, "bcorp-rows", func(ctx context.Context, out chan<- sources.BCorpRecord) error {
		return emitAll(ctx, rows, out)
	}, in)

	flow.SpawnProcessors(f, "bcorp-reviewer", 0, func() flow.Processor[sources.BCorpRecord, substrate.Record] {
		return NewBCorpReviewer()
	}, in, records)

	flow.SpawnConsumer(f, "bcorp-stash", NewStash(outPath), records)

	return f.Join()
}

func runEuEcolabel(ctx context.Context, path, outPath string, advisorSet *advisors.Set, r *report.Report, logger *logrus.Logger) error {
	rows, err := sources.ReadEuEcolabel(path, logger)
	if err != nil {
		return fmt.Errorf("condensing: read eu_ecolabel: %w", err)
	}

	f := flow.New(ctx, logger)
	in := flow.NewChannel[sources.EuEcolabelRecord](0)
	records := flow.NewChannel[substrate.Record](0)

	flow.SpawnProducer(f, "eu-ecolabel-rows", func(ctx context.Context, out chan<- sources.EuEcolabelRecord) error {
		return emitAll(ctx, rows, out)
	}, in)

	flow.SpawnProcessors(f, "eu-ecolabel-reviewer", 0, func() flow.Processor[sources.EuEcolabelRecord, substrate.Record] {
		return NewEuEcolabelReviewer(advisorSet.Matches, r)
	}, in, records)

	flow.SpawnConsumer(f, "eu-ecolabel-stash", NewStash(outPath), records)

	return f.Join()
}

func runTco(ctx context.Context, path, outPath string, logger *logrus.Logger) error {
	entries, err := sources.ReadTco(path, logger)
	if err != nil {
		return fmt.Errorf("condensing: read tco: %w", err)
	}

	f := flow.New(ctx, logger)
	in := flow.NewChannel[sources.TcoEntry](0)
	records := flow.NewChannel[substrate.Record](0)

	flow.SpawnProducer(f, "tco-rows", func(ctx context.Context, out chan<- sources.TcoEntry) error {
		return emitAll(ctx, entries, out)
	}, in)

	flow.SpawnProcessors(f, "tco-reviewer", 0, func() flow.Processor[sources.TcoEntry, substrate.Record] {
		return NewTcoReviewer()
	}, in, records)

	flow.SpawnConsumer(f, "tco-stash", NewStash(outPath), records)

	return f.Join()
}

func runFti(ctx context.Context, path, outPath string, logger *logrus.Logger) error {
	entries, err := sources.ReadFti(path, logger)
	if err != nil {
		return fmt.Errorf("condensing: read fti: %w", err)
	}

	f := flow.New(ctx, logger)
	in := flow.NewChannel[sources.FtiEntry](0)
	records := flow.NewChannel[substrate.Record](0)

	flow.SpawnProducer(f, "fti-rows", func(ctx context.Context, out chan<- sources.FtiEntry) error {
		return emitAll(ctx, entries, out)
	}, in)

	flow.SpawnProcessors(f, "fti-reviewer", 0, func() flow.Processor[sources.FtiEntry, substrate.Record] {
		return NewFtiReviewer()
	}, in, records)

	flow.SpawnConsumer(f, "fti-stash", NewStash(outPath), records)

	return f.Join()
}

// emitAll feeds every element of items to out, respecting ctx cancellation.
func emitAll[T any](ctx context.Context, items []T, out chan<- T) error {
	for _, item := range items {
		select {
		case out <- item:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
