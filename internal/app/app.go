// Package app wires each of the nine CLI subcommands (spec §6.3) to its
// stage pipeline. Modeled on the teacher's internal/app/app.go: a central
// App struct built once from a loaded Config and a logger, with one
// method per stage rather than one long-running daemon lifecycle, since
// this project's subcommands are independent batch jobs, not a resident
// service.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/coagulator"
	"github.com/transpaer/transpaer-knowledge/internal/condensing"
	"github.com/transpaer/transpaer-knowledge/internal/config"
	"github.com/transpaer/transpaer-knowledge/internal/connecting"
	"github.com/transpaer/transpaer-knowledge/internal/crystalizer"
	"github.com/transpaer/transpaer-knowledge/internal/oxidizing"
	"github.com/transpaer/transpaer-knowledge/internal/sampling"
	"github.com/transpaer/transpaer-knowledge/internal/score"
	"github.com/transpaer/transpaer-knowledge/internal/wikidata"
)

// App holds the configuration and logger every subcommand method shares.
type App struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// New builds an App from an already-loaded, already-validated Config.
func New(cfg *config.Config, logger *logrus.Logger) *App {
	return &App{cfg: cfg, logger: logger}
}

// coagulationStoreFile names the bbolt store coagulate builds and
// crystalize never opens directly (it reads the persisted Result files
// below instead); kept under cfg.Cache since it is scratch space the next
// run is free to discard and rebuild.
const coagulationStoreFile = "coagulate.db"

// producer/productResultFile name the coagulator.SaveResult output
// coagulate writes and crystalize reads back, since the two run as
// separate subcommands (spec §6.3) and share no process state.
const (
	producerResultFile = "coagulate-producers.jsonl"
	productResultFile  = "coagulate-products.jsonl"
)

// Dispatch runs the named subcommand. name must be one of the nine
// spec §6.3 stage names.
func (a *App) Dispatch(ctx context.Context, name string) error {
	switch name {
	case "extract":
		return a.Extract(ctx)
	case "filter":
		return a.Filter(ctx)
	case "update":
		return a.Update(ctx)
	case "condense":
		return a.Condense(ctx)
	case "coagulate":
		return a.Coagulate(ctx)
	case "crystalize":
		return a.Crystalize(ctx)
	case "oxidize":
		return a.Oxidize(ctx)
	case "connect":
		return a.Connect(ctx)
	case "sample":
		return a.Sample(ctx)
	default:
		return fmt.Errorf("app: unknown subcommand %q", name)
	}
}

// Extract runs C6's first pass: summarize the origin dump into the cache.
func (a *App) Extract(ctx context.Context) error {
	originDump := filepath.Join(a.cfg.Origin, wikidata.OriginDumpFileName)
	cachePath := filepath.Join(a.cfg.Cache, wikidata.CacheFileName)
	return wikidata.ExtractCache(ctx, originDump, cachePath, a.logger)
}

// Filter runs C6's second pass: write the filtered dump using the cache
// extract produced.
func (a *App) Filter(ctx context.Context) error {
	originDump := filepath.Join(a.cfg.Origin, wikidata.OriginDumpFileName)
	cachePath := filepath.Join(a.cfg.Cache, wikidata.CacheFileName)
	outPath := filepath.Join(a.cfg.Cache, wikidata.FilteredDumpFileName)
	return wikidata.FilterDump(ctx, originDump, cachePath, outPath, a.logger)
}

// Update checks every origin input against the substrate condensed from
// it and reports which are stale.
func (a *App) Update(ctx context.Context) error {
	paths := condensing.DefaultPaths(a.cfg)
	r, err := condensing.RunUpdate(a.cfg, paths, a.logger)
	if err != nil {
		return err
	}
	r.Print(a.logger)
	return nil
}

// Condense runs every condenser stage (C7), writing one substrate file
// per source.
func (a *App) Condense(ctx context.Context) error {
	paths := condensing.DefaultPaths(a.cfg)
	r, err := condensing.Run(ctx, a.cfg, paths, a.logger)
	if err != nil {
		return err
	}
	r.Print(a.logger)
	return nil
}

// Coagulate runs C8 over every substrate file, separately for producers
// and products, and persists both results for Crystalize to pick up.
func (a *App) Coagulate(ctx context.Context) error {
	paths, err := substrateFiles(a.cfg.Substrate)
	if err != nil {
		return fmt.Errorf("app: list substrate files: %w", err)
	}

	producerInputs, productInputs, err := coagulator.BuildInputs(paths)
	if err != nil {
		return fmt.Errorf("app: build coagulation inputs: %w", err)
	}

	if err := config.EnsureDir(a.cfg.Cache); err != nil {
		return fmt.Errorf("app: prepare cache dir: %w", err)
	}
	storePath := filepath.Join(a.cfg.Cache, coagulationStoreFile)
	if err := os.Remove(storePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("app: remove stale coagulation store: %w", err)
	}
	store, err := coagulator.OpenStore(storePath)
	if err != nil {
		return fmt.Errorf("app: open coagulation store: %w", err)
	}
	defer store.Close()

	producers := coagulator.New(store, coagulator.KindProducer, a.logger)
	producerResult, err := producers.Run(producerInputs)
	if err != nil {
		return fmt.Errorf("app: coagulate producers: %w", err)
	}
	a.logger.WithField("clusters", producerResult.NumClusters).Info("app: producers coagulated")

	products := coagulator.New(store, coagulator.KindProduct, a.logger)
	productResult, err := products.Run(productInputs)
	if err != nil {
		return fmt.Errorf("app: coagulate products: %w", err)
	}
	a.logger.WithField("clusters", productResult.NumClusters).Info("app: products coagulated")

	if err := coagulator.SaveResult(filepath.Join(a.cfg.Cache, producerResultFile), producerResult); err != nil {
		return fmt.Errorf("app: save producer result: %w", err)
	}
	if err := coagulator.SaveResult(filepath.Join(a.cfg.Cache, productResultFile), productResult); err != nil {
		return fmt.Errorf("app: save product result: %w", err)
	}
	return nil
}

// Crystalize runs C9: load the coagulation results Coagulate wrote, merge
// every substrate record through them, score, and write the final
// vertex/edge collections under cfg.Target.
func (a *App) Crystalize(ctx context.Context) error {
	producerResult, err := coagulator.LoadResult(filepath.Join(a.cfg.Cache, producerResultFile))
	if err != nil {
		return fmt.Errorf("app: load producer result: %w", err)
	}
	productResult, err := coagulator.LoadResult(filepath.Join(a.cfg.Cache, productResultFile))
	if err != nil {
		return fmt.Errorf("app: load product result: %w", err)
	}

	r, err := crystalizer.Run(a.cfg, producerResult, productResult, score.DefaultWeights, a.logger)
	if err != nil {
		return err
	}
	r.Print(a.logger)
	return nil
}

// Oxidize bundles every collection file crystalize wrote into a
// distributable archive plus manifest.
func (a *App) Oxidize(ctx context.Context) error {
	_, err := oxidizing.Run(a.cfg, a.logger)
	return err
}

// Connect collects every distinct company/brand name in the EU
// Ecolabel/Open Food Facts exports and writes the resolved subset to
// cfg.Support/matches.yaml.
func (a *App) Connect(ctx context.Context) error {
	paths := condensing.DefaultPaths(a.cfg)
	originDump := filepath.Join(a.cfg.Origin, wikidata.OriginDumpFileName)
	outPath := filepath.Join(a.cfg.Support, "matches.yaml")
	return connecting.Run(ctx, originDump, paths.EuEcolabelCsv, paths.OpenFoodFactsTsv, outPath, a.logger)
}

// Sample runs the structural acceptance check over cfg.Target.
func (a *App) Sample(ctx context.Context) error {
	findings, err := sampling.Run(a.cfg.Target, a.logger)
	if err != nil {
		return err
	}
	findings.Report(a.logger)
	if !findings.Empty() {
		return fmt.Errorf("app: sample check found problems, see log output")
	}
	return nil
}

func substrateFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		return nil, err
	}
	return matches, nil
}
