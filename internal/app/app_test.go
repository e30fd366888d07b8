package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/coagulator"
	"github.com/transpaer/transpaer-knowledge/internal/config"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	return logger
}

func TestDispatchRejectsUnknownSubcommand(t *testing.T) {
	a := New(&config.Config{}, testLogger())
	if err := a.Dispatch(context.Background(), "nonsense"); err == nil {
		t.Fatal("expected an error for an unrecognized subcommand")
	}
}

func writeExtractableDump(t *testing.T, originDir string) {
	t.Helper()
	path := filepath.Join(originDir, "wikidata-20250519-all.json.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	lines := []string{
		`{"type":"item","id":"Q5","claims":{"P176":[{"mainsnak":{"property":"P176","datatype":"wikibase-item","datavalue":{"type":"wikibase-entityid","value":{"entity-type":"item","id":"Q100","numeric-id":100}}}}]}}`,
		`{"type":"item","id":"Q100"}`,
		`{"type":"item","id":"Q999999"}`,
	}
	for _, l := range lines {
		if _, err := gz.Write([]byte(l + "\n")); err != nil {
			t.Fatal(err)
		}
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractThenFilterViaApp(t *testing.T) {
	originDir := t.TempDir()
	cacheDir := t.TempDir()
	writeExtractableDump(t, originDir)

	cfg := &config.Config{Origin: originDir, Cache: cacheDir}
	a := New(cfg, testLogger())
	ctx := context.Background()

	if err := a.Dispatch(ctx, "extract"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if err := a.Dispatch(ctx, "filter"); err != nil {
		t.Fatalf("filter: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cacheDir, "wikidata-filtered.json.gz")); err != nil {
		t.Fatalf("expected filtered dump written: %v", err)
	}
}

// writeProducerSubstrate writes one catalog record naming wikiId as the
// producer's own Wikidata individual, under externalId. Two records sharing
// a WikiId (one from Wikidata itself, one from another cataloger that
// resolved to the same Wikidata entity) are the minimal case that exercises
// coagulation's merge rule: they must land in the same cluster.
func writeProducerSubstrate(t *testing.T, w *substrate.Writer, externalId ids.ExternalId, wikiId ids.WikiId) {
	t.Helper()
	producer := models.NewProducer(0)
	producer.Ids.Wiki[wikiId] = struct{}{}
	if err := w.Write(substrate.Record{
		ExternalId: externalId,
		Producer:   &producer,
	}); err != nil {
		t.Fatal(err)
	}
}

func TestCoagulateThenCrystalizeViaApp(t *testing.T) {
	substrateDir := t.TempDir()
	cacheDir := t.TempDir()
	targetDir := t.TempDir()

	w, err := substrate.CreateWriter(filepath.Join(substrateDir, "wikidata.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	writeProducerSubstrate(t, w, ids.NewExternalId(ids.DataSetWikidata, "Q100"), 100)
	writeProducerSubstrate(t, w, ids.NewExternalId(ids.DataSetOpenFoodFacts, "off-acme"), 100)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Substrate: substrateDir, Cache: cacheDir, Target: targetDir}
	a := New(cfg, testLogger())
	ctx := context.Background()

	if err := a.Dispatch(ctx, "coagulate"); err != nil {
		t.Fatalf("coagulate: %v", err)
	}

	producerResult, err := coagulator.LoadResult(filepath.Join(cacheDir, producerResultFile))
	if err != nil {
		t.Fatalf("load producer result: %v", err)
	}
	if producerResult.NumClusters != 1 {
		t.Fatalf("expected the two externals sharing WikiId 100 to coagulate into 1 cluster, got %d", producerResult.NumClusters)
	}
	if producerResult.NumEmptyIds != 0 {
		t.Fatalf("expected no empty-id singletons, got %d", producerResult.NumEmptyIds)
	}

	if err := a.Dispatch(ctx, "crystalize"); err != nil {
		t.Fatalf("crystalize: %v", err)
	}

	if _, err := os.Stat(filepath.Join(targetDir, "organisations.jsonl")); err != nil {
		t.Fatalf("expected organisations collection written: %v", err)
	}
}
