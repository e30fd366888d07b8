package condensing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/config"
)

func writeAt(t *testing.T, path string, when time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func TestRunUpdateFlagsStaleOrigin(t *testing.T) {
	originDir := t.TempDir()
	substrateDir := t.TempDir()
	cfg := &config.Config{Substrate: substrateDir}

	old := time.Now().Add(-time.Hour)
	newer := time.Now()

	paths := Paths{
		WikidataDump:     filepath.Join(originDir, "wikidata.jsonl.gz"),
		OpenFoodFactsTsv: filepath.Join(originDir, "off.csv"),
		BCorpCsv:         filepath.Join(originDir, "bcorp.csv"),
		EuEcolabelCsv:    filepath.Join(originDir, "eu.csv"),
		TcoYaml:          filepath.Join(originDir, "tco.yaml"),
		FtiYaml:          filepath.Join(originDir, "fti.yaml"),
	}
	for _, p := range []string{paths.WikidataDump, paths.OpenFoodFactsTsv, paths.BCorpCsv, paths.EuEcolabelCsv, paths.TcoYaml, paths.FtiYaml} {
		writeAt(t, p, old)
	}

	out := newOutputPaths(cfg)
	for _, p := range []string{out.wikidata, out.openFoodFacts, out.euEcolabel, out.tco, out.fti} {
		writeAt(t, p, old)
	}
	// bcorp substrate is older than a freshly re-downloaded bcorp.csv.
	writeAt(t, paths.BCorpCsv, newer)
	writeAt(t, out.bcorp, old)

	logger := logrus.New()
	r, err := RunUpdate(cfg, paths, logger)
	if err != nil {
		t.Fatalf("run update: %v", err)
	}
	if r.Total() != 1 {
		t.Fatalf("expected exactly one stale finding, got %d", r.Total())
	}
}

func TestRunUpdateTreatsMissingSubstrateAsStale(t *testing.T) {
	originDir := t.TempDir()
	substrateDir := t.TempDir()
	cfg := &config.Config{Substrate: substrateDir}

	now := time.Now()
	paths := Paths{
		WikidataDump:     filepath.Join(originDir, "wikidata.jsonl.gz"),
		OpenFoodFactsTsv: filepath.Join(originDir, "off.csv"),
		BCorpCsv:         filepath.Join(originDir, "bcorp.csv"),
		EuEcolabelCsv:    filepath.Join(originDir, "eu.csv"),
		TcoYaml:          filepath.Join(originDir, "tco.yaml"),
		FtiYaml:          filepath.Join(originDir, "fti.yaml"),
	}
	for _, p := range []string{paths.WikidataDump, paths.OpenFoodFactsTsv, paths.BCorpCsv, paths.EuEcolabelCsv, paths.TcoYaml, paths.FtiYaml} {
		writeAt(t, p, now)
	}

	logger := logrus.New()
	r, err := RunUpdate(cfg, paths, logger)
	if err != nil {
		t.Fatalf("run update: %v", err)
	}
	if r.Total() != 6 {
		t.Fatalf("expected every dataset flagged stale (no substrate yet), got %d", r.Total())
	}
}
