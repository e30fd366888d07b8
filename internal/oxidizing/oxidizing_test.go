package oxidizing

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/transpaer/transpaer-knowledge/internal/config"
)

func TestRunWritesManifestAndArchive(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "organisations.jsonl"), []byte("{\"_key\":\"1\"}\n{\"_key\":\"2\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "products.jsonl"), []byte("{\"_key\":\"1\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Target: dir}
	logger := logrus.New()

	manifest, err := Run(cfg, logger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(manifest.Collections) != 2 {
		t.Fatalf("expected 2 collections summarized, got %d", len(manifest.Collections))
	}

	raw, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var onDisk Manifest
	if err := yaml.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if len(onDisk.Collections) != 2 {
		t.Fatalf("expected manifest on disk to list 2 collections, got %d", len(onDisk.Collections))
	}

	f, err := os.Open(filepath.Join(dir, ArchiveFileName))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("open gzip: %v", err)
	}
	tr := tar.NewReader(gz)
	var names []string
	for {
		hdr, err := tr.Next()
		if err != nil {
			break
		}
		names = append(names, hdr.Name)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 archive entries, got %v", names)
	}
}

func TestRunFailsWhenNoCollectionsPresent(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Target: dir}
	logger := logrus.New()

	if _, err := Run(cfg, logger); err == nil {
		t.Fatal("expected an error when no collection files exist")
	}
}
