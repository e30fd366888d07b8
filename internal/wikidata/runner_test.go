package wikidata

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

func writeFilterableDump(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "origin.json.gz")
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
	return path
}

func TestExtractThenFilterKeepsOnlyRelevantItems(t *testing.T) {
	originPath := writeFilterableDump(t)
	cacheDir := t.TempDir()
	cachePath := filepath.Join(cacheDir, CacheFileName)
	filteredPath := filepath.Join(cacheDir, FilteredDumpFileName)

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if err := ExtractCache(context.Background(), originPath, cachePath, logger); err != nil {
		t.Fatalf("extract: %v", err)
	}

	prefilter, err := LoadPrefilterResult(cachePath)
	if err != nil {
		t.Fatalf("load cache: %v", err)
	}
	if _, ok := prefilter.Manufacturers[100]; !ok {
		t.Fatalf("expected manufacturer 100 in cached prefilter, got %+v", prefilter)
	}

	if err := FilterDump(context.Background(), originPath, cachePath, filteredPath, logger); err != nil {
		t.Fatalf("filter: %v", err)
	}

	dump, err := OpenDump(filteredPath)
	if err != nil {
		t.Fatalf("open filtered dump: %v", err)
	}
	defer dump.Close()

	var ids []string
	for {
		line, err := dump.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		var e Entity
		if err := json.Unmarshal(line.Raw, &e); err != nil {
			t.Fatalf("decode filtered line: %v", err)
		}
		ids = append(ids, e.Item.Id)
	}

	want := map[string]bool{"Q5": true, "Q100": true}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want keys of %v", ids, want)
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected surviving item %q", id)
		}
	}
}
