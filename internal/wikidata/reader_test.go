package wikidata

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func writeSampleDump(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.json.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	lines := []string{
		"[\n",
		`{"type":"item","id":"Q1"},` + "\n",
		`{"type":"item","id":"Q2"},` + "\n",
		`{"type":"item","id":"Q3"}` + "\n",
		"]\n",
	}
	for _, l := range lines {
		if _, err := gz.Write([]byte(l)); err != nil {
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

func TestDumpStripsArrayDecorationAndYieldsEveryLine(t *testing.T) {
	path := writeSampleDump(t)
	dump, err := OpenDump(path)
	if err != nil {
		t.Fatal(err)
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
			t.Fatalf("line %d: %v", line.Index, err)
		}
		ids = append(ids, e.Item.Id)
	}

	want := []string{"Q1", "Q2", "Q3"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, ids[i], want[i])
		}
	}
}
