package connecting

import (
	"os"
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

func TestEntryProcessKeepsBestScoringCandidate(t *testing.T) {
	e := newEntry("acme corp")
	e.process(ids.WikiId(1), []string{"Acme Corporation"})
	e.process(ids.WikiId(2), []string{"Totally Unrelated"})

	if _, ok := e.wikiIds[ids.WikiId(1)]; !ok {
		t.Errorf("expected id 1 to remain best match, got %+v", e.wikiIds)
	}
	if len(e.wikiIds) != 1 {
		t.Errorf("expected exactly one best candidate, got %+v", e.wikiIds)
	}
}

func TestEntryProcessKeepsTiesAtEqualScore(t *testing.T) {
	e := newEntry("acme")
	e.process(ids.WikiId(1), []string{"acme"})
	e.process(ids.WikiId(2), []string{"acme"})

	if len(e.wikiIds) != 2 {
		t.Errorf("expected both exact-match ids kept as a tie, got %+v", e.wikiIds)
	}
}

func TestWriteMatchesSkipsAmbiguousAndUnmatchedEntries(t *testing.T) {
	entries := map[string]*entry{
		"resolved":  {name: "resolved", similarity: 1, wikiIds: map[ids.WikiId]struct{}{1: {}}},
		"ambiguous": {name: "ambiguous", similarity: 0.9, wikiIds: map[ids.WikiId]struct{}{2: {}, 3: {}}},
		"unmatched": {name: "unmatched", similarity: 0, wikiIds: map[ids.WikiId]struct{}{}},
	}

	path := t.TempDir() + "/matches.yaml"
	if err := writeMatches(path, entries); err != nil {
		t.Fatalf("write matches: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var data []outputMatch
	if err := yaml.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(data) != 1 || data[0].Name != "resolved" || data[0].WikiId != ids.WikiId(1) {
		t.Fatalf("expected only the resolved entry written, got %+v", data)
	}
}
