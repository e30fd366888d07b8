// Package connecting implements the supplemented `connect` stage: it
// collects every distinct company/brand name in the EU Ecolabel and Open
// Food Facts exports, then streams the Wikidata dump looking
// for the best-scoring organisation match for each, producing the
// matches.yaml table internal/advisors.NameMatchAdvisor reads (spec Open
// Question iii). Grounded on
// original_source/lab/src/connecting.rs's Matcher/Entry/ConnectionCollector.
package connecting

import (
	"context"
	"io"
	"os"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/transpaer/transpaer-knowledge/internal/advisors"
	"github.com/transpaer/transpaer-knowledge/internal/flow"
	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/internal/wikidata"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// entry tracks the best Wikidata candidate(s) found so far for one curated
// name: a tie keeps every id at the current best score, a strictly better
// score resets the set (mirroring connecting.rs's Entry::process).
type entry struct {
	name       string
	similarity float64
	wikiIds    map[ids.WikiId]struct{}
}

func newEntry(name string) *entry {
	return &entry{name: name, wikiIds: map[ids.WikiId]struct{}{}}
}

func (e *entry) process(wikiId ids.WikiId, labels []string) {
	best := 0.0
	for _, label := range labels {
		if score := advisors.Similarity(e.name, advisors.NormalizeName(label)); score > best {
			best = score
		}
	}
	switch {
	case best > e.similarity:
		e.wikiIds = map[ids.WikiId]struct{}{wikiId: {}}
		e.similarity = best
	case best == e.similarity && best > 0:
		e.wikiIds[wikiId] = struct{}{}
	}
}

// collectNames gathers every distinct company/brand name worth matching
// from the EU Ecolabel and Open Food Facts exports, normalized the same
// way NameMatchAdvisor normalizes its curated table.
func collectNames(euEcolabelPath, openFoodFactsPath string, logger *logrus.Logger) ([]string, error) {
	seen := map[string]struct{}{}

	euRows, err := sources.ReadEuEcolabel(euEcolabelPath, logger)
	if err != nil {
		return nil, err
	}
	for _, row := range euRows {
		if row.ProductOrServiceName == "" {
			continue
		}
		seen[advisors.NormalizeName(row.ProductOrServiceName)] = struct{}{}
	}

	offRows, err := sources.ReadOpenFoodFacts(openFoodFactsPath, logger)
	if err != nil {
		return nil, err
	}
	for _, row := range offRows {
		for _, brand := range row.Brands {
			seen[advisors.NormalizeName(brand)] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// outputMatch is one row of the generated matches.yaml, reusing
// sources.MatchEntry's shape.
type outputMatch = sources.MatchEntry

// Run scans euEcolabelPath/openFoodFactsPath for names, streams dumpPath
// looking for each name's best Wikidata organisation match, and writes the
// resolved subset to outputPath in the same shape NewNameMatchAdvisor reads.
func Run(ctx context.Context, dumpPath, euEcolabelPath, openFoodFactsPath, outputPath string, logger *logrus.Logger) error {
	names, err := collectNames(euEcolabelPath, openFoodFactsPath, logger)
	if err != nil {
		return err
	}
	logger.Infof("connecting: matching %d names against wikidata", len(names))

	entries := make(map[string]*entry, len(names))
	for _, name := range names {
		entries[name] = newEntry(name)
	}

	dump, err := wikidata.OpenDump(dumpPath)
	if err != nil {
		return err
	}
	defer dump.Close()

	f := flow.New(ctx, logger)
	items := flow.NewChannel[*wikidata.Item](0)

	flow.SpawnProducer(f, "connecting-dump", func(ctx context.Context, out chan<- *wikidata.Item) error {
		for {
			line, err := dump.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			var e wikidata.Entity
			if err := json.Unmarshal(line.Raw, &e); err != nil {
				continue
			}
			if e.Item == nil || !e.Item.IsOrganisation() {
				continue
			}
			select {
			case out <- e.Item:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}, items)

	var mu sync.Mutex
	flow.SpawnProcessors(f, "connecting-matcher", 0, func() flow.Processor[*wikidata.Item, struct{}] {
		return &matcher{entries: entries, mu: &mu}
	}, items, flow.NewChannel[struct{}](0))

	if err := f.Join(); err != nil {
		return err
	}

	return writeMatches(outputPath, entries)
}

// matcher fans every streamed organisation item across all pending entries;
// it emits nothing downstream, so its Out is the zero-width struct{}.
// Every worker's factory closure captures the same entries map and mutex —
// unlike the per-worker-private accumulators the other condensing stages
// use, every candidate name here genuinely needs to see every item, so the
// state is shared and lock-guarded rather than merged at Finish.
type matcher struct {
	entries map[string]*entry
	mu      *sync.Mutex
}

func (m *matcher) Process(item *wikidata.Item, out chan<- struct{}) error {
	id, err := ids.ParseWikiId(item.Id)
	if err != nil {
		return nil
	}
	var labels []string
	for _, l := range item.GetAllLabels() {
		labels = append(labels, l.Value)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		e.process(id, labels)
	}
	return nil
}

func (m *matcher) Finish(out chan<- struct{}) error { return nil }

// writeMatches emits one row per name resolved to exactly one Wikidata
// candidate above zero similarity (an ambiguous tie, like an unmatched
// name, is left out of the curated table rather than guessed).
func writeMatches(path string, entries map[string]*entry) error {
	var matches []outputMatch
	for name, e := range entries {
		if len(e.wikiIds) != 1 {
			continue
		}
		var only ids.WikiId
		for id := range e.wikiIds {
			only = id
		}
		matches = append(matches, outputMatch{Name: name, WikiId: only})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })

	data, err := yaml.Marshal(matches)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
