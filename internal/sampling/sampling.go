// Package sampling implements the supplemented `sample` stage: a
// post-crystalization acceptance check over the collections written to
// cfg.Target, verifying the structural invariants spec §7 kind 6 names
// ("every edge's from/to references a vertex emitted in the same run",
// "every collection's keys are unique") without depending on any specific
// dataset's contents, since — unlike
// original_source/lab/src/sampling.rs, which asserts fixed facts about one
// well-known product/organisation (Fairphone) present only in the
// original's reference dataset — this module has no such fixture to
// depend on. Grounded on sampling.rs's Findings/Finding accumulate-then-
// report pattern, generalized from fixed-value assertions to structural
// ones.
package sampling

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Finding is one failed check, already formatted for logging.
type Finding string

// Findings accumulates check failures the way sampling.rs's Findings did,
// without aborting the run on the first problem.
type Findings struct {
	items []Finding
}

func (f *Findings) add(format string, args ...interface{}) {
	f.items = append(f.items, Finding(fmt.Sprintf(format, args...)))
}

// Empty reports whether every check passed.
func (f *Findings) Empty() bool { return len(f.items) == 0 }

// Items returns every recorded finding, in the order checks ran.
func (f *Findings) Items() []Finding {
	out := make([]Finding, len(f.items))
	copy(out, f.items)
	return out
}

// Report logs "ALL OK" if no findings were recorded, or every finding as an
// error line otherwise (sampling.rs's Findings::report).
func (f *Findings) Report(logger *logrus.Logger) {
	if f.Empty() {
		logger.Info("sampling: ALL OK")
		return
	}
	for _, finding := range f.items {
		logger.Error("sampling: " + string(finding))
	}
}

// vertexKeys reads one vertex collection file, returning its set of keys
// and reporting any duplicate found along the way (spec §7 kind 6, the
// same invariant CollectionWriter.WriteVertices already enforces at write
// time — this re-checks it on the files actually on disk).
func vertexKeys(path string, findings *Findings) (map[string]struct{}, error) {
	keys := map[string]struct{}{}
	err := forEachLine(path, func(line []byte) error {
		var row map[string]interface{}
		if err := json.Unmarshal(line, &row); err != nil {
			return fmt.Errorf("sampling: decode %s: %w", path, err)
		}
		key, _ := row["_key"].(string)
		if key == "" {
			findings.add("%s: vertex with empty _key", path)
			return nil
		}
		if _, ok := keys[key]; ok {
			findings.add("%s: duplicate vertex key %q", path, key)
		}
		keys[key] = struct{}{}
		return nil
	})
	return keys, err
}

type edgeRow struct {
	From string `json:"_from"`
	To   string `json:"_to"`
}

// checkEdges verifies every edge's _from/_to both resolve into the loaded
// vertex collections (spec §7 kind 6 / §6.2's "every edge references a
// vertex emitted in the same run").
func checkEdges(path string, collections map[string]map[string]struct{}, findings *Findings) error {
	return forEachLine(path, func(line []byte) error {
		var e edgeRow
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("sampling: decode %s: %w", path, err)
		}
		checkRef(path, "_from", e.From, collections, findings)
		checkRef(path, "_to", e.To, collections, findings)
		return nil
	})
}

func checkRef(path, field, ref string, collections map[string]map[string]struct{}, findings *Findings) {
	collection, key, ok := strings.Cut(ref, "/")
	if !ok {
		findings.add("%s: %s %q is not collection-qualified", path, field, ref)
		return
	}
	keys, ok := collections[collection]
	if !ok {
		findings.add("%s: %s references unknown collection %q", path, field, collection)
		return
	}
	if _, ok := keys[key]; !ok {
		findings.add("%s: %s %q not found in collection %q", path, field, ref, collection)
	}
}

func forEachLine(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("sampling: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if err := fn(scanner.Bytes()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// vertexCollectionNames are every *.jsonl file that holds vertices rather
// than edges, matching the collection names internal/crystalizer.Run
// writes.
var vertexCollectionNames = []string{
	"organisations", "products",
	"organisation_keywords", "product_keywords",
	"categories",
	"wiki", "vat", "domain", "gtin", "ean",
}

// edgeCollectionNames are every *_edges.jsonl file internal/crystalizer.Run
// writes, alongside the standalone manufacturing edge set (which has no
// vertex collection of its own).
var edgeCollectionNames = []string{
	"organisation_keywords", "product_keywords", "categories",
	"wiki", "vat", "domain", "gtin", "ean",
	"manufacturing",
}

// Run loads every vertex collection under targetDir, checks each for
// internal key uniqueness, then checks every edge collection's references
// resolve into a loaded vertex collection.
func Run(targetDir string, logger *logrus.Logger) (*Findings, error) {
	findings := &Findings{}
	collections := map[string]map[string]struct{}{}

	for _, name := range vertexCollectionNames {
		path := filepath.Join(targetDir, name+".jsonl")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		keys, err := vertexKeys(path, findings)
		if err != nil {
			return nil, err
		}
		collections[name] = keys
		logger.Infof("sampling: %s: %d vertices", name, len(keys))
	}

	for _, name := range edgeCollectionNames {
		path := filepath.Join(targetDir, name+"_edges.jsonl")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := checkEdges(path, collections, findings); err != nil {
			return nil, err
		}
	}

	return findings, nil
}
