package coagulator

import (
	"bufio"
	"fmt"
	"os"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// The coagulate and crystalize CLI subcommands run as separate processes
// (spec §6.3), so a Result computed by one must be handed to the other
// through disk rather than through Go state. SaveResult/LoadResult give it
// the same newline-delimited-JSON shape every other stage output uses
// (pkg/substrate's Writer/Reader), rather than gob or a bbolt file, since
// nothing downstream needs random access to it.

// persistedAssignment is one (external, unique) pair. Result.Assignments is
// keyed by ids.ExternalId.String(), which is not also a valid JSON object
// key shape in every case (the data set tag may collide with JSON's own
// escaping rules), so the persisted form is a flat list of pairs instead of
// an object.
type persistedAssignment struct {
	External string       `json:"external"`
	Unique   ids.UniqueId `json:"unique"`
}

type resultHeader struct {
	NumClusters uint64 `json:"num_clusters"`
	NumEmptyIds uint64 `json:"num_empty_ids"`
}

// SaveResult writes r to path: one header line with the cluster/empty-id
// counters, then one line per external→unique assignment.
func SaveResult(path string, r *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("coagulator: create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if err := writeJSONLine(w, resultHeader{NumClusters: r.NumClusters, NumEmptyIds: r.NumEmptyIds}); err != nil {
		return err
	}
	for external, unique := range r.Assignments {
		if err := writeJSONLine(w, persistedAssignment{External: external, Unique: unique}); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeJSONLine(w *bufio.Writer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("coagulator: marshal result line: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("coagulator: write result line: %w", err)
	}
	return w.WriteByte('\n')
}

// LoadResult reads a Result previously written by SaveResult.
func LoadResult(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("coagulator: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	result := &Result{Assignments: map[string]ids.UniqueId{}}
	first := true
	for scanner.Scan() {
		line := scanner.Bytes()
		if first {
			first = false
			var header resultHeader
			if err := json.Unmarshal(line, &header); err != nil {
				return nil, fmt.Errorf("coagulator: decode header: %w", err)
			}
			result.NumClusters = header.NumClusters
			result.NumEmptyIds = header.NumEmptyIds
			continue
		}
		var pa persistedAssignment
		if err := json.Unmarshal(line, &pa); err != nil {
			return nil, fmt.Errorf("coagulator: decode assignment: %w", err)
		}
		result.Assignments[pa.External] = pa.Unique
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("coagulator: scan %s: %w", path, err)
	}
	return result, nil
}
