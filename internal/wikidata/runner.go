package wikidata

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/flow"
)

// CacheFileName is the prefilter summary ExtractCache writes and FilterDump
// reads back, grounded on original_source/lab/src/config.rs's
// CacheConfig::new ("wikidata_cache.json"). Unlike the original, which
// leaves the prefilter result implicit in that file's shape, this port
// stores it as the literal JSON encoding of PrefilterResult.
const CacheFileName = "wikidata_cache.json"

// FilteredDumpFileName is the file FilterDump writes its survivors to,
// matching the path internal/condensing.DefaultPaths already expects.
const FilteredDumpFileName = "wikidata-filtered.json.gz"

// OriginDumpFileName is the full Wikidata dump extract/filter/connect read
// from cfg.Origin, grounded on original_source/lab/src/config.rs's
// WikidataProducerConfig::new_full, which joins the origin directory
// against this literal name.
const OriginDumpFileName = "wikidata-20250519-all.json.gz"

// ExtractCache implements the `extract` CLI subcommand (spec §6.3):
// original_source/lab/src/config.rs's ExtractingConfig reads the full
// origin dump once and writes a cache summary before any filtering
// happens. Here that summary is PrefilterResult — the first of C6's two
// passes — serialized to cachePath so a later `filter` run does not need
// to re-scan the (multi-gigabyte) origin dump for class/manufacturer
// references.
func ExtractCache(ctx context.Context, originDumpPath, cachePath string, logger *logrus.Logger) error {
	prefilter, err := runPrefilterPass(ctx, originDumpPath, logger)
	if err != nil {
		return fmt.Errorf("wikidata: extract: %w", err)
	}
	logger.Infof("wikidata: extract found %d classes, %d manufacturers", len(prefilter.Classes), len(prefilter.Manufacturers))

	data, err := json.Marshal(prefilter)
	if err != nil {
		return fmt.Errorf("wikidata: extract: encode cache: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return fmt.Errorf("wikidata: extract: write cache %s: %w", cachePath, err)
	}
	return nil
}

// LoadPrefilterResult reads back the cache ExtractCache wrote.
func LoadPrefilterResult(cachePath string) (PrefilterResult, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return PrefilterResult{}, fmt.Errorf("wikidata: read cache %s: %w", cachePath, err)
	}
	result := newPrefilterResult()
	if err := json.Unmarshal(data, &result); err != nil {
		return PrefilterResult{}, fmt.Errorf("wikidata: decode cache %s: %w", cachePath, err)
	}
	return result, nil
}

// FilterDump implements the `filter` CLI subcommand (spec §4.6/C6's second
// pass): re-reads the origin dump against the prefilter cache ExtractCache
// already wrote, keeping only items FilterProcessor deems relevant, and
// writes the survivors to outPath as a freshly gzip-compressed,
// line-per-entity dump. Grounded on
// original_source/lab/src/config.rs's FilteringConfig, which reads both
// the origin dump (for the second scan) and the cache (check_read) and
// writes wikidata_filtered_dump_path.
func FilterDump(ctx context.Context, originDumpPath, cachePath, outPath string, logger *logrus.Logger) error {
	prefilter, err := LoadPrefilterResult(cachePath)
	if err != nil {
		return fmt.Errorf("wikidata: filter: %w", err)
	}
	if err := runFilterPass(ctx, originDumpPath, outPath, prefilter, logger); err != nil {
		return fmt.Errorf("wikidata: filter: %w", err)
	}
	return nil
}

// rawItem pairs a decoded Item with the exact dump line it came from, so
// the filter pass can re-emit surviving entities byte-for-byte rather than
// re-marshaling a parsed approximation.
type rawItem struct {
	raw  []byte
	item *Item
}

// runPrefilterPass streams the raw dump once through PrefilterCollector.
func runPrefilterPass(ctx context.Context, dumpPath string, logger *logrus.Logger) (PrefilterResult, error) {
	dump, err := OpenDump(dumpPath)
	if err != nil {
		return PrefilterResult{}, err
	}
	defer dump.Close()

	f := flow.New(ctx, logger)
	items := flow.NewChannel[*Item](0)

	flow.SpawnProducer(f, "prefilter-dump", func(ctx context.Context, out chan<- *Item) error {
		return streamItems(ctx, dump, out)
	}, items)

	collector := NewPrefilterCollector()
	flow.SpawnConsumer(f, "prefilter-collector", collector, items)

	if err := f.Join(); err != nil {
		return PrefilterResult{}, err
	}
	return collector.Result(), nil
}

// runFilterPass streams the raw dump a second time, keeping only items
// isRelevant accepts, and writes survivors to a new gzipped dump.
func runFilterPass(ctx context.Context, dumpPath, outPath string, prefilter PrefilterResult, logger *logrus.Logger) error {
	dump, err := OpenDump(dumpPath)
	if err != nil {
		return err
	}
	defer dump.Close()

	writer, err := newGzipLineWriter(outPath)
	if err != nil {
		return err
	}

	f := flow.New(ctx, logger)
	raws := flow.NewChannel[rawItem](0)
	lines := flow.NewChannel[[]byte](0)

	flow.SpawnProducer(f, "filter-dump", func(ctx context.Context, out chan<- rawItem) error {
		return streamRawItems(ctx, dump, out)
	}, raws)

	filter := NewFilterProcessor(prefilter)
	flow.SpawnProcessors(f, "filter-pass", 0, func() flow.Processor[rawItem, []byte] {
		return &filterPass{filter: filter}
	}, raws, lines)

	flow.SpawnConsumer(f, "filter-writer", writer, lines)

	return f.Join()
}

// streamItems decodes every entity line of dump into an Item.
func streamItems(ctx context.Context, dump *Dump, out chan<- *Item) error {
	for {
		line, err := dump.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		var entity Entity
		if err := json.Unmarshal(line.Raw, &entity); err != nil {
			continue
		}
		if entity.Item == nil {
			continue
		}
		select {
		case out <- entity.Item:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// streamRawItems decodes each dump line and forwards the parsed Item
// alongside the raw bytes it came from.
func streamRawItems(ctx context.Context, dump *Dump, out chan<- rawItem) error {
	for {
		line, err := dump.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		var entity Entity
		if err := json.Unmarshal(line.Raw, &entity); err != nil {
			continue
		}
		if entity.Item == nil {
			continue
		}
		select {
		case out <- rawItem{raw: line.Raw, item: entity.Item}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// filterPass adapts FilterProcessor's relevance check to raw-line
// passthrough, so a surviving item is re-emitted exactly as it was read.
type filterPass struct {
	filter *FilterProcessor
}

func (p *filterPass) Process(in rawItem, out chan<- []byte) error {
	if p.filter.isRelevant(in.item) {
		out <- in.raw
	}
	return nil
}

func (p *filterPass) Finish(out chan<- []byte) error { return nil }

// gzipLineWriter is a flow.Consumer writing each []byte as its own
// newline-terminated, gzip-compressed dump line, mirroring Dump's reading
// convention (stripArrayDecoration tolerates the absence of the original
// export's "[...]," wrapping, so the filtered dump is plain JSON-lines).
type gzipLineWriter struct {
	file *os.File
	gz   *gzip.Writer
	buf  *bufio.Writer
}

func newGzipLineWriter(path string) (*gzipLineWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wikidata: create filtered dump %s: %w", path, err)
	}
	gz := gzip.NewWriter(f)
	return &gzipLineWriter{file: f, gz: gz, buf: bufio.NewWriter(gz)}, nil
}

func (w *gzipLineWriter) Consume(line []byte) error {
	if _, err := w.buf.Write(line); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

func (w *gzipLineWriter) Finish() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if err := w.gz.Close(); err != nil {
		return err
	}
	return w.file.Close()
}
