// Package oxidizing implements the `oxidize` CLI subcommand: the final
// packaging step after crystalize, transcribing the collection files
// written to cfg.Target into a single distributable bundle plus a
// manifest describing its contents.
//
// original_source/lab/src/config.rs's OxidationConfig ("the `transcribe`
// command") converts a crystalized graph into a separate application's
// storage format (a `library.yaml` input describing already-published
// datasets, plus an `app_storage` database this pack's retained files
// never implement). That target application's storage engine has no
// equivalent anywhere in this corpus, so this port narrows the stage to
// what it can ground concretely: producing the library.yaml manifest and
// bundling the collections into one distributable archive, named after
// the same `library.yaml` file OxidationConfig reads.
package oxidizing

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/transpaer/transpaer-knowledge/internal/config"
)

// CollectionSummary describes one collection file bundled into the
// library archive.
type CollectionSummary struct {
	Name  string `yaml:"name"`
	Lines int    `yaml:"lines"`
	Bytes int64  `yaml:"bytes"`
}

// Manifest is the library.yaml written alongside the archive: a plain
// inventory of what crystalize produced, not a queryable index.
type Manifest struct {
	Collections []CollectionSummary `yaml:"collections"`
}

// ManifestFileName is the manifest written to cfg.Target, named after
// OxidationConfig's library_file_path.
const ManifestFileName = "library.yaml"

// ArchiveFileName is the distributable bundle of every collection file.
const ArchiveFileName = "library.tar.gz"

// Run reads every *.jsonl collection file crystalize wrote to cfg.Target,
// summarizes them into a Manifest written as ManifestFileName, and bundles
// them into a single gzip-compressed tar archive at ArchiveFileName.
func Run(cfg *config.Config, logger *logrus.Logger) (*Manifest, error) {
	paths, err := collectionFiles(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("oxidizing: list collections: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("oxidizing: no collection files found under %s", cfg.Target)
	}

	manifest := &Manifest{}
	for _, path := range paths {
		summary, err := summarize(path)
		if err != nil {
			return nil, fmt.Errorf("oxidizing: summarize %s: %w", path, err)
		}
		manifest.Collections = append(manifest.Collections, summary)
		logger.Infof("oxidizing: %s: %d lines, %d bytes", summary.Name, summary.Lines, summary.Bytes)
	}

	manifestPath := filepath.Join(cfg.Target, ManifestFileName)
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("oxidizing: encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("oxidizing: write manifest %s: %w", manifestPath, err)
	}

	archivePath := filepath.Join(cfg.Target, ArchiveFileName)
	if err := bundle(archivePath, paths); err != nil {
		return nil, fmt.Errorf("oxidizing: bundle archive: %w", err)
	}
	logger.Infof("oxidizing: wrote %s and %s", manifestPath, archivePath)

	return manifest, nil
}

// collectionFiles lists every *.jsonl file directly under dir, sorted for
// deterministic manifest/archive ordering.
func collectionFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func summarize(path string) (CollectionSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return CollectionSummary{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return CollectionSummary{}, err
	}

	lines := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines++
	}
	if err := scanner.Err(); err != nil {
		return CollectionSummary{}, err
	}

	return CollectionSummary{
		Name:  filepath.Base(path),
		Lines: lines,
		Bytes: info.Size(),
	}, nil
}

// bundle writes every path into a gzip-compressed tar archive at
// archivePath, each entry named by its base filename.
func bundle(archivePath string, paths []string) error {
	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for _, path := range paths {
		if err := addFile(tw, path); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}

func addFile(tw *tar.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = filepath.Base(path)
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err = io.Copy(tw, f)
	return err
}
