package sampling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRunPassesWithConsistentCollections(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, filepath.Join(dir, "organisations.jsonl"), `{"_key":"1"}`)
	writeLines(t, filepath.Join(dir, "products.jsonl"), `{"_key":"2"}`)
	writeLines(t, filepath.Join(dir, "manufacturing_edges.jsonl"), `{"_from":"organisations/1","_to":"products/2"}`)

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	findings, err := Run(dir, logger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !findings.Empty() {
		t.Fatalf("expected no findings, got %+v", findings.Items())
	}
}

func TestRunFlagsDanglingEdgeReference(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, filepath.Join(dir, "organisations.jsonl"), `{"_key":"1"}`)
	writeLines(t, filepath.Join(dir, "products.jsonl"), `{"_key":"2"}`)
	writeLines(t, filepath.Join(dir, "manufacturing_edges.jsonl"), `{"_from":"organisations/1","_to":"products/999"}`)

	logger := logrus.New()
	findings, err := Run(dir, logger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if findings.Empty() {
		t.Fatal("expected a dangling reference finding")
	}
}

func TestRunFlagsDuplicateVertexKey(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, filepath.Join(dir, "organisations.jsonl"), `{"_key":"1"}`, `{"_key":"1"}`)

	logger := logrus.New()
	findings, err := Run(dir, logger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if findings.Empty() {
		t.Fatal("expected a duplicate key finding")
	}
}
