package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestForEachRowYieldsHeaderBackedRows(t *testing.T) {
	path := writeFile(t, "name,website\nAcme,acme.example\nWidgetCo,widgetco.example\n")

	var names []string
	err := ForEachRow(path, nil, func(row Row) error {
		name, ok := row.Get("name")
		if !ok {
			t.Fatal("expected name column")
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "Acme" || names[1] != "WidgetCo" {
		t.Errorf("got %v", names)
	}
}

func TestForEachRowMissingFileIsEmptyNotError(t *testing.T) {
	var calls int
	err := ForEachRow(filepath.Join(t.TempDir(), "missing.csv"), nil, func(row Row) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected 0 rows, got %d", calls)
	}
}

func TestRowGetMissingColumn(t *testing.T) {
	row := Row{Headers: []string{"a", "b"}, Values: []string{"1", "2"}}
	if _, ok := row.Get("c"); ok {
		t.Error("expected missing column to report ok=false")
	}
}
