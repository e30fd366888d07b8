package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadBCorpSkipsRowsWithoutUsableDomain(t *testing.T) {
	path := writeFile(t, "company_name,website\nAcme,https://www.acme.example/about\nBadRow,\n")
	records, err := ReadBCorp(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Domain != "acme.example" {
		t.Errorf("got domain %q", records[0].Domain)
	}
}

func TestReadEuEcolabelSkipsRowsWithoutVat(t *testing.T) {
	path := writeFile(t, "vat_number,product_or_service_name\nDE123456789,Widget\n,NoVat\n")
	records, err := ReadEuEcolabel(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ProductOrServiceName != "Widget" {
		t.Errorf("got %+v", records)
	}
}

func TestReadOpenFoodFactsSplitsTagLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "off.tsv")
	content := "code\tcountries_tags\tbrands_tags\tlabels_tags\tmanufacturing_places_tags\n" +
		"0001\tfrance,germany\tacme\torganic\tfrance\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadOpenFoodFacts(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	if len(records[0].CountryTags) != 2 {
		t.Errorf("got country tags %v", records[0].CountryTags)
	}
}

func TestReadTcoMissingFileIsEmpty(t *testing.T) {
	entries, err := ReadTco(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries", len(entries))
	}
}

func TestReadFtiRejectsRepeatedWikiId(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fti.yaml")
	content := "- wiki_id: 42\n  name: Acme\n  score: 50\n- wiki_id: 42\n  name: Acme Again\n  score: 80\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadFti(path, nil)
	if err == nil {
		t.Fatal("expected repeated-id error")
	}
	if _, ok := err.(ErrRepeatedWikiId); !ok {
		t.Errorf("got error of type %T", err)
	}
}
