package advisors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

func writeYaml(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNameMatchAdvisorExactMatch(t *testing.T) {
	path := writeYaml(t, "- name: Acme Corp\n  wiki_id: 42\n")
	advisor, err := NewNameMatchAdvisor(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	id, ok := advisor.Resolve("ACME CORP")
	if !ok || id != ids.WikiId(42) {
		t.Errorf("got id=%v ok=%v", id, ok)
	}
}

func TestNameMatchAdvisorFuzzyMatchRequiresUniqueWinner(t *testing.T) {
	path := writeYaml(t, "- name: Acme Corporation\n  wiki_id: 42\n")
	advisor, err := NewNameMatchAdvisor(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	id, ok := advisor.Resolve("Acme Corporatio")
	if !ok || id != ids.WikiId(42) {
		t.Errorf("got id=%v ok=%v", id, ok)
	}
}

func TestNameMatchAdvisorNoMatchBelowThreshold(t *testing.T) {
	path := writeYaml(t, "- name: Acme Corporation\n  wiki_id: 42\n")
	advisor, err := NewNameMatchAdvisor(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := advisor.Resolve("Totally Unrelated Widgets Inc"); ok {
		t.Error("expected no match")
	}
}

func TestGuessLinkId(t *testing.T) {
	got := GuessLinkId("Acme S.A. Global")
	want := "acme-sa-global"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBCorpAdvisorCertFromDomains(t *testing.T) {
	csv := writeFile(t, "company_name,website\nAcme,acme.example\n")
	advisor, err := NewBCorpAdvisor(csv, nil)
	if err != nil {
		t.Fatal(err)
	}
	cert, ok := advisor.CertFromDomains([]ids.Domain{"other.example", "acme.example"})
	if !ok || cert.Id != "acme" {
		t.Errorf("got cert=%v ok=%v", cert, ok)
	}
}

func TestOpenFoodFactsAdvisorRegions(t *testing.T) {
	advisor := NewOpenFoodFactsAdvisor()

	if got := advisor.Regions([]string{"en:world"}); got.Kind != "world" {
		t.Errorf("got %v, want world", got)
	}
	if got := advisor.Regions([]string{"en:france", "en:germany"}); got.Kind != "list" || len(got.List) != 2 {
		t.Errorf("got %v", got)
	}
	if got := advisor.Regions(nil); got.Kind != "unknown" {
		t.Errorf("got %v, want unknown", got)
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
