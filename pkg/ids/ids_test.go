package ids

import "testing"

func TestGtinRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123-45678", "00000012345678"},
		{"0000000012345678", "00000012345678"},
		{"12345678", "00000012345678"},
		{"4006381333931", "04006381333931"},
	}
	for _, c := range cases {
		got, err := ParseGtin(c.in)
		if err != nil {
			t.Fatalf("ParseGtin(%q) error: %v", c.in, err)
		}
		if got.String() != c.want {
			t.Errorf("ParseGtin(%q).String() = %q, want %q", c.in, got.String(), c.want)
		}
	}
}

func TestGtinFromNumber(t *testing.T) {
	for _, n := range []string{"12345678", "00012345678"} {
		g, err := ParseGtin(n)
		if err != nil {
			t.Fatalf("ParseGtin(%q): %v", n, err)
		}
		g2, err := GtinFromNumber(uint64(g))
		if err != nil {
			t.Fatalf("GtinFromNumber(%d): %v", uint64(g), err)
		}
		if g2.String() != g.String() {
			t.Errorf("round trip mismatch: %q != %q", g2.String(), g.String())
		}
	}
}

func TestGtinInvalidLength(t *testing.T) {
	for _, bad := range []string{"1234", "123456789012345"} {
		if _, err := ParseGtin(bad); err == nil {
			t.Errorf("ParseGtin(%q) expected error, got none", bad)
		}
	}
}

func TestVatId(t *testing.T) {
	v, err := ParseVatId("DE 123-456")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "DE123456" {
		t.Errorf("got %q, want DE123456", v.String())
	}
	if _, err := ParseVatId("D"); err == nil {
		t.Error("expected error for too-short VAT id")
	}
}

func TestParseWikiId(t *testing.T) {
	w, err := ParseWikiId("Q12345")
	if err != nil {
		t.Fatal(err)
	}
	if w != 12345 {
		t.Errorf("got %d, want 12345", w)
	}
	w2, err := ParseWikiId("999")
	if err != nil {
		t.Fatal(err)
	}
	if w2 != 999 {
		t.Errorf("got %d, want 999", w2)
	}
}

func TestParseDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.Example.COM/path?x=1": "example.com",
		"example.org":                      "example.org",
		"http://sub.example.net:8080/":     "sub.example.net",
	}
	for in, want := range cases {
		got, err := ParseDomain(in)
		if err != nil {
			t.Fatalf("ParseDomain(%q): %v", in, err)
		}
		if got.String() != want {
			t.Errorf("ParseDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUniqueIdSequence(t *testing.T) {
	seq := NewUniqueIdSequence()
	first := seq.Increment()
	if first != 1 {
		t.Errorf("first increment = %d, want 1", first)
	}
	second := seq.Increment()
	if second != 2 {
		t.Errorf("second increment = %d, want 2", second)
	}
	if seq.Len() != 2 {
		t.Errorf("Len() = %d, want 2", seq.Len())
	}
	var zero UniqueId
	if !zero.IsZero() {
		t.Error("zero value UniqueId should report IsZero")
	}
}
