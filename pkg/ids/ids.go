// Package ids implements the identifier types shared by every substrate and
// by the coagulation and crystalization stages: Wikidata Q-numbers, GTIN/EAN
// trade item numbers, VAT identifiers, web domains, and the external/unique
// ID pairs used to track a record across a run.
package ids

import (
	"fmt"
	"strconv"
	"strings"
)

// WikiId is a Wikidata Q-number, stored without its "Q" prefix.
type WikiId uint64

func (w WikiId) String() string {
	return strconv.FormatUint(uint64(w), 10)
}

// ParseWikiId parses a bare number or a "Q"-prefixed Wikidata ID.
func ParseWikiId(s string) (WikiId, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "Q")
	if s == "" {
		return 0, fmt.Errorf("ids: empty wiki id")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ids: invalid wiki id %q: %w", s, err)
	}
	return WikiId(n), nil
}

const maxGtin = 99_999_999_999_999

// Gtin is a Global Trade Item Number, canonicalized to a 14-digit
// zero-padded decimal string on output. Separators and leading zeros are
// stripped on parse; valid inputs have between 8 and 14 significant digits.
type Gtin uint64

// ParseGtin parses a GTIN from any of its common representations: with or
// without separators (space, dash, dot), with or without leading zeros.
func ParseGtin(s string) (Gtin, error) {
	cleaned := stripSeparators(s)
	cleaned = strings.TrimLeft(cleaned, "0")
	if len(cleaned) < 8 || len(cleaned) > 14 {
		return 0, fmt.Errorf("ids: gtin %q has wrong length after normalization (%d digits)", s, len(cleaned))
	}
	n, err := strconv.ParseUint(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ids: invalid gtin %q: %w", s, err)
	}
	return Gtin(n), nil
}

// GtinFromNumber validates and wraps an already-numeric GTIN.
func GtinFromNumber(n uint64) (Gtin, error) {
	if n > maxGtin {
		return 0, fmt.Errorf("ids: gtin %d exceeds 14 digits", n)
	}
	return Gtin(n), nil
}

// String renders the canonical 14-digit zero-padded form.
func (g Gtin) String() string {
	return fmt.Sprintf("%014d", uint64(g))
}

func stripSeparators(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", ".", "")
	return r.Replace(s)
}

// Ean is the subset of Gtin used by EAN-13/EAN-8 barcodes; it shares Gtin's
// canonicalization rules.
type Ean = Gtin

// ParseEan parses an EAN the same way a GTIN is parsed.
func ParseEan(s string) (Ean, error) { return ParseGtin(s) }

// VatId is a country-prefixed alphanumeric VAT identifier with separators
// stripped and a minimum length of two characters.
type VatId string

// ParseVatId normalizes a VAT ID string.
func ParseVatId(s string) (VatId, error) {
	cleaned := stripSeparators(s)
	if len(cleaned) < 2 {
		return "", fmt.Errorf("ids: vat id %q too short after normalization", s)
	}
	return VatId(cleaned), nil
}

func (v VatId) String() string { return string(v) }

// Domain is a lowercased host extracted from a URL or raw hostname.
type Domain string

// ParseDomain extracts and lowercases the host component of a URL-like
// string; bare hostnames are accepted as-is.
func ParseDomain(s string) (Domain, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("ids: empty domain")
	}
	s = strings.ToLower(s)
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	s = strings.TrimPrefix(s, "www.")
	if idx := strings.IndexAny(s, "/?#"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[:idx]
	}
	if s == "" {
		return "", fmt.Errorf("ids: domain %q normalized to empty string", s)
	}
	return Domain(s), nil
}

func (d Domain) String() string { return string(d) }

// DataSetId names a substrate file: one per data source (wikidata,
// open_food_facts, eu_ecolabel, bcorp, tco, fti).
type DataSetId string

// Well-known data set identifiers. Every substrate record's ExternalId is
// scoped to exactly one of these.
const (
	DataSetWikidata      DataSetId = "wikidata"
	DataSetOpenFoodFacts DataSetId = "open_food_facts"
	DataSetEuEcolabel    DataSetId = "eu_ecolabel"
	DataSetBCorp         DataSetId = "bcorp"
	DataSetFti           DataSetId = "fti"
	DataSetTco           DataSetId = "tco"
)

// ExternalId names one record inside one substrate file: (DataSetId,
// InnerId). It uniquely identifies a record across all substrates
// (invariant 1, spec §3).
type ExternalId struct {
	DataSet DataSetId
	Inner   string
}

func NewExternalId(dataSet DataSetId, inner string) ExternalId {
	return ExternalId{DataSet: dataSet, Inner: inner}
}

func (e ExternalId) String() string {
	return fmt.Sprintf("%s:%s", e.DataSet, e.Inner)
}

// UniqueId is the canonical integer assigned to one equivalence class of
// external IDs by coagulation. Zero is reserved and never assigned.
type UniqueId uint64

func (u UniqueId) String() string { return strconv.FormatUint(uint64(u), 10) }

// IsZero reports whether this is the reserved zero value (never assigned to
// a real entity).
func (u UniqueId) IsZero() bool { return u == 0 }

// UniqueIdSequence is a monotonic counter producing UniqueId values,
// starting at 1. Producers (OrganisationId) and products (ProductId) must
// use separate sequences (invariant 4, spec §3) — callers create one
// Sequence per entity kind.
type UniqueIdSequence struct {
	next uint64
}

// NewUniqueIdSequence returns a fresh sequence whose first Increment yields 1.
func NewUniqueIdSequence() *UniqueIdSequence {
	return &UniqueIdSequence{next: 0}
}

// Increment returns the next UniqueId in the sequence.
func (s *UniqueIdSequence) Increment() UniqueId {
	s.next++
	return UniqueId(s.next)
}

// Len reports how many IDs have been handed out so far.
func (s *UniqueIdSequence) Len() uint64 { return s.next }
