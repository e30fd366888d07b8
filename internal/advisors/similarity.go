package advisors

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName exports normalizeName for callers outside this package that
// need the same disambiguated-name form (internal/connecting's matcher
// keys, grounded on original_source/lab/src/utils.rs's disambiguate_name).
func NormalizeName(s string) string { return normalizeName(s) }

// Similarity exports jaroWinkler for callers outside this package.
func Similarity(a, b string) float64 { return jaroWinkler(a, b) }

// normalizeName folds diacritics and case so "Acme S.A." and "ACME SA" score
// as near-identical; x/text owns Unicode normalization the way
// original_source leaned on its own ASCII-folding helpers before comparing
// company names.
func normalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = strings.Join(strings.FieldsFunc(folded, func(r rune) bool {
		return !isAlnum(r)
	}), " ")
	return strings.TrimSpace(folded)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// jaroWinkler scores two strings' similarity in [0, 1]. No example repo in
// the pack carries a string-similarity library, so this is a direct
// implementation of the standard algorithm (Winkler's prefix-boosted Jaro
// distance); x/text above still does the normalization work.
func jaroWinkler(a, b string) float64 {
	jaro := jaroSimilarity(a, b)
	if jaro == 0 {
		return 0
	}

	prefix := 0
	maxPrefix := 4
	for i := 0; i < len(a) && i < len(b) && i < maxPrefix; i++ {
		if a[i] != b[i] {
			break
		}
		prefix++
	}
	const scalingFactor = 0.1
	return jaro + float64(prefix)*scalingFactor*(1-jaro)
}

func jaroSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0
	}

	matchDistance := max(la, lb)/2 - 1
	if matchDistance < 0 {
		matchDistance = 0
	}

	aMatches := make([]bool, la)
	bMatches := make([]bool, lb)

	matches := 0
	for i := 0; i < la; i++ {
		start := max(0, i-matchDistance)
		end := min(lb, i+matchDistance+1)
		for j := start; j < end; j++ {
			if bMatches[j] || a[i] != b[j] {
				continue
			}
			aMatches[i] = true
			bMatches[j] = true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	k := 0
	for i := 0; i < la; i++ {
		if !aMatches[i] {
			continue
		}
		for !bMatches[k] {
			k++
		}
		if a[i] != b[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(la) + m/float64(lb) + (m-t)/m) / 3
}
