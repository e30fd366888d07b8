// Package advisors implements the C4 advisors: small, source-specific
// lookup tables a condensing stage consults while turning one source
// record into a substrate Producer/Product. Grounded on
// original_source/condensing/src/advisors.rs, which defines one advisor
// type per source plus a shared name-matching advisor used wherever a
// source names a company but doesn't carry its Wikidata id directly.
package advisors

import (
	"github.com/sirupsen/logrus"
)

// Paths names the on-disk location of every advisor's backing file. A zero
// value in any field means that advisor loads as empty.
type Paths struct {
	BCorpCsv      string
	EuEcolabelCsv string
	MatchesYaml   string
	TcoYaml       string
	FtiYaml       string
}

// Set bundles every advisor the condensing stages need, loaded once per run.
type Set struct {
	BCorp      *BCorpAdvisor
	EuEcolabel *EuEcolabelAdvisor
	Matches    *NameMatchAdvisor
	Tco        *TcoAdvisor
	Fti        *FtiAdvisor
}

// Load builds every file-backed advisor from paths, logging and degrading
// to empty tables for any source that is missing (spec §4.2's graceful
// degradation rule, grounded on every advisor.rs::load's is_path_ok check).
func Load(paths Paths, logger *logrus.Logger) (*Set, error) {
	matches, err := NewNameMatchAdvisor(paths.MatchesYaml, logger)
	if err != nil {
		return nil, err
	}

	bcorp, err := NewBCorpAdvisor(paths.BCorpCsv, logger)
	if err != nil {
		return nil, err
	}

	euEcolabel, err := NewEuEcolabelAdvisor(paths.EuEcolabelCsv, matches, logger)
	if err != nil {
		return nil, err
	}

	tco, err := NewTcoAdvisor(paths.TcoYaml, logger)
	if err != nil {
		return nil, err
	}

	fti, err := NewFtiAdvisor(paths.FtiYaml, logger)
	if err != nil {
		return nil, err
	}

	return &Set{
		BCorp:      bcorp,
		EuEcolabel: euEcolabel,
		Matches:    matches,
		Tco:        tco,
		Fti:        fti,
	}, nil
}
