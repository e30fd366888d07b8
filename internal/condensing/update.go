package condensing

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/transpaer/transpaer-knowledge/internal/config"
	"github.com/transpaer/transpaer-knowledge/internal/report"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
)

// staleCheck names one origin file and the substrate file a prior `condense`
// run produced from it.
type staleCheck struct {
	dataSet ids.DataSetId
	origin  string
	derived string
}

// RunUpdate implements the `update` CLI subcommand: a read-only freshness
// check comparing every origin input's modification time against the
// substrate file condensed from it, reporting any origin newer than its
// substrate (meaning a fresh `condense` run is due). Grounded on
// original_source/lab/src/config.rs's UpdatingConfig, whose retained
// `check()` only validates that the origin bcorp/off inputs and the
// already-condensed substrate exist for reading — the concrete update
// logic body was not retained in this pack, so this is a deliberately
// narrow, structurally-grounded interpretation rather than a literal port.
func RunUpdate(cfg *config.Config, paths Paths, logger *logrus.Logger) (*report.Report, error) {
	r := report.New()
	out := newOutputPaths(cfg)

	checks := []staleCheck{
		{ids.DataSetWikidata, paths.WikidataDump, out.wikidata},
		{ids.DataSetOpenFoodFacts, paths.OpenFoodFactsTsv, out.openFoodFacts},
		{ids.DataSetBCorp, paths.BCorpCsv, out.bcorp},
		{ids.DataSetEuEcolabel, paths.EuEcolabelCsv, out.euEcolabel},
		{ids.DataSetTco, paths.TcoYaml, out.tco},
		{ids.DataSetFti, paths.FtiYaml, out.fti},
	}

	for _, c := range checks {
		stale, err := isStale(c.origin, c.derived)
		if err != nil {
			return r, fmt.Errorf("update: check %s: %w", c.dataSet, err)
		}
		if stale {
			r.Add(c.dataSet, report.KindStale, fmt.Sprintf("%s is newer than %s", c.origin, c.derived))
			logger.Warnf("update: %s: origin newer than condensed substrate, re-run condense", c.dataSet)
		} else {
			logger.Infof("update: %s: substrate is up to date", c.dataSet)
		}
	}

	return r, nil
}

// isStale reports whether origin's modification time is after derived's. A
// missing derived file (substrate never condensed) counts as stale; a
// missing origin file is returned as an error.
func isStale(origin, derived string) (bool, error) {
	originInfo, err := os.Stat(origin)
	if err != nil {
		return false, fmt.Errorf("stat origin %s: %w", origin, err)
	}
	derivedInfo, err := os.Stat(derived)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat substrate %s: %w", derived, err)
	}
	return originInfo.ModTime().After(derivedInfo.ModTime()), nil
}
