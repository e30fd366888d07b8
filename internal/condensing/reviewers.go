package condensing

import (
	"github.com/transpaer/transpaer-knowledge/internal/advisors"
	"github.com/transpaer/transpaer-knowledge/internal/report"
	"github.com/transpaer/transpaer-knowledge/internal/sources"
	"github.com/transpaer/transpaer-knowledge/pkg/ids"
	"github.com/transpaer/transpaer-knowledge/pkg/models"
	"github.com/transpaer/transpaer-knowledge/pkg/substrate"
)

// BCorpReviewer turns one BCorp registry row into a Producer substrate
// record asserting a BCorp certification (spec glossary: "Reviewer — a
// substrate that asserts certifications ... against producers").
type BCorpReviewer struct{}

func NewBCorpReviewer() *BCorpReviewer { return &BCorpReviewer{} }

func (r *BCorpReviewer) Process(row sources.BCorpRecord, out chan<- substrate.Record) error {
	p := models.NewProducer(0)
	p.Ids.Domains[row.Domain] = struct{}{}
	p.Names = p.Names.Add(models.Text{Text: row.CompanyName, Source: models.SourceBCorp})
	p.Certifications.BCorp = &models.BCorpCert{Id: advisors.GuessLinkId(row.CompanyName)}

	out <- substrate.Record{
		ExternalId: ids.NewExternalId(ids.DataSetBCorp, row.Domain.String()),
		Producer:   &p,
	}
	return nil
}

func (r *BCorpReviewer) Finish(out chan<- substrate.Record) error { return nil }

// EuEcolabelReviewer turns one EU Ecolabel catalogue row into a Producer
// substrate record asserting an EU Ecolabel certification, resolved to a
// Wikidata id via the shared name-match advisor (spec §4.4's EU Ecolabel
// advisor: "VatId → WikiId built by joining curated name matches").
type EuEcolabelReviewer struct {
	matches *advisors.NameMatchAdvisor
	report  *report.Report
}

func NewEuEcolabelReviewer(matches *advisors.NameMatchAdvisor, r *report.Report) *EuEcolabelReviewer {
	return &EuEcolabelReviewer{matches: matches, report: r}
}

func (r *EuEcolabelReviewer) Process(row sources.EuEcolabelRecord, out chan<- substrate.Record) error {
	wikiId, ok := r.matches.Resolve(row.ProductOrServiceName)
	if !ok {
		r.report.Add(ids.DataSetEuEcolabel, report.KindInvalidId, "eu_ecolabel: unresolved name "+row.ProductOrServiceName)
		return nil
	}

	p := models.NewProducer(0)
	p.Ids.Wiki[wikiId] = struct{}{}
	p.Ids.Vat[row.VatId] = struct{}{}
	p.Certifications.EuEcolabel = &models.EuEcolabelCert{}

	out <- substrate.Record{
		ExternalId: ids.NewExternalId(ids.DataSetEuEcolabel, string(row.VatId)),
		Producer:   &p,
	}
	return nil
}

func (r *EuEcolabelReviewer) Finish(out chan<- substrate.Record) error { return nil }

// TcoReviewer turns one TCO Certified table entry into a Producer
// substrate record asserting a TCO certification.
type TcoReviewer struct{}

func NewTcoReviewer() *TcoReviewer { return &TcoReviewer{} }

func (r *TcoReviewer) Process(entry sources.TcoEntry, out chan<- substrate.Record) error {
	p := models.NewProducer(0)
	p.Ids.Wiki[entry.WikiId] = struct{}{}
	p.Certifications.Tco = &models.TcoCert{BrandName: entry.Brand}

	out <- substrate.Record{
		ExternalId: ids.NewExternalId(ids.DataSetTco, entry.WikiId.String()),
		Producer:   &p,
	}
	return nil
}

func (r *TcoReviewer) Finish(out chan<- substrate.Record) error { return nil }

// FtiReviewer turns one Fashion Transparency Index entry into a Producer
// substrate record asserting an FTI score.
type FtiReviewer struct{}

func NewFtiReviewer() *FtiReviewer { return &FtiReviewer{} }

func (r *FtiReviewer) Process(entry sources.FtiEntry, out chan<- substrate.Record) error {
	p := models.NewProducer(0)
	p.Ids.Wiki[entry.WikiId] = struct{}{}
	p.Names = p.Names.Add(models.Text{Text: entry.Name, Source: models.SourceFti})
	p.Certifications.Fti = &models.FtiCert{Score: entry.Score}

	out <- substrate.Record{
		ExternalId: ids.NewExternalId(ids.DataSetFti, entry.WikiId.String()),
		Producer:   &p,
	}
	return nil
}

func (r *FtiReviewer) Finish(out chan<- substrate.Record) error { return nil }
