// Package ledgermap turns Oracle Cloud ERP setup exports into reviewable
// artifacts: it reads the exported CSVs out of one or more zip archives,
// reconciles them into Ledger to Legal Entity to Business Unit and Ledger to
// Legal Entity to Cost Organization relationship tables, and renders those
// tables as an Excel workbook, a draw.io diagram, and a shareable viewer URL.
package ledgermap

import (
	"context"

	"github.com/ledgerscope/ledgermap/pkg/archive"
	"github.com/ledgerscope/ledgermap/pkg/diagram"
	"github.com/ledgerscope/ledgermap/pkg/logging"
	"github.com/ledgerscope/ledgermap/pkg/reconcile"
	"github.com/ledgerscope/ledgermap/pkg/spreadsheet"
)

// Artifacts bundles everything one run produces. All fields are populated
// together; a run never returns partial artifacts alongside an error.
type Artifacts struct {
	// BusinessUnits is the Ledger / Legal Entity / Business Unit table.
	BusinessUnits []reconcile.Relation

	// CostOrgs is the Ledger / Legal Entity / Cost Organization table.
	CostOrgs []reconcile.Relation

	// Workbook is the two-sheet xlsx rendering of both tables.
	Workbook []byte

	// Diagram is the draw.io (mxfile) document.
	Diagram []byte

	// ViewerURL opens the diagram in the hosted viewer with the whole
	// document embedded in the URL fragment.
	ViewerURL string

	// Summary reports, per recognized source file, whether it was found
	// and how many rows it contributed.
	Summary []archive.TableSummary
}

// Generate runs the whole pipeline over the given zip archive contents:
// extract, reconcile, and render every artifact. The archives are treated as
// one logical export; tables recognized in multiple archives are unioned.
func Generate(ctx context.Context, blobs [][]byte, opts ...Option) (*Artifacts, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	log := logging.FromContext(ctx)

	log.Debug().Int("archives", len(blobs)).Msg("extracting archives")
	set, err := archive.Extract(ctx, blobs...)
	if err != nil {
		return nil, err
	}

	inputs := reconcile.InputsFromSet(set)
	rec := reconcile.New(inputs)

	businessUnits := rec.BusinessUnits()
	log.Debug().Int("rows", len(businessUnits)).Msg("reconciled business unit table")

	costOrgs, err := rec.CostOrganizations()
	if err != nil {
		return nil, err
	}
	log.Debug().Int("rows", len(costOrgs)).Msg("reconciled cost organization table")

	workbook, err := spreadsheet.Workbook(businessUnits, costOrgs)
	if err != nil {
		return nil, err
	}

	graph := diagram.Build(businessUnits, costOrgs, cfg.diagramOptions()...)

	doc, err := graph.Document(cfg.title)
	if err != nil {
		return nil, err
	}

	link, err := graph.ViewerURL(cfg.title)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("business_units", len(businessUnits)).
		Int("cost_orgs", len(costOrgs)).
		Msg("generated artifacts")

	return &Artifacts{
		BusinessUnits: businessUnits,
		CostOrgs:      costOrgs,
		Workbook:      workbook,
		Diagram:       doc,
		ViewerURL:     link,
		Summary:       set.Summary(),
	}, nil
}
