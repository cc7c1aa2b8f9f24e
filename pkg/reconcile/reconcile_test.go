package reconcile_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerscope/ledgermap/pkg/archive"
	pkgerrors "github.com/ledgerscope/ledgermap/pkg/errors"
	"github.com/ledgerscope/ledgermap/pkg/reconcile"
)

// usInputs is a small but fully-linked fixture: one US ledger with one legal
// entity reachable over identifier X1, plus one UK ledger with two entities.
func usInputs() *reconcile.Inputs {
	return &reconcile.Inputs{
		Ledgers:       []string{"UK Ledger", "US Primary Ledger"},
		LegalEntities: []string{"UK LE 1", "UK LE 2", "US LE 1"},
		Assignments: []reconcile.Assignment{
			{Ledger: "US Primary Ledger", Identifier: "X1"},
			{Ledger: "UK Ledger", Identifier: "X2"},
			{Ledger: "UK Ledger", Identifier: "X3"},
		},
		Registrations: []reconcile.Registration{
			{LegalEntity: "US LE 1", Identifier: "X1"},
			{LegalEntity: "UK LE 1", Identifier: "X2"},
			{LegalEntity: "UK LE 2", Identifier: "X3"},
		},
		HasAssignments:   true,
		HasRegistrations: true,
		HasCostOrgs:      true,
	}
}

func TestBusinessUnitsBackfillLedgerFromUniqueLE(t *testing.T) {
	in := usInputs()
	in.BusinessUnits = []reconcile.BusinessUnitRow{
		{Name: "AP US", Ledger: "", LegalEntity: "US LE 1"},
	}

	rows := reconcile.New(in).BusinessUnits()

	assert.Contains(t, rows, reconcile.Relation{
		Ledger:      "US Primary Ledger",
		LegalEntity: "US LE 1",
		Name:        "AP US",
	}, "the US LE maps to exactly one ledger, so the ledger is back-filled")
	assert.NotContains(t, rows, reconcile.Relation{LegalEntity: "US LE 1", Name: "AP US"},
		"the unfilled variant must not survive alongside the back-filled row")
}

func TestBusinessUnitsBackfillLEFromUniqueLedger(t *testing.T) {
	in := usInputs()
	in.BusinessUnits = []reconcile.BusinessUnitRow{
		{Name: "AP US", Ledger: "US Primary Ledger", LegalEntity: ""},
	}

	rows := reconcile.New(in).BusinessUnits()

	assert.Contains(t, rows, reconcile.Relation{
		Ledger:      "US Primary Ledger",
		LegalEntity: "US LE 1",
		Name:        "AP US",
	}, "the US ledger maps to exactly one LE, so the LE is back-filled")
}

func TestBusinessUnitsAmbiguityStaysUnresolved(t *testing.T) {
	in := usInputs()
	// Shared LE reachable from two ledgers over a second identifier.
	in.Assignments = append(in.Assignments, reconcile.Assignment{Ledger: "US Primary Ledger", Identifier: "X9"})
	in.Registrations = append(in.Registrations, reconcile.Registration{LegalEntity: "Shared LE", Identifier: "X9"},
		reconcile.Registration{LegalEntity: "Shared LE", Identifier: "X2"})
	in.BusinessUnits = []reconcile.BusinessUnitRow{
		{Name: "Shared BU", Ledger: "", LegalEntity: "Shared LE"},
	}

	rows := reconcile.New(in).BusinessUnits()

	assert.Contains(t, rows, reconcile.Relation{
		Ledger:      "",
		LegalEntity: "Shared LE",
		Name:        "Shared BU",
	}, "an LE mapped to two ledgers must not be back-filled")

	// Ambiguity on the LE side: the UK ledger has two LEs.
	in = usInputs()
	in.BusinessUnits = []reconcile.BusinessUnitRow{
		{Name: "UK BU", Ledger: "UK Ledger", LegalEntity: ""},
	}

	rows = reconcile.New(in).BusinessUnits()
	assert.Contains(t, rows, reconcile.Relation{
		Ledger: "UK Ledger",
		Name:   "UK BU",
	}, "a ledger with two LEs must not back-fill the LE")
}

func TestBusinessUnitsInvalidReferencesTreatedAsEmpty(t *testing.T) {
	in := usInputs()
	in.BusinessUnits = []reconcile.BusinessUnitRow{
		{Name: "Ghost BU", Ledger: "No Such Ledger", LegalEntity: "No Such LE"},
	}

	rows := reconcile.New(in).BusinessUnits()

	assert.Contains(t, rows, reconcile.Relation{Name: "Ghost BU"},
		"unknown ledger and LE references are dropped, not propagated")
}

func TestBusinessUnitsEmitsIdentifierJoinPairs(t *testing.T) {
	rows := reconcile.New(usInputs()).BusinessUnits()

	want := []reconcile.Relation{
		{Ledger: "UK Ledger", LegalEntity: "UK LE 1"},
		{Ledger: "UK Ledger", LegalEntity: "UK LE 2"},
		{Ledger: "US Primary Ledger", LegalEntity: "US LE 1"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("BusinessUnits() mismatch (-want +got):\n%s", diff)
	}
}

func TestBusinessUnitsPairCoverageIsPerPairNotPerLedger(t *testing.T) {
	in := usInputs()
	in.BusinessUnits = []reconcile.BusinessUnitRow{
		{Name: "UK BU 1", Ledger: "UK Ledger", LegalEntity: "UK LE 1"},
	}

	rows := reconcile.New(in).BusinessUnits()

	assert.Contains(t, rows, reconcile.Relation{Ledger: "UK Ledger", LegalEntity: "UK LE 2"},
		"covering (UK Ledger, UK LE 1) must not suppress the (UK Ledger, UK LE 2) pair")
	assert.NotContains(t, rows, reconcile.Relation{Ledger: "UK Ledger", LegalEntity: "UK LE 1"},
		"the covered pair must not be re-emitted as an empty-BU row")
}

func TestBusinessUnitsLedgerOrphans(t *testing.T) {
	in := &reconcile.Inputs{
		Ledgers: []string{"Lonely Ledger", "Joined Ledger"},
		Assignments: []reconcile.Assignment{
			// Identifier resolves to no registered LE.
			{Ledger: "Joined Ledger", Identifier: "X404"},
		},
	}

	rows := reconcile.New(in).BusinessUnits()

	want := []reconcile.Relation{
		{Ledger: "Joined Ledger"},
		{Ledger: "Lonely Ledger"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("ledger orphan rows mismatch (-want +got):\n%s", diff)
	}
}

func TestBusinessUnitsLEOrphans(t *testing.T) {
	in := usInputs()
	in.LegalEntities = append(in.LegalEntities, "Unlinked LE")

	rows := reconcile.New(in).BusinessUnits()

	// Catalog LEs joined to a unique ledger get it back-filled; the unlinked
	// one keeps an empty ledger and sorts last.
	assert.Contains(t, rows, reconcile.Relation{LegalEntity: "Unlinked LE"})
	assert.Equal(t, reconcile.Relation{LegalEntity: "Unlinked LE"}, rows[len(rows)-1],
		"empty-ledger rows sort last")
}

func TestBusinessUnitsEveryCatalogNameAppears(t *testing.T) {
	in := usInputs()
	in.Ledgers = append(in.Ledgers, "Spare Ledger")
	in.LegalEntities = append(in.LegalEntities, "Spare LE")
	in.BusinessUnits = []reconcile.BusinessUnitRow{
		{Name: "AP US", Ledger: "US Primary Ledger", LegalEntity: "US LE 1"},
	}

	rows := reconcile.New(in).BusinessUnits()

	ledgers := make(map[string]bool)
	les := make(map[string]bool)
	for _, row := range rows {
		ledgers[row.Ledger] = true
		les[row.LegalEntity] = true
	}

	for _, ledger := range in.Ledgers {
		assert.True(t, ledgers[ledger], "catalog ledger %q missing from output", ledger)
	}
	for _, le := range in.LegalEntities {
		assert.True(t, les[le], "catalog LE %q missing from output", le)
	}
}

func TestBusinessUnitsNoDuplicateTriples(t *testing.T) {
	in := usInputs()
	in.BusinessUnits = []reconcile.BusinessUnitRow{
		{Name: "AP US", Ledger: "US Primary Ledger", LegalEntity: "US LE 1"},
		{Name: "AP US", Ledger: "US Primary Ledger", LegalEntity: "US LE 1"},
		{Name: "AP US", Ledger: "", LegalEntity: "US LE 1"}, // back-fills to the same triple
	}

	rows := reconcile.New(in).BusinessUnits()

	seen := make(map[reconcile.Relation]bool)
	for _, row := range rows {
		assert.False(t, seen[row], "duplicate triple %+v", row)
		seen[row] = true
	}
}

func TestBusinessUnitsDeterministic(t *testing.T) {
	in := usInputs()
	in.BusinessUnits = []reconcile.BusinessUnitRow{
		{Name: "Zeta BU", Ledger: "UK Ledger", LegalEntity: "UK LE 2"},
		{Name: "Alpha BU", Ledger: "US Primary Ledger", LegalEntity: "US LE 1"},
	}

	first := reconcile.New(in).BusinessUnits()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, reconcile.New(in).BusinessUnits())
	}
}

func TestCostOrganizationsJoin(t *testing.T) {
	in := usInputs()
	in.CostOrgs = []reconcile.CostOrgRow{
		{Name: "US Cost Org", Identifier: "X1"},
		{Name: "UK Cost Org", Identifier: "X2"},
	}

	rows, err := reconcile.New(in).CostOrganizations()
	require.NoError(t, err)

	want := []reconcile.Relation{
		{Ledger: "UK Ledger", LegalEntity: "UK LE 1", Name: "UK Cost Org"},
		{Ledger: "US Primary Ledger", LegalEntity: "US LE 1", Name: "US Cost Org"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("CostOrganizations() mismatch (-want +got):\n%s", diff)
	}
}

func TestCostOrganizationsUnmatchedIdentifierKeepsRow(t *testing.T) {
	in := usInputs()
	in.CostOrgs = []reconcile.CostOrgRow{
		{Name: "CO1", Identifier: "X404"},
	}

	rows, err := reconcile.New(in).CostOrganizations()
	require.NoError(t, err)

	assert.Contains(t, rows, reconcile.Relation{Name: "CO1"},
		"a cost org whose identifier matches nothing keeps its row with empty ledger and LE")
}

func TestCostOrganizationsPartialMatch(t *testing.T) {
	in := usInputs()
	// Identifier registered to an LE but assigned to no ledger.
	in.Registrations = append(in.Registrations, reconcile.Registration{LegalEntity: "Orphan LE", Identifier: "X8"})
	in.CostOrgs = []reconcile.CostOrgRow{
		{Name: "Orphan CO", Identifier: "X8"},
	}

	rows, err := reconcile.New(in).CostOrganizations()
	require.NoError(t, err)

	assert.Contains(t, rows, reconcile.Relation{LegalEntity: "Orphan LE", Name: "Orphan CO"})
}

func TestCostOrganizationsMultiLedgerIdentifier(t *testing.T) {
	in := usInputs()
	// X1 assigned to a second ledger: the relational join yields both rows.
	in.Assignments = append(in.Assignments, reconcile.Assignment{Ledger: "UK Ledger", Identifier: "X1"})
	in.CostOrgs = []reconcile.CostOrgRow{
		{Name: "Shared CO", Identifier: "X1"},
	}

	rows, err := reconcile.New(in).CostOrganizations()
	require.NoError(t, err)

	assert.Contains(t, rows, reconcile.Relation{Ledger: "UK Ledger", LegalEntity: "US LE 1", Name: "Shared CO"})
	assert.Contains(t, rows, reconcile.Relation{Ledger: "US Primary Ledger", LegalEntity: "US LE 1", Name: "Shared CO"})
}

func TestCostOrganizationsMissingRequiredTables(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*reconcile.Inputs)
		wantFile string
	}{
		{
			name:     "cost org table missing",
			mutate:   func(in *reconcile.Inputs) { in.HasCostOrgs = false },
			wantFile: archive.FileCostOrgs,
		},
		{
			name:     "ledger assignment table missing",
			mutate:   func(in *reconcile.Inputs) { in.HasAssignments = false },
			wantFile: archive.FileLedgerAssignments,
		},
		{
			name:     "registration table missing",
			mutate:   func(in *reconcile.Inputs) { in.HasRegistrations = false },
			wantFile: archive.FileRegistrations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := usInputs()
			tt.mutate(in)

			rows, err := reconcile.New(in).CostOrganizations()
			require.Error(t, err)
			assert.Nil(t, rows)
			assert.True(t, pkgerrors.IsMissingTable(err))

			var missing *pkgerrors.MissingTableError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantFile, missing.File)
			assert.NotEmpty(t, missing.Columns)
		})
	}
}

func TestInputsFromSetColumnSubsets(t *testing.T) {
	set := setFromCSVs(t, map[string]string{
		// Business unit table lacking LegalEntityName: absent for its producer.
		archive.FileBusinessUnits: "Name,PrimaryLedgerName\nAP US,US Ledger\n",
		archive.FileLedgers:       "PrimaryLedgerName\nUS Ledger\n",
	})

	in := reconcile.InputsFromSet(set)

	assert.Empty(t, in.BusinessUnits)
	assert.Equal(t, []string{"US Ledger"}, in.Ledgers)
	assert.False(t, in.HasCostOrgs)
	assert.False(t, in.HasAssignments)
	assert.False(t, in.HasRegistrations)
}

func TestInputsFromSetNormalizesCells(t *testing.T) {
	set := setFromCSVs(t, map[string]string{
		archive.FileBusinessUnits: "Name,PrimaryLedgerName,LegalEntityName\n AP US ,nan,NULL\n",
		archive.FileCostOrgs:      "CostOrganization,LegalEntityIdentifier\nCO1, X1 \nnan,none\n",
	})

	in := reconcile.InputsFromSet(set)

	require.Len(t, in.BusinessUnits, 1)
	assert.Equal(t, reconcile.BusinessUnitRow{Name: "AP US"}, in.BusinessUnits[0])

	require.True(t, in.HasCostOrgs)
	require.Len(t, in.CostOrgs, 1, "fully-empty rows are skipped")
	assert.Equal(t, reconcile.CostOrgRow{Name: "CO1", Identifier: "X1"}, in.CostOrgs[0])
}
