package reconcile

import (
	"github.com/ledgerscope/ledgermap/pkg/archive"
)

// Assignment links a primary ledger to a legal entity identifier.
type Assignment struct {
	Ledger     string
	Identifier string
}

// Registration links a legal entity identifier to a legal entity name.
type Registration struct {
	LegalEntity string
	Identifier  string
}

// BusinessUnitRow is a raw business unit record with its stated ledger and
// legal entity references, each independently possibly blank or invalid.
type BusinessUnitRow struct {
	Name        string
	Ledger      string
	LegalEntity string
}

// CostOrgRow is a raw cost organization record keyed by legal entity identifier.
type CostOrgRow struct {
	Name       string
	Identifier string
}

// Inputs holds the normalized source rows a Reconciler consumes. The Has*
// flags distinguish a source that was absent (or lacked its required columns)
// from one that was present but empty; the cost organization pipeline needs
// the distinction to report irrecoverably missing tables.
type Inputs struct {
	Ledgers       []string
	LegalEntities []string
	Assignments   []Assignment
	Registrations []Registration
	BusinessUnits []BusinessUnitRow
	CostOrgs      []CostOrgRow

	HasAssignments   bool
	HasRegistrations bool
	HasCostOrgs      bool
}

// InputsFromSet assembles Inputs from an extracted archive set. Each producer
// checks its own required-column subset; a table missing a producer's columns
// is treated as absent for that producer only. Every cell is normalized here,
// so downstream passes operate on trimmed, sentinel-free values.
func InputsFromSet(set *archive.Set) *Inputs {
	in := &Inputs{}

	if t, ok := set.Table(archive.FileLedgers); ok && t.HasColumns(archive.ColPrimaryLedgerName) {
		for _, row := range t.Rows {
			if name := Normalize(row[archive.ColPrimaryLedgerName]); name != "" {
				in.Ledgers = append(in.Ledgers, name)
			}
		}
	}

	if t, ok := set.Table(archive.FileLegalEntities); ok && t.HasColumns(archive.ColName) {
		for _, row := range t.Rows {
			if name := Normalize(row[archive.ColName]); name != "" {
				in.LegalEntities = append(in.LegalEntities, name)
			}
		}
	}

	if t, ok := set.Table(archive.FileLedgerAssignments); ok && t.HasColumns(archive.ColPrimaryLedgerName, archive.ColLegalEntityIdentifier) {
		in.HasAssignments = true
		for _, row := range t.Rows {
			assignment := Assignment{
				Ledger:     Normalize(row[archive.ColPrimaryLedgerName]),
				Identifier: Normalize(row[archive.ColLegalEntityIdentifier]),
			}
			if assignment.Ledger == "" && assignment.Identifier == "" {
				continue
			}
			in.Assignments = append(in.Assignments, assignment)
		}
	}

	if t, ok := set.Table(archive.FileRegistrations); ok && t.HasColumns(archive.ColName, archive.ColLegalEntityIdentifier) {
		in.HasRegistrations = true
		for _, row := range t.Rows {
			registration := Registration{
				LegalEntity: Normalize(row[archive.ColName]),
				Identifier:  Normalize(row[archive.ColLegalEntityIdentifier]),
			}
			if registration.LegalEntity == "" && registration.Identifier == "" {
				continue
			}
			in.Registrations = append(in.Registrations, registration)
		}
	}

	if t, ok := set.Table(archive.FileBusinessUnits); ok && t.HasColumns(archive.ColName, archive.ColPrimaryLedgerName, archive.ColLegalEntityName) {
		for _, row := range t.Rows {
			bu := BusinessUnitRow{
				Name:        Normalize(row[archive.ColName]),
				Ledger:      Normalize(row[archive.ColPrimaryLedgerName]),
				LegalEntity: Normalize(row[archive.ColLegalEntityName]),
			}
			if bu.Name == "" && bu.Ledger == "" && bu.LegalEntity == "" {
				continue
			}
			in.BusinessUnits = append(in.BusinessUnits, bu)
		}
	}

	if t, ok := set.Table(archive.FileCostOrgs); ok && t.HasColumns(archive.ColCostOrganization, archive.ColLegalEntityIdentifier) {
		in.HasCostOrgs = true
		for _, row := range t.Rows {
			co := CostOrgRow{
				Name:       Normalize(row[archive.ColCostOrganization]),
				Identifier: Normalize(row[archive.ColLegalEntityIdentifier]),
			}
			if co.Name == "" && co.Identifier == "" {
				continue
			}
			in.CostOrgs = append(in.CostOrgs, co)
		}
	}

	return in
}
