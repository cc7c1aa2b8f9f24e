// Package reconcile builds the two normalized relationship tables,
// Ledger/LegalEntity/BusinessUnit and Ledger/LegalEntity/CostOrganization,
// from loosely-linked Oracle setup-export rows.
//
// Ledger names and legal entity names are never co-located in one source row;
// both map through the shared LegalEntityIdentifier join key. The business
// unit table additionally applies a conservative back-fill heuristic: a
// missing side is filled in only when the other side resolves to exactly one
// candidate. Ambiguity (zero or two-plus candidates) is deliberately left
// unresolved as an empty field rather than guessed.
package reconcile

import (
	"sort"

	"github.com/ledgerscope/ledgermap/pkg/archive"
	"github.com/ledgerscope/ledgermap/pkg/errors"
)

// Reconciler produces the normalized relationship tables for one run.
type Reconciler interface {
	// BusinessUnits returns the Ledger/LegalEntity/BusinessUnit table.
	// Optional catalogs that were absent simply contribute nothing.
	BusinessUnits() []Relation

	// CostOrganizations returns the Ledger/LegalEntity/CostOrganization
	// table, or a MissingTableError when one of its three required source
	// tables was absent from every archive.
	CostOrganizations() ([]Relation, error)
}

// stringSet is a run-scoped name set.
type stringSet map[string]struct{}

func (s stringSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// multiMap indexes one name to a set of related names.
type multiMap map[string]stringSet

func (m multiMap) add(key, value string) {
	if key == "" || value == "" {
		return
	}
	set, ok := m[key]
	if !ok {
		set = make(stringSet)
		m[key] = set
	}
	set.add(value)
}

// single returns the sole candidate for a key, if there is exactly one.
func (m multiMap) single(key string) (string, bool) {
	set := m[key]
	if len(set) != 1 {
		return "", false
	}
	for v := range set {
		return v, true
	}
	return "", false
}

type reconciler struct {
	in *Inputs

	// knownLedgers is the ledger catalog unioned with ledgers named by
	// identifier assignments.
	knownLedgers stringSet

	// catalogLEs holds legal entity names from the optional catalog; only
	// these participate in the orphan pass. validLEs additionally includes
	// names learned from registrations and is what raw BU references are
	// validated against.
	catalogLEs stringSet
	validLEs   stringSet

	ledgerToIdents multiMap
	identToLEs     multiMap
	identToLedgers multiMap
	ledgerToLEs    multiMap
	leToLedgers    multiMap
}

// New builds a Reconciler over the given inputs. The derived relation indexes
// are computed once here; the Reconciler itself is immutable afterwards.
func New(in *Inputs) Reconciler {
	r := &reconciler{
		in:             in,
		knownLedgers:   make(stringSet),
		catalogLEs:     make(stringSet),
		validLEs:       make(stringSet),
		ledgerToIdents: make(multiMap),
		identToLEs:     make(multiMap),
		identToLedgers: make(multiMap),
		ledgerToLEs:    make(multiMap),
		leToLedgers:    make(multiMap),
	}

	for _, name := range in.Ledgers {
		r.knownLedgers.add(name)
	}
	for _, name := range in.LegalEntities {
		r.catalogLEs.add(name)
		r.validLEs.add(name)
	}

	for _, assignment := range in.Assignments {
		r.knownLedgers.add(assignment.Ledger)
		r.ledgerToIdents.add(assignment.Ledger, assignment.Identifier)
		r.identToLedgers.add(assignment.Identifier, assignment.Ledger)
	}
	for _, registration := range in.Registrations {
		r.validLEs.add(registration.LegalEntity)
		r.identToLEs.add(registration.Identifier, registration.LegalEntity)
	}

	// Follow the identifier join to derive the direct Ledger↔LE relations.
	for ledger, idents := range r.ledgerToIdents {
		for ident := range idents {
			for le := range r.identToLEs[ident] {
				r.ledgerToLEs.add(ledger, le)
				r.leToLedgers.add(le, ledger)
			}
		}
	}

	return r
}

// BusinessUnits runs the four reconciliation passes in their strict order.
// Later passes only consider Ledger/LE values left uncovered by pass 1, so a
// ledger or entity already represented by a business unit row is not repeated
// as an orphan row.
func (r *reconciler) BusinessUnits() []Relation {
	var rows []Relation

	type pair struct{ ledger, le string }
	coveredLedgers := make(stringSet)
	coveredLEs := make(stringSet)
	coveredPairs := make(map[pair]struct{})

	// Pass 1: raw business unit rows, validated against the known-name sets,
	// with unique-candidate back-fill of a missing side.
	for _, bu := range r.in.BusinessUnits {
		ledger := bu.Ledger
		if !r.knownLedgers.has(ledger) {
			ledger = ""
		}
		le := bu.LegalEntity
		if !r.validLEs.has(le) {
			le = ""
		}

		if ledger == "" && le != "" {
			if only, ok := r.leToLedgers.single(le); ok {
				ledger = only
			}
		}
		if le == "" && ledger != "" {
			if only, ok := r.ledgerToLEs.single(ledger); ok {
				le = only
			}
		}

		rows = append(rows, Relation{Ledger: ledger, LegalEntity: le, Name: bu.Name})
		coveredLedgers.add(ledger)
		coveredLEs.add(le)
		coveredPairs[pair{ledger, le}] = struct{}{}
	}

	// Pass 2: Ledger/LE pairs known via the identifier join but without a
	// business unit row. Ledgers whose identifiers resolve to no legal entity
	// still get a ledger-only row.
	for _, ledger := range r.ledgerToIdents.keys() {
		les := r.ledgerToLEs[ledger].sorted()
		if len(les) == 0 {
			if !coveredLedgers.has(ledger) {
				rows = append(rows, Relation{Ledger: ledger})
			}
			continue
		}
		for _, le := range les {
			if _, covered := coveredPairs[pair{ledger, le}]; !covered {
				rows = append(rows, Relation{Ledger: ledger, LegalEntity: le})
			}
		}
	}

	// Pass 3: known ledgers with no identifier mapping at all.
	for _, ledger := range r.knownLedgers.sorted() {
		if _, hasJoin := r.ledgerToIdents[ledger]; hasJoin {
			continue
		}
		if !coveredLedgers.has(ledger) {
			rows = append(rows, Relation{Ledger: ledger})
		}
	}

	// Pass 4: catalog legal entities untouched by any business unit row.
	// The ledger is back-filled only when uniquely determined.
	for _, le := range r.catalogLEs.sorted() {
		if coveredLEs.has(le) {
			continue
		}
		ledger := ""
		if only, ok := r.leToLedgers.single(le); ok {
			ledger = only
		}
		rows = append(rows, Relation{Ledger: ledger, LegalEntity: le})
	}

	return finalize(rows)
}

// CostOrganizations performs the pure relational left join: cost organization
// rows to identifier→LE registrations, then to identifier→ledger assignments.
// Unmatched sides stay empty; rows are never dropped for missing join data.
func (r *reconciler) CostOrganizations() ([]Relation, error) {
	if !r.in.HasCostOrgs {
		return nil, errors.NewMissingTableError(archive.FileCostOrgs,
			archive.ColCostOrganization, archive.ColLegalEntityIdentifier)
	}
	if !r.in.HasAssignments {
		return nil, errors.NewMissingTableError(archive.FileLedgerAssignments,
			archive.ColPrimaryLedgerName, archive.ColLegalEntityIdentifier)
	}
	if !r.in.HasRegistrations {
		return nil, errors.NewMissingTableError(archive.FileRegistrations,
			archive.ColName, archive.ColLegalEntityIdentifier)
	}

	var rows []Relation
	for _, co := range r.in.CostOrgs {
		les := r.identToLEs[co.Identifier].sorted()
		if len(les) == 0 {
			les = []string{""}
		}
		ledgers := r.identToLedgers[co.Identifier].sorted()
		if len(ledgers) == 0 {
			ledgers = []string{""}
		}
		for _, le := range les {
			for _, ledger := range ledgers {
				rows = append(rows, Relation{Ledger: ledger, LegalEntity: le, Name: co.Name})
			}
		}
	}

	return finalize(rows), nil
}

// keys returns the map's keys sorted, for deterministic iteration.
func (m multiMap) keys() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
