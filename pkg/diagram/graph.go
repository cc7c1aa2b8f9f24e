// Package diagram builds an auto-laid-out hierarchical diagram of the
// reconciled relationship tables and serializes it to the draw.io (mxfile)
// document format, including the compressed URL-embeddable payload the
// app.diagrams.net viewer expects.
//
// The graph is a simple rooted forest: Ledger is the root kind, LegalEntity
// its only child kind, and BusinessUnit/CostOrganization the only child kinds
// of LegalEntity. There is no deeper nesting and no cross-links.
package diagram

import "github.com/google/uuid"

// Kind identifies a node kind.
type Kind string

// Node kinds.
const (
	KindLedger       Kind = "ledger"
	KindLegalEntity  Kind = "legal_entity"
	KindBusinessUnit Kind = "business_unit"
	KindCostOrg      Kind = "cost_org"
)

// EdgeKind identifies an edge kind. Each kind carries a distinct visual
// style; the style is a fixed design constant, never derived from data.
type EdgeKind string

// Edge kinds.
const (
	EdgeLedgerToLE  EdgeKind = "ledger_to_le"
	EdgeLEToBU      EdgeKind = "le_to_bu"
	EdgeLEToCostOrg EdgeKind = "le_to_cost_org"
)

// Placeholder labels for unnamed entities. The underlying empty-string
// identity still drives the joins; only the rendering changes.
const (
	LabelNoLedger  = "(No Ledger)"
	LabelUnnamedLE = "(Unnamed LE)"
)

// Node is one diagram vertex. ID is a generated collision-free handle used
// purely to wire edges; it carries no meaning and is not content-derived.
type Node struct {
	ID     string
	Label  string
	Kind   Kind
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Edge is one directed diagram edge.
type Edge struct {
	ID     string
	Source string
	Target string
	Kind   EdgeKind
}

// Graph is the laid-out node/edge forest ready for serialization.
type Graph struct {
	Nodes []Node
	Edges []Edge

	styles Styles
}

// IDGenerator produces node and edge handles. The default draws random
// UUIDs; tests inject a sequential generator to keep documents comparable.
type IDGenerator func() string

func defaultIDGenerator() string {
	return uuid.NewString()
}
