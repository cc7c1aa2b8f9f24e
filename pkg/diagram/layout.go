package diagram

import (
	"sort"

	"github.com/ledgerscope/ledgermap/pkg/reconcile"
)

// Geometry constants for the positional layout. Columns are fixed per node
// kind; the cost organization column is dropped vertically so the two child
// kinds of a legal entity don't collide.
const (
	nodeWidth    = 200.0
	nodeHeight   = 40.0
	topOffset    = 40.0
	verticalStep = 20.0

	ledgerColumnX  = 40.0
	leColumnX      = 320.0
	buColumnX      = 600.0
	costOrgColumnX = 880.0
	costOrgDrop    = 200.0
)

// rowStride is the vertical distance between sibling nodes in a column.
const rowStride = nodeHeight + verticalStep

// Build lays out the relationship tables as a layered forest. Ledgers occupy
// one column in sorted order (empty last, rendered as "(No Ledger)"); each
// ledger's legal entities restart at the top offset in their own column; the
// business unit and cost organization children restart per legal entity.
// When no ledger appears in either table a single synthetic "no ledger"
// bucket is laid out so orphan rows still render.
func Build(businessUnits, costOrgs []reconcile.Relation, opts ...Option) *Graph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	type group struct{ ledger, le string }

	ledgerSet := make(map[string]struct{})
	leSets := make(map[string]map[string]struct{})
	buNames := make(map[group][]string)
	coNames := make(map[group][]string)

	collect := func(rows []reconcile.Relation, children map[group][]string) {
		for _, row := range rows {
			ledgerSet[row.Ledger] = struct{}{}
			// A row with neither legal entity nor child name contributes
			// only its ledger bucket.
			if row.LegalEntity == "" && row.Name == "" {
				continue
			}
			if leSets[row.Ledger] == nil {
				leSets[row.Ledger] = make(map[string]struct{})
			}
			leSets[row.Ledger][row.LegalEntity] = struct{}{}
			if row.Name != "" {
				key := group{row.Ledger, row.LegalEntity}
				children[key] = append(children[key], row.Name)
			}
		}
	}
	collect(businessUnits, buNames)
	collect(costOrgs, coNames)

	if len(ledgerSet) == 0 {
		ledgerSet[""] = struct{}{}
	}

	ledgers := sortedEmptyLast(ledgerSet)

	g := &Graph{styles: o.styles}

	for i, ledger := range ledgers {
		ledgerNode := g.addNode(o, KindLedger, labelOr(ledger, LabelNoLedger),
			ledgerColumnX, topOffset+float64(i)*rowStride)

		leY := topOffset // restarts whenever the parent ledger changes
		for _, le := range sortedEmptyLast(leSets[ledger]) {
			leNode := g.addNode(o, KindLegalEntity, labelOr(le, LabelUnnamedLE), leColumnX, leY)
			g.addEdge(o, EdgeLedgerToLE, ledgerNode, leNode)

			key := group{ledger, le}

			buY := leY // alongside the parent LE
			for _, name := range sortedUnique(buNames[key]) {
				buNode := g.addNode(o, KindBusinessUnit, name, buColumnX, buY)
				g.addEdge(o, EdgeLEToBU, leNode, buNode)
				buY += rowStride
			}

			coY := leY + costOrgDrop
			for _, name := range sortedUnique(coNames[key]) {
				coNode := g.addNode(o, KindCostOrg, name, costOrgColumnX, coY)
				g.addEdge(o, EdgeLEToCostOrg, leNode, coNode)
				coY += rowStride
			}

			leY += rowStride
		}
	}

	return g
}

func (g *Graph) addNode(o *options, kind Kind, label string, x, y float64) string {
	node := Node{
		ID:     o.ids(),
		Label:  label,
		Kind:   kind,
		X:      x,
		Y:      y,
		Width:  nodeWidth,
		Height: nodeHeight,
	}
	g.Nodes = append(g.Nodes, node)
	return node.ID
}

func (g *Graph) addEdge(o *options, kind EdgeKind, source, target string) {
	g.Edges = append(g.Edges, Edge{
		ID:     o.ids(),
		Source: source,
		Target: target,
		Kind:   kind,
	})
}

func labelOr(name, placeholder string) string {
	if name == "" {
		return placeholder
	}
	return name
}

// sortedEmptyLast returns set members sorted lexicographically with the empty
// string ordered last, matching the relationship tables' sort.
func sortedEmptyLast(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
	return out
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
