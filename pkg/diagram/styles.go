package diagram

import "fmt"

// NodeStyle holds the fill and stroke colors for one node kind.
type NodeStyle struct {
	Fill   string `yaml:"fill"`
	Stroke string `yaml:"stroke"`
}

// EdgeStyle holds the stroke color and weight for one edge kind.
type EdgeStyle struct {
	Stroke string `yaml:"stroke"`
	Width  int    `yaml:"width"`
}

// Styles bundles the visual constants for every node and edge kind. The
// defaults are fixed design constants; the CLI may override them from a YAML
// file, which is presentation-layer configuration only.
type Styles struct {
	Ledger       NodeStyle `yaml:"ledger"`
	LegalEntity  NodeStyle `yaml:"legal_entity"`
	BusinessUnit NodeStyle `yaml:"business_unit"`
	CostOrg      NodeStyle `yaml:"cost_org"`

	LedgerToLE  EdgeStyle `yaml:"ledger_to_le"`
	LEToBU      EdgeStyle `yaml:"le_to_bu"`
	LEToCostOrg EdgeStyle `yaml:"le_to_cost_org"`
}

// DefaultStyles returns the fixed default palette.
func DefaultStyles() Styles {
	return Styles{
		Ledger:       NodeStyle{Fill: "#dae8fc", Stroke: "#6c8ebf"},
		LegalEntity:  NodeStyle{Fill: "#d5e8d4", Stroke: "#82b366"},
		BusinessUnit: NodeStyle{Fill: "#ffe6cc", Stroke: "#d79b00"},
		CostOrg:      NodeStyle{Fill: "#e1d5e7", Stroke: "#9673a6"},

		LedgerToLE:  EdgeStyle{Stroke: "#6c8ebf", Width: 2},
		LEToBU:      EdgeStyle{Stroke: "#d79b00", Width: 1},
		LEToCostOrg: EdgeStyle{Stroke: "#9673a6", Width: 1},
	}
}

// nodeStyle renders the draw.io style string for a node kind.
func (s Styles) nodeStyle(kind Kind) string {
	var ns NodeStyle
	switch kind {
	case KindLedger:
		ns = s.Ledger
	case KindLegalEntity:
		ns = s.LegalEntity
	case KindBusinessUnit:
		ns = s.BusinessUnit
	case KindCostOrg:
		ns = s.CostOrg
	}
	return fmt.Sprintf("rounded=1;whiteSpace=wrap;html=1;fillColor=%s;strokeColor=%s;", ns.Fill, ns.Stroke)
}

// edgeStyle renders the draw.io style string for an edge kind.
func (s Styles) edgeStyle(kind EdgeKind) string {
	var es EdgeStyle
	switch kind {
	case EdgeLedgerToLE:
		es = s.LedgerToLE
	case EdgeLEToBU:
		es = s.LEToBU
	case EdgeLEToCostOrg:
		es = s.LEToCostOrg
	}
	return fmt.Sprintf("edgeStyle=orthogonalEdgeStyle;rounded=0;html=1;endArrow=block;strokeColor=%s;strokeWidth=%d;", es.Stroke, es.Width)
}
