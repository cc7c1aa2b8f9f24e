package reconcile

import (
	"sort"
	"strings"
)

// Relation is one row of a normalized relationship table. For the business
// unit table Name holds the business unit name; for the cost organization
// table it holds the cost organization name. Any field may be the empty
// string, meaning unknown or unlinked, never null.
type Relation struct {
	Ledger      string `json:"ledger"`
	LegalEntity string `json:"legal_entity"`
	Name        string `json:"name"`
}

// finalize deduplicates on the full triple and applies the canonical sort:
// lexicographic by (Ledger, LegalEntity, Name) with empty values ordered
// after non-empty ones at every position, so rows without a ledger land last.
func finalize(rows []Relation) []Relation {
	seen := make(map[Relation]struct{}, len(rows))
	out := make([]Relation, 0, len(rows))
	for _, row := range rows {
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func less(a, b Relation) bool {
	if c := compareEmptyLast(a.Ledger, b.Ledger); c != 0 {
		return c < 0
	}
	if c := compareEmptyLast(a.LegalEntity, b.LegalEntity); c != 0 {
		return c < 0
	}
	return compareEmptyLast(a.Name, b.Name) < 0
}

// compareEmptyLast orders strings lexicographically with the empty string
// sorting after everything else.
func compareEmptyLast(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}
	return strings.Compare(a, b)
}
