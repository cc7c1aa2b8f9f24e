package diagram

import (
	"github.com/ledgerscope/ledgermap/pkg/constants"
)

// ViewerURL builds a shareable link that opens the diagram directly in the
// hosted viewer without uploading anything: the whole document rides in the
// URL fragment, prefixed with R to mark an inline compressed payload.
func (g *Graph) ViewerURL(title string) (string, error) {
	payload, err := g.Payload()
	if err != nil {
		return "", err
	}
	return constants.ViewerBaseURL +
		"?title=" + encodeURIComponent(title) +
		"#R" + encodeURIComponent(payload), nil
}
