// Package constants provides shared constants used throughout the ledgermap codebase.
// This includes file permissions, default artifact names, and the diagram viewer
// endpoint that the link encoder targets.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Artifact constants define default output names and the viewer endpoint
const (
	// DefaultWorkbookName is the default filename for the exported spreadsheet
	DefaultWorkbookName = "ledger-relationships.xlsx"

	// DefaultDiagramName is the default filename for the exported diagram document
	DefaultDiagramName = "ledger-relationships.drawio"

	// DefaultDiagramTitle is the display name embedded in diagram documents
	// when the caller does not supply one
	DefaultDiagramTitle = "Ledger Relationships"

	// ViewerBaseURL is the web viewer that shareable diagram links open in.
	// The #R fragment encoding produced by the link encoder is specific to
	// this viewer and must not change independently of it.
	ViewerBaseURL = "https://app.diagrams.net/"
)
