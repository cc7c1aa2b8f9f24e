package reconcile_test

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerscope/ledgermap/pkg/archive"
)

// setFromCSVs builds an extracted archive set from file name to CSV content
// by round-tripping through an in-memory zip archive.
func setFromCSVs(t *testing.T, files map[string]string) *archive.Set {
	t.Helper()

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	set, err := archive.Extract(context.Background(), buf.Bytes())
	require.NoError(t, err)
	return set
}
