package spreadsheet_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ledgerscope/ledgermap/pkg/reconcile"
	"github.com/ledgerscope/ledgermap/pkg/spreadsheet"
)

func TestWorkbookSheets(t *testing.T) {
	bu := []reconcile.Relation{
		{Ledger: "US Primary Ledger", LegalEntity: "US LE 1", Name: "AP US"},
		{Ledger: "US Primary Ledger", LegalEntity: "US LE 2"},
	}
	co := []reconcile.Relation{
		{Ledger: "US Primary Ledger", LegalEntity: "US LE 1", Name: "US Cost Org"},
	}

	data, err := spreadsheet.Workbook(bu, co)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	require.Equal(t, []string{spreadsheet.SheetBusinessUnits, spreadsheet.SheetCostOrgs}, f.GetSheetList())

	buRows, err := f.GetRows(spreadsheet.SheetBusinessUnits)
	require.NoError(t, err)
	require.Len(t, buRows, 3)
	assert.Equal(t, []string{"Ledger", "LegalEntityName", "BusinessUnitName"}, buRows[0])
	assert.Equal(t, []string{"US Primary Ledger", "US LE 1", "AP US"}, buRows[1])
	// Trailing empty cells may be trimmed by the reader.
	assert.Equal(t, "US LE 2", buRows[2][1])

	coRows, err := f.GetRows(spreadsheet.SheetCostOrgs)
	require.NoError(t, err)
	require.Len(t, coRows, 2)
	assert.Equal(t, []string{"Ledger", "LegalEntityName", "CostOrganization"}, coRows[0])
	assert.Equal(t, []string{"US Primary Ledger", "US LE 1", "US Cost Org"}, coRows[1])
}

func TestWorkbookRenormalizesAtWrite(t *testing.T) {
	bu := []reconcile.Relation{
		{Ledger: " US Ledger ", LegalEntity: "nan", Name: "AP"},
	}

	data, err := spreadsheet.Workbook(bu, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	ledger, err := f.GetCellValue(spreadsheet.SheetBusinessUnits, "A2")
	require.NoError(t, err)
	assert.Equal(t, "US Ledger", ledger)

	le, err := f.GetCellValue(spreadsheet.SheetBusinessUnits, "B2")
	require.NoError(t, err)
	assert.Empty(t, le, "sentinel values must not reach cells")
}

func TestWorkbookEmptyTables(t *testing.T) {
	data, err := spreadsheet.Workbook(nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows(spreadsheet.SheetBusinessUnits)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}

func TestWorkbookDeterministic(t *testing.T) {
	bu := []reconcile.Relation{{Ledger: "L", LegalEntity: "E", Name: "B"}}
	co := []reconcile.Relation{{Ledger: "L", LegalEntity: "E", Name: "C"}}

	first, err := spreadsheet.Workbook(bu, co)
	require.NoError(t, err)

	// Compare sheet contents rather than raw bytes: the xlsx container
	// embeds zip timestamps.
	open := func(data []byte) [][]string {
		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close() //nolint:errcheck
		rows, err := f.GetRows(spreadsheet.SheetBusinessUnits)
		require.NoError(t, err)
		return rows
	}

	second, err := spreadsheet.Workbook(bu, co)
	require.NoError(t, err)
	assert.Equal(t, open(first), open(second))
}
