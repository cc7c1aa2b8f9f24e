// Package spreadsheet serializes the reconciled relationship tables into a
// two-sheet xlsx workbook.
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerscope/ledgermap/pkg/errors"
	"github.com/ledgerscope/ledgermap/pkg/reconcile"
)

// Sheet names, in workbook order.
const (
	SheetBusinessUnits = "Ledger LE BU"
	SheetCostOrgs      = "Ledger LE CostOrg"
)

// Header rows for the two sheets.
var (
	businessUnitHeaders = []string{"Ledger", "LegalEntityName", "BusinessUnitName"}
	costOrgHeaders      = []string{"Ledger", "LegalEntityName", "CostOrganization"}
)

// Workbook renders the two relationship tables as an xlsx workbook: sheet one
// holds the business unit table, sheet two the cost organization table, rows
// in the order the reconciler produced them. Every cell passes through
// Normalize at write time.
func Workbook(businessUnits, costOrgs []reconcile.Relation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	if err := f.SetSheetName("Sheet1", SheetBusinessUnits); err != nil {
		return nil, errors.WrapExport("workbook", err)
	}
	if _, err := f.NewSheet(SheetCostOrgs); err != nil {
		return nil, errors.WrapExport("workbook", err)
	}

	if err := writeSheet(f, SheetBusinessUnits, businessUnitHeaders, businessUnits); err != nil {
		return nil, errors.WrapExport("workbook", err)
	}
	if err := writeSheet(f, SheetCostOrgs, costOrgHeaders, costOrgs); err != nil {
		return nil, errors.WrapExport("workbook", err)
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.WrapExport("workbook", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows []reconcile.Relation) error {
	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", style); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "C", 32); err != nil {
		return err
	}

	for i, row := range rows {
		cells := []interface{}{
			reconcile.Normalize(row.Ledger),
			reconcile.Normalize(row.LegalEntity),
			reconcile.Normalize(row.Name),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}

	return nil
}
