package archive

import (
	"path"
	"strings"
)

// Recognized Oracle Fusion setup-export file names. Matching against zip
// entries is case-insensitive on the base name, since exports arrive with
// inconsistent casing and folder prefixes depending on how they were produced.
const (
	// FileLedgers is the primary ledger catalog.
	FileLedgers = "ORA_GL_PRIMARY_LEDGER.csv"

	// FileLegalEntities is the legal entity profile catalog.
	FileLegalEntities = "ORA_XLE_ENTITY_PROFILE.csv"

	// FileLedgerAssignments maps primary ledgers to legal entity identifiers.
	FileLedgerAssignments = "ORA_GL_LEDGER_LEGAL_ENTITY.csv"

	// FileRegistrations maps legal entity identifiers to legal entity names.
	FileRegistrations = "ORA_XLE_REGISTRATION.csv"

	// FileBusinessUnits holds business units with their stated ledger and
	// legal entity references.
	FileBusinessUnits = "ORA_FUN_BUSINESS_UNIT.csv"

	// FileCostOrgs holds cost organizations keyed by legal entity identifier.
	FileCostOrgs = "ORA_CST_COST_ORGANIZATION.csv"
)

// Column names shared by the recognized files.
const (
	// ColName is the entity name column in legal entity and business unit files.
	ColName = "Name"

	// ColPrimaryLedgerName is the ledger name column.
	ColPrimaryLedgerName = "PrimaryLedgerName"

	// ColLegalEntityName is the legal entity name column in the business unit file.
	ColLegalEntityName = "LegalEntityName"

	// ColLegalEntityIdentifier is the opaque join key linking ledger and cost
	// tables to legal entity names.
	ColLegalEntityIdentifier = "LegalEntityIdentifier"

	// ColCostOrganization is the cost organization name column.
	ColCostOrganization = "CostOrganization"
)

// Files returns the recognized file names in their fixed scan order.
func Files() []string {
	return []string{
		FileLedgers,
		FileLegalEntities,
		FileLedgerAssignments,
		FileRegistrations,
		FileBusinessUnits,
		FileCostOrgs,
	}
}

// Recognize matches a zip entry name against the recognized file set and
// returns the canonical file name. Directory prefixes are ignored and the
// comparison is case-insensitive.
func Recognize(entryName string) (string, bool) {
	base := strings.ToLower(path.Base(entryName))
	for _, file := range Files() {
		if strings.ToLower(file) == base {
			return file, true
		}
	}
	return "", false
}
