package importer

import "errors"

// Columns are the CSV headers in the order export writes them and import
// reads them.
var Columns = []string{
	"Jahr",
	"Entgeltpunkte",
	"Rente_jetzt",
	"Rente_hochgerechnet",
	"Erwerbsminderungsrente (€)",
	"Status",
	"Rentenbeginn_geplant",
	"Abschlaege_Monat",
	"Inflationserwartung",
	"Bruttoeinkommen",
	"Beitrag_Eigen",
	"Beitrag_Arbeitgeber",
	"Beitrag_Kassen",
	"Gesamtbeitrag",
	"Kindererziehungszeiten",
	"Ausbildungszeiten",
	"Zusatzvorsorge",
	"Zusatzvorsorge_Details",
	"Kommentar",
}

// Column indices.
const (
	colYear = iota
	colEntgeltpunkte
	colCurrentClaim
	colProjection
	colDisabilityPension
	colStatus
	colRetirementAge
	colEarlyRetirementDeduction
	colInflationExpectation
	colAnnualGrossIncome
	colOwnContribution
	colEmployerContribution
	colInsuranceContribution
	colTotalContribution
	colChildCareYears
	colEducationYears
	colAdditionalPension
	colAdditionalPensionDetails
	colComment
)

// minFields is the number of base columns a data line must carry.
const minFields = colRetirementAge + 1

const (
	boolYes = "Ja"
	boolNo  = "Nein"
)

const fileNamePrefix = "renteninformation_"

var (
	// ErrNoData means the input has no data line after the header.
	ErrNoData = errors.New("csv file contains no data")

	// ErrNoValidRows means every data line was rejected.
	ErrNoValidRows = errors.New("no valid rows in csv file")

	// ErrNothingToExport is returned when exporting an empty collection.
	ErrNothingToExport = errors.New("no records to export")
)
