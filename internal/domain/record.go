package domain

import (
	"cmp"
	"slices"
	"time"
)

// Valid year interval used by CSV import; both bounds are exclusive.
const (
	MinYearExclusive = 1950
	MaxYearExclusive = 2100
)

// DefaultRetirementAge is used when a record does not name a planned
// retirement age.
const DefaultRetirementAge = 67

// PensionRecord is one yearly pension statement.
type PensionRecord struct {
	ID                string  `json:"id"`
	Year              int     `json:"year"`
	Entgeltpunkte     float64 `json:"entgeltpunkte"`
	CurrentClaim      float64 `json:"currentClaim"`
	Projection        float64 `json:"projection"`
	DisabilityPension float64 `json:"disabilityPension"`
	RetirementAge     int     `json:"retirementAge"`
	Status            string  `json:"status"`

	EarlyRetirementDeduction *float64 `json:"earlyRetirementDeduction,omitempty"`
	InflationExpectation     *float64 `json:"inflationExpectation,omitempty"`
	AdditionalPension        *bool    `json:"additionalPension,omitempty"`
	AdditionalPensionDetails *string  `json:"additionalPensionDetails,omitempty"`
	AnnualGrossIncome        *float64 `json:"annualGrossIncome,omitempty"`
	ChildCareYears           *float64 `json:"childCareYears,omitempty"`
	EducationYears           *float64 `json:"educationYears,omitempty"`
	OwnContribution          *float64 `json:"ownContribution,omitempty"`
	EmployerContribution     *float64 `json:"employerContribution,omitempty"`
	InsuranceContribution    *float64 `json:"insuranceContribution,omitempty"`
	TotalContribution        *float64 `json:"totalContribution,omitempty"`
	Comment                  *string  `json:"comment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// RecordFields carries everything a caller supplies when creating a record.
// ID and CreatedAt are assigned by the store.
type RecordFields struct {
	Year              int     `json:"year"`
	Entgeltpunkte     float64 `json:"entgeltpunkte"`
	CurrentClaim      float64 `json:"currentClaim"`
	Projection        float64 `json:"projection"`
	DisabilityPension float64 `json:"disabilityPension"`
	RetirementAge     int     `json:"retirementAge"`
	Status            string  `json:"status"`

	EarlyRetirementDeduction *float64 `json:"earlyRetirementDeduction,omitempty"`
	InflationExpectation     *float64 `json:"inflationExpectation,omitempty"`
	AdditionalPension        *bool    `json:"additionalPension,omitempty"`
	AdditionalPensionDetails *string  `json:"additionalPensionDetails,omitempty"`
	AnnualGrossIncome        *float64 `json:"annualGrossIncome,omitempty"`
	ChildCareYears           *float64 `json:"childCareYears,omitempty"`
	EducationYears           *float64 `json:"educationYears,omitempty"`
	OwnContribution          *float64 `json:"ownContribution,omitempty"`
	EmployerContribution     *float64 `json:"employerContribution,omitempty"`
	InsuranceContribution    *float64 `json:"insuranceContribution,omitempty"`
	TotalContribution        *float64 `json:"totalContribution,omitempty"`
	Comment                  *string  `json:"comment,omitempty"`
}

// NewRecord builds a record from caller-supplied fields.
func NewRecord(id string, f RecordFields, createdAt time.Time) PensionRecord {
	r := PensionRecord{ID: id, CreatedAt: createdAt}
	r.SetFields(f)
	return r
}

// SetFields overwrites every user-editable field, leaving ID and CreatedAt
// untouched. Pointer fields are copied so the record never aliases f.
func (r *PensionRecord) SetFields(f RecordFields) {
	r.Year = f.Year
	r.Entgeltpunkte = f.Entgeltpunkte
	r.CurrentClaim = f.CurrentClaim
	r.Projection = f.Projection
	r.DisabilityPension = f.DisabilityPension
	r.RetirementAge = f.RetirementAge
	r.Status = f.Status

	r.EarlyRetirementDeduction = CopyPtr(f.EarlyRetirementDeduction)
	r.InflationExpectation = CopyPtr(f.InflationExpectation)
	r.AdditionalPension = CopyPtr(f.AdditionalPension)
	r.AdditionalPensionDetails = CopyPtr(f.AdditionalPensionDetails)
	r.AnnualGrossIncome = CopyPtr(f.AnnualGrossIncome)
	r.ChildCareYears = CopyPtr(f.ChildCareYears)
	r.EducationYears = CopyPtr(f.EducationYears)
	r.OwnContribution = CopyPtr(f.OwnContribution)
	r.EmployerContribution = CopyPtr(f.EmployerContribution)
	r.InsuranceContribution = CopyPtr(f.InsuranceContribution)
	r.TotalContribution = CopyPtr(f.TotalContribution)
	r.Comment = CopyPtr(f.Comment)
}

// Fields returns the user-editable part of the record.
func (r PensionRecord) Fields() RecordFields {
	return RecordFields{
		Year:                     r.Year,
		Entgeltpunkte:            r.Entgeltpunkte,
		CurrentClaim:             r.CurrentClaim,
		Projection:               r.Projection,
		DisabilityPension:        r.DisabilityPension,
		RetirementAge:            r.RetirementAge,
		Status:                   r.Status,
		EarlyRetirementDeduction: CopyPtr(r.EarlyRetirementDeduction),
		InflationExpectation:     CopyPtr(r.InflationExpectation),
		AdditionalPension:        CopyPtr(r.AdditionalPension),
		AdditionalPensionDetails: CopyPtr(r.AdditionalPensionDetails),
		AnnualGrossIncome:        CopyPtr(r.AnnualGrossIncome),
		ChildCareYears:           CopyPtr(r.ChildCareYears),
		EducationYears:           CopyPtr(r.EducationYears),
		OwnContribution:          CopyPtr(r.OwnContribution),
		EmployerContribution:     CopyPtr(r.EmployerContribution),
		InsuranceContribution:    CopyPtr(r.InsuranceContribution),
		TotalContribution:        CopyPtr(r.TotalContribution),
		Comment:                  CopyPtr(r.Comment),
	}
}

// Clone returns a deep copy of the record.
func (r PensionRecord) Clone() PensionRecord {
	c := PensionRecord{ID: r.ID, CreatedAt: r.CreatedAt}
	c.SetFields(r.Fields())
	return c
}

// YearInRange reports whether year lies inside the open import interval.
func YearInRange(year int) bool {
	return year > MinYearExclusive && year < MaxYearExclusive
}

// SortByYear orders records ascending by year. Records sharing a year keep
// their relative order.
func SortByYear(records []PensionRecord) {
	slices.SortStableFunc(records, func(a, b PensionRecord) int {
		return cmp.Compare(a.Year, b.Year)
	})
}

// CloneRecords deep-copies a record slice.
func CloneRecords(records []PensionRecord) []PensionRecord {
	out := make([]PensionRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
