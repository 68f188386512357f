package domain

// RecordPatch is a partial update. Nil fields are left untouched; ID and
// CreatedAt cannot be patched.
type RecordPatch struct {
	Year              *int     `json:"year,omitempty"`
	Entgeltpunkte     *float64 `json:"entgeltpunkte,omitempty"`
	CurrentClaim      *float64 `json:"currentClaim,omitempty"`
	Projection        *float64 `json:"projection,omitempty"`
	DisabilityPension *float64 `json:"disabilityPension,omitempty"`
	RetirementAge     *int     `json:"retirementAge,omitempty"`
	Status            *string  `json:"status,omitempty"`

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

// IsEmpty reports whether the patch sets no field at all.
func (p RecordPatch) IsEmpty() bool {
	return p == RecordPatch{}
}

// Apply merges the set fields of p into r.
func (r *PensionRecord) Apply(p RecordPatch) {
	if p.Year != nil {
		r.Year = *p.Year
	}
	if p.Entgeltpunkte != nil {
		r.Entgeltpunkte = *p.Entgeltpunkte
	}
	if p.CurrentClaim != nil {
		r.CurrentClaim = *p.CurrentClaim
	}
	if p.Projection != nil {
		r.Projection = *p.Projection
	}
	if p.DisabilityPension != nil {
		r.DisabilityPension = *p.DisabilityPension
	}
	if p.RetirementAge != nil {
		r.RetirementAge = *p.RetirementAge
	}
	if p.Status != nil {
		r.Status = *p.Status
	}

	applyOptional(&r.EarlyRetirementDeduction, p.EarlyRetirementDeduction)
	applyOptional(&r.InflationExpectation, p.InflationExpectation)
	applyOptional(&r.AdditionalPension, p.AdditionalPension)
	applyOptional(&r.AdditionalPensionDetails, p.AdditionalPensionDetails)
	applyOptional(&r.AnnualGrossIncome, p.AnnualGrossIncome)
	applyOptional(&r.ChildCareYears, p.ChildCareYears)
	applyOptional(&r.EducationYears, p.EducationYears)
	applyOptional(&r.OwnContribution, p.OwnContribution)
	applyOptional(&r.EmployerContribution, p.EmployerContribution)
	applyOptional(&r.InsuranceContribution, p.InsuranceContribution)
	applyOptional(&r.TotalContribution, p.TotalContribution)
	applyOptional(&r.Comment, p.Comment)
}

func applyOptional[T any](dst **T, src *T) {
	if src != nil {
		*dst = CopyPtr(src)
	}
}
