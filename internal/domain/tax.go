package domain

import "github.com/shopspring/decimal"

// taxClassRates are flat illustrative rates per German tax class. They are
// not a tax computation.
var taxClassRates = map[int]decimal.Decimal{
	1: decimal.RequireFromString("0.30"),
	2: decimal.RequireFromString("0.28"),
	3: decimal.RequireFromString("0.25"),
	4: decimal.RequireFromString("0.20"),
	5: decimal.RequireFromString("0.35"),
	6: decimal.RequireFromString("0.42"),
}

var fallbackTaxRate = decimal.RequireFromString("0.30")

// TaxClasses lists the classes NetEstimates reports on.
var TaxClasses = []int{1, 2, 3, 4, 5, 6}

// TaxRate returns the flat rate for a class, 30% for unknown classes.
func TaxRate(taxClass int) decimal.Decimal {
	if r, ok := taxClassRates[taxClass]; ok {
		return r
	}
	return fallbackTaxRate
}

// NetValue applies the flat rate of taxClass to a gross monthly amount.
func NetValue(gross float64, taxClass int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	return decimal.NewFromFloat(gross).Mul(one.Sub(TaxRate(taxClass)))
}

// NetEstimate is the estimated net monthly amount per tax class for the
// three pension figures of one record.
type NetEstimate struct {
	TaxClass          int             `json:"taxClass"`
	CurrentClaim      decimal.Decimal `json:"currentClaim"`
	Projection        decimal.Decimal `json:"projection"`
	DisabilityPension decimal.Decimal `json:"disabilityPension"`
}

// NetEstimates computes estimates for every tax class for r.
func NetEstimates(r PensionRecord) []NetEstimate {
	out := make([]NetEstimate, 0, len(TaxClasses))
	for _, class := range TaxClasses {
		out = append(out, NetEstimate{
			TaxClass:          class,
			CurrentClaim:      NetValue(r.CurrentClaim, class),
			Projection:        NetValue(r.Projection, class),
			DisabilityPension: NetValue(r.DisabilityPension, class),
		})
	}
	return out
}
