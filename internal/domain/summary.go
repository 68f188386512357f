package domain

// Summary holds the aggregate figures shown alongside the record table.
// All fields are zero when there are no records.
type Summary struct {
	Count         int     `json:"count"`
	MaxProjection float64 `json:"maxProjection"`
	FirstYear     int     `json:"firstYear"`
	LastYear      int     `json:"lastYear"`
}

// Summarize recomputes the summary from the current records.
func Summarize(records []PensionRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	s := Summary{
		Count:         len(records),
		MaxProjection: records[0].Projection,
		FirstYear:     records[0].Year,
		LastYear:      records[0].Year,
	}
	for _, r := range records[1:] {
		s.MaxProjection = max(s.MaxProjection, r.Projection)
		s.FirstYear = min(s.FirstYear, r.Year)
		s.LastYear = max(s.LastYear, r.Year)
	}
	return s
}

// Latest returns the record with the highest year. On ties the later
// record in the slice wins.
func Latest(records []PensionRecord) (PensionRecord, bool) {
	if len(records) == 0 {
		return PensionRecord{}, false
	}
	latest := records[0]
	for _, r := range records[1:] {
		if r.Year >= latest.Year {
			latest = r
		}
	}
	return latest, true
}

// ChartPoint is one year on the trend chart. Entgeltpunkte is scaled by
// 100 and income/contribution figures are in thousands so that all series
// share one axis.
type ChartPoint struct {
	Year                  int     `json:"year"`
	CurrentClaim          float64 `json:"currentClaim"`
	Projection            float64 `json:"projection"`
	DisabilityPension     float64 `json:"disabilityPension"`
	ScaledEntgeltpunkte   float64 `json:"scaledEntgeltpunkte"`
	GrossIncomeThousands  float64 `json:"grossIncomeThousands"`
	ContributionThousands float64 `json:"contributionThousands"`
}

// ChartSeries maps records to chart points, in record order.
func ChartSeries(records []PensionRecord) []ChartPoint {
	points := make([]ChartPoint, 0, len(records))
	for _, r := range records {
		points = append(points, ChartPoint{
			Year:                  r.Year,
			CurrentClaim:          r.CurrentClaim,
			Projection:            r.Projection,
			DisabilityPension:     r.DisabilityPension,
			ScaledEntgeltpunkte:   r.Entgeltpunkte * 100,
			GrossIncomeThousands:  ValueOr(0, r.AnnualGrossIncome) / 1000,
			ContributionThousands: ValueOr(0, r.TotalContribution) / 1000,
		})
	}
	return points
}
