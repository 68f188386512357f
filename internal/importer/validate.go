package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/pensionbook/internal/domain"
)

// RowError describes one rejected data line. Line is 1-based and counts
// every line of the input, blank ones included.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ParseResult holds the accepted rows and the rejected ones, each in input
// order.
type ParseResult struct {
	Records  []domain.RecordFields
	Rejected []RowError
}

// ReadCSV reads r to the end and parses it with ParseCSV.
func ReadCSV(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return ParseCSV(string(data))
}

// ParseCSV parses exported pension data. The first non-blank line is the
// header and is not inspected. Returns ErrNoData when no data line follows
// it. When every data line is rejected the result is still returned,
// together with ErrNoValidRows.
func ParseCSV(input string) (*ParseResult, error) {
	type line struct {
		number int
		text   string
	}
	var lines []line
	for i, raw := range strings.Split(input, "\n") {
		text := strings.Trim(raw, " \r")
		if text == "" {
			continue
		}
		lines = append(lines, line{number: i + 1, text: text})
	}
	if len(lines) < 2 {
		return nil, ErrNoData
	}

	result := &ParseResult{}
	for _, l := range lines[1:] {
		fields, err := parseRow(l.text)
		if err != nil {
			result.Rejected = append(result.Rejected, RowError{Line: l.number, Reason: err.Error()})
			continue
		}
		result.Records = append(result.Records, fields)
	}

	if len(result.Records) == 0 {
		return result, ErrNoValidRows
	}
	return result, nil
}

func parseRow(text string) (domain.RecordFields, error) {
	var f domain.RecordFields

	values := strings.Split(text, ",")
	if len(values) < minFields {
		return f, fmt.Errorf("expected at least %d fields, got %d", minFields, len(values))
	}
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}

	year, err := strconv.Atoi(values[colYear])
	if err != nil {
		return f, fmt.Errorf("%s: invalid integer %q", Columns[colYear], values[colYear])
	}
	f.Year = year
	if !domain.YearInRange(f.Year) {
		return f, fmt.Errorf("%s: %d outside %d-%d", Columns[colYear], f.Year, domain.MinYearExclusive, domain.MaxYearExclusive)
	}

	// Only the field count and the year reject a row. Numbers that do not
	// parse become 0 in the base columns and stay absent in the others.
	for _, base := range []struct {
		col int
		dst *float64
	}{
		{colEntgeltpunkte, &f.Entgeltpunkte},
		{colCurrentClaim, &f.CurrentClaim},
		{colProjection, &f.Projection},
		{colDisabilityPension, &f.DisabilityPension},
	} {
		*base.dst, _ = parseFloat(values[base.col])
	}

	f.Status = unquote(values[colStatus])

	f.RetirementAge = domain.DefaultRetirementAge
	if age, err := strconv.Atoi(values[colRetirementAge]); err == nil {
		f.RetirementAge = age
	}

	for _, opt := range []struct {
		col int
		dst **float64
	}{
		{colEarlyRetirementDeduction, &f.EarlyRetirementDeduction},
		{colInflationExpectation, &f.InflationExpectation},
		{colAnnualGrossIncome, &f.AnnualGrossIncome},
		{colOwnContribution, &f.OwnContribution},
		{colEmployerContribution, &f.EmployerContribution},
		{colInsuranceContribution, &f.InsuranceContribution},
		{colTotalContribution, &f.TotalContribution},
		{colChildCareYears, &f.ChildCareYears},
		{colEducationYears, &f.EducationYears},
	} {
		if n, err := parseFloat(field(values, opt.col)); err == nil {
			*opt.dst = &n
		}
	}

	if v := unquote(field(values, colAdditionalPension)); v != "" {
		f.AdditionalPension = domain.Ptr(v == boolYes)
	}
	f.AdditionalPensionDetails = optionalString(field(values, colAdditionalPensionDetails))
	f.Comment = optionalString(field(values, colComment))

	return f, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func field(values []string, col int) string {
	if col < len(values) {
		return values[col]
	}
	return ""
}

func unquote(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

func optionalString(s string) *string {
	s = unquote(s)
	if s == "" {
		return nil
	}
	return &s
}
