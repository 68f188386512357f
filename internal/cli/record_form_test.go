package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFormValues(t *testing.T) {
	v := defaultFormValues(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "2025", v.year)
	assert.Equal(t, "67", v.retirementAge)
	assert.Equal(t, "Angestellt", v.status)
	assert.Equal(t, "0.3", v.earlyRetirementDeduction)
	assert.Equal(t, "2.0", v.inflationExpectation)
	assert.Empty(t, v.projection)
}

func TestFormValues_Fields(t *testing.T) {
	v := defaultFormValues(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	v.entgeltpunkte = "24,5"
	v.currentClaim = "880"
	v.projection = " 1450.50 "
	v.disabilityPension = "910"
	v.annualGrossIncome = "52.000"
	v.comment = "Brief"

	f, err := v.fields()
	require.NoError(t, err)
	assert.Equal(t, 2024, f.Year)
	assert.Equal(t, 24.5, f.Entgeltpunkte)
	assert.Equal(t, 1450.5, f.Projection)
	assert.Equal(t, 67, f.RetirementAge)
	require.NotNil(t, f.EarlyRetirementDeduction)
	assert.Equal(t, 0.3, *f.EarlyRetirementDeduction)
	require.NotNil(t, f.AnnualGrossIncome)
	assert.Equal(t, 52.0, *f.AnnualGrossIncome, "a dot is a decimal point, not a thousands separator")
	require.NotNil(t, f.AdditionalPension)
	assert.False(t, *f.AdditionalPension)
	assert.Nil(t, f.ChildCareYears)
	assert.Nil(t, f.AdditionalPensionDetails)
	require.NotNil(t, f.Comment)
	assert.Equal(t, "Brief", *f.Comment)
}

func TestFormValues_FieldsReportsFirstError(t *testing.T) {
	v := defaultFormValues(time.Now())
	v.entgeltpunkte = "viel"
	v.currentClaim = ""
	v.projection = "1"
	v.disabilityPension = "1"

	_, err := v.fields()
	require.Error(t, err)
	assert.Equal(t, "Entgeltpunkte: enter a number", err.Error())
}

func TestFormValues_RoundTripFromRecord(t *testing.T) {
	r := testutil.NewTestRecord(2023,
		testutil.WithGrossIncome(48250.75),
		testutil.WithAdditionalPension("Riester"),
		testutil.WithComment("zweite Info"))

	f, err := formValuesFromRecord(r).fields()
	require.NoError(t, err)
	assert.Equal(t, r.Fields(), f)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12", 12, false},
		{"12,75", 12.75, false},
		{" 0.5 ", 0.5, false},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"1.2.3", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseNumber(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validateYear("2024"))
	assert.Error(t, validateYear("1949"))
	assert.Error(t, validateYear("zwanzig"))

	assert.NoError(t, validateRetirementAge("63"))
	assert.Error(t, validateRetirementAge("71"))

	assert.NoError(t, validateRequiredNonNegative("0"))
	assert.Error(t, validateRequiredNonNegative(""))
	assert.Error(t, validateRequiredNonNegative("-1"))

	assert.NoError(t, validateOptionalNonNegative(""))
	assert.Error(t, validateOptionalNonNegative("-0,5"))

	inRange := validateOptionalRange(0, domain.MaxPercentField)
	assert.NoError(t, inRange(""))
	assert.NoError(t, inRange("10"))
	assert.EqualError(t, inRange("10,5"), "must be between 0 and 10")
}

func TestNewRecordForm_KeepsUnknownStatus(t *testing.T) {
	v := defaultFormValues(time.Now())
	v.status = "Rentner"

	form := newRecordForm(v)
	require.NotNil(t, form)
	assert.Equal(t, "Rentner", v.status)
}
