package testutil

import (
	"time"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/google/uuid"
)

// Record field options
type FieldsOption func(*domain.RecordFields)

func WithEntgeltpunkte(v float64) FieldsOption {
	return func(f *domain.RecordFields) {
		f.Entgeltpunkte = v
	}
}

func WithProjection(v float64) FieldsOption {
	return func(f *domain.RecordFields) {
		f.Projection = v
	}
}

func WithStatus(s domain.EmploymentStatus) FieldsOption {
	return func(f *domain.RecordFields) {
		f.Status = string(s)
	}
}

func WithComment(c string) FieldsOption {
	return func(f *domain.RecordFields) {
		f.Comment = &c
	}
}

func WithAdditionalPension(details string) FieldsOption {
	return func(f *domain.RecordFields) {
		f.AdditionalPension = domain.Ptr(true)
		f.AdditionalPensionDetails = &details
	}
}

func WithGrossIncome(v float64) FieldsOption {
	return func(f *domain.RecordFields) {
		f.AnnualGrossIncome = &v
	}
}

func WithContributions(own, employer float64) FieldsOption {
	return func(f *domain.RecordFields) {
		f.OwnContribution = &own
		f.EmployerContribution = &employer
		total := own + employer
		f.TotalContribution = &total
	}
}

// NewTestFields returns plausible statement values for the given year.
func NewTestFields(year int, opts ...FieldsOption) domain.RecordFields {
	f := domain.RecordFields{
		Year:              year,
		Entgeltpunkte:     1.2,
		CurrentClaim:      450,
		Projection:        1300,
		DisabilityPension: 820,
		RetirementAge:     domain.DefaultRetirementAge,
		Status:            string(domain.StatusEmployed),
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// NewTestRecord builds a stored-looking record with a fresh ID.
func NewTestRecord(year int, opts ...FieldsOption) domain.PensionRecord {
	return domain.NewRecord(uuid.New().String(), NewTestFields(year, opts...), time.Now().UTC())
}
