package domain

// EmploymentStatus labels what the person did in the reporting year.
type EmploymentStatus string

const (
	StatusEmployed      EmploymentStatus = "Angestellt"
	StatusUnemployed    EmploymentStatus = "Arbeitslos"
	StatusTraining      EmploymentStatus = "Ausbildung"
	StatusChildRearing  EmploymentStatus = "Kindererziehungszeit"
	StatusSelfEmployed  EmploymentStatus = "Selbstständig"
	StatusRetired       EmploymentStatus = "Rentner"
	StatusStudent       EmploymentStatus = "Student"
	StatusSick          EmploymentStatus = "Krank"
	StatusParentalLeave EmploymentStatus = "Elternzeit"
	StatusOther         EmploymentStatus = "Sonstiges"
)

// StatusOptions is the ordered list offered by entry forms. Records may
// still carry any other label.
var StatusOptions = []EmploymentStatus{
	StatusEmployed,
	StatusUnemployed,
	StatusTraining,
	StatusChildRearing,
	StatusSelfEmployed,
	StatusRetired,
	StatusStudent,
	StatusSick,
	StatusParentalLeave,
	StatusOther,
}

// IsKnownStatus reports whether s is one of StatusOptions.
func IsKnownStatus(s string) bool {
	for _, opt := range StatusOptions {
		if string(opt) == s {
			return true
		}
	}
	return false
}
