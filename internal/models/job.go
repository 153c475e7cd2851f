package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// SalaryPlaces and SalaryDigits mirror a DECIMAL(7,2) column.
	SalaryPlaces = 2
	SalaryDigits = 7
)

var (
	ErrMissingDate = errors.New("start and end dates are required")
	ErrSalaryRange = errors.New("salary exceeds 7 digits")

	salaryLimit = decimal.New(1, SalaryDigits-SalaryPlaces)
)

// Job is a past job held by a person.
type Job struct {
	Name           string          `db:"job_name" json:"job_name" validate:"required,max=30"`
	StartDate      Date            `db:"start_date" json:"start_date"`
	EndDate        Date            `db:"end_date" json:"end_date"`
	Salary         decimal.Decimal `db:"salary" json:"salary"`
	PersonEmployed string          `db:"person_employed" json:"person_employed" validate:"required,max=30"`
	DeptName       *string         `db:"dept_name_for_job" json:"dept_name_for_job,omitempty" validate:"omitempty,max=30"`
}

// Salary rounds a literal amount to the stored precision. SQLite does not
// enforce DECIMAL(7, 2), so the scale is applied here before insert.
func Salary(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(SalaryPlaces)
}

func (j Job) Key() string { return j.Name }

func (j Job) Validate() error {
	if err := validate.Struct(j); err != nil {
		return fmt.Errorf("invalid job %q: %w", j.Name, err)
	}
	if j.StartDate.IsZero() || j.EndDate.IsZero() {
		return fmt.Errorf("invalid job %q: %w", j.Name, ErrMissingDate)
	}
	if j.Salary.Round(SalaryPlaces).Abs().GreaterThanOrEqual(salaryLimit) {
		return fmt.Errorf("invalid job %q: %w", j.Name, ErrSalaryRange)
	}
	return nil
}

func (j Job) Show() string {
	parts := []string{
		j.Name,
		j.StartDate.String(),
		j.EndDate.String(),
		j.Salary.StringFixed(SalaryPlaces),
		j.PersonEmployed,
	}
	if j.DeptName != nil {
		parts = append(parts, *j.DeptName)
	}
	return strings.Join(parts, " ")
}
