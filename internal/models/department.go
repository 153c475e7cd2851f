package models

import (
	"fmt"
	"strings"
)

// Department records where a person held a job. In the managed layout the
// manager references a Person; in the job-linked layout Job references a Job
// and Manager is free text.
type Department struct {
	Number  string  `db:"dept_number" json:"dept_number" validate:"required,max=30"`
	Name    string  `db:"dept_name" json:"dept_name" validate:"required,max=30"`
	Manager string  `db:"dept_manager" json:"dept_manager" validate:"required,max=30"`
	Job     *string `db:"job" json:"job,omitempty" validate:"omitempty,max=30"`
}

func (d Department) Key() string { return d.Number }

func (d Department) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid department %q: %w", d.Number, err)
	}
	return nil
}

func (d Department) Show() string {
	parts := []string{d.Number, d.Name, d.Manager}
	if d.Job != nil {
		parts = append(parts, *d.Job)
	}
	return strings.Join(parts, " ")
}

// DepartmentJob is a department read back together with the dates of the job
// it references.
type DepartmentJob struct {
	Department
	JobStart *Date `db:"job_start_date" json:"job_start_date,omitempty"`
	JobEnd   *Date `db:"job_end_date" json:"job_end_date,omitempty"`
}

// JobHeldDays is the length of this department's job in days. ok is false
// when either date is unknown.
func (d DepartmentJob) JobHeldDays() (days int, ok bool) {
	if d.JobStart == nil || d.JobEnd == nil || d.JobStart.IsZero() || d.JobEnd.IsZero() {
		return 0, false
	}
	return d.JobStart.DaysUntil(*d.JobEnd), true
}

func (d DepartmentJob) Show() string {
	days, ok := d.JobHeldDays()
	if !ok {
		return d.Department.Show() + " -"
	}
	return fmt.Sprintf("%s %d days", d.Department.Show(), days)
}
