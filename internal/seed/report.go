package seed

import "github.com/hetulpatel/personjob/internal/models"

// Rejection is a row the run skipped.
type Rejection struct {
	Key    string
	Code   string
	Reason string
	Err    error
}

type TableReport struct {
	Table     string
	Attempted int
	Inserted  int
	Rejected  []Rejection
}

type Report struct {
	Variant models.Variant
	Tables  []TableReport
}

func (r *Report) Table(name string) (TableReport, bool) {
	for _, t := range r.Tables {
		if t.Table == name {
			return t, true
		}
	}
	return TableReport{}, false
}

func (r *Report) Inserted() int {
	n := 0
	for _, t := range r.Tables {
		n += t.Inserted
	}
	return n
}

func (r *Report) Rejected() int {
	n := 0
	for _, t := range r.Tables {
		n += len(t.Rejected)
	}
	return n
}
