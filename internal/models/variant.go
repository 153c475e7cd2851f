package models

import "fmt"

// Variant selects which of the two department layouts the schema uses.
type Variant string

const (
	// VariantManaged: departments are keyed by name and managed by a person;
	// every job belongs to a department.
	VariantManaged Variant = "managed"
	// VariantJobLinked: departments are keyed by number, name their manager
	// in free text and reference a job.
	VariantJobLinked Variant = "job-linked"
)

const (
	TablePerson     = "person"
	TableDepartment = "department"
	TableJob        = "job"
)

func ParseVariant(raw string) (Variant, error) {
	switch Variant(raw) {
	case VariantManaged, VariantJobLinked:
		return Variant(raw), nil
	case "":
		return VariantManaged, nil
	}
	return "", fmt.Errorf("unknown schema variant %q", raw)
}

// Tables lists the tables in the order rows must be inserted so that
// referenced rows exist first.
func (v Variant) Tables() []string {
	if v == VariantJobLinked {
		return []string{TablePerson, TableJob, TableDepartment}
	}
	return []string{TablePerson, TableDepartment, TableJob}
}
