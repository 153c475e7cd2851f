package sqlerr

// Code is the category of a database failure.
type Code string

const (
	Other               Code = "other"
	NotFound            Code = "not_found"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
)

// Error is a classified database error. The driver error stays reachable
// through Unwrap.
type Error struct {
	Code         Code
	DatabaseCode int
	Message      string
	TableName    string
	ColumnName   string
	driverErr    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// IsConstraint reports whether the engine rejected the write because of a
// schema constraint.
func (e *Error) IsConstraint() bool {
	switch e.Code {
	case ForeignKeyViolation, UniqueViolation, NotNullViolation, CheckViolation:
		return true
	}
	return false
}
