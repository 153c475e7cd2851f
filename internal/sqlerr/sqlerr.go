// Package sqlerr turns SQLite driver errors into categorized errors that
// name the table and column involved where the engine reports them.
package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// IsConstraint reports whether err is a classified constraint violation.
func IsConstraint(err error) bool {
	var sqlErr *Error
	return errors.As(err, &sqlErr) && sqlErr.IsConstraint()
}

// Convert classifies err. table names the table the statement targeted and
// is used when the engine message does not carry one. Errors that are not
// database failures are returned unchanged.
func Convert(err error, table string) error {
	if err == nil {
		return nil
	}
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &Error{
			Code:      NotFound,
			Message:   fmt.Sprintf("%s not found", table),
			TableName: table,
			driverErr: err,
		}
	}

	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return err
	}

	out := &Error{
		Code:         MapCode(liteErr.Code(), liteErr.Error()),
		DatabaseCode: liteErr.Code(),
		Message:      liteErr.Error(),
		TableName:    table,
		driverErr:    err,
	}
	if t, c := constraintTarget(liteErr.Error()); t != "" {
		out.TableName, out.ColumnName = t, c
	}
	return out
}

// MapCode maps an SQLite result code to a Code. Extended constraint codes
// are preferred; the message is consulted when only the primary code is set.
func MapCode(code int, msg string) Code {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	}
	if code&0xff != sqlite3.SQLITE_CONSTRAINT && !strings.Contains(msg, "constraint failed") {
		return Other
	}
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ForeignKeyViolation
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "PRIMARY KEY"):
		return UniqueViolation
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return NotNullViolation
	case strings.Contains(msg, "CHECK constraint failed"):
		return CheckViolation
	}
	return Other
}

// constraintTarget extracts "table.column" from messages such as
// "constraint failed: UNIQUE constraint failed: person.person_name (1555)".
// The driver prefixes its own "constraint failed: ", so the last marker wins.
func constraintTarget(msg string) (table, column string) {
	const marker = "constraint failed: "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return "", ""
	}
	rest := msg[i+len(marker):]
	if i := strings.IndexAny(rest, " ,("); i >= 0 {
		rest = rest[:i]
	}
	table, column, ok := strings.Cut(rest, ".")
	if !ok || table == "" || column == "" {
		return "", ""
	}
	return table, column
}

// AppCode builds a machine-readable code like PERSON_ALREADY_EXISTS.
func AppCode(err error) string {
	var sqlErr *Error
	if !errors.As(err, &sqlErr) {
		return "RECORD_ERROR"
	}
	domain := strings.ToUpper(sqlErr.TableName)
	if domain == "" {
		domain = "RECORD"
	}

	action := "ERROR"
	switch sqlErr.Code {
	case ForeignKeyViolation:
		action = "REFERENCE_NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	case NotFound:
		action = "NOT_FOUND"
	}
	return domain + "_" + action
}

// FriendlyMessage phrases a classified error for console output.
func FriendlyMessage(err error) string {
	var sqlErr *Error
	if !errors.As(err, &sqlErr) {
		return err.Error()
	}
	entity := sqlErr.TableName
	if entity == "" {
		entity = "record"
	}

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("a %s references a row that does not exist", entity)
	case UniqueViolation:
		if sqlErr.ColumnName != "" {
			return fmt.Sprintf("a %s with this %s already exists", entity, sqlErr.ColumnName)
		}
		return fmt.Sprintf("a %s with this identifier already exists", entity)
	case NotNullViolation:
		if sqlErr.ColumnName == "" {
			return fmt.Sprintf("a %s is missing a required value", entity)
		}
		return fmt.Sprintf("%s.%s is required", entity, sqlErr.ColumnName)
	case CheckViolation:
		return fmt.Sprintf("a %s value does not meet required conditions", entity)
	case NotFound:
		return fmt.Sprintf("%s not found", entity)
	}
	return sqlErr.Message
}
