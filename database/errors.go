package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// UniqueViolationError and ForeignKeyViolationError are the only two constraint
// failures the rest of the application distinguishes. Every DAO translates the
// driver's constraint codes through translateConstraint so handlers never see a
// raw sqlite error code.

type UniqueViolationError struct {
	Message string
}

func (e *UniqueViolationError) Error() string { return e.Message }

type ForeignKeyViolationError struct {
	Message string
}

func (e *ForeignKeyViolationError) Error() string { return e.Message }

// translateConstraint maps a driver constraint violation to one of the two
// domain error kinds, carrying the given entity-specific message. Any other
// error passes through unchanged.
func translateConstraint(err error, uniqueMsg, fkMsg string) error {
	var se sqlite3.Error
	if !errors.As(err, &se) || se.Code != sqlite3.ErrConstraint {
		return err
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return &UniqueViolationError{Message: uniqueMsg}
	case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
		return &ForeignKeyViolationError{Message: fkMsg}
	}
	return err
}

func IsUniqueViolation(err error) bool {
	var uv *UniqueViolationError
	return errors.As(err, &uv)
}

func IsForeignKeyViolation(err error) bool {
	var fv *ForeignKeyViolationError
	return errors.As(err, &fv)
}
