package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrConstraintViolation is returned by Update when the new values break a
// NOT NULL, UNIQUE or foreign key constraint. Create reports the same case
// as a false result instead.
var ErrConstraintViolation = errors.New("constraint violation")

func isConstraint(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// createResult maps a Create error onto the (ok, err) convention.
func createResult(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case isConstraint(err):
		return false, nil
	default:
		return false, err
	}
}

func updateResult(tx *gorm.DB) (int64, error) {
	if tx.Error != nil {
		if isConstraint(tx.Error) {
			return 0, ErrConstraintViolation
		}
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
