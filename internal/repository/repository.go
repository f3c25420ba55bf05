package repository

import (
	"database/sql"
	"fmt"
)

// requireRowAffected converts a zero-row update/delete into sql.ErrNoRows so
// callers can map it onto their not-found error.
func requireRowAffected(result sql.Result, resource string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", resource, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
