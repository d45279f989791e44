// Package repository contains data access logic separated from HTTP
// handlers. This file covers the mls_points table: a bulk SELECT used to
// warm the in-memory mirror at startup, and a dynamic single-row UPDATE
// used by the edit flow. Columns are discovered from the result set and
// normalized, so the loader tolerates table snapshots with extra or
// renamed columns.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jpkrishna28/mls-point-locator/internal/model"
)

// FacilityRepo encapsulates all database queries for facilities. It
// depends on a sql.DB connection pool which is configured at startup.
type FacilityRepo struct {
	db *sql.DB
}

// NewFacilityRepo constructs a FacilityRepo with the provided DB handle.
// This allows dependency injection of the database in tests and at startup.
func NewFacilityRepo(db *sql.DB) *FacilityRepo {
	return &FacilityRepo{db: db}
}

// LoadAll reads every row of mls_points and returns the records in table
// order. Column names are normalized (lowercase, spaces to underscores,
// dots stripped) and SQL NULLs become empty strings so downstream
// consumers never see nulls.
func (r *FacilityRepo) LoadAll(ctx context.Context) ([]model.Record, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM mls_points")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	norm := make([]string, len(cols))
	for i, c := range cols {
		norm[i] = model.NormalizeColumn(c)
	}

	var out []model.Record
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		rec := make(model.Record, len(cols))
		for i, name := range norm {
			if vals[i].Valid {
				rec[name] = vals[i].String
			} else {
				rec[name] = ""
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return out, nil
}

// UpdateFields applies a pre-filtered field map to the row matching code.
// Callers must run the map through model.FilterToSchema first; this method
// builds SQL directly from the keys it is given. It returns
// ErrFacilityNotFound when no row was touched and ErrUpdateFailed when the
// statement itself fails.
func (r *FacilityRepo) UpdateFields(ctx context.Context, code string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	// Deterministic column order keeps the statement stable for logs and tests.
	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, col := range model.Schema {
		if v, ok := fields[col]; ok {
			sets = append(sets, col+" = ?")
			args = append(args, v)
		}
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, code)

	q := "UPDATE mls_points SET " + strings.Join(sets, ", ") + " WHERE " + model.CodeColumn + " = ?"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is zero both for a missing row and for a no-op write
		// of identical values; MySQL reports 0 in either case. Verify the
		// row exists before deciding which error to surface.
		var one int
		err := r.db.QueryRowContext(ctx,
			"SELECT 1 FROM mls_points WHERE "+model.CodeColumn+" = ?", code).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrFacilityNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
		}
	}
	return nil
}
