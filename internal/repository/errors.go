// Package repository defines error types that are reused across the data
// layer. These sentinel values allow handlers to distinguish failure
// scenarios without inspecting driver errors. ErrFacilityNotFound maps to
// an HTTP 404, ErrStoreUnavailable means the backing table could not be
// read at load time and the process is serving an empty mirror, and
// ErrUpdateFailed means the backing-table write did not go through and the
// mirror was left untouched.
package repository

import "errors"

// ErrFacilityNotFound is returned when no row matches the requested code.
var ErrFacilityNotFound = errors.New("facility not found")

// ErrStoreUnavailable signals that the mls_points table was unreachable
// during the bulk load. Callers degrade to an empty store instead of
// aborting startup.
var ErrStoreUnavailable = errors.New("facility store unavailable")

// ErrUpdateFailed is returned when the single-row UPDATE against the
// backing table fails. The in-memory mirror is only patched after the
// database write succeeds, so this error guarantees neither layer changed.
var ErrUpdateFailed = errors.New("facility update failed")
