package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrVehicleNotFound is returned when a query or mutation targets a
	// vehicle ID that does not exist in the database.
	ErrVehicleNotFound = errors.New("vehicle was not found")

	// ErrLeadNotFound is returned when a delete targets a lead ID that does
	// not exist in the database.
	ErrLeadNotFound = errors.New("lead was not found")

	// ErrSessionNotFound is returned when a session lookup by token hash
	// produces no row, meaning the cookie references a destroyed or
	// never-issued session.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrNothingWasSaved is returned when an INSERT or UPDATE completes
	// without error but the number of affected rows is zero.
	ErrNothingWasSaved = errors.New("no rows were written")

	// ErrConstraintViolation is returned when the database rejects a write
	// because of a CHECK or integrity constraint (e.g. an invalid status
	// value that bypassed service-level validation).
	ErrConstraintViolation = errors.New("constraint violation")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingImages is returned when a vehicle's image list cannot be
	// serialised to, or parsed from, its JSON column representation.
	ErrEncodingImages = errors.New("failed to encode vehicle images")
)
