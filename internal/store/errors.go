package store

import "errors"

// Sentinel errors returned by repository and blob storage methods.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrImageNotFound is returned when no record matches the requested id.
	ErrImageNotFound = errors.New("image record was not found")

	// ErrImageNotSaved is returned when an INSERT completes without error but
	// affects no rows.
	ErrImageNotSaved = errors.New("image record was not saved")

	// ErrImageAlreadyExists is returned when the record id is already taken.
	ErrImageAlreadyExists = errors.New("image record already exists")

	// ErrBlobNotFound is returned when a locator does not resolve to a file.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrBlobExists is returned when Store cannot find a free name.
	ErrBlobExists = errors.New("blob name already taken")

	// ErrInvalidLocator is returned for locators that escape the storage
	// root or are otherwise malformed.
	ErrInvalidLocator = errors.New("invalid blob locator")

	// ErrUnsupportedDriver is returned for an unknown database driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan image row")
)
