package domain

import "errors"

// Domain errors represent request-level failures.
// Connector-level failures live in internal/connectors.
var (
	// ErrUnknownDistrict indicates the requested area name is not one of
	// the twelve Berlin districts. Checked before any network call.
	ErrUnknownDistrict = errors.New("unknown district")

	// ErrUnknownDataset indicates an unrecognized dataset identifier.
	ErrUnknownDataset = errors.New("unknown dataset type")

	// ErrBoundaryUnavailable indicates the district boundary fetch failed.
	// The boundary is a hard dependency of every spatial operation, so this
	// aborts the whole request.
	ErrBoundaryUnavailable = errors.New("district boundary unavailable")

	// ErrNoDatasets indicates harmonization was invoked with no input.
	ErrNoDatasets = errors.New("no datasets provided")

	// ErrNoValidDatasets indicates no dataset survived harmonization.
	ErrNoValidDatasets = errors.New("no valid datasets after harmonization")

	// ErrMissingCRS indicates a collection arrived without a usable CRS tag.
	// Assuming a default would silently corrupt coordinates, so the dataset
	// is surfaced as failed instead.
	ErrMissingCRS = errors.New("missing or unknown CRS")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
