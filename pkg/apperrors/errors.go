package apperrors

import "errors"

var (
	// ErrMissingCredentials means source or target credentials are absent.
	// This is fatal: the run aborts before any entity is processed.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrFetchFailed means a page request failed mid-fetch. Records from
	// prior pages are retained and flow downstream.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrRunFinalized means Finalize was called on an already-terminal run.
	ErrRunFinalized = errors.New("sync run already finalized")
)
