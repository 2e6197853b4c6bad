package domain

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned by cache stores when a namespace is absent.
	ErrNotFound = errors.New("not found")

	// ErrNoSetCodes is returned when a submission carries no resolvable
	// set codes at all. This aborts the whole report generation.
	ErrNoSetCodes = errors.New("card list contains no resolvable set codes")
)
