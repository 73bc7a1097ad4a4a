package domain

import "errors"

var (
	// ErrInvalidArgument is returned when a constructor or setter receives an
	// empty required field or a severity outside the level enumeration.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedDocument is returned when a result document lacks a
	// mandatory attribute or carries a value that cannot be mapped.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrParse is returned when a textual issue id is not a non-negative
	// decimal integer.
	ErrParse = errors.New("parse error")

	// ErrNoChecker is returned by queries that delegate to the issue's checker
	// when none has been assigned.
	ErrNoChecker = errors.New("issue has no checker")

	// ErrIssueIDAssigned is returned when an already assigned issue id would be
	// overwritten outside of container renumbering.
	ErrIssueIDAssigned = errors.New("issue id already assigned")

	// ErrIDSpaceExhausted is returned when numbering would pass the largest
	// representable issue id and wrap back to the unassigned sentinel.
	ErrIDSpaceExhausted = errors.New("issue id space exhausted")
)
