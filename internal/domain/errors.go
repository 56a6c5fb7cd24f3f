// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist or is not
// owned by the caller.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates the input failed a domain validation rule.
var ErrValidation = errors.New("validation failed")
