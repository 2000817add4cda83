package registry

import "errors"

// Sentinel outcomes. None of them is fatal: callers report them to the
// operator and carry on.
//
//   - ErrNotFound: no resident or apartment with the given key
//   - ErrDuplicate: a record with the same key is already registered
//   - ErrAlreadyAssigned: the resident already lives in the target apartment
//   - ErrNotAssigned: the resident does not live anywhere
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("already exists")
	ErrAlreadyAssigned = errors.New("already assigned")
	ErrNotAssigned     = errors.New("not assigned to an apartment")
)
