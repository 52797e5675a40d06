package goheap

import "errors"

var (
	// ErrBadConfig indicates an invalid engine option.
	ErrBadConfig = errors.New("goheap: invalid configuration")
)
