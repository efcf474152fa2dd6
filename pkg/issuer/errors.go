package issuer

import "errors"

var (
	ErrInvalidConfig = errors.New("issuer: invalid configuration")
	ErrClosed        = errors.New("issuer: closed")
)
