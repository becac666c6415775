package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnsupported        = errors.New("operation not supported by feed provider")
	ErrStoreClosed        = errors.New("order store is closed")
)
