package service

import "errors"

// Sentinel errors handlers translate into HTTP statuses. Validation and
// persistence failures are wrapped fmt.Errorf values; these cover the cases
// where the status code depends on identity rather than message.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
