package tenant

import "errors"

var (
	// ErrDuplicateName is returned when a tenant name is already taken.
	ErrDuplicateName = errors.New("organisation name already exists")
	// ErrTenantNotFound is returned when no tenant matches the given name.
	ErrTenantNotFound = errors.New("organisation not found")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
