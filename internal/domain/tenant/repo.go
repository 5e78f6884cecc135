package tenant

import "context"

type TenantRepository interface {
	// Create inserts a tenant and returns it with the assigned id.
	// Returns ErrDuplicateName when the name is already taken.
	Create(ctx context.Context, name string) (*Tenant, error)
	// GetByName returns ErrTenantNotFound when no tenant matches.
	GetByName(ctx context.Context, name string) (*Tenant, error)
}

type UserRepository interface {
	// Create inserts a user unconditionally; (tenant, email) uniqueness is
	// not checked.
	Create(ctx context.Context, tenantID int64, name, email, password string) (*User, error)
	// GetByEmail returns ErrInvalidCredentials when no user matches the
	// exact (tenant, email) pair.
	GetByEmail(ctx context.Context, tenantID int64, email string) (*User, error)
}
