package tenant

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/medsynq/medsynq/internal/platform/db"
)

// Service coordinates tenant registration and user authentication.
type Service struct {
	tenants TenantRepository
	users   UserRepository
	tx      db.TxRunner
}

func NewService(tenants TenantRepository, users UserRepository, tx db.TxRunner) *Service {
	return &Service{tenants: tenants, users: users, tx: tx}
}

// Register creates a tenant together with its first admin user. Both inserts
// run in one transaction so a tenant can never exist without a user.
// Returns ErrDuplicateName when the tenant name is already taken.
func (s *Service) Register(ctx context.Context, tenantName, adminName, adminEmail, adminPassword string) (*Tenant, *User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	var t *Tenant
	var u *User
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		t, err = s.tenants.Create(ctx, tenantName)
		if err != nil {
			return err
		}
		u, err = s.users.Create(ctx, t.ID, adminName, adminEmail, string(hash))
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return t, u, nil
}

// Authenticate verifies a tenant-scoped email + password pair. An unknown
// tenant yields ErrTenantNotFound; an unknown email and a wrong password
// both yield ErrInvalidCredentials so a caller cannot distinguish them.
func (s *Service) Authenticate(ctx context.Context, tenantName, email, password string) (*Tenant, *User, error) {
	t, err := s.tenants.GetByName(ctx, tenantName)
	if err != nil {
		return nil, nil, err
	}

	u, err := s.users.GetByEmail(ctx, t.ID, email)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	return t, u, nil
}
