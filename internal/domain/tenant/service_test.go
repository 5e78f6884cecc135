package tenant

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// -- Mock Repositories --

type mockTenantRepo struct {
	tenants map[string]*Tenant
	nextID  int64
}

func newMockTenantRepo() *mockTenantRepo {
	return &mockTenantRepo{tenants: make(map[string]*Tenant)}
}

func (m *mockTenantRepo) Create(_ context.Context, name string) (*Tenant, error) {
	if _, ok := m.tenants[name]; ok {
		return nil, ErrDuplicateName
	}
	m.nextID++
	t := &Tenant{ID: m.nextID, Name: name, CreatedAt: time.Now()}
	m.tenants[name] = t
	return t, nil
}

func (m *mockTenantRepo) GetByName(_ context.Context, name string) (*Tenant, error) {
	t, ok := m.tenants[name]
	if !ok {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

type mockUserRepo struct {
	users  []*User
	nextID int64
	failOn string // email that triggers an insert failure
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{}
}

func (m *mockUserRepo) Create(_ context.Context, tenantID int64, name, email, password string) (*User, error) {
	if m.failOn != "" && email == m.failOn {
		return nil, errors.New("insert failed")
	}
	m.nextID++
	u := &User{ID: m.nextID, TenantID: tenantID, Name: name, Email: email, Password: password, CreatedAt: time.Now()}
	m.users = append(m.users, u)
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, tenantID int64, email string) (*User, error) {
	for _, u := range m.users {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// mockTxRunner runs the function directly; rolledBack records whether the
// function returned an error (i.e. the transaction would have rolled back).
type mockTxRunner struct {
	rolledBack bool
}

func (m *mockTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}

func newTestService() (*Service, *mockTenantRepo, *mockUserRepo, *mockTxRunner) {
	tenants := newMockTenantRepo()
	users := newMockUserRepo()
	tx := &mockTxRunner{}
	return NewService(tenants, users, tx), tenants, users, tx
}

// -- Tests --

func TestRegister_Success(t *testing.T) {
	svc, _, users, _ := newTestService()

	tn, u, err := svc.Register(context.Background(), "Acme", "Al", "al@acme.test", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tn.Name != "Acme" {
		t.Errorf("expected tenant name Acme, got %s", tn.Name)
	}
	if u.TenantID != tn.ID {
		t.Errorf("expected user to belong to tenant %d, got %d", tn.ID, u.TenantID)
	}
	if len(users.users) != 1 {
		t.Fatalf("expected one user, got %d", len(users.users))
	}

	// Stored password must be a hash of the original, not the plaintext
	if u.Password == "pw" {
		t.Error("expected password to be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("pw")) != nil {
		t.Error("expected stored hash to match original password")
	}
}

func TestRegister_DuplicateName(t *testing.T) {
	svc, tenants, users, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), "Acme", "Al", "al@acme.test", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Register(context.Background(), "Acme", "Bob", "bob@acme.test", "pw2")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	if len(tenants.tenants) != 1 {
		t.Errorf("expected one tenant, got %d", len(tenants.tenants))
	}
	if len(users.users) != 1 {
		t.Errorf("expected one user, got %d", len(users.users))
	}
}

func TestRegister_UserInsertFailureRollsBack(t *testing.T) {
	svc, _, users, tx := newTestService()
	users.failOn = "bad@acme.test"

	_, _, err := svc.Register(context.Background(), "Acme", "Al", "bad@acme.test", "pw")
	if err == nil {
		t.Fatal("expected error from failing user insert")
	}
	if !tx.rolledBack {
		t.Error("expected transaction rollback when user insert fails")
	}
}

func TestRegister_DuplicateEmailAcrossTenantsPermitted(t *testing.T) {
	svc, _, users, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), "Acme", "Al", "al@shared.test", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Globex", "Al", "al@shared.test", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users.users) != 2 {
		t.Errorf("expected two users, got %d", len(users.users))
	}
}

func TestAuthenticate_Success(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), "Acme", "Al", "al@acme.test", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tn, u, err := svc.Authenticate(context.Background(), "Acme", "al@acme.test", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tn.Name != "Acme" || u.Email != "al@acme.test" {
		t.Errorf("unexpected identity: tenant=%s user=%s", tn.Name, u.Email)
	}
}

func TestAuthenticate_TenantNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, _, err := svc.Authenticate(context.Background(), "NoSuchOrg", "al@acme.test", "pw")
	if !errors.Is(err, ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestAuthenticate_WrongEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), "Acme", "Al", "al@acme.test", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, errEmail := svc.Authenticate(context.Background(), "Acme", "wrong@acme.test", "pw")
	_, _, errPassword := svc.Authenticate(context.Background(), "Acme", "al@acme.test", "wrong")

	if !errors.Is(errEmail, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong email, got %v", errEmail)
	}
	if !errors.Is(errPassword, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errPassword)
	}
	if errEmail.Error() != errPassword.Error() {
		t.Error("expected identical errors for wrong email and wrong password")
	}
}

func TestAuthenticate_ScopedToTenant(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), "Acme", "Al", "al@acme.test", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Globex", "Gil", "gil@globex.test", "pw2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Acme's credentials must not work under Globex
	_, _, err := svc.Authenticate(context.Background(), "Globex", "al@acme.test", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials across tenants, got %v", err)
	}
}
