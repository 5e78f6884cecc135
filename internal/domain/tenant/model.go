package tenant

import "time"

// Tenant is an isolated organizational namespace. All users and patients
// belong to exactly one tenant. Tenants are created once at registration
// and never mutated or deleted.
type Tenant struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// User is an account inside one tenant. The password column holds a bcrypt
// hash; uniqueness of (tenant, email) is intentionally not enforced.
type User struct {
	ID        int64     `db:"id" json:"id"`
	TenantID  int64     `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
