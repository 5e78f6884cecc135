package tenant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medsynq/medsynq/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

const uniqueViolation = "23505"

type tenantRepoPG struct{ pool *pgxpool.Pool }

func NewTenantRepoPG(pool *pgxpool.Pool) TenantRepository {
	return &tenantRepoPG{pool: pool}
}

func (r *tenantRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *tenantRepoPG) Create(ctx context.Context, name string) (*Tenant, error) {
	var t Tenant
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO tenants (name) VALUES ($1)
		RETURNING id, name, created_at`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &t, nil
}

func (r *tenantRepoPG) GetByName(ctx context.Context, name string) (*Tenant, error) {
	var t Tenant
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, name, created_at FROM tenants WHERE name = $1`, name).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

func (r *userRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *userRepoPG) Create(ctx context.Context, tenantID int64, name, email, password string) (*User, error) {
	var u User
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO users (tenant_id, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, tenant_id, name, email, password, created_at`,
		tenantID, name, email, password).
		Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepoPG) GetByEmail(ctx context.Context, tenantID int64, email string) (*User, error) {
	var u User
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, tenant_id, name, email, password, created_at
		FROM users WHERE tenant_id = $1 AND email = $2`, tenantID, email).
		Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
