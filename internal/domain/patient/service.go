package patient

import (
	"context"
	"errors"
	"strings"
)

// ErrNameRequired is returned when a patient is created without a name.
var ErrNameRequired = errors.New("name is required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a patient scoped to the given tenant. The name is required
// (after trimming); empty dob and notes are stored as NULL.
func (s *Service) Create(ctx context.Context, tenantID int64, name, dob, notes string) (*Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	p := &Patient{
		TenantID:    tenantID,
		Name:        name,
		DateOfBirth: nullable(dob),
		Notes:       nullable(notes),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every patient belonging to the tenant, in insertion order.
func (s *Service) List(ctx context.Context, tenantID int64) ([]*Patient, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
