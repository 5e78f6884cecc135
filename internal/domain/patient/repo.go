package patient

import "context"

type Repository interface {
	// Create inserts the patient and fills in the assigned id and timestamp.
	Create(ctx context.Context, p *Patient) error
	// ListByTenant returns the tenant's patients in insertion order.
	ListByTenant(ctx context.Context, tenantID int64) ([]*Patient, error)
}
