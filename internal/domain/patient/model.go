package patient

import "time"

// Patient maps to the patients table. DateOfBirth and Notes are free-text
// and nullable; empty form values are stored as NULL.
type Patient struct {
	ID          int64     `db:"id" json:"id"`
	TenantID    int64     `db:"tenant_id" json:"tenant_id"`
	Name        string    `db:"name" json:"name"`
	DateOfBirth *string   `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// DOB surfaces a NULL date of birth as the empty string.
func (p *Patient) DOB() string { return strVal(p.DateOfBirth) }

// NoteText surfaces NULL notes as the empty string.
func (p *Patient) NoteText() string { return strVal(p.Notes) }

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
