package domain

import "time"

// Tenant is one business using the platform. Every other aggregate is
// scoped to a tenant.
type Tenant struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
