package domain

import "time"

// Client is a customer of a tenant. Contract clients are billed under a
// pre-existing agreement: services rendered to them are charged at zero.
type Client struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"-"`
	Name      string    `json:"name"`
	Contract  bool      `json:"contract"`
	CreatedAt time.Time `json:"createdAt"`
}
