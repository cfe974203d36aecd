package clients

import "time"

// Client is a billable customer.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientInput carries the mutable fields of a client.
type ClientInput struct {
	Name    string
	Email   string
	Company string
	Notes   string
}
