package model

import "time"

// Customer represents a buyer record.
type Customer struct {
	ID        int64     `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     *string   `json:"email,omitempty"`
	City      *string   `json:"city,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return c.Firstname + " " + c.Lastname
}
