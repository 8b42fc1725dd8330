package model

import "time"

// Order represents a purchase of a product by a customer.
type Order struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int       `json:"quantity"`
	CreatedOn  time.Time `json:"created_on"`
}
