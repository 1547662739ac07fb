package models

// Customer is a synthetic order source. Fraud clusters reuse one customer
// reference for a burst of cancellations.
type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
