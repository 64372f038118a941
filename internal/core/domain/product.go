package domain

import "time"

// Product is a catalog item.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate reports the first rule a stored product would break.
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return NewValidationError("name is required")
	case p.Category == "":
		return NewValidationError("category is required")
	case p.Price < 0:
		return NewValidationError("price must be greater than or equal to 0")
	}
	return nil
}
