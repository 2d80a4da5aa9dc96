package address

import "time"

type Address struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Name  string `json:"name"`
	Phone string `json:"phone"`

	Address1 string  `json:"addressLine1"`
	Address2 *string `json:"addressLine2,omitempty"`

	City    string `json:"city"`
	State   string `json:"state"`
	Postal  string `json:"postalCode"`
	Country string `json:"country"`

	IsDefault bool      `json:"isDefault"`
	IsActive  bool      `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateAddressInput struct {
	UserID       string
	Name         string
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	State        string
	PostalCode   string
	Country      string
	SetAsDefault bool
}
