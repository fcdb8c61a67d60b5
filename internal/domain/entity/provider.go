package entity

// Provider representa un proveedor.
type Provider struct {
	Base
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson,omitempty"`
	PhoneNumber   string `json:"phoneNumber"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	Website       string `json:"website,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
