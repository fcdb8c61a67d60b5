package dto

// CreateProviderRequest entrada para crear un proveedor.
type CreateProviderRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	PhoneNumber   string `json:"phoneNumber"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Website       string `json:"website"`
	Notes         string `json:"notes"`
}

// UpdateProviderRequest actualización parcial de un proveedor.
type UpdateProviderRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	PhoneNumber   *string `json:"phoneNumber"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	Website       *string `json:"website"`
	Notes         *string `json:"notes"`
}
