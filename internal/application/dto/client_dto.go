package dto

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	ImagePath   string `json:"imagePath"`
}

// UpdateClientRequest actualización parcial de un cliente; los campos nil no se modifican.
type UpdateClientRequest struct {
	FullName    *string `json:"fullName"`
	CompanyName *string `json:"companyName"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	ImagePath   *string `json:"imagePath"`
}
