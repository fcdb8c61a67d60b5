package entity

// Client representa un cliente del negocio.
type Client struct {
	Base
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	ImagePath   string `json:"imagePath,omitempty"`
	SalesCount  int64  `json:"salesCount"` // mantenido por el servidor: +1 por venta confirmada
}
