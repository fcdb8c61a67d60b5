package entity

import "github.com/shopspring/decimal"

// Estados válidos de una cotización.
const (
	QuotationPending   = "pending"
	QuotationApproved  = "approved"
	QuotationRejected  = "rejected"
	QuotationExpired   = "expired"
	QuotationConverted = "converted"
)

// QuotationStatuses lista de estados reconocidos.
var QuotationStatuses = []string{
	QuotationPending, QuotationApproved, QuotationRejected, QuotationExpired, QuotationConverted,
}

// Quotation cotización para un cliente. Total = Subtotal + Tax - Discount.
type Quotation struct {
	Base
	ClientID          string          `json:"clientId"`
	ClientName        string          `json:"clientName"`
	Date              string          `json:"date"`
	ValidUntil        string          `json:"validUntil"`
	Items             []LineItem      `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	Status            string          `json:"status"`
	Notes             string          `json:"notes,omitempty"`
	Terms             string          `json:"terms,omitempty"`
	ConvertedToSaleID string          `json:"convertedToSaleId,omitempty"`
}

// IsValidQuotationStatus indica si s es uno de los estados reconocidos.
func IsValidQuotationStatus(s string) bool {
	for _, st := range QuotationStatuses {
		if st == s {
			return true
		}
	}
	return false
}
