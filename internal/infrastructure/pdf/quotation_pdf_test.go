package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "$999,00", formatMoney(decimal.NewFromInt(999)))
	assert.Equal(t, "$1.234.567,50", formatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-$25.000,00", formatMoney(decimal.NewFromInt(-25000)))
}

func TestRenderQuotation_GeneraPDF(t *testing.T) {
	q := &entity.Quotation{
		Base:       entity.Base{ID: "3f2a9c1e-0000-4000-8000-000000000001"},
		ClientName: "Ana Pérez",
		Date:       "2024-05-01",
		ValidUntil: "2024-05-31",
		Items: []entity.LineItem{
			{ProductName: "Tornillo", SKU: "TOR-01", Quantity: 3, Unit: "und", UnitPrice: decimal.NewFromInt(10), Total: decimal.NewFromInt(30)},
		},
		Subtotal: decimal.NewFromInt(30),
		Total:    decimal.NewFromInt(30),
		Status:   entity.QuotationPending,
		Notes:    "Entrega en 5 días",
	}
	out, err := NewQuotationRenderer("veon-api").RenderQuotation(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
