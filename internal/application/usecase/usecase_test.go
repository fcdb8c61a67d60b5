package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jhoicas/veon-api/internal/application/dto"
	"github.com/jhoicas/veon-api/internal/application/usecase"
	"github.com/jhoicas/veon-api/internal/domain"
	"github.com/jhoicas/veon-api/internal/domain/entity"
	"github.com/jhoicas/veon-api/internal/infrastructure/docstore"
	"github.com/jhoicas/veon-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/veon-api/internal/infrastructure/redisstore/redistest"
	"github.com/jhoicas/veon-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userA = "u1"
	userB = "u2"
)

func ptr[T any](v T) *T { return &v }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newStore(t *testing.T) *redisstore.Store {
	t.Helper()
	s, _ := redistest.NewStore(t)
	return s
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func newClients(t *testing.T) *usecase.ClientUseCase {
	s := newStore(t)
	return usecase.NewClientUseCase(docstore.New[entity.Client](s, "clients"), s)
}

func validClient() dto.CreateClientRequest {
	return dto.CreateClientRequest{
		FullName:    "  Ana Pérez ",
		Email:       " Ana@Example.COM ",
		PhoneNumber: "+57 300 123 4567",
		Address:     "Calle 1",
	}
}

func TestClient_Create_SaneaYNormaliza(t *testing.T) {
	uc := newClients(t)
	c, err := uc.Create(context.Background(), userA, validClient())
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", c.FullName)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, int64(0), c.SalesCount)
	assert.Equal(t, userA, c.UserID)
}

func TestClient_Create_Validaciones(t *testing.T) {
	uc := newClients(t)
	ctx := context.Background()

	in := validClient()
	in.FullName = ""
	_, err := uc.Create(ctx, userA, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Full name is required")

	in = validClient()
	in.Email = "no-es-email"
	_, err = uc.Create(ctx, userA, in)
	assert.EqualError(t, err, "Invalid email format")

	in = validClient()
	in.PhoneNumber = "abc"
	_, err = uc.Create(ctx, userA, in)
	assert.EqualError(t, err, "Invalid phone number format")
}

func TestClient_IncrementSalesCount(t *testing.T) {
	uc := newClients(t)
	ctx := context.Background()
	c, err := uc.Create(ctx, userA, validClient())
	require.NoError(t, err)

	require.NoError(t, uc.IncrementSalesCount(ctx, userA, c.ID))
	require.NoError(t, uc.IncrementSalesCount(ctx, userA, c.ID))

	got, err := uc.GetByID(ctx, userA, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.SalesCount)

	assert.ErrorIs(t, uc.IncrementSalesCount(ctx, userA, "no-existe"), domain.ErrNotFound)

	assert.ErrorIs(t, uc.IncrementSalesCount(ctx, "otro-usuario", c.ID), domain.ErrNotFound)
	got, err = uc.GetByID(ctx, userA, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.SalesCount)
}

func TestClient_TenantAjenoEsNotFound(t *testing.T) {
	uc := newClients(t)
	ctx := context.Background()
	c, err := uc.Create(ctx, userA, validClient())
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, userB, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, userB, c.ID, dto.UpdateClientRequest{FullName: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, userB, c.ID), domain.ErrNotFound)

	list, err := uc.List(ctx, userB)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_Update_Parcial(t *testing.T) {
	uc := newClients(t)
	ctx := context.Background()
	c, _ := uc.Create(ctx, userA, validClient())

	_, err := uc.Update(ctx, userA, c.ID, dto.UpdateClientRequest{Email: ptr("malo")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	up, err := uc.Update(ctx, userA, c.ID, dto.UpdateClientRequest{Email: ptr(" NUEVO@Example.com")})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@example.com", up.Email)
	assert.Equal(t, c.FullName, up.FullName)
	assert.Equal(t, c.CreatedAt, up.CreatedAt)
	assert.NotEqual(t, c.UpdatedAt, up.UpdatedAt)
}

func TestClient_Update_NoVaciaCamposObligatorios(t *testing.T) {
	uc := newClients(t)
	ctx := context.Background()
	c, _ := uc.Create(ctx, userA, validClient())

	_, err := uc.Update(ctx, userA, c.ID, dto.UpdateClientRequest{Email: ptr("")})
	assert.EqualError(t, err, "Email is required")
	_, err = uc.Update(ctx, userA, c.ID, dto.UpdateClientRequest{PhoneNumber: ptr("  ")})
	assert.EqualError(t, err, "Phone number is required")
	_, err = uc.Update(ctx, userA, c.ID, dto.UpdateClientRequest{FullName: ptr("")})
	assert.EqualError(t, err, "Full name is required")

	got, err := uc.GetByID(ctx, userA, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Email, got.Email)
	assert.Equal(t, c.PhoneNumber, got.PhoneNumber)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func newProducts(t *testing.T) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(docstore.New[entity.Product](newStore(t), "products"))
}

func createProduct(t *testing.T, uc *usecase.ProductUseCase, stock int64) *entity.Product {
	t.Helper()
	p, err := uc.Create(context.Background(), userA, dto.CreateProductRequest{
		Name:      " Tornillo ",
		SKU:       " tor-01 ",
		Cost:      ptr(dec(5)),
		SalePrice: ptr(dec(8)),
		Stock:     ptr(stock),
	})
	require.NoError(t, err)
	return p
}

func TestProduct_Create(t *testing.T) {
	uc := newProducts(t)
	p := createProduct(t, uc, 10)
	assert.Equal(t, "Tornillo", p.Name)
	assert.Equal(t, "TOR-01", p.SKU)
	assert.Equal(t, int64(10), p.Stock)

	_, err := uc.Create(context.Background(), userA, dto.CreateProductRequest{
		Name: "X", SKU: "X", Cost: ptr(dec(10)), SalePrice: ptr(dec(9)),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Sale price must be greater than or equal to cost")

	p2, err := uc.Create(context.Background(), userA, dto.CreateProductRequest{
		Name: "Y", SKU: "Y", Cost: ptr(dec(0)), SalePrice: ptr(dec(0)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p2.Stock, "stock por defecto 0")

	_, err = uc.Create(context.Background(), userA, dto.CreateProductRequest{
		Name: "Z", SKU: "Z", Cost: ptr(dec(1)), SalePrice: ptr(dec(2)), Stock: ptr(int64(-1)),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProduct_Update_ValidaVistaFusionada(t *testing.T) {
	uc := newProducts(t)
	ctx := context.Background()
	p := createProduct(t, uc, 1)

	// Solo cost: se compara contra el salePrice almacenado (8).
	_, err := uc.Update(ctx, userA, p.ID, dto.UpdateProductRequest{Cost: ptr(dec(9))})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Solo salePrice: se compara contra el cost almacenado (5).
	_, err = uc.Update(ctx, userA, p.ID, dto.UpdateProductRequest{SalePrice: ptr(dec(4))})
	assert.ErrorIs(t, err, domain.ErrValidation)

	up, err := uc.Update(ctx, userA, p.ID, dto.UpdateProductRequest{Cost: ptr(dec(7)), SKU: ptr("nuevo")})
	require.NoError(t, err)
	assert.True(t, up.Cost.Equal(dec(7)))
	assert.Equal(t, "NUEVO", up.SKU)

	got, _ := uc.GetByID(ctx, userA, p.ID)
	assert.True(t, got.SalePrice.GreaterThanOrEqual(got.Cost))
}

func TestProduct_UpdateStock(t *testing.T) {
	uc := newProducts(t)
	ctx := context.Background()
	p := createProduct(t, uc, 10)

	got, err := uc.UpdateStock(ctx, userA, p.ID, 5, entity.StockAdd)
	require.NoError(t, err)
	assert.Equal(t, int64(15), got.Stock)

	got, err = uc.UpdateStock(ctx, userA, p.ID, 100, entity.StockSubtract)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Stock, "restar más que el stock deja 0")

	got, err = uc.UpdateStock(ctx, userA, p.ID, 7, "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Stock, "operación vacía es set")

	_, err = uc.UpdateStock(ctx, userA, p.ID, 1, "multiply")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProduct_GetBySKU(t *testing.T) {
	uc := newProducts(t)
	ctx := context.Background()
	p := createProduct(t, uc, 1)

	got, err := uc.GetBySKU(ctx, userA, "tor-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)

	got, err = uc.GetBySKU(ctx, userA, "nada")
	require.NoError(t, err)
	assert.Nil(t, got, "SKU inexistente no es error")

	got, err = uc.GetBySKU(ctx, userB, "TOR-01")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProduct_ListPorProveedor(t *testing.T) {
	uc := newProducts(t)
	ctx := context.Background()
	_, _ = uc.Create(ctx, userA, dto.CreateProductRequest{Name: "A", SKU: "A", ProviderID: "prov1", Cost: ptr(dec(1)), SalePrice: ptr(dec(1))})
	_, _ = uc.Create(ctx, userA, dto.CreateProductRequest{Name: "B", SKU: "B", ProviderID: "prov2", Cost: ptr(dec(1)), SalePrice: ptr(dec(1))})

	list, err := uc.List(ctx, userA, "prov1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Name)

	list, err = uc.List(ctx, userA, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

func TestProvider_CRUD(t *testing.T) {
	uc := usecase.NewProviderUseCase(docstore.New[entity.Provider](newStore(t), "providers"))
	ctx := context.Background()

	_, err := uc.Create(ctx, userA, dto.CreateProviderRequest{Name: "Acme"})
	assert.EqualError(t, err, "Phone number is required")

	_, err = uc.Create(ctx, userA, dto.CreateProviderRequest{Name: "Acme", PhoneNumber: "123", Email: "x"})
	assert.EqualError(t, err, "Invalid email format")

	p, err := uc.Create(ctx, userA, dto.CreateProviderRequest{Name: " Acme ", PhoneNumber: "(601) 555-1234"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Name)

	up, err := uc.Update(ctx, userA, p.ID, dto.UpdateProviderRequest{Website: ptr(" acme.co ")})
	require.NoError(t, err)
	assert.Equal(t, "acme.co", up.Website)

	_, err = uc.Update(ctx, userA, p.ID, dto.UpdateProviderRequest{PhoneNumber: ptr("")})
	assert.EqualError(t, err, "Phone number is required")
	up, err = uc.Update(ctx, userA, p.ID, dto.UpdateProviderRequest{Email: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, up.Email)
	assert.Equal(t, "(601) 555-1234", up.PhoneNumber)

	require.NoError(t, uc.Delete(ctx, userA, p.ID))
	_, err = uc.GetByID(ctx, userA, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Cotizaciones ──────────────────────────────────────────────────────────────

func newQuotations(t *testing.T, log *logger.Logger) *usecase.QuotationUseCase {
	return usecase.NewQuotationUseCase(docstore.New[entity.Quotation](newStore(t), "quotations"), nil, log)
}

func validQuotation() dto.CreateQuotationRequest {
	return dto.CreateQuotationRequest{
		ClientID:   "c1",
		ClientName: "Ana",
		Date:       "2024-05-01",
		ValidUntil: "2024-05-31",
		Items: []entity.LineItem{
			{ProductID: "p1", ProductName: "Tornillo", Quantity: 3, UnitPrice: dec(10), Total: dec(30)},
			{ProductID: "p2", ProductName: "Tuerca", Quantity: 2, UnitPrice: dec(5)},
		},
		Tax:      dec(8),
		Discount: dec(3),
	}
}

func TestQuotation_Create_CalculaTotales(t *testing.T) {
	uc := newQuotations(t, nil)
	q, err := uc.Create(context.Background(), userA, validQuotation())
	require.NoError(t, err)

	assert.Equal(t, entity.QuotationPending, q.Status)
	assert.True(t, q.Items[1].Total.Equal(dec(10)), "total de línea por defecto quantity*unitPrice")
	assert.True(t, q.Subtotal.Equal(dec(40)))
	assert.True(t, q.Total.Equal(dec(45)), "total = subtotal + tax - discount")

	in := validQuotation()
	in.Subtotal = ptr(dec(100))
	q, err = uc.Create(context.Background(), userA, in)
	require.NoError(t, err)
	assert.True(t, q.Subtotal.Equal(dec(100)))
	assert.True(t, q.Total.Equal(dec(105)))
}

func TestQuotation_Create_Validaciones(t *testing.T) {
	uc := newQuotations(t, nil)
	ctx := context.Background()

	in := validQuotation()
	in.ValidUntil = ""
	_, err := uc.Create(ctx, userA, in)
	assert.EqualError(t, err, "Valid until is required")

	in = validQuotation()
	in.Items = nil
	_, err = uc.Create(ctx, userA, in)
	assert.EqualError(t, err, "Quotation must have at least one item")

	in = validQuotation()
	in.Items[0].Quantity = 0
	_, err = uc.Create(ctx, userA, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = validQuotation()
	in.Items[0].UnitPrice = dec(-1)
	_, err = uc.Create(ctx, userA, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestQuotation_UpdateStatus(t *testing.T) {
	uc := newQuotations(t, nil)
	ctx := context.Background()
	q, _ := uc.Create(ctx, userA, validQuotation())

	_, err := uc.UpdateStatus(ctx, userA, q.ID, "cancelled")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Invalid status: cancelled")

	_, err = uc.UpdateStatus(ctx, userA, q.ID, entity.QuotationApproved)
	require.NoError(t, err)
	got, err := uc.GetByID(ctx, userA, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationApproved, got.Status)
}

func TestQuotation_Update_RecalculaTotal(t *testing.T) {
	uc := newQuotations(t, nil)
	ctx := context.Background()
	q, _ := uc.Create(ctx, userA, validQuotation())

	up, err := uc.Update(ctx, userA, q.ID, dto.UpdateQuotationRequest{Discount: ptr(dec(0))})
	require.NoError(t, err)
	assert.True(t, up.Total.Equal(dec(48)))

	up, err = uc.Update(ctx, userA, q.ID, dto.UpdateQuotationRequest{
		Items: []entity.LineItem{{ProductID: "p1", Quantity: 1, UnitPrice: dec(20)}},
	})
	require.NoError(t, err)
	assert.True(t, up.Subtotal.Equal(dec(20)))
	assert.True(t, up.Total.Equal(dec(28)))

	up, err = uc.Update(ctx, userA, q.ID, dto.UpdateQuotationRequest{Notes: ptr(" hola ")})
	require.NoError(t, err)
	assert.Equal(t, "hola", up.Notes)
	assert.True(t, up.Total.Equal(dec(28)), "sin cambios de montos el total se conserva")
}

func TestQuotation_MarkAsConverted_RegistraReconversion(t *testing.T) {
	var buf bytes.Buffer
	uc := newQuotations(t, logger.FromZerolog(zerolog.New(&buf)))
	ctx := context.Background()
	q, _ := uc.Create(ctx, userA, validQuotation())

	got, err := uc.MarkAsConverted(ctx, userA, q.ID, "sale-1")
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationConverted, got.Status)
	assert.Equal(t, "sale-1", got.ConvertedToSaleID)
	assert.Empty(t, buf.String())

	got, err = uc.MarkAsConverted(ctx, userA, q.ID, "sale-2")
	require.NoError(t, err)
	assert.Equal(t, "sale-2", got.ConvertedToSaleID)
	assert.Contains(t, buf.String(), "sale-1")

	_, err = uc.MarkAsConverted(ctx, userA, q.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type fakeRenderer struct{ got *entity.Quotation }

func (f *fakeRenderer) RenderQuotation(_ context.Context, q *entity.Quotation) ([]byte, error) {
	f.got = q
	return []byte("%PDF-1.4"), nil
}

func TestQuotation_RenderPDF(t *testing.T) {
	r := &fakeRenderer{}
	uc := usecase.NewQuotationUseCase(docstore.New[entity.Quotation](newStore(t), "quotations"), r, nil)
	ctx := context.Background()
	q, _ := uc.Create(ctx, userA, validQuotation())

	pdf, name, err := uc.RenderPDF(ctx, userA, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Contains(t, name, q.ID)
	assert.Equal(t, q.ID, r.got.ID)

	_, _, err = uc.RenderPDF(ctx, userB, q.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
