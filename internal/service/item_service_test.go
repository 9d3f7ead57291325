package service

import (
	"context"
	"testing"

	"screenstock/internal/apierror"
	"screenstock/internal/dto"
	"screenstock/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemFixture struct {
	items     *stubItemRepo
	brands    *stubBrandRepo
	customers *stubCustomerRepo
	movements *stubMovementRepo
	sales     *stubSaleRepo
	ledger    LedgerService
	svc       ItemService

	brand *model.Brand
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()
	f := &itemFixture{
		items:     newStubItemRepo(),
		brands:    newStubBrandRepo(),
		customers: newStubCustomerRepo(),
		movements: newStubMovementRepo(),
		sales:     newStubSaleRepo(),
	}
	f.ledger = NewLedgerService(f.items, f.customers, f.movements, f.sales, nil)
	f.svc = NewItemService(f.items, f.brands, f.movements, f.sales, f.ledger, nil)

	f.brand = &model.Brand{Name: "Samsung"}
	require.NoError(t, f.brands.Create(context.Background(), f.brand))
	return f
}

func createReq(f *itemFixture, barcode string, qty int) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		Barcode:       barcode,
		Name:          "Galaxy S21 OLED",
		PurchasePrice: decimal.RequireFromString("45.00"),
		SalePrice:     decimal.RequireFromString("89.99"),
		Quantity:      qty,
		BrandID:       f.brand.ID.String(),
	}
}

func TestCreateItemWithInitialQuantityRecordsOpeningRestock(t *testing.T) {
	f := newItemFixture(t)

	resp, err := f.svc.Create(context.Background(), createReq(f, "4006381333931", 12))
	require.NoError(t, err)
	assert.Equal(t, 12, resp.QuantityOnHand)
	assert.Equal(t, 5, resp.AlertThreshold)

	movs, err := f.movements.ListByItemID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovementRestock, movs[0].Kind)
	assert.Equal(t, 12, movs[0].Quantity)
}

func TestCreateItemWithZeroQuantityRecordsNoMovement(t *testing.T) {
	f := newItemFixture(t)

	_, err := f.svc.Create(context.Background(), createReq(f, "4006381333931", 0))
	require.NoError(t, err)
	assert.Empty(t, f.movements.movements)
}

func TestCreateItemDuplicateBarcode(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, createReq(f, "4006381333931", 1))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, createReq(f, "4006381333931", 1))
	var cf *apierror.ConflictError
	assert.ErrorAs(t, err, &cf)
}

func TestCreateItemUnknownBrand(t *testing.T) {
	f := newItemFixture(t)
	req := createReq(f, "4006381333931", 1)
	req.BrandID = uuid.New().String()

	_, err := f.svc.Create(context.Background(), req)
	var nf *apierror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestUpdateItemQuantityGoesThroughLedger(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createReq(f, "4006381333931", 10))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	newQty := 6
	updated, err := f.svc.Update(ctx, id, dto.UpdateItemRequest{Quantity: &newQty})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.QuantityOnHand)

	movs, _ := f.movements.ListByItemID(ctx, id)
	require.Len(t, movs, 2) // opening restock + adjustment withdrawal
	assert.Equal(t, model.MovementWithdrawal, movs[1].Kind)
	assert.Equal(t, 4, movs[1].Quantity)
}

func TestUpdateItemRejectsNegativePrices(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createReq(f, "4006381333931", 1))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	negative := decimal.RequireFromString("-50.00")
	for _, req := range []dto.UpdateItemRequest{
		{SalePrice: &negative},
		{PurchasePrice: &negative},
	} {
		_, err = f.svc.Update(ctx, id, req)
		var ve *apierror.ValidationError
		assert.ErrorAs(t, err, &ve)
	}

	stored, err := f.items.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.SalePrice.Equal(decimal.RequireFromString("89.99")))
	assert.True(t, stored.PurchasePrice.Equal(decimal.RequireFromString("45.00")))
}

func TestUpdateItemBarcodeConflict(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, createReq(f, "4006381333931", 1))
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, createReq(f, "4006381333948", 1))
	require.NoError(t, err)

	taken := "4006381333931"
	_, err = f.svc.Update(ctx, uuid.MustParse(second.ID), dto.UpdateItemRequest{Barcode: &taken})
	var cf *apierror.ConflictError
	assert.ErrorAs(t, err, &cf)
}

func TestDeleteItemRemovesLedgerHistory(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, createReq(f, "4006381333931", 10))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	customer := &model.Customer{LastName: "Diallo", FirstName: "Ousmane"}
	require.NoError(t, f.customers.Create(ctx, customer))
	_, err = f.ledger.Sell(ctx, dto.CreateSaleRequest{
		ItemID: created.ID, CustomerID: customer.ID.String(), Quantity: 2,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, id))

	_, err = f.items.FindByID(ctx, id)
	assert.Error(t, err)
	movs, _ := f.movements.ListByItemID(ctx, id)
	assert.Empty(t, movs)
	assert.Empty(t, f.sales.sales)
}

func TestGetByBarcodeUnknownCode(t *testing.T) {
	f := newItemFixture(t)

	_, err := f.svc.GetByBarcode(context.Background(), "0000000000000")
	var nf *apierror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
