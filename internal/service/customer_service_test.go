package service

import (
	"context"
	"testing"

	"screenstock/internal/apierror"
	"screenstock/internal/dto"
	"screenstock/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerFixture() (CustomerService, *stubCustomerRepo, *stubSaleRepo) {
	customers := newStubCustomerRepo()
	sales := newStubSaleRepo()
	return NewCustomerService(customers, sales), customers, sales
}

func TestCustomerCRUD(t *testing.T) {
	svc, _, _ := newCustomerFixture()
	ctx := context.Background()

	email := "claire@example.com"
	created, err := svc.Create(ctx, dto.CreateCustomerRequest{
		LastName: "Martin", FirstName: "Claire", Email: &email,
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	newPhone := "+33611223344"
	updated, err := svc.Update(ctx, id, dto.UpdateCustomerRequest{Phone: &newPhone})
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, newPhone, *updated.Phone)
	require.NotNil(t, updated.Email)
	assert.Equal(t, email, *updated.Email)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.GetByID(ctx, id)
	var nf *apierror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteCustomerWithSalesIsRejected(t *testing.T) {
	svc, customers, sales := newCustomerFixture()
	ctx := context.Background()

	customer := &model.Customer{LastName: "Diallo", FirstName: "Ousmane"}
	require.NoError(t, customers.Create(ctx, customer))
	require.NoError(t, sales.CreateTx(nil, &model.Sale{
		Quantity: 1, ItemID: uuid.New(), CustomerID: customer.ID,
	}))

	err := svc.Delete(ctx, customer.ID)
	var cf *apierror.ConflictError
	assert.ErrorAs(t, err, &cf)

	_, err = customers.FindByID(ctx, customer.ID)
	assert.NoError(t, err)
}
