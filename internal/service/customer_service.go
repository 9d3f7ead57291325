package service

import (
	"context"
	"errors"

	"screenstock/internal/apierror"
	"screenstock/internal/dto"
	"screenstock/internal/model"
	"screenstock/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerService manages the customer directory. A customer with recorded
// sales cannot be deleted: the sale history is part of the ledger and must
// keep its buyer reference.
type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	customers repository.CustomerRepository
	sales     repository.SaleRepository
}

func NewCustomerService(customers repository.CustomerRepository, sales repository.SaleRepository) CustomerService {
	return &customerService{customers: customers, sales: sales}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer := model.Customer{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
	}
	if err := s.customers.Create(ctx, &customer); err != nil {
		return nil, err
	}
	resp := customerToResponse(&customer)
	return &resp, nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("customer", id)
		}
		return nil, err
	}
	resp := customerToResponse(customer)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		result = append(result, customerToResponse(&customers[i]))
	}
	return result, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("customer", id)
		}
		return nil, err
	}

	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	if req.Email != nil {
		customer.Email = req.Email
	}
	if req.Address != nil {
		customer.Address = req.Address
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	resp := customerToResponse(customer)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("customer", id)
		}
		return err
	}

	saleCount, err := s.sales.CountByCustomerID(ctx, id)
	if err != nil {
		return err
	}
	if saleCount > 0 {
		return apierror.Conflictf("customer has %d recorded sales and cannot be deleted", saleCount)
	}

	return runTx(ctx, s.customers.DB(), func(tx *gorm.DB) error {
		return s.customers.DeleteTx(tx, id)
	})
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID.String(),
		LastName:  c.LastName,
		FirstName: c.FirstName,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
	}
}
