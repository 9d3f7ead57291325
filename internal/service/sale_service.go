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

// SaleService is the read side of sales. Creating a sale goes through
// LedgerService.Sell; here are only the queries and the invoice lookup.
type SaleService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)

	// FindForInvoice returns the sale with item, brand and customer loaded,
	// ready for PDF rendering.
	FindForInvoice(ctx context.Context, id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	sales repository.SaleRepository
}

func NewSaleService(sales repository.SaleRepository) SaleService {
	return &saleService{sales: sales}
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("sale", id)
		}
		return nil, err
	}
	resp := saleToResponse(sale)
	decorateSale(resp, sale)
	return resp, nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		r := saleToResponse(&sales[i])
		decorateSale(r, &sales[i])
		data = append(data, *r)
	}
	return &dto.SaleListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *saleService) FindForInvoice(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("sale", id)
		}
		return nil, err
	}
	return sale, nil
}

func decorateSale(r *dto.SaleResponse, sale *model.Sale) {
	if sale.Item != nil {
		r.ItemName = sale.Item.Name
	}
	if sale.Customer != nil {
		r.CustomerName = sale.Customer.FirstName + " " + sale.Customer.LastName
	}
}
