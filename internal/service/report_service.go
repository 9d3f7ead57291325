package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"screenstock/internal/dto"
	"screenstock/internal/model"
	"screenstock/internal/repository"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned by Forecast when fewer than two distinct
// month buckets exist: no line can be fitted.
var ErrInsufficientData = errors.New("not enough monthly data to fit a forecast")

const monthLayout = "2006-01"

// ReportService derives all aggregates Go-side from one sales snapshot, so a
// summary's revenue and its per-month breakdown can never disagree.
type ReportService interface {
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
	RevenueByMonth(ctx context.Context) ([]dto.MonthBucket, error)
	QuantityByBrand(ctx context.Context) ([]dto.BrandQuantity, error)
	Forecast(ctx context.Context, months int) (*dto.ForecastResponse, error)
}

type reportService struct {
	brands    repository.BrandRepository
	items     repository.ItemRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
}

func NewReportService(
	brands repository.BrandRepository,
	items repository.ItemRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
) ReportService {
	return &reportService{brands: brands, items: items, customers: customers, sales: sales}
}

// Summary computes the dashboard numbers. Cost is quantity times the item's
// CURRENT purchase price; sales whose item was since deleted contribute
// revenue but no cost. Both quirks match the bookkeeping the shop runs on.
func (s *reportService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	brandCount, err := s.brands.Count(ctx)
	if err != nil {
		return nil, err
	}
	itemCount, err := s.items.Count(ctx)
	if err != nil {
		return nil, err
	}
	customerCount, err := s.customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.items.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	cost := decimal.Zero
	for i := range sales {
		qty := decimalFromInt(sales[i].Quantity)
		revenue = revenue.Add(sales[i].UnitPrice.Mul(qty))
		if sales[i].Item != nil {
			cost = cost.Add(sales[i].Item.PurchasePrice.Mul(qty))
		}
	}

	return &dto.SummaryResponse{
		Brands:    brandCount,
		Items:     itemCount,
		Customers: customerCount,
		Sales:     int64(len(sales)),
		LowStock:  len(lowStock),
		Revenue:   revenue,
		Cost:      cost,
		Profit:    revenue.Sub(cost),
	}, nil
}

func (s *reportService) RevenueByMonth(ctx context.Context) ([]dto.MonthBucket, error) {
	sales, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return bucketByMonth(sales), nil
}

func (s *reportService) QuantityByBrand(ctx context.Context) ([]dto.BrandQuantity, error) {
	sales, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byBrand := make(map[string]int)
	for i := range sales {
		if sales[i].Item == nil || sales[i].Item.Brand == nil {
			continue
		}
		byBrand[sales[i].Item.Brand.Name] += sales[i].Quantity
	}

	names := make([]string, 0, len(byBrand))
	for name := range byBrand {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]dto.BrandQuantity, 0, len(names))
	for _, name := range names {
		result = append(result, dto.BrandQuantity{Brand: name, Quantity: byBrand[name]})
	}
	return result, nil
}

// Forecast fits an ordinary least squares line over the monthly revenue
// series (x = month index) and extrapolates the next `months` points.
func (s *reportService) Forecast(ctx context.Context, months int) (*dto.ForecastResponse, error) {
	if months < 1 {
		months = 1
	}

	sales, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	buckets := bucketByMonth(sales)
	if len(buckets) < 2 {
		return nil, ErrInsufficientData
	}

	xs := make([]float64, len(buckets))
	ys := make([]float64, len(buckets))
	for i, b := range buckets {
		xs[i] = float64(i)
		ys[i], _ = b.Revenue.Float64()
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	last, err := time.Parse(monthLayout, buckets[len(buckets)-1].Month)
	if err != nil {
		return nil, err
	}

	points := make([]dto.MonthBucket, 0, months)
	for k := 1; k <= months; k++ {
		x := float64(len(buckets) - 1 + k)
		predicted := alpha + beta*x
		if predicted < 0 {
			predicted = 0
		}
		points = append(points, dto.MonthBucket{
			Month:   last.AddDate(0, k, 0).Format(monthLayout),
			Revenue: decimal.NewFromFloat(predicted).Round(2),
		})
	}
	return &dto.ForecastResponse{Points: points}, nil
}

// bucketByMonth groups sale revenue into chronological "YYYY-MM" buckets.
func bucketByMonth(sales []model.Sale) []dto.MonthBucket {
	byMonth := make(map[string]decimal.Decimal)
	for i := range sales {
		month := sales[i].CreatedAt.UTC().Format(monthLayout)
		total := sales[i].UnitPrice.Mul(decimalFromInt(sales[i].Quantity))
		byMonth[month] = byMonth[month].Add(total)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	buckets := make([]dto.MonthBucket, 0, len(months))
	for _, m := range months {
		buckets = append(buckets, dto.MonthBucket{Month: m, Revenue: byMonth[m]})
	}
	return buckets
}
