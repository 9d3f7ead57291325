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

// BrandService manages the brand catalog. Brand names are unique
// case-insensitively; deleting a brand takes its items and their full ledger
// history with it in one transaction.
type BrandService interface {
	Create(ctx context.Context, req dto.CreateBrandRequest) (*dto.BrandResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.BrandResponse, error)
	List(ctx context.Context) ([]dto.BrandResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateBrandRequest) (*dto.BrandResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type brandService struct {
	brands    repository.BrandRepository
	items     repository.ItemRepository
	movements repository.MovementRepository
	sales     repository.SaleRepository
}

func NewBrandService(
	brands repository.BrandRepository,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	sales repository.SaleRepository,
) BrandService {
	return &brandService{brands: brands, items: items, movements: movements, sales: sales}
}

func (s *brandService) Create(ctx context.Context, req dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if existing, err := s.brands.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, apierror.Conflictf("brand %q already exists", req.Name)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	brand := model.Brand{Name: req.Name}
	if err := s.brands.Create(ctx, &brand); err != nil {
		return nil, err
	}
	return &dto.BrandResponse{ID: brand.ID, Name: brand.Name}, nil
}

func (s *brandService) GetByID(ctx context.Context, id uuid.UUID) (*dto.BrandResponse, error) {
	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("brand", id)
		}
		return nil, err
	}
	count, err := s.brands.CountItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BrandResponse{ID: brand.ID, Name: brand.Name, ItemCount: count}, nil
}

func (s *brandService) List(ctx context.Context) ([]dto.BrandResponse, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BrandResponse, 0, len(brands))
	for i := range brands {
		count, err := s.brands.CountItems(ctx, brands[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.BrandResponse{
			ID:        brands[i].ID,
			Name:      brands[i].Name,
			ItemCount: count,
		})
	}
	return result, nil
}

func (s *brandService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBrandRequest) (*dto.BrandResponse, error) {
	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("brand", id)
		}
		return nil, err
	}

	if existing, err := s.brands.FindByName(ctx, req.Name); err == nil && existing != nil && existing.ID != id {
		return nil, apierror.Conflictf("brand %q already exists", req.Name)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	brand.Name = req.Name
	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	count, err := s.brands.CountItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BrandResponse{ID: brand.ID, Name: brand.Name, ItemCount: count}, nil
}

// Delete cascades explicitly: movements first, then sales, then the items,
// then the brand itself. All in one transaction so a failure mid-way leaves
// the catalog intact.
func (s *brandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brands.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("brand", id)
		}
		return err
	}

	items, err := s.items.FindByBrandID(ctx, id)
	if err != nil {
		return err
	}
	itemIDs := make([]uuid.UUID, 0, len(items))
	for i := range items {
		itemIDs = append(itemIDs, items[i].ID)
	}

	return runTx(ctx, s.brands.DB(), func(tx *gorm.DB) error {
		if err := s.movements.DeleteByItemIDsTx(tx, itemIDs); err != nil {
			return err
		}
		if err := s.sales.DeleteByItemIDsTx(tx, itemIDs); err != nil {
			return err
		}
		for _, itemID := range itemIDs {
			if err := s.items.DeleteTx(tx, itemID); err != nil {
				return err
			}
		}
		return s.brands.DeleteTx(tx, id)
	})
}
