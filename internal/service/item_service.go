package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"screenstock/internal/apierror"
	"screenstock/internal/dto"
	"screenstock/internal/model"
	"screenstock/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	barcodeCacheKeyPrefix = "item:barcode:"
	barcodeCacheTTL       = 30 * time.Second
)

const defaultAlertThreshold = 5

// ItemService manages the catalog side of items. Quantity changes requested
// through Update are delegated to the LedgerService so every stock change
// leaves a movement behind.
type ItemService interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.BarcodeLookupResponse, error)
	List(ctx context.Context, filter dto.ItemFilter) (*dto.ItemListResponse, error)
	Search(ctx context.Context, q dto.ItemSearchQuery) ([]dto.ItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemService struct {
	items     repository.ItemRepository
	brands    repository.BrandRepository
	movements repository.MovementRepository
	sales     repository.SaleRepository
	ledger    LedgerService
	rdb       *redis.Client // nil disables the barcode lookup cache
}

func NewItemService(
	items repository.ItemRepository,
	brands repository.BrandRepository,
	movements repository.MovementRepository,
	sales repository.SaleRepository,
	ledger LedgerService,
	rdb *redis.Client,
) ItemService {
	return &itemService{
		items:     items,
		brands:    brands,
		movements: movements,
		sales:     sales,
		ledger:    ledger,
		rdb:       rdb,
	}
}

// Create registers the item and, when the initial quantity is positive,
// records the opening restock movement in the same transaction. The ledger
// replay invariant holds from the first row on.
func (s *itemService) Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return nil, apierror.Validationf("invalid brand_id: %s", req.BrandID)
	}
	brand, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("brand", brandID)
		}
		return nil, err
	}

	if existing, err := s.items.FindByBarcode(ctx, req.Barcode); err == nil && existing != nil {
		return nil, apierror.Conflictf("barcode %s already in use", req.Barcode)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	threshold := defaultAlertThreshold
	if req.AlertThreshold != nil {
		threshold = *req.AlertThreshold
	}

	item := model.Item{
		Barcode:        req.Barcode,
		Name:           req.Name,
		PurchasePrice:  req.PurchasePrice,
		SalePrice:      req.SalePrice,
		QuantityOnHand: req.Quantity,
		AlertThreshold: threshold,
		BrandID:        brandID,
	}
	err = runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		if err := s.items.CreateTx(tx, &item); err != nil {
			return err
		}
		if req.Quantity > 0 {
			mov := model.Movement{
				Kind:     model.MovementRestock,
				Quantity: req.Quantity,
				ItemID:   item.ID,
			}
			return s.movements.CreateTx(tx, &mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	item.Brand = brand
	resp := itemToResponse(&item)
	return &resp, nil
}

func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("item", id)
		}
		return nil, err
	}
	resp := itemToResponse(item)
	return &resp, nil
}

// GetByBarcode serves the price-check lookup through a short-lived Redis
// cache. Stock quantity may lag up to the TTL behind the ledger; the sale
// path never reads from here.
func (s *itemService) GetByBarcode(ctx context.Context, barcode string) (*dto.BarcodeLookupResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, barcodeCacheKeyPrefix+barcode).Result()
		if err == nil {
			var resp dto.BarcodeLookupResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	item, err := s.items.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apierror.NotFoundError{Entity: "item", ID: barcode}
		}
		return nil, err
	}

	resp := &dto.BarcodeLookupResponse{
		ID:        item.ID.String(),
		Name:      item.Name,
		SalePrice: item.SalePrice,
		Available: item.QuantityOnHand,
	}
	if item.Brand != nil {
		resp.Brand = item.Brand.Name
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, barcodeCacheKeyPrefix+barcode, data, barcodeCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("barcode", barcode).Msg("barcode cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *itemService) List(ctx context.Context, filter dto.ItemFilter) (*dto.ItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	items, total, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		data = append(data, itemToResponse(&items[i]))
	}
	return &dto.ItemListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *itemService) Search(ctx context.Context, q dto.ItemSearchQuery) ([]dto.ItemResponse, error) {
	items, err := s.items.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, itemToResponse(&items[i]))
	}
	return result, nil
}

// Update changes catalog fields directly; a quantity present in the request
// goes through the ledger as an adjustment instead of being written here.
func (s *itemService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if req.PurchasePrice != nil && req.PurchasePrice.IsNegative() {
		return nil, apierror.Validationf("purchase_price must not be negative, got %s", req.PurchasePrice)
	}
	if req.SalePrice != nil && req.SalePrice.IsNegative() {
		return nil, apierror.Validationf("sale_price must not be negative, got %s", req.SalePrice)
	}

	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("item", id)
		}
		return nil, err
	}
	oldBarcode := item.Barcode

	if req.Barcode != nil && *req.Barcode != item.Barcode {
		if existing, err := s.items.FindByBarcode(ctx, *req.Barcode); err == nil && existing != nil {
			return nil, apierror.Conflictf("barcode %s already in use", *req.Barcode)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		item.Barcode = *req.Barcode
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.PurchasePrice != nil {
		item.PurchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		item.SalePrice = *req.SalePrice
	}
	if req.AlertThreshold != nil {
		item.AlertThreshold = *req.AlertThreshold
	}
	if req.BrandID != nil {
		brandID, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, apierror.Validationf("invalid brand_id: %s", *req.BrandID)
		}
		if _, err := s.brands.FindByID(ctx, brandID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("brand", brandID)
			}
			return nil, err
		}
		item.BrandID = brandID
		item.Brand = nil
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	if req.Quantity != nil && *req.Quantity != item.QuantityOnHand {
		adj, err := s.ledger.Adjust(ctx, id, *req.Quantity)
		if err != nil {
			return nil, err
		}
		item.QuantityOnHand = adj.Item.QuantityOnHand
	}

	s.invalidateBarcodeCache(ctx, oldBarcode, item.Barcode)

	updated, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := itemToResponse(updated)
	return &resp, nil
}

// Delete removes the item together with its movements and sales in one
// transaction. Ledger history does not outlive the item it describes.
func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("item", id)
		}
		return err
	}

	err = runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		ids := []uuid.UUID{id}
		if err := s.movements.DeleteByItemIDsTx(tx, ids); err != nil {
			return err
		}
		if err := s.sales.DeleteByItemIDsTx(tx, ids); err != nil {
			return err
		}
		return s.items.DeleteTx(tx, id)
	})
	if err != nil {
		return err
	}

	s.invalidateBarcodeCache(ctx, item.Barcode, "")
	return nil
}

func (s *itemService) invalidateBarcodeCache(ctx context.Context, barcodes ...string) {
	if s.rdb == nil {
		return
	}
	keys := make([]string, 0, len(barcodes))
	for _, b := range barcodes {
		if b != "" {
			keys = append(keys, barcodeCacheKeyPrefix+b)
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("barcode cache invalidation failed")
	}
}

func itemToResponse(i *model.Item) dto.ItemResponse {
	r := dto.ItemResponse{
		ID:             i.ID.String(),
		Barcode:        i.Barcode,
		Name:           i.Name,
		PurchasePrice:  i.PurchasePrice,
		SalePrice:      i.SalePrice,
		QuantityOnHand: i.QuantityOnHand,
		AlertThreshold: i.AlertThreshold,
		BrandID:        i.BrandID.String(),
	}
	if i.Brand != nil {
		r.BrandName = i.Brand.Name
	}
	return r
}
