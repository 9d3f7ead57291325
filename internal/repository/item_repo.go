package repository

import (
	"context"

	"screenstock/internal/dto"
	"screenstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository defines the data access contract for items. Services depend
// on this interface, not on the concrete GORM implementation, enabling clean
// unit testing via in-memory stubs.
type ItemRepository interface {
	Create(ctx context.Context, i *model.Item) error
	CreateTx(tx *gorm.DB, i *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Item, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Item, error)
	FindByBrandID(ctx context.Context, brandID uuid.UUID) ([]model.Item, error)
	List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, int64, error)
	Search(ctx context.Context, q dto.ItemSearchQuery) ([]model.Item, error)

	// Update writes catalog fields only. quantity_on_hand belongs to the
	// ledger and is never written back from a read that may have gone stale.
	Update(ctx context.Context, i *model.Item) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// ListLowStock returns items at or below their alert threshold, ordered
	// by barcode for deterministic output.
	ListLowStock(ctx context.Context) ([]model.Item, error)

	// AddStockTx applies quantity_on_hand += delta as a single UPDATE.
	AddStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// SetStockTx overwrites quantity_on_hand. Callers must hold the item's
	// ledger lock so the old value they computed the diff from is stable.
	SetStockTx(tx *gorm.DB, id uuid.UUID, quantity int) error

	// DeductStockTx is the decrement-if-sufficient guard of the sale path:
	// one conditional UPDATE, so the stock check and the write cannot be
	// interleaved by another writer. Returns false when stock was short.
	DeductStockTx(tx *gorm.DB, id uuid.UUID, quantity int) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, i *model.Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *itemRepo) CreateTx(tx *gorm.DB, i *model.Item) error {
	return tx.Create(i).Error
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var i model.Item
	err := r.db.WithContext(ctx).Preload("Brand").First(&i, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *itemRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Item, error) {
	var i model.Item
	err := tx.First(&i, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *itemRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Item, error) {
	var i model.Item
	err := r.db.WithContext(ctx).Preload("Brand").Where("barcode = ?", barcode).First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *itemRepo) FindByBrandID(ctx context.Context, brandID uuid.UUID) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Where("brand_id = ?", brandID).Find(&items).Error
	return items, err
}

func (r *itemRepo) List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Item{})
	if filter.BrandID != "" {
		q = q.Where("brand_id = ?", filter.BrandID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Brand").Order("name ASC, barcode ASC").
		Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *itemRepo) Search(ctx context.Context, query dto.ItemSearchQuery) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Preload("Brand").Order("name ASC, barcode ASC")

	switch query.Criterion {
	case "barcode":
		q = q.Where("barcode LIKE ?", "%"+query.Term+"%")
	case "quantity":
		q = q.Where("quantity_on_hand = ?", query.Term)
	default:
		q = q.Where("lower(name) LIKE lower(?)", "%"+query.Term+"%")
	}

	var items []model.Item
	err := q.Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, i *model.Item) error {
	return r.db.WithContext(ctx).Model(i).
		Select("barcode", "name", "purchase_price", "sale_price", "alert_threshold", "brand_id").
		Updates(i).Error
}

func (r *itemRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Item{}, "id = ?", id).Error
}

func (r *itemRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&n).Error
	return n, err
}

func (r *itemRepo) ListLowStock(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Preload("Brand").
		Where("quantity_on_hand <= alert_threshold").
		Order("barcode ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) AddStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Item{}).Where("id = ?", id).
		Update("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", delta)).Error
}

func (r *itemRepo) SetStockTx(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Item{}).Where("id = ?", id).
		Update("quantity_on_hand", quantity).Error
}

func (r *itemRepo) DeductStockTx(tx *gorm.DB, id uuid.UUID, quantity int) (bool, error) {
	res := tx.Model(&model.Item{}).
		Where("id = ? AND quantity_on_hand >= ?", id, quantity).
		Update("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *itemRepo) DB() *gorm.DB { return r.db }
