package repository

import (
	"context"

	"screenstock/internal/dto"
	"screenstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)

	// ListAll loads every sale with its item and brand in one query. The
	// reporting projector derives all aggregates from this single snapshot.
	ListAll(ctx context.Context) ([]model.Sale, error)

	Count(ctx context.Context) (int64, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	DeleteByItemIDsTx(tx *gorm.DB, itemIDs []uuid.UUID) error
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Item.Brand").Preload("Customer").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.ItemID != "" {
		q = q.Where("item_id = ?", filter.ItemID)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var sales []model.Sale
	err := q.Preload("Item").Preload("Customer").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) ListAll(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Item.Brand").
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Count(&n).Error
	return n, err
}

func (r *saleRepo) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("customer_id = ?", customerID).Count(&n).Error
	return n, err
}

func (r *saleRepo) DeleteByItemIDsTx(tx *gorm.DB, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return tx.Where("item_id IN ?", itemIDs).Delete(&model.Sale{}).Error
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
