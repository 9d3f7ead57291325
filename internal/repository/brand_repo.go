package repository

import (
	"context"

	"screenstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandRepository defines CRUD operations for brands.
type BrandRepository interface {
	Create(ctx context.Context, b *model.Brand) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	FindByName(ctx context.Context, name string) (*model.Brand, error)
	List(ctx context.Context) ([]model.Brand, error)
	Update(ctx context.Context, b *model.Brand) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountItems(ctx context.Context, id uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type brandRepo struct{ db *gorm.DB }

func NewBrandRepository(db *gorm.DB) BrandRepository { return &brandRepo{db: db} }

func (r *brandRepo) Create(ctx context.Context, b *model.Brand) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *brandRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	var b model.Brand
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepo) FindByName(ctx context.Context, name string) (*model.Brand, error) {
	var b model.Brand
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepo) List(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error
	return brands, err
}

func (r *brandRepo) Update(ctx context.Context, b *model.Brand) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *brandRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Brand{}, "id = ?", id).Error
}

func (r *brandRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Brand{}).Count(&n).Error
	return n, err
}

func (r *brandRepo) CountItems(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Where("brand_id = ?", id).Count(&n).Error
	return n, err
}

func (r *brandRepo) DB() *gorm.DB { return r.db }
