package repository

import (
	"context"

	"screenstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRepository defines CRUD operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	DB() *gorm.DB
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Customer{}, "id = ?", id).Error
}

func (r *customerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&n).Error
	return n, err
}

func (r *customerRepo) DB() *gorm.DB { return r.db }
