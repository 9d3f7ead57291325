package repository

import (
	"context"

	"screenstock/internal/dto"
	"screenstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementRepository is append-only: movements are created, listed, and
// cascade-deleted with their item, never updated.
type MovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.Movement) error
	List(ctx context.Context, filter dto.MovementFilter) ([]model.Movement, int64, error)
	ListByItemID(ctx context.Context, itemID uuid.UUID) ([]model.Movement, error)
	DeleteByItemIDsTx(tx *gorm.DB, itemIDs []uuid.UUID) error
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.Movement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.Movement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Movement{}).Preload("Item")
	if filter.ItemID != "" {
		q = q.Where("item_id = ?", filter.ItemID)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var movements []model.Movement
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&movements).Error
	return movements, total, err
}

func (r *movementRepo) ListByItemID(ctx context.Context, itemID uuid.UUID) ([]model.Movement, error) {
	var movements []model.Movement
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}

func (r *movementRepo) DeleteByItemIDsTx(tx *gorm.DB, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return tx.Where("item_id IN ?", itemIDs).Delete(&model.Movement{}).Error
}
