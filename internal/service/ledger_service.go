package service

import (
	"context"
	"errors"
	"time"

	"screenstock/internal/apierror"
	"screenstock/internal/dto"
	"screenstock/internal/model"
	"screenstock/internal/repository"
	"screenstock/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService is the only component allowed to mutate quantity_on_hand.
// Every change it applies is paired with exactly one Movement record in the
// same transaction, and quantities can never go negative: restocks add
// atomically, sales decrement through a conditional UPDATE, and adjustments
// run under the item's lock.
type LedgerService interface {
	Restock(ctx context.Context, itemID uuid.UUID, delta int) (*dto.RestockResponse, error)
	Adjust(ctx context.Context, itemID uuid.UUID, newQuantity int) (*dto.AdjustResponse, error)
	Sell(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	ListLowStock(ctx context.Context) ([]dto.ItemResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type ledgerService struct {
	items      repository.ItemRepository
	customers  repository.CustomerRepository
	movements  repository.MovementRepository
	sales      repository.SaleRepository
	dispatcher *worker.Dispatcher // nil in unit tests; alerts are best-effort
	locks      *itemLocks
}

func NewLedgerService(
	items repository.ItemRepository,
	customers repository.CustomerRepository,
	movements repository.MovementRepository,
	sales repository.SaleRepository,
	dispatcher *worker.Dispatcher,
) LedgerService {
	return &ledgerService{
		items:      items,
		customers:  customers,
		movements:  movements,
		sales:      sales,
		dispatcher: dispatcher,
		locks:      newItemLocks(),
	}
}

// ── Restock ──────────────────────────────────────────────────────────────────

func (s *ledgerService) Restock(ctx context.Context, itemID uuid.UUID, delta int) (*dto.RestockResponse, error) {
	if delta <= 0 {
		return nil, apierror.Validationf("restock delta must be positive, got %d", delta)
	}

	release := s.locks.acquire(itemID)
	defer release()

	var item *model.Item
	var mov model.Movement
	err := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		var err error
		item, err = s.items.FindByIDTx(tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("item", itemID)
			}
			return err
		}
		if err := s.items.AddStockTx(tx, itemID, delta); err != nil {
			return err
		}
		mov = model.Movement{
			Kind:     model.MovementRestock,
			Quantity: delta,
			ItemID:   itemID,
		}
		return s.movements.CreateTx(tx, &mov)
	})
	if err != nil {
		return nil, err
	}

	item.QuantityOnHand += delta
	return &dto.RestockResponse{
		Item:     itemToResponse(item),
		Movement: movementToResponse(&mov),
	}, nil
}

// ── Adjust ───────────────────────────────────────────────────────────────────

// Adjust sets quantity_on_hand to newQuantity. The diff against the current
// quantity determines the movement: positive → restock, negative →
// withdrawal, zero → nothing recorded.
func (s *ledgerService) Adjust(ctx context.Context, itemID uuid.UUID, newQuantity int) (*dto.AdjustResponse, error) {
	if newQuantity < 0 {
		return nil, apierror.Validationf("quantity must not be negative, got %d", newQuantity)
	}

	release := s.locks.acquire(itemID)
	defer release()

	var item *model.Item
	var mov *model.Movement
	err := runTx(ctx, s.items.DB(), func(tx *gorm.DB) error {
		var err error
		item, err = s.items.FindByIDTx(tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("item", itemID)
			}
			return err
		}

		diff := newQuantity - item.QuantityOnHand
		if diff == 0 {
			return nil
		}

		if err := s.items.SetStockTx(tx, itemID, newQuantity); err != nil {
			return err
		}

		m := model.Movement{ItemID: itemID}
		if diff > 0 {
			m.Kind = model.MovementRestock
			m.Quantity = diff
		} else {
			m.Kind = model.MovementWithdrawal
			m.Quantity = -diff
		}
		if err := s.movements.CreateTx(tx, &m); err != nil {
			return err
		}
		mov = &m
		return nil
	})
	if err != nil {
		return nil, err
	}

	item.QuantityOnHand = newQuantity
	resp := &dto.AdjustResponse{Item: itemToResponse(item)}
	if mov != nil {
		r := movementToResponse(mov)
		resp.Movement = &r
	}
	return resp, nil
}

// ── Sell ─────────────────────────────────────────────────────────────────────

// Sell atomically decrements stock, creates the Sale, and appends its
// withdrawal movement. On any failure the transaction rolls back and no
// record survives. The decrement itself is decrement-if-sufficient: a single
// conditional UPDATE whose affected-row count reveals a stock shortage.
func (s *ledgerService) Sell(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if req.Quantity <= 0 {
		return nil, apierror.Validationf("sale quantity must be positive, got %d", req.Quantity)
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, apierror.Validationf("invalid item_id: %s", req.ItemID)
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apierror.Validationf("invalid customer_id: %s", req.CustomerID)
	}

	release := s.locks.acquire(itemID)
	defer release()

	var item *model.Item
	var customer *model.Customer
	var sale model.Sale
	var mov model.Movement
	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		// The customer check runs inside the transaction so a concurrent
		// customer delete cannot slip between the check and the commit.
		var err error
		customer, err = s.customers.FindByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("customer", customerID)
			}
			return err
		}

		item, err = s.items.FindByIDTx(tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("item", itemID)
			}
			return err
		}

		ok, err := s.items.DeductStockTx(tx, itemID, req.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return &apierror.InsufficientStockError{
				ItemID:    itemID,
				Requested: req.Quantity,
				Available: item.QuantityOnHand,
			}
		}

		sale = model.Sale{
			Quantity:   req.Quantity,
			UnitPrice:  item.SalePrice,
			ItemID:     itemID,
			CustomerID: customerID,
		}
		if err := s.sales.CreateTx(tx, &sale); err != nil {
			return err
		}

		mov = model.Movement{
			Kind:     model.MovementWithdrawal,
			Quantity: req.Quantity,
			ItemID:   itemID,
			SaleID:   &sale.ID,
		}
		return s.movements.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	remaining := item.QuantityOnHand - req.Quantity
	if s.dispatcher != nil && remaining <= item.AlertThreshold {
		// Best-effort: a lost alert never fails the sale.
		_ = s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockAlertPayload{
			ItemID:    item.ID.String(),
			Name:      item.Name,
			Barcode:   item.Barcode,
			Quantity:  remaining,
			Threshold: item.AlertThreshold,
		})
	}

	resp := saleToResponse(&sale)
	resp.ItemName = item.Name
	resp.CustomerName = customer.FirstName + " " + customer.LastName
	resp.MovementID = mov.ID.String()
	return resp, nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *ledgerService) ListLowStock(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := s.items.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		result = append(result, itemToResponse(&items[i]))
	}
	return result, nil
}

func (s *ledgerService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		r := movementToResponse(&movements[i])
		if movements[i].Item != nil {
			r.ItemName = movements[i].Item.Name
		}
		data = append(data, r)
	}
	return &dto.MovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func movementToResponse(m *model.Movement) dto.MovementResponse {
	r := dto.MovementResponse{
		ID:        m.ID.String(),
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		ItemID:    m.ItemID.String(),
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.SaleID != nil {
		id := m.SaleID.String()
		r.SaleID = &id
	}
	return r
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:         s.ID.String(),
		Quantity:   s.Quantity,
		UnitPrice:  s.UnitPrice,
		Total:      s.UnitPrice.Mul(decimalFromInt(s.Quantity)),
		ItemID:     s.ItemID.String(),
		CustomerID: s.CustomerID.String(),
		CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
	}
}
