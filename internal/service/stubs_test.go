package service

// In-memory repository stubs. DB() returns nil, so runTx executes the
// transaction body directly; what the stubs cannot reproduce is rollback,
// which the sqlite repository tests cover instead.

import (
	"context"
	"sort"
	"strings"
	"time"

	"screenstock/internal/dto"
	"screenstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Brands ────────────────────────────────────────────────────────────────────

type stubBrandRepo struct {
	brands map[uuid.UUID]*model.Brand
}

func newStubBrandRepo() *stubBrandRepo {
	return &stubBrandRepo{brands: make(map[uuid.UUID]*model.Brand)}
}

func (r *stubBrandRepo) Create(_ context.Context, b *model.Brand) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	cp := *b
	r.brands[b.ID] = &cp
	return nil
}

func (r *stubBrandRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Brand, error) {
	b, ok := r.brands[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBrandRepo) FindByName(_ context.Context, name string) (*model.Brand, error) {
	for _, b := range r.brands {
		if strings.EqualFold(b.Name, name) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBrandRepo) List(_ context.Context) ([]model.Brand, error) {
	out := make([]model.Brand, 0, len(r.brands))
	for _, b := range r.brands {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubBrandRepo) Update(_ context.Context, b *model.Brand) error {
	cp := *b
	r.brands[b.ID] = &cp
	return nil
}

func (r *stubBrandRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.brands, id)
	return nil
}

func (r *stubBrandRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.brands)), nil
}

func (r *stubBrandRepo) CountItems(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubBrandRepo) DB() *gorm.DB { return nil }

// ── Items ─────────────────────────────────────────────────────────────────────

type stubItemRepo struct {
	items map[uuid.UUID]*model.Item
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, i *model.Item) error {
	return r.CreateTx(nil, i)
}

func (r *stubItemRepo) CreateTx(_ *gorm.DB, i *model.Item) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	cp := *i
	r.items[i.ID] = &cp
	return nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubItemRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Item, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *stubItemRepo) FindByBarcode(_ context.Context, barcode string) (*model.Item, error) {
	for _, i := range r.items {
		if i.Barcode == barcode {
			cp := *i
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubItemRepo) FindByBrandID(_ context.Context, brandID uuid.UUID) ([]model.Item, error) {
	var out []model.Item
	for _, i := range r.items {
		if i.BrandID == brandID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubItemRepo) List(_ context.Context, _ dto.ItemFilter) ([]model.Item, int64, error) {
	out := make([]model.Item, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, *i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Barcode < out[b].Barcode })
	return out, int64(len(out)), nil
}

func (r *stubItemRepo) Search(_ context.Context, q dto.ItemSearchQuery) ([]model.Item, error) {
	var out []model.Item
	for _, i := range r.items {
		switch q.Criterion {
		case "barcode":
			if strings.Contains(i.Barcode, q.Term) {
				out = append(out, *i)
			}
		default:
			if strings.Contains(strings.ToLower(i.Name), strings.ToLower(q.Term)) {
				out = append(out, *i)
			}
		}
	}
	return out, nil
}

func (r *stubItemRepo) Update(_ context.Context, i *model.Item) error {
	stored, ok := r.items[i.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *i
	cp.QuantityOnHand = stored.QuantityOnHand // catalog update, quantity stays
	r.items[i.ID] = &cp
	return nil
}

func (r *stubItemRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubItemRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *stubItemRepo) ListLowStock(_ context.Context) ([]model.Item, error) {
	var out []model.Item
	for _, i := range r.items {
		if i.QuantityOnHand <= i.AlertThreshold {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Barcode < out[b].Barcode })
	return out, nil
}

func (r *stubItemRepo) AddStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	i, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.QuantityOnHand += delta
	return nil
}

func (r *stubItemRepo) SetStockTx(_ *gorm.DB, id uuid.UUID, quantity int) error {
	i, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.QuantityOnHand = quantity
	return nil
}

func (r *stubItemRepo) DeductStockTx(_ *gorm.DB, id uuid.UUID, quantity int) (bool, error) {
	i, ok := r.items[id]
	if !ok {
		return false, nil
	}
	if i.QuantityOnHand < quantity {
		return false, nil
	}
	i.QuantityOnHand -= quantity
	return true, nil
}

func (r *stubItemRepo) DB() *gorm.DB { return nil }

// ── Customers ─────────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *stubCustomerRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

func (r *stubCustomerRepo) DB() *gorm.DB { return nil }

// ── Movements ─────────────────────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.Movement
	clock     time.Time
}

func newStubMovementRepo() *stubMovementRepo {
	return &stubMovementRepo{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.Movement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.clock = r.clock.Add(time.Second)
	m.CreatedAt = r.clock
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.MovementFilter) ([]model.Movement, int64, error) {
	var out []model.Movement
	for _, m := range r.movements {
		if filter.ItemID != "" && m.ItemID.String() != filter.ItemID {
			continue
		}
		if filter.Kind != "" && m.Kind != filter.Kind {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *stubMovementRepo) ListByItemID(_ context.Context, itemID uuid.UUID) ([]model.Movement, error) {
	var out []model.Movement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubMovementRepo) DeleteByItemIDsTx(_ *gorm.DB, itemIDs []uuid.UUID) error {
	keep := r.movements[:0]
	for _, m := range r.movements {
		deleted := false
		for _, id := range itemIDs {
			if m.ItemID == id {
				deleted = true
				break
			}
		}
		if !deleted {
			keep = append(keep, m)
		}
	}
	r.movements = keep
	return nil
}

// ── Sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales []model.Sale
	clock time.Time
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		r.clock = r.clock.Add(time.Second)
		s.CreatedAt = r.clock
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			cp := r.sales[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if filter.ItemID != "" && s.ItemID.String() != filter.ItemID {
			continue
		}
		if filter.CustomerID != "" && s.CustomerID.String() != filter.CustomerID {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) ListAll(_ context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, len(r.sales))
	copy(out, r.sales)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubSaleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.sales)), nil
}

func (r *stubSaleRepo) CountByCustomerID(_ context.Context, customerID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if s.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *stubSaleRepo) DeleteByItemIDsTx(_ *gorm.DB, itemIDs []uuid.UUID) error {
	keep := r.sales[:0]
	for _, s := range r.sales {
		deleted := false
		for _, id := range itemIDs {
			if s.ItemID == id {
				deleted = true
				break
			}
		}
		if !deleted {
			keep = append(keep, s)
		}
	}
	r.sales = keep
	return nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }
