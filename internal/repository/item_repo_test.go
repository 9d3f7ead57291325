package repository

import (
	"context"
	"testing"

	"screenstock/internal/infra"
	"screenstock/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	return db
}

func seedItem(t *testing.T, db *gorm.DB, barcode string, qty int) *model.Item {
	t.Helper()
	brand := model.Brand{Name: "Samsung-" + barcode}
	require.NoError(t, db.Create(&brand).Error)
	item := model.Item{
		Barcode:        barcode,
		Name:           "Galaxy S21 OLED",
		PurchasePrice:  decimal.RequireFromString("45.00"),
		SalePrice:      decimal.RequireFromString("89.99"),
		QuantityOnHand: qty,
		AlertThreshold: 5,
		BrandID:        brand.ID,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

func TestDeductStockTxIsConditional(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	item := seedItem(t, db, "4006381333931", 5)

	ok, err := repo.DeductStockTx(db, item.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	// The remaining 2 cannot cover another 3; the row must be untouched.
	ok, err = repo.DeductStockTx(db, item.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.QuantityOnHand)
}

func TestAddAndSetStockTx(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	item := seedItem(t, db, "4006381333931", 1)

	require.NoError(t, repo.AddStockTx(db, item.ID, 9))
	stored, _ := repo.FindByID(context.Background(), item.ID)
	assert.Equal(t, 10, stored.QuantityOnHand)

	require.NoError(t, repo.SetStockTx(db, item.ID, 4))
	stored, _ = repo.FindByID(context.Background(), item.ID)
	assert.Equal(t, 4, stored.QuantityOnHand)
}

// A catalog edit saved from a copy read before a sale committed must not
// write the stale quantity back: Update never touches quantity_on_hand.
func TestUpdateLeavesQuantityToTheLedger(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	item := seedItem(t, db, "4006381333931", 10)

	stale := *item

	ok, err := repo.DeductStockTx(db, item.ID, 3)
	require.NoError(t, err)
	require.True(t, ok)

	stale.Name = "Galaxy S21 OLED (refurb)"
	require.NoError(t, repo.Update(context.Background(), &stale))

	stored, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Galaxy S21 OLED (refurb)", stored.Name)
	assert.Equal(t, 7, stored.QuantityOnHand)
}

func TestBarcodeUniqueConstraint(t *testing.T) {
	db := newTestDB(t)
	seedItem(t, db, "4006381333931", 1)

	dup := model.Item{
		Barcode:        "4006381333931",
		Name:           "Another screen",
		PurchasePrice:  decimal.RequireFromString("10.00"),
		SalePrice:      decimal.RequireFromString("20.00"),
		QuantityOnHand: 0,
		AlertThreshold: 5,
		BrandID:        seedItem(t, db, "4006381333948", 1).BrandID,
	}
	assert.Error(t, db.Create(&dup).Error)
}

func TestListLowStockOrderedByBarcode(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	seedItem(t, db, "9000000000002", 3) // low
	seedItem(t, db, "1000000000001", 2) // low
	seedItem(t, db, "5000000000005", 50)

	low, err := repo.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "1000000000001", low[0].Barcode)
	assert.Equal(t, "9000000000002", low[1].Barcode)
}

// A failed step inside a transaction must roll back every prior write, which
// the in-memory service stubs cannot exercise.
func TestTransactionRollbackRestoresStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	item := seedItem(t, db, "4006381333931", 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		ok, err := repo.DeductStockTx(tx, item.ID, 4)
		require.NoError(t, err)
		require.True(t, ok)
		return assert.AnError
	})
	require.Error(t, err)

	stored, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.QuantityOnHand)
}
