package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/shared"
)

// newMockInventoryItemRepository creates a GormInventoryItemRepository with a mocked SQL connection
func newMockInventoryItemRepository(t *testing.T) (*GormInventoryItemRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInventoryItemRepository(gormDB), mock, mockDB
}

func itemRows(itemID uuid.UUID, itemCode string, productID, warehouseID uuid.UUID, quantity int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at",
		"item_code", "product_id", "warehouse_id", "category_id",
		"quantity", "unit_cost", "status",
	}).AddRow(
		itemID, now, now,
		itemCode, productID, warehouseID, nil,
		quantity, decimal.NewFromFloat(12.50), "active",
	)
}

func TestGormInventoryItemRepository_FindByID(t *testing.T) {
	t.Run("finds existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		productID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnRows(itemRows(itemID, "SKU-100", productID, warehouseID, 40))

		item, err := repo.FindByID(context.Background(), itemID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, "SKU-100", item.ItemCode)
		assert.EqualValues(t, 40, item.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing item", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_FindByItemCode(t *testing.T) {
	t.Run("finds item by code", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE item_code = \$1`).
			WithArgs("SKU-200", 1).
			WillReturnRows(itemRows(itemID, "SKU-200", uuid.New(), uuid.New(), 5))

		item, err := repo.FindByItemCode(context.Background(), "SKU-200")

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "SKU-200", item.ItemCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown code", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE item_code = \$1`).
			WithArgs("NOPE", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByItemCode(context.Background(), "NOPE")

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormInventoryItemRepository_FindTopByProduct(t *testing.T) {
	t.Run("orders by quantity descending with id tiebreak", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		itemID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE product_id = \$1 ORDER BY quantity DESC, id ASC`).
			WithArgs(productID, 1).
			WillReturnRows(itemRows(itemID, "SKU-300", productID, uuid.New(), 80))

		item, err := repo.FindTopByProduct(context.Background(), productID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, itemID, item.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when product has no items", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE product_id = \$1`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindTopByProduct(context.Background(), productID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormInventoryItemRepository_DecrementQuantity(t *testing.T) {
	t.Run("decrements when stock is sufficient", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		mock.ExpectExec(`UPDATE inventory_items\s+SET quantity = quantity - \$1,\s+status = CASE WHEN quantity - \$2 <= 0 THEN 'out_of_stock' ELSE status END,\s+updated_at = NOW\(\)\s+WHERE id = \$3 AND quantity >= \$4`).
			WithArgs(int64(4), int64(4), itemID, int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementQuantity(context.Background(), itemID, 4)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrCannotShip when the guard rejects the update", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		mock.ExpectExec(`UPDATE inventory_items\s+SET quantity = quantity - \$1,\s+status = CASE WHEN quantity - \$2 <= 0 THEN 'out_of_stock' ELSE status END,\s+updated_at = NOW\(\)\s+WHERE id = \$3 AND quantity >= \$4`).
			WithArgs(int64(100), int64(100), itemID, int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DecrementQuantity(context.Background(), itemID, 100)

		assert.ErrorIs(t, err, shared.ErrCannotShip)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		mock.ExpectExec(`DELETE FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), itemID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
