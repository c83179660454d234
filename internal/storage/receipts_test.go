package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mataresit/dupecheck/internal/common"
	"github.com/mataresit/dupecheck/internal/model"
)

func setupStore(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func storedReceipt(id, userID string, created time.Time) model.Receipt {
	return model.Receipt{
		ID:            id,
		UserID:        userID,
		Merchant:      "Coffee Shop",
		Date:          time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Total:         15.00,
		Tax:           1.20,
		Currency:      "USD",
		PaymentMethod: "Visa",
		Status:        model.StatusUnreviewed,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func TestSaveAndListReceipts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveReceipts(ctx, []model.Receipt{
		storedReceipt("r2", "user-1", base.Add(time.Hour)),
		storedReceipt("r1", "user-1", base),
		storedReceipt("r3", "user-2", base.Add(2*time.Hour)),
	}))

	receipts, err := store.ListReceipts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	// Insertion order by creation time.
	assert.Equal(t, "r1", receipts[0].ID)
	assert.Equal(t, "r2", receipts[1].ID)
	assert.Equal(t, "Coffee Shop", receipts[0].Merchant)
	assert.Equal(t, model.StatusUnreviewed, receipts[0].Status)
	assert.InDelta(t, 15.00, receipts[0].Total, 1e-9)

	all, err := store.ListReceipts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetReceipt_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetReceipt(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteReceipt_CascadesLineItems(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	created := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveReceipts(ctx, []model.Receipt{
		storedReceipt("r1", "user-1", created),
		storedReceipt("r2", "user-1", created.Add(time.Hour)),
	}))
	require.NoError(t, store.SaveLineItems(ctx, []model.LineItem{
		{ID: "li1", ReceiptID: "r1", Description: "Latte", Amount: 5.00},
		{ID: "li2", ReceiptID: "r1", Description: "Croissant", Amount: 3.50},
		{ID: "li3", ReceiptID: "r2", Description: "Latte", Amount: 5.00},
	}))

	require.NoError(t, store.DeleteReceipt(ctx, "r1"))

	_, err := store.GetReceipt(ctx, "r1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// No orphan line items remain for the deleted receipt.
	items, err := store.ListLineItems(ctx, []string{"r1", "r2"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "li3", items[0].ID)
}

func TestDeleteReceipt_NotFound(t *testing.T) {
	store := setupStore(t)

	err := store.DeleteReceipt(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateReceiptStatus(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveReceipts(ctx, []model.Receipt{
		storedReceipt("r1", "user-1", time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)),
	}))

	require.NoError(t, store.UpdateReceiptStatus(ctx, "r1", model.StatusUnreviewed, "DUPLICATE_CHECK: Food"))

	receipt, err := store.GetReceipt(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnreviewed, receipt.Status)
	assert.Equal(t, "DUPLICATE_CHECK: Food", receipt.PredictedCategory)
}

func TestUpdateReceiptStatus_RejectsInvalidStatus(t *testing.T) {
	store := setupStore(t)

	err := store.UpdateReceiptStatus(context.Background(), "r1", model.ReceiptStatus("bogus"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateReceiptStatus_NotFound(t *testing.T) {
	store := setupStore(t)

	err := store.UpdateReceiptStatus(context.Background(), "missing", model.StatusReviewed, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveReceipts_Validation(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.SaveReceipts(ctx, []model.Receipt{})
	assert.ErrorIs(t, err, ErrEmptySlice)

	err = store.SaveReceipts(ctx, []model.Receipt{{UserID: "user-1"}})
	assert.ErrorIs(t, err, ErrInvalidReceipt)

	err = store.SaveReceipts(ctx, []model.Receipt{{ID: "r1"}})
	assert.ErrorIs(t, err, ErrInvalidReceipt)
}

func TestListLineItems_EmptyInput(t *testing.T) {
	store := setupStore(t)

	items, err := store.ListLineItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
