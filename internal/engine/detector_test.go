package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mataresit/dupecheck/internal/common"
	"github.com/mataresit/dupecheck/internal/engine"
	"github.com/mataresit/dupecheck/internal/model"
	"github.com/mataresit/dupecheck/internal/testutil"
)

func TestScope_Validate(t *testing.T) {
	assert.ErrorIs(t, engine.Scope{}.Validate(), common.ErrMissingUserScope)
	assert.NoError(t, engine.Scope{UserID: "user-1"}.Validate())
	assert.NoError(t, engine.Scope{AllUsers: true}.Validate())
}

func TestNew_RejectsInvalidCriteria(t *testing.T) {
	db := testutil.SetupTestDB(t)

	criteria := model.DefaultCriteria()
	criteria.MinimumConfidence = 1.5

	_, err := engine.New(db.Store, criteria)
	assert.ErrorIs(t, err, common.ErrInvalidCriteria)
}

func TestDetect_EndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := testutil.NewReceipt("user-1").
		WithID("newer").
		WithMerchant("Coffee Shop").
		WithDate(date).
		WithTotal(15.00).
		WithPaymentMethod("Visa").
		WithCreatedAt(time.Date(2024, 2, 1, 13, 0, 0, 0, time.UTC)).
		WithLineItems("Latte", "Croissant").
		Build()
	older := testutil.NewReceipt("user-1").
		WithID("older").
		WithMerchant("Coffee Shop").
		WithDate(date).
		WithTotal(15.00).
		WithPaymentMethod("Visa").
		WithCreatedAt(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)).
		WithLineItems("Latte", "Croissant").
		Build()
	unrelated := testutil.NewReceipt("user-1").
		WithID("unrelated").
		WithMerchant("Hardware Depot").
		WithDate(date.AddDate(0, 1, 0)).
		WithTotal(120.00).
		WithCreatedAt(time.Date(2024, 2, 1, 11, 0, 0, 0, time.UTC)).
		Build()
	otherUser := testutil.NewReceipt("user-2").
		WithID("other-user").
		WithMerchant("Coffee Shop").
		WithDate(date).
		WithTotal(15.00).
		WithPaymentMethod("Visa").
		WithCreatedAt(time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)).
		Build()
	db.Seed(newer, older, unrelated, otherUser)

	detector, err := engine.New(db.Store, model.DefaultCriteria())
	require.NoError(t, err)

	ctx := context.Background()
	result, err := detector.Detect(ctx, engine.Scope{UserID: "user-1"}, nil)
	require.NoError(t, err)

	assert.Len(t, result.Receipts, 3)
	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.Groups, 1)

	group := result.Groups[0]
	require.Len(t, group.Receipts, 2)
	assert.Equal(t, "newer", group.Receipts[0].ID)
	assert.Equal(t, "older", group.Receipts[1].ID)
	assert.Equal(t, model.RecommendDeleteOlder, group.Recommendation)
	assert.InDelta(t, 1.0, group.Confidence, 1e-9)
	require.NotNil(t, group.Analysis.LineItemsSimilarity)
	assert.InDelta(t, 1.0, *group.Analysis.LineItemsSimilarity, 1e-9)

	// Confirmed deletion removes the older copy and cascades its line
	// items away.
	summary, err := detector.DeleteOlder(ctx, result, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"older"}, summary.Deleted)
	assert.Empty(t, summary.Errors)

	_, err = db.Store.GetReceipt(ctx, "older")
	assert.ErrorIs(t, err, common.ErrNotFound)

	items, err := db.Store.ListLineItems(ctx, []string{"older"})
	require.NoError(t, err)
	assert.Empty(t, items)

	// The newest member survives intact.
	kept, err := db.Store.GetReceipt(ctx, "newer")
	require.NoError(t, err)
	assert.Equal(t, "Coffee Shop", kept.Merchant)
}

func TestDetect_AllUsersPartitionsPerUser(t *testing.T) {
	db := testutil.SetupTestDB(t)

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	seed := func(userID, id string, created time.Time) model.Receipt {
		return testutil.NewReceipt(userID).
			WithID(id).
			WithMerchant("Coffee Shop").
			WithDate(date).
			WithTotal(15.00).
			WithPaymentMethod("Visa").
			WithCreatedAt(created).
			Build()
	}
	base := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	db.Seed(
		seed("user-1", "u1-a", base),
		seed("user-1", "u1-b", base.Add(time.Hour)),
		seed("user-2", "u2-a", base.Add(2*time.Hour)),
		seed("user-2", "u2-b", base.Add(3*time.Hour)),
	)

	detector, err := engine.New(db.Store, model.DefaultCriteria())
	require.NoError(t, err)

	result, err := detector.Detect(context.Background(), engine.Scope{AllUsers: true}, nil)
	require.NoError(t, err)

	// One group per user; the cross-user pairs are never considered.
	require.Len(t, result.Groups, 2)
	for _, group := range result.Groups {
		require.Len(t, group.Receipts, 2)
		assert.Equal(t, group.Receipts[0].UserID, group.Receipts[1].UserID)
	}
}

func TestDetect_RequiresScope(t *testing.T) {
	db := testutil.SetupTestDB(t)

	detector, err := engine.New(db.Store, model.DefaultCriteria())
	require.NoError(t, err)

	_, err = detector.Detect(context.Background(), engine.Scope{}, nil)
	assert.ErrorIs(t, err, common.ErrMissingUserScope)
}
