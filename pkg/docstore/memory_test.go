package docstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletd/walletcore/pkg/docstore"
)

func newStore(t *testing.T) (*docstore.MemoryStore, context.Context) {
	t.Helper()
	return docstore.NewMemoryStore(), context.Background()
}

func TestSetGet(t *testing.T) {
	store, ctx := newStore(t)
	require.NoError(t, store.Set(ctx, "users", "u1", map[string]any{"fullName": "Ada"}))

	doc, err := store.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.ID)
	assert.Equal(t, "Ada", doc.Fields["fullName"])

	_, err = store.Get(ctx, "users", "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	store, ctx := newStore(t)
	require.NoError(t, store.Set(ctx, "users", "u1", map[string]any{"fullName": "Ada"}))

	doc, err := store.Get(ctx, "users", "u1")
	require.NoError(t, err)
	doc.Fields["fullName"] = "mutated"

	again, err := store.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.Fields["fullName"])
}

func TestUpdateDottedPathAndArrayUnion(t *testing.T) {
	store, ctx := newStore(t)
	require.NoError(t, store.Set(ctx, "users", "u1", map[string]any{
		"bankAccount": map[string]any{
			"balanceTL":    100.0,
			"transactions": []any{},
		},
	}))

	err := store.Update(ctx, "users", "u1", docstore.FieldUpdates{
		"bankAccount.balanceTL":    60.0,
		"bankAccount.transactions": docstore.ArrayUnion{Values: []any{map[string]any{"id": "t1"}}},
	})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "users", "u1")
	require.NoError(t, err)
	bank := doc.Fields["bankAccount"].(map[string]any)
	assert.Equal(t, 60.0, bank["balanceTL"])
	txs := bank["transactions"].([]any)
	require.Len(t, txs, 1)
	assert.Equal(t, "t1", txs[0].(map[string]any)["id"])
}

func TestUpdateMissingDocument(t *testing.T) {
	store, ctx := newStore(t)
	err := store.Update(ctx, "users", "ghost", docstore.FieldUpdates{"a": 1})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestQueryEquality(t *testing.T) {
	store, ctx := newStore(t)
	require.NoError(t, store.Set(ctx, "users", "u1", map[string]any{"idCash": "1234567890"}))
	require.NoError(t, store.Set(ctx, "users", "u2", map[string]any{"idCash": "0987654321"}))

	docs, err := store.Query(ctx, "users", "idCash", "1234567890")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "u1", docs[0].ID)

	none, err := store.Query(ctx, "users", "idCash", "0000000000")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCommitBatchAppliesAllWrites(t *testing.T) {
	store, ctx := newStore(t)
	require.NoError(t, store.Set(ctx, "users", "a", map[string]any{"balance": 100.0}))
	require.NoError(t, store.Set(ctx, "users", "b", map[string]any{"balance": 10.0}))

	err := store.CommitBatch(ctx, []docstore.Write{
		{Collection: "users", ID: "a", Op: docstore.OpUpdate,
			Updates: docstore.FieldUpdates{"balance": 60.0}},
		{Collection: "users", ID: "b", Op: docstore.OpUpdate,
			Updates: docstore.FieldUpdates{"balance": 50.0}},
	})
	require.NoError(t, err)

	a, _ := store.Get(ctx, "users", "a")
	b, _ := store.Get(ctx, "users", "b")
	assert.Equal(t, 60.0, a.Fields["balance"])
	assert.Equal(t, 50.0, b.Fields["balance"])
}

func TestCommitBatchAllOrNothing(t *testing.T) {
	store, ctx := newStore(t)
	require.NoError(t, store.Set(ctx, "users", "a", map[string]any{"balance": 100.0}))

	// second write targets a missing document; the first must not apply
	err := store.CommitBatch(ctx, []docstore.Write{
		{Collection: "users", ID: "a", Op: docstore.OpUpdate,
			Updates: docstore.FieldUpdates{"balance": 60.0}},
		{Collection: "users", ID: "ghost", Op: docstore.OpUpdate,
			Updates: docstore.FieldUpdates{"balance": 50.0}},
	})
	require.Error(t, err)

	a, getErr := store.Get(ctx, "users", "a")
	require.NoError(t, getErr)
	assert.Equal(t, 100.0, a.Fields["balance"])
}

func TestCommitBatchLaterWritesSeeEarlierOnes(t *testing.T) {
	store, ctx := newStore(t)

	// an update may target a document created by an earlier write in the
	// same batch
	err := store.CommitBatch(ctx, []docstore.Write{
		{Collection: "users", ID: "new", Op: docstore.OpSet,
			Fields: map[string]any{"balance": 0.0}},
		{Collection: "users", ID: "new", Op: docstore.OpUpdate,
			Updates: docstore.FieldUpdates{"balance": 25.0}},
	})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "users", "new")
	require.NoError(t, err)
	assert.Equal(t, 25.0, doc.Fields["balance"])
}

func TestCommitBatchFailingLaterUpdateLeavesNoPartialState(t *testing.T) {
	store, ctx := newStore(t)
	require.NoError(t, store.Set(ctx, "users", "u1", map[string]any{
		"meta": map[string]any{"tag": "x"},
	}))

	// the first update rewrites the segment the second update's path
	// traverses; the second must fail and the first must not stick
	err := store.CommitBatch(ctx, []docstore.Write{
		{Collection: "users", ID: "u1", Op: docstore.OpUpdate,
			Updates: docstore.FieldUpdates{"meta": "scalar"}},
		{Collection: "users", ID: "u1", Op: docstore.OpUpdate,
			Updates: docstore.FieldUpdates{"meta.tag": "y"}},
	})
	require.Error(t, err)

	doc, getErr := store.Get(ctx, "users", "u1")
	require.NoError(t, getErr)
	meta := doc.Fields["meta"].(map[string]any)
	assert.Equal(t, "x", meta["tag"])
}

func TestCommitBatchUpdateAfterDeleteFails(t *testing.T) {
	store, ctx := newStore(t)
	require.NoError(t, store.Set(ctx, "users", "u1", map[string]any{"balance": 10.0}))

	err := store.CommitBatch(ctx, []docstore.Write{
		{Collection: "users", ID: "u1", Op: docstore.OpDelete},
		{Collection: "users", ID: "u1", Op: docstore.OpUpdate,
			Updates: docstore.FieldUpdates{"balance": 20.0}},
	})
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	doc, getErr := store.Get(ctx, "users", "u1")
	require.NoError(t, getErr)
	assert.Equal(t, 10.0, doc.Fields["balance"])
}

func TestApplyUpdatesRejectsNonMapSegment(t *testing.T) {
	fields := map[string]any{"leaf": "scalar"}
	err := docstore.ApplyUpdates(fields, docstore.FieldUpdates{"leaf.child": 1})
	assert.Error(t, err)
}
