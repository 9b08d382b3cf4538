package storage

import (
	"testing"
	"time"

	"AJY_Stylist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEmailHash(t *testing.T) {
	assert.Equal(t, EmailHash("User@Example.com "), EmailHash("user@example.com"))
	assert.Len(t, EmailHash("user@example.com"), 64)
	assert.NotEqual(t, EmailHash("a@example.com"), EmailHash("b@example.com"))
}

func TestSaveAndListAnalyses(t *testing.T) {
	store := openTestStore(t)
	ctx := t.Context()
	owner := EmailHash("user@example.com")

	older := &models.Analysis{
		EmailHash: owner, Locale: "ko", Gender: "female", Height: "165", Weight: "52",
		Status: models.StatusFailed, Refunded: true, Error: "timeout",
		CreatedAt: time.Now().Add(-time.Hour).UTC(),
	}
	newer := &models.Analysis{
		EmailHash: owner, Locale: "en", Gender: "male", Height: "180", Weight: "75",
		CheckoutID: "chk_1", Status: models.StatusSucceeded, Report: "## Report", HasStyleImage: true,
	}
	other := &models.Analysis{EmailHash: EmailHash("other@example.com"), Locale: "ko", Gender: "male", Height: "1", Weight: "1", Status: models.StatusSucceeded}

	for _, a := range []*models.Analysis{older, newer, other} {
		require.NoError(t, store.SaveAnalysis(ctx, a))
		assert.NotEmpty(t, a.ID)
	}

	list, err := store.ListAnalyses(ctx, owner, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, "chk_1", list[0].CheckoutID)
	assert.True(t, list[0].HasStyleImage)
	assert.Empty(t, list[0].Report)
	assert.Equal(t, older.ID, list[1].ID)
	assert.True(t, list[1].Refunded)
	assert.Equal(t, "timeout", list[1].Error)

	limited, err := store.ListAnalyses(ctx, owner, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGetAnalysis(t *testing.T) {
	store := openTestStore(t)
	ctx := t.Context()
	owner := EmailHash("user@example.com")

	a := &models.Analysis{EmailHash: owner, Locale: "ko", Gender: "female", Height: "160", Weight: "50", Status: models.StatusSucceeded, Report: "리포트"}
	require.NoError(t, store.SaveAnalysis(ctx, a))

	got, err := store.GetAnalysis(ctx, a.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "리포트", got.Report)
	assert.Equal(t, "160", got.Height)

	_, err = store.GetAnalysis(ctx, a.ID, EmailHash("other@example.com"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetAnalysis(ctx, "missing", owner)
	assert.ErrorIs(t, err, ErrNotFound)
}
