package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db/dbtest"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

func TestStore_TransactionRollsBack(t *testing.T) {
	s := NewStore(dbtest.NewSQLite(t))
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx Store) error {
		category := models.Category{Name: "黄金"}
		if err := tx.Portfolio().FindOrCreateCategory(ctx, &category); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	categories, err := s.Portfolio().ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestStore_TransactionCommits(t *testing.T) {
	s := NewStore(dbtest.NewSQLite(t))
	ctx := context.Background()

	require.NoError(t, s.Transaction(ctx, func(tx Store) error {
		category := models.Category{Name: "黄金"}
		return tx.Portfolio().FindOrCreateCategory(ctx, &category)
	}))

	categories, err := s.Portfolio().ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}
