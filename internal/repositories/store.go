package repositories

import (
	"context"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db"
)

type store struct {
	db *db.DB
}

// NewStore creates a Store backed by database
func NewStore(database *db.DB) Store {
	return &store{db: database}
}

func (s *store) Portfolio() PortfolioRepository {
	return NewPortfolioRepository(s.db)
}

func (s *store) ExchangeRates() ExchangeRateRepository {
	return NewExchangeRateRepository(s.db)
}

func (s *store) CashFlows() CashFlowRepository {
	return NewCashFlowRepository(s.db)
}

func (s *store) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.InTransaction(ctx, func(tx *db.DB) error {
		return fn(&store{db: tx})
	})
}
