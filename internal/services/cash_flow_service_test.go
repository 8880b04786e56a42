package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

func newCashFlowService(t *testing.T) (CashFlowService, *testEnv) {
	env := newTestEnv(t, ImportOptions{})
	return NewCashFlowService(env.store.CashFlows(), env.rates, zaptest.NewLogger(t)), env
}

func TestCashFlowService_ConvertsMissingCNYAmount(t *testing.T) {
	svc, _ := newCashFlowService(t)
	ctx := context.Background()

	flow := &models.CashFlow{
		FlowDate:       time.Date(2025, time.November, 3, 15, 30, 0, 0, time.UTC),
		FlowType:       " Inflow ",
		OriginalAmount: decimal.NewFromInt(100),
		Currency:       "usd",
	}
	require.NoError(t, svc.AddCashFlow(ctx, flow))

	assert.NotEmpty(t, flow.ID)
	assert.Equal(t, models.FlowTypeInflow, flow.FlowType)
	assert.Equal(t, models.CurrencyUSD, flow.Currency)
	assert.True(t, flow.CNYAmount.Equal(decimal.NewFromInt(710)), flow.CNYAmount.String())
	assert.Equal(t, time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC), flow.FlowDate)
}

func TestCashFlowService_KeepsExplicitCNYAmount(t *testing.T) {
	svc, _ := newCashFlowService(t)

	flow := &models.CashFlow{
		FlowDate:       time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC),
		FlowType:       models.FlowTypeOutflow,
		OriginalAmount: decimal.NewFromInt(100),
		Currency:       models.CurrencyUSD,
		CNYAmount:      decimal.NewFromInt(720),
	}
	require.NoError(t, svc.AddCashFlow(context.Background(), flow))
	assert.True(t, flow.CNYAmount.Equal(decimal.NewFromInt(720)))
	assert.True(t, flow.Signed().Equal(decimal.NewFromInt(-720)))
}

func TestCashFlowService_Rejects(t *testing.T) {
	svc, _ := newCashFlowService(t)
	date := time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		flow  models.CashFlow
		field string
	}{
		{"missing date", models.CashFlow{FlowType: "inflow", OriginalAmount: decimal.NewFromInt(1), Currency: "CNY"}, "flow_date"},
		{"bad type", models.CashFlow{FlowDate: date, FlowType: "transfer", OriginalAmount: decimal.NewFromInt(1), Currency: "CNY"}, "flow_type"},
		{"zero amount", models.CashFlow{FlowDate: date, FlowType: "inflow", Currency: "CNY"}, "original_amount"},
		{"unsupported currency", models.CashFlow{FlowDate: date, FlowType: "inflow", OriginalAmount: decimal.NewFromInt(1), Currency: "XYZ"}, "currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := tt.flow
			err := svc.AddCashFlow(context.Background(), &flow)
			var validationErr *apperrors.ErrValidation
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCashFlowService_ListAndDelete(t *testing.T) {
	svc, _ := newCashFlowService(t)
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		require.NoError(t, svc.AddCashFlow(ctx, &models.CashFlow{
			FlowDate:       time.Date(2025, time.November, day, 0, 0, 0, 0, time.UTC),
			FlowType:       models.FlowTypeInflow,
			OriginalAmount: decimal.NewFromInt(int64(day * 100)),
			Currency:       models.CurrencyCNY,
		}))
	}

	flows, err := svc.ListCashFlows(ctx, nil)
	require.NoError(t, err)
	require.Len(t, flows, 3)
	assert.Equal(t, 3, flows[0].FlowDate.Day(), "newest first")

	require.NoError(t, svc.DeleteCashFlow(ctx, flows[0].ID))
	flows, err = svc.ListCashFlows(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, flows, 2)

	err = svc.DeleteCashFlow(ctx, "00000000-0000-0000-0000-000000000000")
	var notFound *apperrors.ErrNotFound
	assert.True(t, errors.As(err, &notFound))
}
