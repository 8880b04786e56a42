package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/repositories"
)

type cashFlowService struct {
	repo   repositories.CashFlowRepository
	rates  RateService
	logger *zap.Logger
}

// NewCashFlowService creates a new cash flow service
func NewCashFlowService(repo repositories.CashFlowRepository, rates RateService, logger *zap.Logger) CashFlowService {
	return &cashFlowService{repo: repo, rates: rates, logger: logger}
}

// AddCashFlow validates and records a flow. A missing CNY amount is
// converted from the original amount at the current rate.
func (s *cashFlowService) AddCashFlow(ctx context.Context, flow *models.CashFlow) error {
	flow.Currency = strings.ToUpper(strings.TrimSpace(flow.Currency))
	flow.FlowType = strings.ToLower(strings.TrimSpace(flow.FlowType))
	if !flow.FlowDate.IsZero() {
		flow.FlowDate = models.DateOnly(flow.FlowDate)
	}

	if flow.CNYAmount.IsZero() && models.IsSupportedCurrency(flow.Currency) {
		table, err := s.rates.CurrentRates(ctx)
		if err != nil {
			return err
		}
		flow.CNYAmount = table.ToCNY(flow.OriginalAmount, flow.Currency)
	}

	if err := flow.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, flow); err != nil {
		return err
	}
	s.logger.Info("cash flow recorded",
		zap.String("id", flow.ID),
		zap.String("type", flow.FlowType),
		zap.String("cny_amount", flow.CNYAmount.String()))
	return nil
}

func (s *cashFlowService) DeleteCashFlow(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListCashFlows returns flows newest first.
func (s *cashFlowService) ListCashFlows(ctx context.Context, filter *models.CashFlowFilter) ([]models.CashFlow, error) {
	return s.repo.List(ctx, filter)
}
