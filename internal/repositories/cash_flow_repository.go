package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/db"
	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
)

type cashFlowRepository struct {
	db *db.DB
}

// NewCashFlowRepository creates a new cash flow repository
func NewCashFlowRepository(database *db.DB) CashFlowRepository {
	return &cashFlowRepository{db: database}
}

func (r *cashFlowRepository) Create(ctx context.Context, flow *models.CashFlow) error {
	if err := r.db.WithContext(ctx).Create(flow).Error; err != nil {
		return fmt.Errorf("failed to create cash flow: %w", err)
	}
	return nil
}

func (r *cashFlowRepository) GetByID(ctx context.Context, id string) (*models.CashFlow, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &apperrors.ErrNotFound{Entity: "cash flow", ID: id}
	}

	var flow models.CashFlow
	if err := r.db.WithContext(ctx).First(&flow, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.ErrNotFound{Entity: "cash flow", ID: id}
		}
		return nil, fmt.Errorf("failed to get cash flow: %w", err)
	}
	return &flow, nil
}

func (r *cashFlowRepository) List(ctx context.Context, filter *models.CashFlowFilter) ([]models.CashFlow, error) {
	query := r.db.WithContext(ctx)

	if filter != nil {
		if filter.StartDate != nil {
			query = query.Where("flow_date >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			query = query.Where("flow_date <= ?", *filter.EndDate)
		}
		if filter.FlowType != "" {
			query = query.Where("flow_type = ?", filter.FlowType)
		}
	}

	// Newest first
	query = query.Order("flow_date DESC, created_at DESC")

	if filter != nil && filter.Limit > 0 {
		query = query.Limit(filter.Limit)
		if filter.Offset > 0 {
			query = query.Offset(filter.Offset)
		}
	}

	var flows []models.CashFlow
	if err := query.Find(&flows).Error; err != nil {
		return nil, fmt.Errorf("failed to list cash flows: %w", err)
	}
	return flows, nil
}

func (r *cashFlowRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.CashFlow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cash flow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "cash flow", ID: id}
	}
	return nil
}
