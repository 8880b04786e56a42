package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCashFlowValidate(t *testing.T) {
	tests := []struct {
		name          string
		flow          *CashFlow
		expectError   bool
		expectedError string
	}{
		{
			name: "Valid CNY inflow",
			flow: &CashFlow{
				FlowDate:       time.Now(),
				FlowType:       FlowTypeInflow,
				OriginalAmount: decimal.NewFromInt(5000),
				Currency:       "CNY",
				CNYAmount:      decimal.NewFromInt(5000),
			},
		},
		{
			name: "Valid USD outflow",
			flow: &CashFlow{
				FlowDate:       time.Now(),
				FlowType:       FlowTypeOutflow,
				OriginalAmount: decimal.NewFromInt(100),
				Currency:       "USD",
				CNYAmount:      decimal.NewFromInt(710),
			},
		},
		{
			name: "Missing date",
			flow: &CashFlow{
				FlowType:       FlowTypeInflow,
				OriginalAmount: decimal.NewFromInt(1),
				Currency:       "CNY",
			},
			expectError:   true,
			expectedError: "flow_date: is required",
		},
		{
			name: "Unknown flow type",
			flow: &CashFlow{
				FlowDate:       time.Now(),
				FlowType:       "transfer",
				OriginalAmount: decimal.NewFromInt(1),
				Currency:       "CNY",
			},
			expectError:   true,
			expectedError: "flow_type: must be 'inflow' or 'outflow'",
		},
		{
			name: "Zero amount",
			flow: &CashFlow{
				FlowDate: time.Now(),
				FlowType: FlowTypeInflow,
				Currency: "CNY",
			},
			expectError:   true,
			expectedError: "original_amount: must be positive",
		},
		{
			name: "Unsupported currency",
			flow: &CashFlow{
				FlowDate:       time.Now(),
				FlowType:       FlowTypeInflow,
				OriginalAmount: decimal.NewFromInt(1),
				Currency:       "VND",
			},
			expectError:   true,
			expectedError: "currency: must be one of CNY, USD, HKD, JPY, EUR, GBP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.flow.Validate()
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.expectedError)
				}
				if err.Error() != tt.expectedError {
					t.Errorf("expected error %q, got %q", tt.expectedError, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCashFlowSigned(t *testing.T) {
	in := &CashFlow{FlowType: FlowTypeInflow, CNYAmount: decimal.NewFromInt(10)}
	out := &CashFlow{FlowType: FlowTypeOutflow, CNYAmount: decimal.NewFromInt(10)}
	if !in.Signed().Equal(decimal.NewFromInt(10)) {
		t.Errorf("inflow should be positive, got %s", in.Signed())
	}
	if !out.Signed().Equal(decimal.NewFromInt(-10)) {
		t.Errorf("outflow should be negative, got %s", out.Signed())
	}
}

func TestCashFlowBeforeCreateAssignsID(t *testing.T) {
	c := &CashFlow{}
	if err := c.BeforeCreate(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.ID) != 36 {
		t.Errorf("expected uuid, got %q", c.ID)
	}

	keep := &CashFlow{ID: "fixed"}
	_ = keep.BeforeCreate(nil)
	if keep.ID != "fixed" {
		t.Errorf("existing ID overwritten: %q", keep.ID)
	}
}
