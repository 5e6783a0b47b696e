package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MunzurulAzam/microfinancce-ai/dto"
)

func TestValidateIncome(t *testing.T) {
	service := NewEligibilityService()
	metrics := dto.FinancialMetrics{TotalCredit: 1000000}

	// Within the ±20% margin.
	v := service.ValidateIncome(900000, metrics)
	assert.True(t, v.IncomeMatch)
	assert.Equal(t, "Verified", v.Status)

	// Under-declaring is accepted.
	v = service.ValidateIncome(300000, metrics)
	assert.True(t, v.IncomeMatch)

	// Declaring far more than the statement shows is not.
	v = service.ValidateIncome(2000000, metrics)
	assert.False(t, v.IncomeMatch)
	assert.Equal(t, "Needs Review", v.Status)

	// A zero-credit statement can never verify income.
	v = service.ValidateIncome(500000, dto.FinancialMetrics{})
	assert.False(t, v.IncomeMatch)
}

func TestPredictLoan(t *testing.T) {
	service := NewEligibilityService()
	verified := dto.IncomeValidation{IncomeMatch: true, Status: "Verified"}

	// Young businesses are rejected.
	p := service.PredictLoan(verified, 500000, 0.5, dto.FinancialMetrics{AverageBalance: 400000})
	assert.False(t, p.IsEligible)
	assert.Equal(t, "Business age is less than 1 year.", p.Reason)

	// Empty accounts are rejected.
	p = service.PredictLoan(verified, 500000, 3, dto.FinancialMetrics{})
	assert.False(t, p.IsEligible)
	assert.Equal(t, "Average monthly balance is too low.", p.Reason)

	// Suggested amount is min(income, balance) scaled by stability.
	p = service.PredictLoan(verified, 500000, 1.5, dto.FinancialMetrics{AverageBalance: 400000})
	assert.True(t, p.IsEligible)
	assert.Equal(t, 800000.00, p.SuggestedAmount)

	p = service.PredictLoan(verified, 500000, 3, dto.FinancialMetrics{AverageBalance: 400000})
	assert.Equal(t, 1200000.00, p.SuggestedAmount)

	p = service.PredictLoan(verified, 300000, 7, dto.FinancialMetrics{AverageBalance: 400000})
	assert.Equal(t, 1500000.00, p.SuggestedAmount)
}

func TestPredictLoanNeedsReview(t *testing.T) {
	service := NewEligibilityService()

	p := service.PredictLoan(dto.IncomeValidation{Status: "Needs Review"}, 500000, 3,
		dto.FinancialMetrics{AverageBalance: 400000})

	assert.False(t, p.IsEligible)
	assert.Equal(t, 0.00, p.SuggestedAmount)
	assert.Equal(t, "Income verification failed or needs manual review.", p.Reason)
}
