package service

import (
	"math"

	"github.com/MunzurulAzam/microfinancce-ai/dto"
)

// EligibilityService applies the loan eligibility rules to extracted
// statement metrics and self-declared applicant data.
type EligibilityService struct{}

func NewEligibilityService() *EligibilityService {
	return &EligibilityService{}
}

// incomeMatchMargin is the tolerance for declared income vs statement
// credits.
const incomeMatchMargin = 0.2

// ValidateIncome cross-checks the self-declared monthly income against the
// statement's total credit. Declared income within ±20% of total credit
// passes, and under-declaring is also accepted.
func (s *EligibilityService) ValidateIncome(declaredIncome float64, metrics dto.FinancialMetrics) dto.IncomeValidation {
	match := false
	if metrics.TotalCredit > 0 {
		lower := (1 - incomeMatchMargin) * metrics.TotalCredit
		upper := (1 + incomeMatchMargin) * metrics.TotalCredit
		if declaredIncome >= lower && declaredIncome <= upper {
			match = true
		} else if declaredIncome <= metrics.TotalCredit {
			match = true
		}
	}

	status := "Needs Review"
	message := "Income vs Credit validation: Threshold mismatch"
	if match {
		status = "Verified"
		message = "Income vs Credit validation: Matched"
	}

	return dto.IncomeValidation{
		IncomeMatch: match,
		Status:      status,
		Message:     message,
	}
}

// PredictLoan decides eligibility and suggests a conservative loan amount:
// the lower of declared income and average balance, multiplied by a factor
// that grows with business stability.
func (s *EligibilityService) PredictLoan(validation dto.IncomeValidation, declaredIncome, businessAge float64, metrics dto.FinancialMetrics) dto.LoanPrediction {
	if validation.Status != "Verified" {
		return dto.LoanPrediction{
			Reason: "Income verification failed or needs manual review.",
		}
	}

	if businessAge < 1 {
		return dto.LoanPrediction{
			Reason: "Business age is less than 1 year.",
		}
	}
	if metrics.AverageBalance <= 0 {
		return dto.LoanPrediction{
			Reason: "Average monthly balance is too low.",
		}
	}

	baseResource := math.Min(declaredIncome, metrics.AverageBalance)

	var multiplier float64
	switch {
	case businessAge < 2:
		multiplier = 2
	case businessAge < 5:
		multiplier = 3
	default:
		multiplier = 5
	}

	return dto.LoanPrediction{
		IsEligible:      true,
		SuggestedAmount: math.Round(baseResource*multiplier*100) / 100,
		Reason:          "Applicant meets financial and stability criteria.",
	}
}

// Evaluate runs validation and prediction in one step.
func (s *EligibilityService) Evaluate(req *dto.EvaluationRequest, metrics dto.FinancialMetrics) (dto.IncomeValidation, dto.LoanPrediction) {
	validation := s.ValidateIncome(req.SelfDeclaredIncome, metrics)
	prediction := s.PredictLoan(validation, req.SelfDeclaredIncome, req.BusinessAge, metrics)
	return validation, prediction
}
