package dto

import "errors"

// Custom errors
var (
	ErrNoStatement  = errors.New("no bank statement uploaded")
	ErrNoDataLoaded = errors.New("no loan-book data loaded, upload a CSV first")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// EvaluationResponse is the final response for an applicant evaluation
type EvaluationResponse struct {
	ApplicantName string           `json:"applicantName"`
	BusinessType  string           `json:"businessType"`
	Metrics       FinancialMetrics `json:"metrics"`
	Validation    IncomeValidation `json:"validation"`
	Prediction    LoanPrediction   `json:"loanPrediction"`
	ProcessedAt   string           `json:"processed_at"`
}

// StatementMetricsResponse exposes the raw extraction triple
type StatementMetricsResponse struct {
	Filename    string           `json:"filename"`
	Metrics     FinancialMetrics `json:"metrics"`
	ProcessedAt string           `json:"processed_at"`
}

// UploadResponse is returned after loading a loan-book CSV
type UploadResponse struct {
	Message string         `json:"message"`
	Stats   PortfolioStats `json:"stats"`
}
