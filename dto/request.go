package dto

import (
	"errors"
	"mime/multipart"
	"strings"
)

// EvaluationRequest represents the applicant evaluation form: manually
// entered business details plus an uploaded bank/mobile-money statement.
type EvaluationRequest struct {
	ApplicantName       string                `form:"applicantName" binding:"required"`
	BusinessType        string                `form:"businessType"`
	BusinessAge         float64               `form:"businessAge"`
	SelfDeclaredIncome  float64               `form:"monthlyIncome"`
	RentAmount          float64               `form:"rentAmount"`
	BankStatement       *multipart.FileHeader `form:"bankStatement" binding:"required"`
}

// Validate performs basic validation on the request
func (r *EvaluationRequest) Validate() error {
	if r.BankStatement == nil {
		return ErrNoStatement
	}
	if !strings.HasSuffix(strings.ToLower(r.BankStatement.Filename), ".pdf") {
		return errors.New("invalid file format, only PDF allowed")
	}
	if r.BusinessAge < 0 {
		return errors.New("business age cannot be negative")
	}
	if r.SelfDeclaredIncome < 0 {
		return errors.New("monthly income cannot be negative")
	}
	return nil
}
