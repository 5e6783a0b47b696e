package dto

import "time"

// FinancialMetrics is the triple produced by the statement metrics engine.
// All three values are non-negative and rounded to 2 decimal places; a
// document that cannot be read at all yields the zero triple.
type FinancialMetrics struct {
	TotalCredit    float64 `json:"totalCredit"`
	TotalDebit     float64 `json:"totalDebit"`
	AverageBalance float64 `json:"averageMonthlyBalance"`
}

// IncomeValidation captures the declared-income vs statement-credit check.
type IncomeValidation struct {
	IncomeMatch bool   `json:"incomeMatch"`
	Status      string `json:"status"` // "Verified" or "Needs Review"
	Message     string `json:"message"`
}

// LoanPrediction is the eligibility outcome for an applicant.
type LoanPrediction struct {
	IsEligible      bool    `json:"isEligible"`
	SuggestedAmount float64 `json:"suggestedAmount"`
	Reason          string  `json:"reason"`
}

// LoanRecord is one row of the uploaded loan-book CSV after header
// normalization and cleaning.
type LoanRecord struct {
	ClientName       string     `json:"client_name"`
	GroupName        string     `json:"group_name"`
	LoanOfficer      string     `json:"loan_officer"`
	LoanAmount       float64    `json:"loan_amount"`
	TotalPayment     float64    `json:"total_payment"`
	OverdueCount     int        `json:"overdue_count"`
	Cycle            int        `json:"cycle"`
	LoanPurpose      string     `json:"loan_purpose"`
	DisbursementDate *time.Time `json:"disbursement_date,omitempty"`

	// Derived fields
	RepaymentRate    float64 `json:"repayment_rate"`
	IsOverdue        bool    `json:"is_overdue"`
	PerformanceScore float64 `json:"performance_score"`
}

// ClientSummary is the list view of a client (latest loan record).
type ClientSummary struct {
	Name             string  `json:"name"`
	Group            string  `json:"group"`
	LoanOfficer      string  `json:"loan_officer"`
	PerformanceScore float64 `json:"performance_score"`
	LoanAmount       float64 `json:"loan_amount"`
	OverdueCount     int     `json:"overdue_count"`
}

// GroupSummary aggregates all loan records sharing a group name.
type GroupSummary struct {
	Name            string  `json:"name"`
	AvgScore        float64 `json:"avg_score"`
	MemberCount     int     `json:"member_count"`
	TotalOverdue    int     `json:"total_overdue"`
	TotalLoanAmount float64 `json:"total_loan_amount"`
}

// PortfolioStats is the basic statistics block for a loaded loan book.
type PortfolioStats struct {
	TotalClients       int     `json:"total_clients"`
	TotalGroups        int     `json:"total_groups"`
	TotalLoanOfficers  int     `json:"total_loan_officers"`
	TotalLoans         int     `json:"total_loans"`
	TotalLoanPortfolio float64 `json:"total_loan_portfolio"`
	AverageLoanAmount  float64 `json:"average_loan_amount"`
	AverageClientScore float64 `json:"average_client_score"`
	ClientsWithOverdue int     `json:"clients_with_overdue"`
}
