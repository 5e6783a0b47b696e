package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatementSummary(t *testing.T) {
	text := "Statement for March 2024\n" +
		"Total Credit: UGX 5,000,000\n" +
		"Total Debit: UGX 3,200,000\n"

	summary := ParseStatementSummary(text, DefaultStatementKeywords())

	assert.True(t, summary.HasCredit)
	assert.Equal(t, 5000000.0, summary.Credit)
	assert.True(t, summary.HasDebit)
	assert.Equal(t, 3200000.0, summary.Debit)
	assert.False(t, summary.HasBalance)
}

func TestParseStatementSummarySynonymsAndSymbols(t *testing.T) {
	kw := DefaultStatementKeywords()

	summary := ParseStatementSummary("Cash In ৳120,500.25\nCash Out ৳98,000\nClosing Balance 45,300.10", kw)
	assert.True(t, summary.HasCredit)
	assert.Equal(t, 120500.25, summary.Credit)
	assert.True(t, summary.HasDebit)
	assert.Equal(t, 98000.0, summary.Debit)
	assert.True(t, summary.HasBalance)
	assert.Equal(t, 45300.10, summary.Balance)

	// Case-insensitive, colon optional, first match wins.
	summary = ParseStatementSummary("total deposit 9,000\nTotal Credit: 4,000", kw)
	assert.Equal(t, 9000.0, summary.Credit)
}

func TestParseStatementSummaryNotFoundIsExplicit(t *testing.T) {
	summary := ParseStatementSummary("Dear customer, thank you for banking with us.", DefaultStatementKeywords())
	assert.False(t, summary.HasCredit)
	assert.False(t, summary.HasDebit)
	assert.False(t, summary.HasBalance)
}

func TestAnalyzeTransactionTableCreditDebitColumns(t *testing.T) {
	rows := []Row{
		{"Date", "Description", "Credit", "Debit", "Balance"},
		{"01/01/2024", "Sales deposit", "5,000", "", "120,000"},
		{"02/01/2024", "Supplier payment", "", "3,000", "117,000"},
		{"03/01/2024", "Sales deposit", "2,500", "", "119,500"},
		{"", "Totals", "7,500", "3,000", ""}, // no date token, skipped
	}

	totals := AnalyzeTransactionTable(rows, DefaultStatementKeywords())

	assert.Equal(t, 7500.0, totals.Credit)
	assert.Equal(t, 3000.0, totals.Debit)
	assert.Equal(t, []float64{120000, 117000, 119500}, totals.Balances)
}

func TestAnalyzeTransactionTableTypeAndAmountColumns(t *testing.T) {
	rows := []Row{
		{"Date", "Withdrawal", "Deposit", "Transaction Status - Received/Payment", "Transaction Amount"},
		{"02/03/2024", "", "", "Received - Cash In", "7,500"},
		{"03/03/2024", "", "", "Payment Successful", "2,000"},
		{"04/03/2024", "", "", "Airtime Credit", "1,000"},
	}

	totals := AnalyzeTransactionTable(rows, DefaultStatementKeywords())

	// "Received - Cash In" classifies as credit, "Payment Successful" as
	// debit; "Airtime Credit" passes the broad screen but matches no
	// specific token and contributes to neither total.
	assert.Equal(t, 7500.0, totals.Credit)
	assert.Equal(t, 2000.0, totals.Debit)
	// No balance column: the last numeric candidate of each row stands in.
	assert.Equal(t, []float64{7500, 2000, 1000}, totals.Balances)
}

func TestAnalyzeTransactionTableDateAnchoring(t *testing.T) {
	rows := []Row{
		{"Description", "Credit", "Balance"},
		{"Opening balance brought forward", "9,999", "50,000"},
		{"Monthly service fee notice", "1,234", "49,000"},
	}

	totals := AnalyzeTransactionTable(rows, DefaultStatementKeywords())

	assert.Equal(t, 0.0, totals.Credit)
	assert.Equal(t, 0.0, totals.Debit)
	assert.Empty(t, totals.Balances)
}

func TestAnalyzeTransactionTableDigitLengthGuard(t *testing.T) {
	// The 12-digit account reference parses to a huge positive value but
	// must never be picked as a balance proxy.
	rows := []Row{
		{"Date", "Description", "Credit", "Debit"},
		{"05/04/2024", "Deposit", "5,000", "", "256700123456"},
	}

	totals := AnalyzeTransactionTable(rows, DefaultStatementKeywords())

	assert.Equal(t, 5000.0, totals.Credit)
	assert.Equal(t, []float64{5000}, totals.Balances)
}

func TestInferColumnRolesFirstAssignmentWins(t *testing.T) {
	kw := DefaultStatementKeywords()
	rows := []Row{
		{"Balance", "Credit", "Credit Amount", "Available Balance"},
	}

	slots := inferColumnRoles(rows, kw)

	assert.Equal(t, 0, slots[roleBalance])
	assert.Equal(t, 1, slots[roleCredit])
	// Column 2 matches amount before the already-taken credit role.
	assert.Equal(t, 2, slots[roleAmount])
	assert.Equal(t, -1, slots[roleType])
}

func TestInferColumnRolesTypeNeedsMarker(t *testing.T) {
	kw := DefaultStatementKeywords()

	slots := inferColumnRoles([]Row{{"Date", "Description", "Value"}}, kw)
	assert.Equal(t, -1, slots[roleType])

	// The markers overlap the credit/debit keyword sets, so a type column
	// is only claimable once those roles are already taken.
	slots = inferColumnRoles([]Row{{"Credit", "Debit", "Status - Credit/Debit"}}, kw)
	assert.Equal(t, 2, slots[roleType])
}

func TestCombineMetricsSummaryPrecedence(t *testing.T) {
	summary := FinancialSummary{
		Credit: 5000000, HasCredit: true,
		Debit: 3200000, HasDebit: true,
	}
	table := TableTotals{
		Credit:   1,
		Debit:    2,
		Balances: []float64{100000, 150000, 200000},
	}

	m := CombineMetrics(summary, table)

	assert.Equal(t, 5000000.00, m.TotalCredit)
	assert.Equal(t, 3200000.00, m.TotalDebit)
	assert.Equal(t, 150000.00, m.AverageBalance)
}

func TestCombineMetricsTableFallback(t *testing.T) {
	table := TableTotals{
		Credit:   7500,
		Debit:    3000,
		Balances: []float64{120000, 117000, 119500},
	}

	m := CombineMetrics(FinancialSummary{}, table)

	assert.Equal(t, 7500.00, m.TotalCredit)
	assert.Equal(t, 3000.00, m.TotalDebit)
	assert.Equal(t, 118833.33, m.AverageBalance)
}

func TestCombineMetricsBalancePriority(t *testing.T) {
	summary := FinancialSummary{Balance: 42000, HasBalance: true}

	// No observed balances: summary closing balance is used.
	m := CombineMetrics(summary, TableTotals{})
	assert.Equal(t, 42000.00, m.AverageBalance)

	// Nothing at all: zero, never an error.
	m = CombineMetrics(FinancialSummary{}, TableTotals{})
	assert.Equal(t, 0.00, m.AverageBalance)
	assert.Equal(t, 0.00, m.TotalCredit)
	assert.Equal(t, 0.00, m.TotalDebit)
}
