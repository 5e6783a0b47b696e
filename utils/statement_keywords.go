package utils

import "strings"

// StatementKeywords holds every token table the statement engine matches
// against. Keeping them as data rather than inline literals lets new
// statement formats or languages be supported without touching the engine.
type StatementKeywords struct {
	// Summary-banner label synonyms, one list per metric family.
	CreditLabels  []string
	DebitLabels   []string
	BalanceLabels []string

	// Column-header keyword sets for role inference, matched as lower-case
	// substrings of a header cell.
	BalanceColumns []string
	AmountColumns  []string
	CreditColumns  []string
	DebitColumns   []string
	TypeColumns    []string

	// TypeMarkers disambiguate a status/description column: the header must
	// also contain one of these before it is treated as a type column.
	TypeMarkers []string

	// Row-level type-cell tokens. CreditGate is the broad screen a type cell
	// must pass before the specific credit/debit tokens are consulted.
	CreditGate   []string
	CreditTokens []string
	DebitTokens  []string
}

// DefaultStatementKeywords covers the bank and mobile-money statement
// formats seen in the field so far, including Bengali column headers.
func DefaultStatementKeywords() StatementKeywords {
	return StatementKeywords{
		CreditLabels:  []string{"Total Credit", "Total Deposit", "Cash In", "Total In"},
		DebitLabels:   []string{"Total Debit", "Total Withdrawal", "Cash Out", "Total Out", "Total Fee"},
		BalanceLabels: []string{"Closing Balance", "Available Balance", "Balance as of"},

		BalanceColumns: []string{"balance", "available", "স্থিতি"},
		AmountColumns:  []string{"amount", "transaction amount", "পরিমাণ"},
		CreditColumns:  []string{"credit", "deposit", "received", "জমা"},
		DebitColumns:   []string{"debit", "withdrawal", "out", "payment", "খরচ"},
		TypeColumns:    []string{"status", "type", "description", "particulars"},
		TypeMarkers:    []string{"credit", "debit", "received", "payment"},

		CreditGate:   []string{"credit", "received", "in", "deposit", "successful"},
		CreditTokens: []string{"received", "cash in", "deposit"},
		DebitTokens:  []string{"payment", "sent", "cash out", "withdraw"},
	}
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
