package utils

import (
	"math"
	"regexp"
	"strings"

	"github.com/MunzurulAzam/microfinancce-ai/dto"
)

// Row is one extracted table line: an ordered sequence of cell strings.
// Missing cells are empty strings, never absent.
type Row []string

// FinancialSummary holds the totals matched from an explicit summary banner
// in the statement text. Each value carries a found flag because an absent
// label is "not found", not zero.
type FinancialSummary struct {
	Credit     float64
	Debit      float64
	Balance    float64
	HasCredit  bool
	HasDebit   bool
	HasBalance bool
}

// TableTotals accumulates credit/debit sums and observed balances from
// date-anchored transaction rows.
type TableTotals struct {
	Credit   float64
	Debit    float64
	Balances []float64
}

// Optional 1-3 letter currency code or symbol between a label and its value,
// e.g. "Total Credit: UGX 5,000,000" or "Cash Out ৳1,200".
const currencyPattern = `(?:[A-Za-z]{1,3}|৳|\$|Rs\.?|U\.?S\.?D\.?)?\s*`

// Numeric literal with optional thousands separators and decimal part.
const amountPattern = `([\d,]+\.?\d*)`

// Generic date token: 1-4 digits, separator, 1-2 digits, separator,
// 2-4 digits. Deliberately loose so it anchors DD/MM/YYYY, YYYY-MM-DD and
// everything in between.
var datePattern = regexp.MustCompile(`\d{1,4}[-/.]\d{1,2}[-/.]\d{2,4}`)

// buildSummaryRegex compiles a case-insensitive pattern matching any of the
// label synonyms followed by an optional colon, currency token and number.
func buildSummaryRegex(labels []string) *regexp.Regexp {
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = strings.ReplaceAll(regexp.QuoteMeta(label), ` `, `\s+`)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(parts, "|") + `)\s*[:\s]*` + currencyPattern + amountPattern)
}

func findByRegex(re *regexp.Regexp, text string) (float64, bool) {
	if m := re.FindStringSubmatch(text); len(m) > 1 {
		return NormalizeAmount(m[1]), true
	}
	return 0, false
}

// ParseStatementSummary pattern-matches explicit totals ("Total Credit",
// "Closing Balance", ...) in the full page text. Only the first match per
// family, in document order, is used.
func ParseStatementSummary(text string, kw StatementKeywords) FinancialSummary {
	var s FinancialSummary
	s.Credit, s.HasCredit = findByRegex(buildSummaryRegex(kw.CreditLabels), text)
	s.Debit, s.HasDebit = findByRegex(buildSummaryRegex(kw.DebitLabels), text)
	s.Balance, s.HasBalance = findByRegex(buildSummaryRegex(kw.BalanceLabels), text)
	return s
}

// Column roles, in strict header-matching priority order.
type columnRole int

const (
	roleBalance columnRole = iota
	roleAmount
	roleCredit
	roleDebit
	roleType
	roleCount
)

// roleSlots maps each role to the column index holding it, -1 while
// unassigned. Each slot is written at most once: earlier rows, and earlier
// columns within a row, win.
type roleSlots [roleCount]int

const headerScanRows = 20

// inferColumnRoles scans at most the first headerScanRows rows and fills the
// role slots in a single pass. A status/description column is only accepted
// as the type column when its header also names a credit/debit token,
// because plain description columns are ambiguous.
func inferColumnRoles(rows []Row, kw StatementKeywords) roleSlots {
	slots := roleSlots{-1, -1, -1, -1, -1}

	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	columnSets := [roleCount][]string{
		roleBalance: kw.BalanceColumns,
		roleAmount:  kw.AmountColumns,
		roleCredit:  kw.CreditColumns,
		roleDebit:   kw.DebitColumns,
		roleType:    kw.TypeColumns,
	}

	for _, row := range rows[:limit] {
		for col, cell := range row {
			lower := strings.ToLower(cell)
			for role := roleBalance; role < roleCount; role++ {
				if slots[role] != -1 || !containsAny(lower, columnSets[role]) {
					continue
				}
				if role == roleType && !containsAny(lower, kw.TypeMarkers) {
					continue
				}
				slots[role] = col
				break
			}
		}
	}
	return slots
}

// numericCandidate is a (column, value) pair for a cell that parsed to a
// strictly positive value with a plausible digit count.
type numericCandidate struct {
	col   int
	value float64
}

// maxAmountDigits rejects account/phone-number-like tokens.
const maxAmountDigits = 11

func numericCandidates(row Row) []numericCandidate {
	var out []numericCandidate
	for i, cell := range row {
		v := NormalizeAmount(cell)
		if v > 0 && DigitCount(cell) <= maxAmountDigits {
			out = append(out, numericCandidate{col: i, value: v})
		}
	}
	return out
}

// AnalyzeTransactionTable runs the two-phase table heuristics: column role
// inference over the header region, then date-anchored row classification.
// Rows without a date-like token are headers, totals or footnotes and are
// skipped entirely.
func AnalyzeTransactionTable(rows []Row, kw StatementKeywords) TableTotals {
	slots := inferColumnRoles(rows, kw)

	var totals TableTotals
	for _, row := range rows {
		if !datePattern.MatchString(strings.Join(row, " ")) {
			continue
		}

		candidates := numericCandidates(row)
		if len(candidates) == 0 {
			continue
		}

		typeIdx, amountIdx := slots[roleType], slots[roleAmount]
		if typeIdx != -1 && amountIdx != -1 && typeIdx < len(row) && amountIdx < len(row) {
			t := strings.ToLower(row[typeIdx])
			v := NormalizeAmount(row[amountIdx])
			// Broad credit-ish screen first; a row passing the screen but
			// matching no specific token contributes to neither total.
			if containsAny(t, kw.CreditGate) {
				switch {
				case containsAny(t, kw.CreditTokens):
					totals.Credit += v
				case containsAny(t, kw.DebitTokens):
					totals.Debit += v
				}
			}
		} else {
			if idx := slots[roleCredit]; idx != -1 && idx < len(row) {
				if v := NormalizeAmount(row[idx]); v > 0 {
					totals.Credit += v
				}
			}
			if idx := slots[roleDebit]; idx != -1 && idx < len(row) {
				if v := NormalizeAmount(row[idx]); v > 0 {
					totals.Debit += v
				}
			}
		}

		if idx := slots[roleBalance]; idx != -1 && idx < len(row) {
			if v := NormalizeAmount(row[idx]); v > 0 {
				totals.Balances = append(totals.Balances, v)
			}
		} else {
			// Best-effort balance proxy: the last numeric candidate in the
			// row, statements conventionally print the running balance last.
			totals.Balances = append(totals.Balances, candidates[len(candidates)-1].value)
		}
	}
	return totals
}

// CombineMetrics merges summary and table results by precedence: summary
// credit/debit are authoritative when found, the table is the fallback.
// Average balance prefers observed table balances, then the summary closing
// balance, then zero.
func CombineMetrics(summary FinancialSummary, table TableTotals) dto.FinancialMetrics {
	credit := table.Credit
	if summary.HasCredit {
		credit = summary.Credit
	}

	debit := table.Debit
	if summary.HasDebit {
		debit = summary.Debit
	}

	avgBalance := 0.0
	if len(table.Balances) > 0 {
		sum := 0.0
		for _, b := range table.Balances {
			sum += b
		}
		avgBalance = sum / float64(len(table.Balances))
	} else if summary.HasBalance {
		avgBalance = summary.Balance
	}

	return dto.FinancialMetrics{
		TotalCredit:    round2(credit),
		TotalDebit:     round2(debit),
		AverageBalance: round2(avgBalance),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
