package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MunzurulAzam/microfinancce-ai/dto"
)

// PortfolioService loads a loan-book CSV into memory and serves client and
// group level aggregates over it.
type PortfolioService struct {
	mu      sync.RWMutex
	records []dto.LoanRecord
}

func NewPortfolioService() *PortfolioService {
	return &PortfolioService{}
}

// columnAliases maps canonical column names to the header variations seen
// in loan-book exports.
var columnAliases = map[string][]string{
	"clientName":       {"client name", "client_name", "customer name", "client", "customer", "clientname"},
	"groupName":        {"group name", "group_name", "group", "groupname"},
	"loName":           {"lo name", "lo_name", "loan officer", "loname"},
	"loanAmount":       {"loan amount", "loan_amount", "loanamount", "principal", "amount"},
	"totalPayment":     {"total payment", "total_payment", "totalpayment", "paid amount", "amount paid"},
	"overdueCount":     {"overdue count", "overdue_count", "overdue", "overduecollectioncount", "unpaid count"},
	"cycle":            {"cycle", "loan cycle", "loan_cycle"},
	"loanPurpose":      {"loan purpose", "loan_purpose", "business", "business type", "sector"},
	"disbursementDate": {"disbursement date", "disbursement_date", "date", "loan date", "disbursementdate"},
}

func canonicalColumn(header string) string {
	clean := strings.ToLower(strings.TrimSpace(header))
	for canonical, aliases := range columnAliases {
		if clean == strings.ToLower(canonical) {
			return canonical
		}
		for _, alias := range aliases {
			if clean == alias {
				return canonical
			}
		}
	}
	return header
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006", "2006/01/02", time.RFC3339}

func parseRecordDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func parseFloatField(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// LoadCSV reads and preprocesses a loan-book CSV, replacing any previously
// loaded data.
func (s *PortfolioService) LoadCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(raw) < 2 {
		return "", fmt.Errorf("csv has no data rows")
	}

	columns := make(map[string]int)
	for i, header := range raw[0] {
		columns[canonicalColumn(header)] = i
	}

	field := func(row []string, name, def string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
			return def
		}
		return strings.TrimSpace(row[idx])
	}

	records := make([]dto.LoanRecord, 0, len(raw)-1)
	for _, row := range raw[1:] {
		rec := dto.LoanRecord{
			ClientName:   field(row, "clientName", "Unknown Client"),
			GroupName:    field(row, "groupName", "No Group"),
			LoanOfficer:  field(row, "loName", "Unknown LO"),
			LoanAmount:   parseFloatField(field(row, "loanAmount", "0")),
			TotalPayment: parseFloatField(field(row, "totalPayment", "0")),
			OverdueCount: int(parseFloatField(field(row, "overdueCount", "0"))),
			Cycle:        int(parseFloatField(field(row, "cycle", "1"))),
			LoanPurpose:  field(row, "loanPurpose", "General"),
		}
		rec.DisbursementDate = parseRecordDate(field(row, "disbursementDate", ""))

		if rec.LoanAmount > 0 {
			rec.RepaymentRate = rec.TotalPayment / rec.LoanAmount * 100
		}
		rec.IsOverdue = rec.OverdueCount > 0
		rec.PerformanceScore = clientScore(rec)

		records = append(records, rec)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	return fmt.Sprintf("Data loaded: %d rows", len(records)), nil
}

// clientScore rates a record 0-100: overdue collections cost points,
// repayment and repeat cycles earn them.
func clientScore(rec dto.LoanRecord) float64 {
	score := 100.0
	score -= float64(rec.OverdueCount) * 10

	if rec.RepaymentRate >= 1 {
		score += 20
	} else if rec.RepaymentRate >= 0.8 {
		score += 10
	}

	score += float64(rec.Cycle) * 5

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Stats returns the basic statistics block for the loaded loan book.
func (s *PortfolioService) Stats() (dto.PortfolioStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return dto.PortfolioStats{}, dto.ErrNoDataLoaded
	}

	clients := make(map[string]bool)
	groups := make(map[string]bool)
	officers := make(map[string]bool)

	var totalLoan, totalScore float64
	overdue := 0
	for _, rec := range s.records {
		clients[rec.ClientName] = true
		groups[rec.GroupName] = true
		officers[rec.LoanOfficer] = true
		totalLoan += rec.LoanAmount
		totalScore += rec.PerformanceScore
		if rec.IsOverdue {
			overdue++
		}
	}

	n := float64(len(s.records))
	return dto.PortfolioStats{
		TotalClients:       len(clients),
		TotalGroups:        len(groups),
		TotalLoanOfficers:  len(officers),
		TotalLoans:         len(s.records),
		TotalLoanPortfolio: totalLoan,
		AverageLoanAmount:  totalLoan / n,
		AverageClientScore: totalScore / n,
		ClientsWithOverdue: overdue,
	}, nil
}

// latestPerClient keeps the most recent record for each client name.
func (s *PortfolioService) latestPerClient() []dto.LoanRecord {
	latest := make(map[string]dto.LoanRecord)
	for _, rec := range s.records {
		prev, ok := latest[rec.ClientName]
		if !ok || newerThan(rec, prev) {
			latest[rec.ClientName] = rec
		}
	}

	out := make([]dto.LoanRecord, 0, len(latest))
	for _, rec := range latest {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientName < out[j].ClientName })
	return out
}

func newerThan(a, b dto.LoanRecord) bool {
	if a.DisbursementDate == nil {
		return false
	}
	if b.DisbursementDate == nil {
		return true
	}
	return a.DisbursementDate.After(*b.DisbursementDate)
}

// Clients lists clients with search and pagination, one entry per client
// using the latest loan record.
func (s *PortfolioService) Clients(limit, offset int, search string) ([]dto.ClientSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, dto.ErrNoDataLoaded
	}

	var out []dto.ClientSummary
	search = strings.ToLower(search)
	for _, rec := range s.latestPerClient() {
		if search != "" && !strings.Contains(strings.ToLower(rec.ClientName), search) {
			continue
		}
		out = append(out, dto.ClientSummary{
			Name:             rec.ClientName,
			Group:            rec.GroupName,
			LoanOfficer:      rec.LoanOfficer,
			PerformanceScore: rec.PerformanceScore,
			LoanAmount:       rec.LoanAmount,
			OverdueCount:     rec.OverdueCount,
		})
	}

	return paginate(out, limit, offset), nil
}

// Groups lists group aggregates with search and pagination.
func (s *PortfolioService) Groups(limit, offset int, search string) ([]dto.GroupSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, dto.ErrNoDataLoaded
	}

	byGroup := make(map[string][]dto.LoanRecord)
	for _, rec := range s.records {
		byGroup[rec.GroupName] = append(byGroup[rec.GroupName], rec)
	}

	var out []dto.GroupSummary
	search = strings.ToLower(search)
	for name, members := range byGroup {
		if search != "" && !strings.Contains(strings.ToLower(name), search) {
			continue
		}
		out = append(out, summarizeGroup(name, members))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return paginate(out, limit, offset), nil
}

func summarizeGroup(name string, members []dto.LoanRecord) dto.GroupSummary {
	var totalScore, totalLoan float64
	totalOverdue := 0
	for _, rec := range members {
		totalScore += rec.PerformanceScore
		totalLoan += rec.LoanAmount
		totalOverdue += rec.OverdueCount
	}
	return dto.GroupSummary{
		Name:            name,
		AvgScore:        totalScore / float64(len(members)),
		MemberCount:     len(members),
		TotalOverdue:    totalOverdue,
		TotalLoanAmount: totalLoan,
	}
}

// FindClient returns the most recent record whose client name contains the
// given name, case-insensitively.
func (s *PortfolioService) FindClient(name string) (*dto.LoanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, dto.ErrNoDataLoaded
	}

	name = strings.ToLower(name)
	var found *dto.LoanRecord
	for _, rec := range s.records {
		if !strings.Contains(strings.ToLower(rec.ClientName), name) {
			continue
		}
		rec := rec
		if found == nil || newerThan(rec, *found) {
			found = &rec
		}
	}

	if found == nil {
		return nil, fmt.Errorf("client %q not found", name)
	}
	return found, nil
}

// FindGroup returns the aggregate for the first group whose name contains
// the given name.
func (s *PortfolioService) FindGroup(name string) (*dto.GroupSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, dto.ErrNoDataLoaded
	}

	lower := strings.ToLower(name)
	byGroup := make(map[string][]dto.LoanRecord)
	for _, rec := range s.records {
		if strings.Contains(strings.ToLower(rec.GroupName), lower) {
			byGroup[rec.GroupName] = append(byGroup[rec.GroupName], rec)
		}
	}

	if len(byGroup) == 0 {
		return nil, fmt.Errorf("group %q not found", name)
	}

	// Several groups can match a partial name; the alphabetically first
	// one wins.
	names := make([]string, 0, len(byGroup))
	for groupName := range byGroup {
		names = append(names, groupName)
	}
	sort.Strings(names)

	matched := names[0]
	summary := summarizeGroup(matched, byGroup[matched])
	return &summary, nil
}

// GroupMembers returns the top performing members of a group.
func (s *PortfolioService) GroupMembers(name string, topN int) ([]dto.ClientSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, dto.ErrNoDataLoaded
	}

	lower := strings.ToLower(name)
	var members []dto.ClientSummary
	for _, rec := range s.records {
		if !strings.Contains(strings.ToLower(rec.GroupName), lower) {
			continue
		}
		members = append(members, dto.ClientSummary{
			Name:             rec.ClientName,
			Group:            rec.GroupName,
			LoanOfficer:      rec.LoanOfficer,
			PerformanceScore: rec.PerformanceScore,
			LoanAmount:       rec.LoanAmount,
			OverdueCount:     rec.OverdueCount,
		})
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].PerformanceScore > members[j].PerformanceScore
	})
	if topN > 0 && len(members) > topN {
		members = members[:topN]
	}
	return members, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
