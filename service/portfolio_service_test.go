package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MunzurulAzam/microfinancce-ai/dto"
)

const testCSV = `Client Name,Group Name,LO Name,Loan Amount,Total Payment,Overdue Count,Cycle,Loan Purpose,Disbursement Date
Amina Nakato,Sunrise,Okello,500000,520000,0,3,Retail,2024-01-15
Brian Ssali,Sunrise,Okello,300000,150000,2,1,Transport,2024-02-10
Amina Nakato,Sunrise,Okello,700000,100000,0,4,Retail,2024-06-01
Clare Auma,Hillside,Adong,400000,400000,0,2,Tailoring,2024-03-05
`

func writeTestCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loans.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))
	return path
}

func TestLoadCSVAndStats(t *testing.T) {
	service := NewPortfolioService()

	message, err := service.LoadCSV(writeTestCSV(t))
	require.NoError(t, err)
	assert.Equal(t, "Data loaded: 4 rows", message)

	stats, err := service.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalClients)
	assert.Equal(t, 2, stats.TotalGroups)
	assert.Equal(t, 2, stats.TotalLoanOfficers)
	assert.Equal(t, 4, stats.TotalLoans)
	assert.Equal(t, 1900000.0, stats.TotalLoanPortfolio)
	assert.Equal(t, 475000.0, stats.AverageLoanAmount)
	assert.Equal(t, 1, stats.ClientsWithOverdue)
}

func TestStatsWithoutData(t *testing.T) {
	service := NewPortfolioService()

	_, err := service.Stats()
	assert.ErrorIs(t, err, dto.ErrNoDataLoaded)
}

func TestClientsLatestRecordAndSearch(t *testing.T) {
	service := NewPortfolioService()
	_, err := service.LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	clients, err := service.Clients(100, 0, "")
	require.NoError(t, err)
	assert.Len(t, clients, 3)

	clients, err = service.Clients(100, 0, "amina")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	// The June record is the latest for Amina.
	assert.Equal(t, 700000.0, clients[0].LoanAmount)

	// Pagination.
	clients, err = service.Clients(1, 1, "")
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestGroupsAggregation(t *testing.T) {
	service := NewPortfolioService()
	_, err := service.LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	groups, err := service.Groups(100, 0, "sunrise")
	require.NoError(t, err)
	require.Len(t, groups, 1)

	sunrise := groups[0]
	assert.Equal(t, "Sunrise", sunrise.Name)
	assert.Equal(t, 3, sunrise.MemberCount)
	assert.Equal(t, 2, sunrise.TotalOverdue)
	assert.Equal(t, 1500000.0, sunrise.TotalLoanAmount)
}

func TestFindClientAndGroup(t *testing.T) {
	service := NewPortfolioService()
	_, err := service.LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	record, err := service.FindClient("ssali")
	require.NoError(t, err)
	assert.Equal(t, "Brian Ssali", record.ClientName)
	assert.True(t, record.IsOverdue)

	_, err = service.FindClient("nobody")
	assert.Error(t, err)

	group, err := service.FindGroup("hillside")
	require.NoError(t, err)
	assert.Equal(t, "Hillside", group.Name)
	assert.Equal(t, 1, group.MemberCount)
}

func TestFindGroupAmbiguousNamePicksAlphabeticalFirst(t *testing.T) {
	service := NewPortfolioService()
	_, err := service.LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	// "i" matches both Sunrise and Hillside; Hillside sorts first even
	// though Sunrise records come first in the file.
	group, err := service.FindGroup("i")
	require.NoError(t, err)
	assert.Equal(t, "Hillside", group.Name)
	assert.Equal(t, 1, group.MemberCount)
}

func TestGroupMembersRankedByScore(t *testing.T) {
	service := NewPortfolioService()
	_, err := service.LoadCSV(writeTestCSV(t))
	require.NoError(t, err)

	members, err := service.GroupMembers("sunrise", 2)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.GreaterOrEqual(t, members[0].PerformanceScore, members[1].PerformanceScore)
}
