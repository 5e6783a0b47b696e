package service

import (
	"log"

	"github.com/MunzurulAzam/microfinancce-ai/dto"
	"github.com/MunzurulAzam/microfinancce-ai/utils"
)

// MetricsService is the universal statement parsing engine: given a PDF of
// unknown layout it produces total credit, total debit and average balance.
// It is a pure function of the document; nothing persists across calls, so
// concurrent use needs no locking.
type MetricsService struct {
	extractor DocumentExtractor
	keywords  utils.StatementKeywords
}

func NewMetricsService(extractor DocumentExtractor) *MetricsService {
	return &MetricsService{
		extractor: extractor,
		keywords:  utils.DefaultStatementKeywords(),
	}
}

// ExtractFinancialMetrics runs summary matching and table heuristics over
// the document and combines the results. It never fails: unreadable or
// hostile input degrades to the zero triple, and no error or panic escapes
// this boundary.
func (s *MetricsService) ExtractFinancialMetrics(path string) (metrics dto.FinancialMetrics) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("statement parser panic for %s: %v", path, r)
			metrics = dto.FinancialMetrics{}
		}
	}()

	text, rows, err := s.extractor.Extract(path)
	if err != nil {
		log.Printf("statement extraction failed for %s: %v", path, err)
		return dto.FinancialMetrics{}
	}

	// Both sources always run; the combiner decides which wins.
	summary := utils.ParseStatementSummary(text, s.keywords)
	table := utils.AnalyzeTransactionTable(rows, s.keywords)

	return utils.CombineMetrics(summary, table)
}
