package services

import (
	"context"
	"fmt"
	"strings"

	"kakeibo/internal/logger"
	"kakeibo/internal/textgen"
)

// analysisService produces natural-language commentary on a family's month
// using a generative-text backend.
type analysisService struct {
	reports   ReportServicer
	generator textgen.Generator
}

// NewAnalysisService creates a new AnalysisServicer.
func NewAnalysisService(reports ReportServicer, generator textgen.Generator) AnalysisServicer {
	return &analysisService{reports: reports, generator: generator}
}

// AnalyzeMonth builds a prompt from the monthly summary and asks the text
// backend for commentary. When the backend is unavailable a plain fallback
// summary is returned instead of an error, so the report page still renders.
func (s *analysisService) AnalyzeMonth(ctx context.Context, familyID uint, year, month int) (string, error) {
	summary, err := s.reports.MonthlySummary(familyID, year, month)
	if err != nil {
		return "", err
	}

	text, err := s.generator.Generate(ctx, buildPrompt(summary))
	if err != nil {
		logger.Get().Warnw("text generation failed, using fallback summary",
			"family_id", familyID,
			"error", err)
		return fallbackSummary(summary), nil
	}
	return text, nil
}

func buildPrompt(s *MonthlySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a household budgeting assistant. Review this family's month (%d-%02d) and give short, practical feedback in 3-4 sentences.\n\n", s.Year, s.Month)
	fmt.Fprintf(&b, "Income: %d\nExpenses: %d\nCash set aside: %d\nInsurance-type savings: %d\nBalance: %d\n", s.IncomeTotal, s.ExpenseTotal, s.CashSavingTotal, s.InsuranceSavingTotal, s.Balance)

	if len(s.CategoryBreakdown) > 0 {
		b.WriteString("\nSpending by category:\n")
		for _, c := range s.CategoryBreakdown {
			fmt.Fprintf(&b, "- %s: %d\n", c.CategoryName, c.Total)
		}
	}
	return b.String()
}

func fallbackSummary(s *MonthlySummary) string {
	if s.Balance >= 0 {
		return fmt.Sprintf("In %d-%02d you earned %d, spent %d, and set aside %d, ending the month %d ahead.",
			s.Year, s.Month, s.IncomeTotal, s.ExpenseTotal, s.CashSavingTotal, s.Balance)
	}
	return fmt.Sprintf("In %d-%02d you earned %d, spent %d, and set aside %d, ending the month %d short.",
		s.Year, s.Month, s.IncomeTotal, s.ExpenseTotal, s.CashSavingTotal, -s.Balance)
}
