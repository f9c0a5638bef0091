package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func tx(id int64, dir Direction, cat Category, amount string, ts time.Time) Transaction {
	return Transaction{
		ID:        id,
		Direction: dir,
		Category:  cat,
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: ts,
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if !s.TotalIncome.IsZero() || !s.TotalExpenses.IsZero() || !s.Balance.IsZero() {
		t.Fatalf("expected all-zero summary, got %+v", s)
	}
	if len(s.ByCategory) != 0 || len(s.ByMonth) != 0 {
		t.Fatalf("expected empty maps, got %d categories, %d months", len(s.ByCategory), len(s.ByMonth))
	}
}

func TestSummarize_PaycheckAndRent(t *testing.T) {
	ts := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	s := Summarize([]Transaction{
		tx(1, DirectionIncome, CategorySalary, "1000", ts),
		tx(2, DirectionExpense, CategoryRent, "400", ts),
	})

	if s.TotalIncome.String() != "1000" {
		t.Fatalf("totalIncome = %s, want 1000", s.TotalIncome)
	}
	if s.TotalExpenses.String() != "400" {
		t.Fatalf("totalExpenses = %s, want 400", s.TotalExpenses)
	}
	if s.Balance.String() != "600" {
		t.Fatalf("balance = %s, want 600", s.Balance)
	}

	salary := s.ByCategory[CategorySalary]
	if salary.Income.String() != "1000" || salary.Total.String() != "1000" {
		t.Fatalf("salary bucket = %+v", salary)
	}
	rent := s.ByCategory[CategoryRent]
	if rent.Expense.String() != "400" || rent.Total.String() != "400" {
		t.Fatalf("rent bucket = %+v", rent)
	}

	month := s.ByMonth["2026-08"]
	if month.Income.String() != "1000" || month.Expense.String() != "400" || month.Total.String() != "1400" {
		t.Fatalf("month bucket = %+v", month)
	}
}

func TestSummarize_ArithmeticIdentities(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{
		tx(1, DirectionIncome, CategorySalary, "2500.50", base),
		tx(2, DirectionIncome, CategoryInvestment, "99.99", base.AddDate(0, 1, 0)),
		tx(3, DirectionExpense, CategoryRent, "1200", base.AddDate(0, 1, 3)),
		tx(4, DirectionExpense, CategoryGroceries, "431.27", base.AddDate(0, 2, 0)),
		tx(5, DirectionExpense, CategoryOther, "0.01", base.AddDate(0, 2, 10)),
	}
	s := Summarize(txs)

	if !s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpenses)) {
		t.Fatalf("balance %s != income %s - expenses %s", s.Balance, s.TotalIncome, s.TotalExpenses)
	}

	sumCategories := decimal.Zero
	for _, bucket := range s.ByCategory {
		sumCategories = sumCategories.Add(bucket.Total)
	}
	if !sumCategories.Equal(s.TotalIncome.Add(s.TotalExpenses)) {
		t.Fatalf("category totals %s != gross volume %s", sumCategories, s.TotalIncome.Add(s.TotalExpenses))
	}

	sumMonths := decimal.Zero
	for _, bucket := range s.ByMonth {
		sumMonths = sumMonths.Add(bucket.Total)
	}
	if !sumMonths.Equal(sumCategories) {
		t.Fatalf("month totals %s != category totals %s", sumMonths, sumCategories)
	}
}

func TestSummarize_MonthTruncation(t *testing.T) {
	s := Summarize([]Transaction{
		tx(1, DirectionIncome, CategorySalary, "10", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		tx(2, DirectionIncome, CategorySalary, "20", time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)),
		tx(3, DirectionIncome, CategorySalary, "5", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
	})
	if got := s.ByMonth["2026-03"].Income.String(); got != "30" {
		t.Fatalf("march income = %s, want 30", got)
	}
	if got := s.ByMonth["2026-04"].Income.String(); got != "5" {
		t.Fatalf("april income = %s, want 5", got)
	}
}
