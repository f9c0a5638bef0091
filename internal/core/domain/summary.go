package domain

import "github.com/shopspring/decimal"

// Totals is one aggregation bucket: partial income and expense sums plus the
// combined total (income + expense, i.e. gross volume in the bucket).
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Total   decimal.Decimal `json:"total"`
}

// Summary is the result of folding a transaction set: overall totals plus
// per-category and per-calendar-month buckets.
type Summary struct {
	TotalIncome   decimal.Decimal     `json:"total_income"`
	TotalExpenses decimal.Decimal     `json:"total_expenses"`
	Balance       decimal.Decimal     `json:"balance"`
	ByCategory    map[Category]Totals `json:"by_category"`
	ByMonth       map[string]Totals   `json:"by_month"`
}

// Summarize folds a transaction set into a Summary. It is pure: it never
// errors, an empty input yields a zero summary with empty maps, and buckets
// are created lazily on first occurrence of a category or month.
func Summarize(txs []Transaction) Summary {
	s := Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Balance:       decimal.Zero,
		ByCategory:    make(map[Category]Totals),
		ByMonth:       make(map[string]Totals),
	}

	for _, tx := range txs {
		switch tx.Direction {
		case DirectionIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case DirectionExpense:
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount)
		default:
			continue
		}

		s.ByCategory[tx.Category] = fold(s.ByCategory[tx.Category], tx)
		month := tx.CreatedAt.UTC().Format("2006-01")
		s.ByMonth[month] = fold(s.ByMonth[month], tx)
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

func fold(t Totals, tx Transaction) Totals {
	switch tx.Direction {
	case DirectionIncome:
		t.Income = t.Income.Add(tx.Amount)
	case DirectionExpense:
		t.Expense = t.Expense.Add(tx.Amount)
	}
	t.Total = t.Total.Add(tx.Amount)
	return t
}
