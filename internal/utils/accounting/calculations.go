package accounting

import (
	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DayExpenseAndCreditTotals sums the two outgoing figures the close-out
// formulas subtract: expenses and store credit issued. Both the summary
// projection and the closing transaction use this over the same entry set so
// the sealed record always matches the entries it sealed.
func DayExpenseAndCreditTotals(entries []domain.LedgerEntry) (totalExpenses, totalStoreCredit decimal.Decimal) {
	totalExpenses = decimal.Zero
	totalStoreCredit = decimal.Zero
	for _, e := range entries {
		switch e.Category {
		case domain.CategoryExpense:
			totalExpenses = totalExpenses.Add(e.Amount)
		case domain.CategoryStoreCredit:
			totalStoreCredit = totalStoreCredit.Add(e.Amount)
		}
	}
	return totalExpenses, totalStoreCredit
}

// CategoryTotals sums entry amounts per category.
func CategoryTotals(entries []domain.LedgerEntry) map[domain.EntryCategory]decimal.Decimal {
	totals := make(map[domain.EntryCategory]decimal.Decimal)
	for _, e := range entries {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// InOutTotals splits a day's entries into inflows and outflows, both
// returned as non-negative figures.
func InOutTotals(entries []domain.LedgerEntry) (inflows, outflows decimal.Decimal) {
	inflows = decimal.Zero
	outflows = decimal.Zero
	for _, e := range entries {
		if e.Category.IsOutflow() {
			outflows = outflows.Add(e.Amount)
		} else {
			inflows = inflows.Add(e.Amount)
		}
	}
	return inflows, outflows
}
