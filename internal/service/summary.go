package service

import (
	"math"

	"account_ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Summarize derives the ledger totals from accounts. Balances are summed as
// exact decimals so the balance equation is an exact comparison that does not
// depend on the order of accounts. Accounts with an unknown type are counted
// in Unclassified and left out of every total. A total that does not fit a
// float64 yields ErrSummaryOverflow.
func Summarize(accounts []models.Account) (models.Summary, error) {
	totals := make(map[models.AccountType]decimal.Decimal, len(models.AccountTypes))
	out := models.Summary{Accounts: len(accounts)}

	for _, a := range accounts {
		if !a.MainAccountType.Valid() {
			out.Unclassified++
			continue
		}
		totals[a.MainAccountType] = totals[a.MainAccountType].Add(balance(a.Balance))
	}

	assets := totals[models.AccountTypeAsset]
	liabilities := totals[models.AccountTypeLiabilities]
	equity := totals[models.AccountTypeEquity]

	out.TotalAssets = assets.InexactFloat64()
	out.TotalLiabilities = liabilities.InexactFloat64()
	out.TotalEquity = equity.InexactFloat64()
	out.TotalRevenue = totals[models.AccountTypeRevenue].InexactFloat64()
	out.NetWorth = assets.Sub(liabilities).InexactFloat64()
	out.EquationBalanced = assets.Equal(liabilities.Add(equity))

	for _, v := range []float64{out.TotalAssets, out.TotalLiabilities, out.TotalEquity, out.TotalRevenue, out.NetWorth} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return models.Summary{}, ErrSummaryOverflow
		}
	}
	return out, nil
}

// balance converts a stored float to the decimal it was written as.
// NaN and infinities count as zero.
func balance(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
