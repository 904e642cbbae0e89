// Package finance implements the numeric core of the dashboard: the
// reduction of a raw financial bundle into summary metrics, and the
// deterministic wealth projection built on top of them. Both entry points are
// pure functions and safe for concurrent use.
package finance

import "github.com/finsight/finsight-service/internal/models"

// Transaction histories span six months of statement data; monthly cash-flow
// figures divide by this window.
const historyMonths = 6

// Aggregate reduces a financial bundle into summary metrics. Missing
// collections and unparsable monetary fields contribute zero; Aggregate never
// fails.
func Aggregate(data *models.FinancialData) *models.Summary {
	if data == nil {
		data = &models.FinancialData{}
	}

	s := &models.Summary{}
	for _, bank := range data.Banks {
		s.BankBalanceTotal += bank.Balance.Float64()
	}
	for _, fund := range data.MutualFunds {
		s.MutualFundValueTotal += fund.Value()
	}
	for _, stock := range data.Stocks {
		s.StockValueTotal += stock.Value()
	}
	for _, loan := range data.Loans {
		s.LoanOutstandingTotal += loan.OutstandingAmount.Float64()
		s.MonthlyEMITotal += loan.MonthlyEMI.Float64()
	}
	s.NetWorth = s.BankBalanceTotal + s.MutualFundValueTotal + s.StockValueTotal - s.LoanOutstandingTotal

	var creditTotal, debitTotal float64
	for _, bank := range data.Banks {
		for _, txn := range bank.Transactions {
			switch txn.Type {
			case models.TransactionCredit:
				creditTotal += txn.Amount.Float64()
			case models.TransactionDebit:
				debitTotal += txn.Amount.Float64()
			}
		}
	}
	s.MonthlyIncome = creditTotal / historyMonths
	s.MonthlyExpense = debitTotal / historyMonths

	if s.MonthlyIncome > 0 {
		s.SavingsRatePercent = (s.MonthlyIncome - s.MonthlyExpense) / s.MonthlyIncome * 100
		s.MonthlyDTIPercent = s.MonthlyEMITotal / s.MonthlyIncome * 100
	}

	for _, policy := range data.Insurance {
		switch policy.Type {
		case models.InsuranceLife:
			s.LifeCoverTotal += policy.CoverageAmount.Float64()
		case models.InsuranceHealth:
			s.HealthCoverTotal += policy.CoverageAmount.Float64()
		}
	}

	s.InvestmentAllocation = map[string]float64{
		"Mutual Funds": s.MutualFundValueTotal,
		"Stocks":       s.StockValueTotal,
		"Cash":         s.BankBalanceTotal,
	}
	return s
}
