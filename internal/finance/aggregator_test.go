package finance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight-service/internal/models"
)

func TestAggregateEmptyBundle(t *testing.T) {
	tests := []struct {
		name string
		data *models.FinancialData
	}{
		{"nil bundle", nil},
		{"zero value bundle", &models.FinancialData{}},
		{"empty collections", &models.FinancialData{
			Banks:       []models.BankAccount{},
			MutualFunds: []models.MutualFundHolding{},
			Stocks:      []models.StockHolding{},
			Loans:       []models.Loan{},
			Insurance:   []models.InsurancePolicy{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Aggregate(tt.data)
			assert.Zero(t, s.NetWorth)
			assert.Zero(t, s.BankBalanceTotal)
			assert.Zero(t, s.MutualFundValueTotal)
			assert.Zero(t, s.StockValueTotal)
			assert.Zero(t, s.LoanOutstandingTotal)
			assert.Zero(t, s.MonthlyIncome)
			assert.Zero(t, s.MonthlyExpense)
			assert.Zero(t, s.SavingsRatePercent)
			assert.Zero(t, s.MonthlyDTIPercent)
			assert.Equal(t, map[string]float64{"Mutual Funds": 0, "Stocks": 0, "Cash": 0}, s.InvestmentAllocation)
		})
	}
}

func TestAggregateSingleBankAccount(t *testing.T) {
	data := &models.FinancialData{
		Banks: []models.BankAccount{{BankName: "HDFC", Balance: 1000}},
	}

	s := Aggregate(data)

	assert.Equal(t, 1000.0, s.NetWorth)
	assert.Equal(t, 1000.0, s.BankBalanceTotal)
	assert.Zero(t, s.SavingsRatePercent)
}

func TestAggregateCashFlow(t *testing.T) {
	// Credits of 6000 and debits of 3000 over the six-month window.
	data := &models.FinancialData{
		Banks: []models.BankAccount{
			{
				BankName: "HDFC",
				Transactions: []models.Transaction{
					{Type: models.TransactionCredit, Amount: 4000, Description: "Salary Credit"},
					{Type: models.TransactionDebit, Amount: 1000, Description: "Rent"},
				},
			},
			{
				BankName: "ICICI",
				Transactions: []models.Transaction{
					{Type: models.TransactionCredit, Amount: 2000, Description: "Bonus"},
					{Type: models.TransactionDebit, Amount: 2000, Description: "Travel"},
					{Type: "reversal", Amount: 999, Description: "ignored"},
				},
			},
		},
	}

	s := Aggregate(data)

	assert.Equal(t, 1000.0, s.MonthlyIncome)
	assert.Equal(t, 500.0, s.MonthlyExpense)
	assert.Equal(t, 50.0, s.SavingsRatePercent)
}

func TestAggregateHoldingsAndLoans(t *testing.T) {
	data := &models.FinancialData{
		Banks: []models.BankAccount{{Balance: 1000}},
		MutualFunds: []models.MutualFundHolding{
			{FundName: "Alpha Growth Fund", Units: 100, NAV: 50},
			{FundName: "Beta Growth Fund", Units: 10, NAV: 500},
		},
		Stocks: []models.StockHolding{
			{Symbol: "TCS", Quantity: 10, AvgBuyPrice: 400, CurrentPrice: 500},
		},
		Loans: []models.Loan{
			{LoanType: "Home Loan", OutstandingAmount: 2000, MonthlyEMI: 100},
			{LoanType: "Car Loan", OutstandingAmount: 500, MonthlyEMI: 50},
		},
	}

	s := Aggregate(data)

	assert.Equal(t, 10000.0, s.MutualFundValueTotal)
	assert.Equal(t, 5000.0, s.StockValueTotal)
	assert.Equal(t, 2500.0, s.LoanOutstandingTotal)
	assert.Equal(t, 150.0, s.MonthlyEMITotal)
	assert.Equal(t, 1000.0+10000+5000-2500, s.NetWorth)
	assert.Equal(t, map[string]float64{
		"Mutual Funds": 10000,
		"Stocks":       5000,
		"Cash":         1000,
	}, s.InvestmentAllocation)
}

func TestAggregateInsuranceCover(t *testing.T) {
	data := &models.FinancialData{
		Insurance: []models.InsurancePolicy{
			{PolicyName: "Life Shield", Type: models.InsuranceLife, CoverageAmount: 1000000},
			{PolicyName: "Health Secure", Type: models.InsuranceHealth, CoverageAmount: 700000},
			{PolicyName: "Wheels Cover", Type: "vehicle", CoverageAmount: 300000},
		},
	}

	s := Aggregate(data)

	assert.Equal(t, 1000000.0, s.LifeCoverTotal)
	assert.Equal(t, 700000.0, s.HealthCoverTotal)
}

func TestAggregateCoercesMalformedFields(t *testing.T) {
	raw := `{
		"banks": [{"bankName": "HDFC", "balance": "1000.50", "transactions": [
			{"type": "credit", "amount": "600"},
			{"type": "debit", "amount": "not-a-number"}
		]}],
		"mutualFunds": [{"fundName": "Alpha", "units": "10", "nav": "garbage"}],
		"stocks": [{"symbol": "TCS", "quantity": "5", "currentPrice": "100"}],
		"loans": [{"loanType": "Home Loan", "outstandingAmount": "abc", "monthlyEMI": 100}]
	}`

	data := &models.FinancialData{}
	require.NoError(t, json.Unmarshal([]byte(raw), data))

	s := Aggregate(data)

	assert.Equal(t, 1000.50, s.BankBalanceTotal)
	// A holding with an unparsable factor contributes nothing.
	assert.Zero(t, s.MutualFundValueTotal)
	assert.Equal(t, 500.0, s.StockValueTotal)
	assert.Zero(t, s.LoanOutstandingTotal)
	assert.Equal(t, 100.0, s.MonthlyEMITotal)
	assert.Equal(t, 100.0, s.MonthlyIncome)
	assert.Zero(t, s.MonthlyExpense)
}

func TestAggregateDebitOnlyHistory(t *testing.T) {
	// With no credits, monthly income is zero and both ratios stay zero.
	data := &models.FinancialData{
		Banks: []models.BankAccount{{Transactions: []models.Transaction{
			{Type: models.TransactionDebit, Amount: 1200},
		}}},
		Loans: []models.Loan{{MonthlyEMI: 300}},
	}

	s := Aggregate(data)

	assert.Zero(t, s.MonthlyIncome)
	assert.Equal(t, 200.0, s.MonthlyExpense)
	assert.Zero(t, s.SavingsRatePercent)
	assert.Zero(t, s.MonthlyDTIPercent)
}

func TestAggregateIdempotent(t *testing.T) {
	data := &models.FinancialData{
		Banks: []models.BankAccount{{Balance: 1234.56, Transactions: []models.Transaction{
			{Type: models.TransactionCredit, Amount: 900},
			{Type: models.TransactionDebit, Amount: 450},
		}}},
		MutualFunds: []models.MutualFundHolding{{Units: 12.5, NAV: 87.3}},
		Stocks:      []models.StockHolding{{Quantity: 7, CurrentPrice: 321.9}},
		Loans:       []models.Loan{{OutstandingAmount: 5000, MonthlyEMI: 250}},
	}

	first := Aggregate(data)
	second := Aggregate(data)

	assert.Equal(t, first, second)
}
