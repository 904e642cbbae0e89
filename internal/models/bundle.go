package models

import "time"

// Transaction types recorded against a bank account.
const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// Insurance policy types recognised by the summary.
const (
	InsuranceLife   = "life"
	InsuranceHealth = "health"
)

// Transaction represents a single bank account movement
type Transaction struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Amount      Amount    `json:"amount"`
	Description string    `json:"description"`
}

// BankAccount represents a bank account with its transaction history. The
// balance is supplied by the provider independently of the transaction list
// and is not required to reconcile with it.
type BankAccount struct {
	BankName      string        `json:"bankName"`
	AccountNumber string        `json:"accountNumber"`
	Balance       Amount        `json:"balance"`
	Transactions  []Transaction `json:"transactions"`
}

// MutualFundHolding represents a mutual fund position
type MutualFundHolding struct {
	FundName string    `json:"fundName"`
	Units    Amount    `json:"units"`
	NAV      Amount    `json:"nav"`
	Date     time.Time `json:"date"`
}

// Value returns units times NAV.
func (m MutualFundHolding) Value() float64 {
	return m.Units.Float64() * m.NAV.Float64()
}

// StockHolding represents a stock position
type StockHolding struct {
	Symbol       string    `json:"symbol"`
	Quantity     Amount    `json:"quantity"`
	AvgBuyPrice  Amount    `json:"avgBuyPrice"`
	CurrentPrice Amount    `json:"currentPrice"`
	Date         time.Time `json:"date"`
}

// Value returns quantity times current price.
func (s StockHolding) Value() float64 {
	return s.Quantity.Float64() * s.CurrentPrice.Float64()
}

// Cost returns quantity times average buy price.
func (s StockHolding) Cost() float64 {
	return s.Quantity.Float64() * s.AvgBuyPrice.Float64()
}

// ProfitLoss returns the unrealized gain or loss on the position.
func (s StockHolding) ProfitLoss() float64 {
	return s.Value() - s.Cost()
}

// Loan represents an outstanding loan
type Loan struct {
	LoanType          string    `json:"loanType"`
	Principal         Amount    `json:"principal"`
	InterestRate      Amount    `json:"interestRate"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	MonthlyEMI        Amount    `json:"monthlyEMI"`
	OutstandingAmount Amount    `json:"outstandingAmount"`
}

// InsurancePolicy represents an insurance policy with its validity window
type InsurancePolicy struct {
	PolicyName     string    `json:"policyName"`
	Provider       string    `json:"provider"`
	Premium        Amount    `json:"premium"`
	CoverageAmount Amount    `json:"coverageAmount"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Type           string    `json:"type"`
}

// CreditScoreSample is one point in a user's credit score history
type CreditScoreSample struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// FinancialData bundles every record class held for a user. Any collection
// may be empty or absent.
type FinancialData struct {
	Banks       []BankAccount       `json:"banks"`
	CreditScore []CreditScoreSample `json:"creditScore"`
	Loans       []Loan              `json:"loans"`
	MutualFunds []MutualFundHolding `json:"mutualFunds"`
	Stocks      []StockHolding      `json:"stocks"`
	Insurance   []InsurancePolicy   `json:"insurance"`
}
