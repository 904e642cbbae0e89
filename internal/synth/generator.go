// Package synth generates the synthetic financial bundles served by the
// dashboard. The shapes and value ranges mirror real retail banking data
// closely enough for the aggregation and projection math to look plausible.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsight/finsight-service/internal/models"
)

var (
	bankNames      = []string{"HDFC", "ICICI", "SBI", "Axis"}
	stockSymbols   = []string{"TCS", "INFY", "RELIANCE", "HDFCBANK", "LT", "ITC"}
	creditReasons  = []string{"Salary Credit", "Refund", "Bonus", "Transfer from Wallet"}
	debitReasons   = []string{"Grocery", "Online Shopping", "Electricity Bill", "Dining", "Rent", "Travel"}
	fundSponsors   = []string{"Meridian", "Crestline", "Bluepeak", "Harbourview", "Silverbirch", "Oakfield", "Northbridge", "Lakeshore"}
	fundNameSuffix = " Growth Fund"
)

const (
	transactionsPerBank = 60
	creditProbability   = 0.3
	creditScoreSamples  = 12
	mutualFundCount     = 8
)

// Generator produces synthetic financial bundles from a seeded random source.
// The same seed and reference time always produce the same bundle.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a generator anchored at the current time.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorAt(seed, time.Now())
}

// NewGeneratorAt creates a generator with an explicit reference time.
func NewGeneratorAt(seed int64, now time.Time) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

// Generate produces a complete financial bundle.
func (g *Generator) Generate() *models.FinancialData {
	return &models.FinancialData{
		Banks:       g.bankAccounts(),
		CreditScore: g.creditScores(),
		Loans:       g.loans(),
		MutualFunds: g.mutualFunds(),
		Stocks:      g.stocks(),
		Insurance:   g.insurance(),
	}
}

// money draws a uniform value from [min, max] rounded to two decimals.
func (g *Generator) money(min, max float64) models.Amount {
	v := min + g.rng.Float64()*(max-min)
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return models.Amount(rounded)
}

func (g *Generator) intBetween(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}

func (g *Generator) pastDate(maxDays int) time.Time {
	return g.now.Add(-time.Duration(g.rng.Int63n(int64(maxDays)*24*3600)) * time.Second)
}

func (g *Generator) futureDate(maxDays int) time.Time {
	return g.now.Add(time.Duration(g.rng.Int63n(int64(maxDays)*24*3600)) * time.Second)
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *Generator) bankAccounts() []models.BankAccount {
	accounts := make([]models.BankAccount, 0, len(bankNames))
	for _, name := range bankNames {
		balance := g.money(5000, 100000).Float64()
		transactions := make([]models.Transaction, 0, transactionsPerBank)

		for i := 0; i < transactionsPerBank; i++ {
			isCredit := g.rng.Float64() < creditProbability
			maxAmount := 10000.0
			if isCredit {
				maxAmount = 50000.0
			}
			amount := g.money(500, maxAmount)

			txn := models.Transaction{
				Date:   g.pastDate(365),
				Amount: amount,
			}
			if isCredit {
				txn.Type = models.TransactionCredit
				txn.Description = g.pick(creditReasons)
				balance += amount.Float64()
			} else {
				txn.Type = models.TransactionDebit
				txn.Description = g.pick(debitReasons)
				balance -= amount.Float64()
			}
			transactions = append(transactions, txn)
		}

		sort.Slice(transactions, func(i, j int) bool {
			return transactions[i].Date.Before(transactions[j].Date)
		})

		accounts = append(accounts, models.BankAccount{
			BankName:      name,
			AccountNumber: g.accountNumber(),
			Balance:       models.Amount(balance),
			Transactions:  transactions,
		})
	}
	return accounts
}

func (g *Generator) accountNumber() string {
	return fmt.Sprintf("%010d", g.rng.Int63n(1e10))
}

func (g *Generator) creditScores() []models.CreditScoreSample {
	score := g.intBetween(700, 800)
	samples := make([]models.CreditScoreSample, 0, creditScoreSamples)
	for i := 0; i < creditScoreSamples; i++ {
		score += g.intBetween(-10, 10)
		if score > 850 {
			score = 850
		}
		if score < 650 {
			score = 650
		}
		samples = append(samples, models.CreditScoreSample{
			Date:  g.pastDate(365),
			Score: score,
		})
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Date.Before(samples[j].Date)
	})
	return samples
}

func (g *Generator) loans() []models.Loan {
	const (
		principal    = 1200000.0
		interestRate = 7.25
		termYears    = 10
	)
	emi := CalculateEMI(principal, interestRate, termYears)
	paidMonths := g.intBetween(6, 24)
	outstanding := math.Round(principal - float64(paidMonths)*emi*0.7)

	return []models.Loan{{
		LoanType:          "Home Loan",
		Principal:         models.Amount(principal),
		InterestRate:      models.Amount(interestRate),
		StartDate:         g.pastDate(365),
		EndDate:           g.futureDate(termYears * 365),
		MonthlyEMI:        models.Amount(emi),
		OutstandingAmount: models.Amount(outstanding),
	}}
}

// CalculateEMI computes the equated monthly installment for a loan of the
// given principal, annual interest rate in percent, and term in years,
// rounded to the nearest whole currency unit.
func CalculateEMI(principal, annualRatePercent float64, years int) float64 {
	monthlyRate := annualRatePercent / 12 / 100
	months := float64(years * 12)
	factor := math.Pow(1+monthlyRate, months)
	return math.Round(principal * monthlyRate * factor / (factor - 1))
}

func (g *Generator) mutualFunds() []models.MutualFundHolding {
	funds := make([]models.MutualFundHolding, 0, mutualFundCount)
	for i := 0; i < mutualFundCount; i++ {
		funds = append(funds, models.MutualFundHolding{
			FundName: fundSponsors[i%len(fundSponsors)] + fundNameSuffix,
			Units:    g.money(10, 150),
			NAV:      g.money(50, 250),
			Date:     g.pastDate(30),
		})
	}
	return funds
}

func (g *Generator) stocks() []models.StockHolding {
	holdings := make([]models.StockHolding, 0, len(stockSymbols))
	for _, symbol := range stockSymbols {
		avgBuy := g.money(800, 3000)
		drift := 0.8 + g.rng.Float64()*0.6
		current, _ := decimal.NewFromFloat(avgBuy.Float64() * drift).Round(2).Float64()

		holdings = append(holdings, models.StockHolding{
			Symbol:       symbol,
			Quantity:     models.Amount(g.intBetween(5, 100)),
			AvgBuyPrice:  avgBuy,
			CurrentPrice: models.Amount(current),
			Date:         g.pastDate(45),
		})
	}
	return holdings
}

func (g *Generator) insurance() []models.InsurancePolicy {
	return []models.InsurancePolicy{
		{
			PolicyName:     "Life Shield",
			Provider:       "LIC",
			Premium:        15000,
			CoverageAmount: 1000000,
			StartDate:      g.pastDate(2 * 365),
			EndDate:        g.futureDate(18 * 365),
			Type:           models.InsuranceLife,
		},
		{
			PolicyName:     "Health Secure",
			Provider:       "Star Health",
			Premium:        10000,
			CoverageAmount: 700000,
			StartDate:      g.pastDate(365),
			EndDate:        g.futureDate(365),
			Type:           models.InsuranceHealth,
		},
	}
}
