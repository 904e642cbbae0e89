package finance

import (
	"errors"
	"fmt"
	"math"

	"github.com/finsight/finsight-service/internal/models"
)

// ErrInvalidParameter reports simulation parameters outside their acceptable
// range.
var ErrInvalidParameter = errors.New("invalid simulation parameter")

// Fixed split of the additional monthly investment between asset classes.
const (
	mutualFundShare = 0.6
	stockShare      = 0.4
)

func validateParams(params models.SimulationParams) error {
	if params.HorizonYears < 1 {
		return fmt.Errorf("horizon years must be at least 1, got %d: %w", params.HorizonYears, ErrInvalidParameter)
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"mutual fund growth rate", params.MutualFundGrowthRate},
		{"stock growth rate", params.StockGrowthRate},
		{"additional monthly investment", params.AdditionalMonthlyInvestment},
		{"loan prepayment", params.LoanPrepayment},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s is not a finite number: %w", f.name, ErrInvalidParameter)
		}
	}
	if params.AdditionalMonthlyInvestment < 0 {
		return fmt.Errorf("additional monthly investment must not be negative: %w", ErrInvalidParameter)
	}
	if params.LoanPrepayment < 0 {
		return fmt.Errorf("loan prepayment must not be negative: %w", ErrInvalidParameter)
	}
	return nil
}

// Project rolls the summary's asset totals forward year by year under the
// given growth assumptions. It is fully deterministic.
//
// Year 0 reports the current totals as-is. The loan baseline is reduced by
// the prepayment without a floor, while the yearly amortization step clamps
// at zero; the asymmetry matches the dashboard this replaces. Amortization is
// a flat EMI×12 per year with no interest accrual.
func Project(summary *models.Summary, params models.SimulationParams) (*models.Projection, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	n := params.HorizonYears
	p := &models.Projection{
		Years:      make([]int, 0, n+1),
		NetWorth:   make([]float64, 0, n+1),
		MutualFund: make([]float64, 0, n+1),
		Stock:      make([]float64, 0, n+1),
	}

	mf := summary.MutualFundValueTotal
	stock := summary.StockValueTotal
	loan := summary.LoanOutstandingTotal - params.LoanPrepayment

	p.Years = append(p.Years, 0)
	p.NetWorth = append(p.NetWorth, summary.NetWorth)
	p.MutualFund = append(p.MutualFund, mf)
	p.Stock = append(p.Stock, stock)

	annualExtra := params.AdditionalMonthlyInvestment * 12
	for i := 1; i <= n; i++ {
		mf += mf*params.MutualFundGrowthRate + annualExtra*mutualFundShare
		stock += stock*params.StockGrowthRate + annualExtra*stockShare
		loan = math.Max(0, loan-summary.MonthlyEMITotal*12)

		p.Years = append(p.Years, i)
		p.NetWorth = append(p.NetWorth, summary.BankBalanceTotal+mf+stock-loan)
		p.MutualFund = append(p.MutualFund, mf)
		p.Stock = append(p.Stock, stock)
	}
	return p, nil
}
