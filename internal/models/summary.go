package models

// Summary holds the scalar metrics reduced from a financial bundle. Every
// field is recomputed fresh on each aggregation; nothing is mutated in place.
type Summary struct {
	NetWorth             float64            `json:"net_worth"`
	BankBalanceTotal     float64            `json:"bank_balance_total"`
	MutualFundValueTotal float64            `json:"mutual_fund_value_total"`
	StockValueTotal      float64            `json:"stock_value_total"`
	LoanOutstandingTotal float64            `json:"loan_outstanding_total"`
	MonthlyIncome        float64            `json:"monthly_income"`
	MonthlyExpense       float64            `json:"monthly_expense"`
	MonthlyEMITotal      float64            `json:"monthly_emi_total"`
	SavingsRatePercent   float64            `json:"savings_rate_percent"`
	MonthlyDTIPercent    float64            `json:"monthly_dti_percent"`
	LifeCoverTotal       float64            `json:"life_cover_total"`
	HealthCoverTotal     float64            `json:"health_cover_total"`
	InvestmentAllocation map[string]float64 `json:"investment_allocation"`
}

// SimulationParams are the user-adjustable knobs of the wealth projection.
// Growth rates are annual fractions (0.10 means 10% a year).
type SimulationParams struct {
	HorizonYears                int     `json:"horizon_years"`
	MutualFundGrowthRate        float64 `json:"mutual_fund_growth_rate"`
	StockGrowthRate             float64 `json:"stock_growth_rate"`
	AdditionalMonthlyInvestment float64 `json:"additional_monthly_investment"`
	LoanPrepayment              float64 `json:"loan_prepayment"`
}

// Projection is a year-indexed wealth trajectory. All slices have
// horizon+1 entries; index 0 is the current position.
type Projection struct {
	Years      []int     `json:"years"`
	NetWorth   []float64 `json:"net_worth"`
	MutualFund []float64 `json:"mutual_fund"`
	Stock      []float64 `json:"stock"`
}
