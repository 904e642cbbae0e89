// Package anomaly flags unusual debit transactions in a financial bundle
// using a population z-score over the debit amounts. The detector is
// deterministic: the same bundle always yields the same report.
package anomaly

import (
	"math"
	"sort"
	"strings"

	"github.com/finsight/finsight-service/internal/models"
)

// zScoreThreshold is the absolute z-score above which a debit is flagged.
const zScoreThreshold = 1.5

const reasonText = "Unusual transaction amount (Z-score)"

type debit struct {
	txn  models.Transaction
	bank string
}

// Detect returns the anomaly report for a bundle. Anomalies are sorted by
// amount, largest first. An empty or all-uniform history yields an empty
// report.
func Detect(data *models.FinancialData) *models.AnomalyReport {
	report := &models.AnomalyReport{Anomalies: []models.Anomaly{}}
	if data == nil {
		return report
	}

	var debits []debit
	for _, bank := range data.Banks {
		for _, txn := range bank.Transactions {
			if strings.ToLower(txn.Type) != models.TransactionDebit {
				continue
			}
			debits = append(debits, debit{txn: txn, bank: bank.BankName})
		}
	}
	if len(debits) == 0 {
		return report
	}

	var sum float64
	for _, d := range debits {
		sum += d.txn.Amount.Float64()
	}
	mean := sum / float64(len(debits))

	var variance float64
	for _, d := range debits {
		diff := d.txn.Amount.Float64() - mean
		variance += diff * diff
	}
	stddev := math.Sqrt(variance / float64(len(debits)))
	if stddev == 0 {
		return report
	}

	for _, d := range debits {
		amount := d.txn.Amount.Float64()
		z := (amount - mean) / stddev
		if math.Abs(z) <= zScoreThreshold {
			continue
		}
		report.Anomalies = append(report.Anomalies, models.Anomaly{
			Date:        d.txn.Date,
			Bank:        d.bank,
			Amount:      amount,
			Description: d.txn.Description,
			Reason:      reasonText,
			ZScore:      z,
		})
	}

	sort.Slice(report.Anomalies, func(i, j int) bool {
		return report.Anomalies[i].Amount > report.Anomalies[j].Amount
	})
	report.Count = len(report.Anomalies)
	return report
}
