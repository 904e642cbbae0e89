package models

import "time"

// Anomaly flags a debit transaction whose amount deviates from the user's
// spending pattern.
type Anomaly struct {
	Date        time.Time `json:"date"`
	Bank        string    `json:"bank"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Reason      string    `json:"reason"`
	ZScore      float64   `json:"zscore"`
}

// AnomalyReport is the detector output returned to the dashboard.
type AnomalyReport struct {
	Anomalies []Anomaly `json:"anomalies"`
	Count     int       `json:"count"`
}
