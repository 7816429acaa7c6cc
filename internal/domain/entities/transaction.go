package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// Transaction is a single payment event fed into pattern analysis
type Transaction struct {
	ID           string    `json:"transactionId"`
	Timestamp    time.Time `json:"timestamp"`
	Amount       float64   `json:"amount"`
	Country      string    `json:"country"`
	IsChargeback bool      `json:"isChargeback"`
}

// AmountCluster is one group of similar transaction amounts
type AmountCluster struct {
	Center float64 `json:"center"`
	Count  int     `json:"count"`
}

// AnalysisDetail is the structured breakdown stored alongside a pattern
type AnalysisDetail struct {
	CountryDistribution map[string]int  `json:"countryDistribution"`
	HourlyDistribution  map[int]int     `json:"hourlyDistribution"`
	AmountDistribution  []AmountCluster `json:"amountDistribution"`
	TransactionCount    int             `json:"transactionCount"`
	ChargebackCount     int             `json:"chargebackCount"`
}

// TransactionAnalysis is the summary produced from a transaction set.
// A non-empty Error marks the analysis as unavailable.
type TransactionAnalysis struct {
	AverageTransactionAmount      null.Float64    `json:"averageTransactionAmount"`
	MonthlyTransactionVolume      int             `json:"monthlyTransactionVolume"`
	HighRiskCountriesPercentage   float64         `json:"highRiskCountriesPercentage"`
	UnusualHoursPercentage        float64         `json:"unusualHoursPercentage"`
	SimilarTransactionsPercentage float64         `json:"similarTransactionsPercentage"`
	ChargebackRate                float64         `json:"chargebackRate"`
	Detail                        *AnalysisDetail `json:"detailedData"`
	Error                         string          `json:"error,omitempty"`
}

// Failed reports whether the analysis carries an error marker
func (a *TransactionAnalysis) Failed() bool {
	return a != nil && a.Error != ""
}

// TransactionPattern is a persisted point-in-time analysis snapshot
type TransactionPattern struct {
	ID                            uuid.UUID           `json:"id"`
	MerchantID                    uuid.UUID           `json:"merchantId"`
	AverageTransactionAmount      decimal.NullDecimal `json:"averageTransactionAmount"`
	MonthlyTransactionVolume      int                 `json:"monthlyTransactionVolume"`
	HighRiskCountriesPercentage   float64             `json:"highRiskCountriesPercentage"`
	UnusualHoursPercentage        float64             `json:"unusualHoursPercentage"`
	SimilarTransactionsPercentage float64             `json:"similarTransactionsPercentage"`
	ChargebackRate                float64             `json:"chargebackRate"`
	TransactionData               *AnalysisDetail     `json:"transactionData"`
	AnalysisError                 null.String         `json:"analysisError"`
	AnalysisDate                  time.Time           `json:"analysisDate"`
}

// Usable reports whether the snapshot can feed risk scoring
func (p *TransactionPattern) Usable() bool {
	return p != nil && !p.AnalysisError.Valid
}
