package domain

import (
	"time"

	"github.com/google/uuid"
)

// Investment package statuses
const (
	PackageActive  = "ACTIVE"
	PackageMatured = "MATURED"
)

// InvestPackage is a fixed-term investment plan. The principal is deducted
// from the user's balance on purchase; daily ROI accrues to the balance until
// the package matures. DailyROI is a percentage of the principal per day.
type InvestPackage struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Name          string    `json:"name"`
	Amount        float64   `json:"amount"`
	DailyROI      float64   `json:"dailyRoi"`
	DurationDays  int       `json:"durationDays"`
	AccruedDays   int       `json:"accruedDays"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	LastAccruedAt time.Time `json:"lastAccruedAt"`
}

// DailyEarning returns the amount credited per accrual day
func (p *InvestPackage) DailyEarning() float64 {
	return p.Amount * p.DailyROI / 100
}
