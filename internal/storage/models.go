package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingRow is one vehicle listing as persisted for a snapshot date.
type ListingRow struct {
	Registration string
	SnapshotDate time.Time
	Source       string
	Price        decimal.Decimal
	ModelYear    *int
	Mileage      *float64
	Horsepower   *int
	EngineCode   *string
	FuelType     *string
	Transmission *string
	DrivingType  *string
	Location     *string
	ModelVariant *string
	CreatedAt    time.Time
}

// DealScoreRow captures one ranked deal for a snapshot date.
type DealScoreRow struct {
	Registration   string
	SnapshotDate   time.Time
	PredictedPrice decimal.Decimal
	DiscountPct    decimal.Decimal
	DiscountSEK    decimal.Decimal
	Rank           int
	CreatedAt      time.Time
}
