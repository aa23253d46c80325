package report

import (
	"time"

	"flota-service/internal/domain/driver"
	"flota-service/internal/domain/trip"
)

// Dashboard is the KPI block rendered on the landing page.
type Dashboard struct {
	ActiveTripCount  int          `json:"active_trip_count"`
	ActiveTripSample []trip.Trip  `json:"active_trip_sample"`
	TotalDistance    int          `json:"total_distance"`
	TotalFuelCost    float64      `json:"total_fuel_cost"`
	TotalFuelLiters  float64      `json:"total_fuel_liters"`
	Efficiency       float64      `json:"efficiency"`
	SpendSeries      []SpendPoint `json:"spend_series"`
}

// SpendPoint is one day of the 7-day fuel spend series, oldest first.
type SpendPoint struct {
	Fecha string  `json:"fecha"` // YYYY-MM-DD
	Label string  `json:"label"` // short dd/mm label
	Total float64 `json:"total"`
}

// Filters restricts the operational report. Date bounds are inclusive.
type Filters struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	ConductorID *int64
}

// Report is the filtered operational report dataset.
type Report struct {
	Trips           []trip.Trip         `json:"trips"`
	TotalDistance   int                 `json:"total_distance"`
	TotalCost       float64             `json:"total_cost"`
	TotalLiters     float64             `json:"total_liters"`
	EligibleDrivers []driver.DriverInfo `json:"eligible_drivers"`
}

// FuelStats is the fuel overview KPI block.
type FuelStats struct {
	TotalCost       float64 `json:"total_cost"`
	TotalLiters     float64 `json:"total_liters"`
	Count           int     `json:"count"`
	AvgCostPerLiter float64 `json:"average_cost_per_liter"`
}
