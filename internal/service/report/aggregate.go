// internal/service/report/aggregate.go
//
// Pure aggregation over entity slices. Nothing here touches a store, which
// keeps the KPI semantics unit-testable with plain fixtures.
package report

import (
	"math"
	"sort"
	"time"

	"flota-service/internal/domain/driver"
	"flota-service/internal/domain/fuel"
	"flota-service/internal/domain/trip"
)

const activeTripSampleSize = 5

// round1 rounds half away from zero to one decimal place: 12.25 -> 12.3.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// BuildDashboard computes the dashboard KPIs from the full entity set.
//
// Total distance counts only trips whose distance is computable; trips
// missing an end odometer are excluded, not treated as zero. Efficiency is
// defined as 0 when no fuel has been purchased.
//
// Stored dates scan as UTC midnight, so today is normalized to UTC before
// any day comparison; a server-local time would skew the day boundary.
func BuildDashboard(trips []trip.Trip, purchases []fuel.Purchase, today time.Time) Dashboard {
	today = today.UTC()

	var active []trip.Trip
	for _, t := range trips {
		if t.InProgress() && sameDay(t.Fecha, today) {
			active = append(active, t)
		}
	}
	// Newest first
	sort.Slice(active, func(i, j int) bool { return active[i].ID > active[j].ID })

	sample := active
	if len(sample) > activeTripSampleSize {
		sample = sample[:activeTripSampleSize]
	}

	totalDistance := 0
	for _, t := range trips {
		if d, ok := t.Distance(); ok {
			totalDistance += d
		}
	}

	var totalCost, totalLiters float64
	for _, p := range purchases {
		totalCost += p.CostoTotal
		totalLiters += p.Litros
	}

	efficiency := 0.0
	if totalLiters > 0 {
		efficiency = round1(float64(totalDistance) / totalLiters)
	}

	return Dashboard{
		ActiveTripCount:  len(active),
		ActiveTripSample: sample,
		TotalDistance:    totalDistance,
		TotalFuelCost:    totalCost,
		TotalFuelLiters:  totalLiters,
		Efficiency:       efficiency,
		SpendSeries:      buildSpendSeries(purchases, today),
	}
}

// buildSpendSeries returns one point per day for the 7 days ending at today,
// oldest first, with 0 for days without purchases.
func buildSpendSeries(purchases []fuel.Purchase, today time.Time) []SpendPoint {
	series := make([]SpendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		total := 0.0
		for _, p := range purchases {
			if sameDay(p.Fecha, day) {
				total += p.CostoTotal
			}
		}
		series = append(series, SpendPoint{
			Fecha: day.Format("2006-01-02"),
			Label: day.Format("02/01"),
			Total: total,
		})
	}
	return series
}

// BuildReport computes the filtered report totals.
//
// trips must already match the date/driver filters; purchases must already
// match the date filter. When conductorID is set, purchases are restricted
// to vehicles appearing in the filtered trip set — fuel purchases carry no
// driver reference, so the link is derived.
//
// Unlike the dashboard, trips with no computable distance contribute 0 here
// instead of being excluded.
func BuildReport(trips []trip.Trip, purchases []fuel.Purchase, drivers []driver.Driver, conductorID *int64) Report {
	if conductorID != nil {
		vehicleIDs := make(map[int64]struct{}, len(trips))
		for _, t := range trips {
			vehicleIDs[t.VehiculoID] = struct{}{}
		}

		restricted := make([]fuel.Purchase, 0, len(purchases))
		for _, p := range purchases {
			if _, ok := vehicleIDs[p.VehiculoID]; ok {
				restricted = append(restricted, p)
			}
		}
		purchases = restricted
	}

	totalDistance := 0
	for _, t := range trips {
		totalDistance += t.DistanceOrZero()
	}

	var totalCost, totalLiters float64
	for _, p := range purchases {
		totalCost += p.CostoTotal
		totalLiters += p.Litros
	}

	eligible := make([]driver.DriverInfo, 0, len(drivers))
	for _, d := range drivers {
		if driver.NormalizeRole(string(d.Rol)) == driver.RoleAdmin {
			continue
		}
		eligible = append(eligible, driver.DriverInfo{
			ID:            d.ID,
			Nombre:        d.Nombre,
			RUT:           d.RUT,
			Correo:        d.Correo,
			Telefono:      d.Telefono,
			Rol:           d.Rol,
			FechaCreacion: d.FechaCreacion.Format(time.RFC3339),
		})
	}

	if trips == nil {
		trips = []trip.Trip{}
	}

	return Report{
		Trips:           trips,
		TotalDistance:   totalDistance,
		TotalCost:       totalCost,
		TotalLiters:     totalLiters,
		EligibleDrivers: eligible,
	}
}

// BuildFuelStats computes the fuel overview KPIs. The average is defined as
// 0 when no liters have been purchased.
func BuildFuelStats(purchases []fuel.Purchase) FuelStats {
	var totalCost, totalLiters float64
	for _, p := range purchases {
		totalCost += p.CostoTotal
		totalLiters += p.Litros
	}

	avg := 0.0
	if totalLiters > 0 {
		avg = round1(totalCost / totalLiters)
	}

	return FuelStats{
		TotalCost:       totalCost,
		TotalLiters:     totalLiters,
		Count:           len(purchases),
		AvgCostPerLiter: avg,
	}
}
