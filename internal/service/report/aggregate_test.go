package report

import (
	"testing"
	"time"

	"flota-service/internal/domain/driver"
	"flota-service/internal/domain/fuel"
	"flota-service/internal/domain/trip"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func closedTrip(id, vehiculoID int64, fecha time.Time, kmInicio, kmFin int) trip.Trip {
	fin := fecha.Add(10 * time.Hour)
	return trip.Trip{
		ID:                id,
		ConductorID:       1,
		VehiculoID:        vehiculoID,
		Fecha:             fecha,
		HoraInicio:        fecha.Add(8 * time.Hour),
		HoraFin:           &fin,
		KilometrajeInicio: intPtr(kmInicio),
		KilometrajeFin:    intPtr(kmFin),
	}
}

func openTrip(id, vehiculoID int64, fecha time.Time, kmInicio int) trip.Trip {
	return trip.Trip{
		ID:                id,
		ConductorID:       1,
		VehiculoID:        vehiculoID,
		Fecha:             fecha,
		HoraInicio:        fecha.Add(8 * time.Hour),
		KilometrajeInicio: intPtr(kmInicio),
	}
}

func TestRound1HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{12.25, 12.3},
		{12.24, 12.2},
		{0, 0},
		{-1.25, -1.3},
		{99.96, 100.0},
	}
	for _, c := range cases {
		if got := round1(c.in); got != c.want {
			t.Errorf("round1(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBuildDashboardExcludesUncomputableDistance(t *testing.T) {
	today := day(2026, 9, 1)
	trips := []trip.Trip{
		closedTrip(1, 1, today, 100, 150),
		openTrip(2, 2, today, 200), // no end odometer, excluded from distance
	}

	d := BuildDashboard(trips, nil, today)

	if d.TotalDistance != 50 {
		t.Errorf("TotalDistance = %d, want 50", d.TotalDistance)
	}
}

func TestReportCountsUncomputableDistanceAsZero(t *testing.T) {
	// The report sums DistanceOrZero while the dashboard skips trips with no
	// computable distance. Both must keep their own semantics.
	today := day(2026, 9, 1)
	trips := []trip.Trip{
		closedTrip(1, 1, today, 100, 150),
		openTrip(2, 2, today, 200),
	}

	r := BuildReport(trips, nil, nil, nil)

	if r.TotalDistance != 50 {
		t.Errorf("report TotalDistance = %d, want 50", r.TotalDistance)
	}
	if len(r.Trips) != 2 {
		t.Errorf("report trips = %d, want 2 (uncomputable trips stay listed)", len(r.Trips))
	}
}

func TestBuildDashboardActiveTrips(t *testing.T) {
	today := day(2026, 9, 1)
	yesterday := today.AddDate(0, 0, -1)

	trips := []trip.Trip{
		openTrip(1, 1, today, 0),
		openTrip(2, 2, today, 0),
		openTrip(3, 3, yesterday, 0), // open but not today
		closedTrip(4, 4, today, 0, 10),
	}

	d := BuildDashboard(trips, nil, today)

	if d.ActiveTripCount != 2 {
		t.Fatalf("ActiveTripCount = %d, want 2", d.ActiveTripCount)
	}
	// Newest first
	if d.ActiveTripSample[0].ID != 2 || d.ActiveTripSample[1].ID != 1 {
		t.Errorf("sample order = [%d %d], want [2 1]",
			d.ActiveTripSample[0].ID, d.ActiveTripSample[1].ID)
	}
}

func TestBuildDashboardSampleCapped(t *testing.T) {
	today := day(2026, 9, 1)

	var trips []trip.Trip
	for i := int64(1); i <= 8; i++ {
		trips = append(trips, openTrip(i, i, today, 0))
	}

	d := BuildDashboard(trips, nil, today)

	if d.ActiveTripCount != 8 {
		t.Errorf("ActiveTripCount = %d, want 8", d.ActiveTripCount)
	}
	if len(d.ActiveTripSample) != activeTripSampleSize {
		t.Errorf("sample size = %d, want %d", len(d.ActiveTripSample), activeTripSampleSize)
	}
	if d.ActiveTripSample[0].ID != 8 {
		t.Errorf("sample starts at %d, want 8", d.ActiveTripSample[0].ID)
	}
}

func TestBuildDashboardNormalizesTodayToUTC(t *testing.T) {
	// Stored dates scan as UTC midnight. A server clock west of UTC reads
	// 2026-08-31 21:00 local while the UTC date is already 2026-09-01; the
	// day comparison must use the UTC date.
	local := time.FixedZone("UTC-4", -4*3600)
	today := time.Date(2026, 8, 31, 21, 0, 0, 0, local) // 2026-09-01 01:00 UTC

	utcDate := day(2026, 9, 1)
	trips := []trip.Trip{openTrip(1, 1, utcDate, 0)}
	purchases := []fuel.Purchase{{VehiculoID: 1, Litros: 10, CostoTotal: 8000, Fecha: utcDate}}

	d := BuildDashboard(trips, purchases, today)

	if d.ActiveTripCount != 1 {
		t.Errorf("ActiveTripCount = %d, want 1 (trip on the UTC date)", d.ActiveTripCount)
	}
	last := d.SpendSeries[len(d.SpendSeries)-1]
	if last.Fecha != "2026-09-01" || last.Total != 8000 {
		t.Errorf("last spend point = %+v, want 2026-09-01 / 8000", last)
	}
}

func TestBuildDashboardEfficiencyZeroWithoutFuel(t *testing.T) {
	today := day(2026, 9, 1)
	trips := []trip.Trip{closedTrip(1, 1, today, 0, 100)}

	d := BuildDashboard(trips, nil, today)

	if d.Efficiency != 0 {
		t.Errorf("Efficiency = %v, want 0 with no fuel", d.Efficiency)
	}
}

func TestBuildDashboardEfficiencyRounded(t *testing.T) {
	today := day(2026, 9, 1)
	trips := []trip.Trip{closedTrip(1, 1, today, 0, 49)}
	purchases := []fuel.Purchase{{VehiculoID: 1, Litros: 4, CostoTotal: 5000, Fecha: today}}

	d := BuildDashboard(trips, purchases, today)

	// 49 / 4 = 12.25, rounds half away from zero.
	if d.Efficiency != 12.3 {
		t.Errorf("Efficiency = %v, want 12.3", d.Efficiency)
	}
}

func TestBuildSpendSeries(t *testing.T) {
	today := day(2026, 9, 1)
	purchases := []fuel.Purchase{
		{VehiculoID: 1, Litros: 10, CostoTotal: 10000, Fecha: today},
		{VehiculoID: 1, Litros: 10, CostoTotal: 5000, Fecha: today},
		{VehiculoID: 1, Litros: 10, CostoTotal: 7000, Fecha: today.AddDate(0, 0, -6)},
		{VehiculoID: 1, Litros: 10, CostoTotal: 9000, Fecha: today.AddDate(0, 0, -7)}, // outside window
	}

	series := buildSpendSeries(purchases, today)

	if len(series) != 7 {
		t.Fatalf("series length = %d, want 7", len(series))
	}
	// Oldest first
	if series[0].Fecha != "2026-08-26" || series[0].Total != 7000 {
		t.Errorf("series[0] = %+v, want 2026-08-26 / 7000", series[0])
	}
	if series[6].Fecha != "2026-09-01" || series[6].Total != 15000 {
		t.Errorf("series[6] = %+v, want 2026-09-01 / 15000", series[6])
	}
	if series[0].Label != "26/08" {
		t.Errorf("series[0].Label = %q, want 26/08", series[0].Label)
	}
	for i, p := range series[1:6] {
		if p.Total != 0 {
			t.Errorf("series[%d].Total = %v, want 0", i+1, p.Total)
		}
	}
}

func TestBuildReportRestrictsPurchasesByDriverVehicles(t *testing.T) {
	today := day(2026, 9, 1)
	conductorID := int64(7)

	// Filtered trip set only touches vehicle 1.
	trips := []trip.Trip{closedTrip(1, 1, today, 0, 100)}
	purchases := []fuel.Purchase{
		{VehiculoID: 1, Litros: 10, CostoTotal: 10000, Fecha: today},
		{VehiculoID: 2, Litros: 30, CostoTotal: 30000, Fecha: today},
	}

	r := BuildReport(trips, purchases, nil, &conductorID)

	if r.TotalCost != 10000 {
		t.Errorf("TotalCost = %v, want 10000 (vehicle 2 purchase excluded)", r.TotalCost)
	}
	if r.TotalLiters != 10 {
		t.Errorf("TotalLiters = %v, want 10", r.TotalLiters)
	}
}

func TestBuildReportUnfilteredKeepsAllPurchases(t *testing.T) {
	today := day(2026, 9, 1)
	trips := []trip.Trip{closedTrip(1, 1, today, 0, 100)}
	purchases := []fuel.Purchase{
		{VehiculoID: 1, Litros: 10, CostoTotal: 10000, Fecha: today},
		{VehiculoID: 2, Litros: 30, CostoTotal: 30000, Fecha: today},
	}

	r := BuildReport(trips, purchases, nil, nil)

	if r.TotalCost != 40000 {
		t.Errorf("TotalCost = %v, want 40000", r.TotalCost)
	}
}

func TestBuildReportExcludesAdmins(t *testing.T) {
	drivers := []driver.Driver{
		{ID: 1, Nombre: "Ana", Rol: driver.RoleConductor},
		{ID: 2, Nombre: "Root", Rol: driver.RoleAdmin},
		{ID: 3, Nombre: "Luis", Rol: driver.RoleDeshabilitado},
	}

	r := BuildReport(nil, nil, drivers, nil)

	if len(r.EligibleDrivers) != 2 {
		t.Fatalf("EligibleDrivers = %d, want 2", len(r.EligibleDrivers))
	}
	for _, d := range r.EligibleDrivers {
		if d.Rol == driver.RoleAdmin {
			t.Errorf("admin %d leaked into eligible drivers", d.ID)
		}
	}
}

func TestBuildReportEmptyTripsNotNil(t *testing.T) {
	r := BuildReport(nil, nil, nil, nil)
	if r.Trips == nil {
		t.Error("Trips is nil, want empty slice")
	}
}

func TestBuildFuelStats(t *testing.T) {
	purchases := []fuel.Purchase{
		{Litros: 10, CostoTotal: 12000},
		{Litros: 20, CostoTotal: 22000},
	}

	stats := BuildFuelStats(purchases)

	if stats.Count != 2 {
		t.Errorf("Count = %d, want 2", stats.Count)
	}
	if stats.TotalLiters != 30 {
		t.Errorf("TotalLiters = %v, want 30", stats.TotalLiters)
	}
	// 34000 / 30 = 1133.33..., rounded to one decimal.
	if stats.AvgCostPerLiter != 1133.3 {
		t.Errorf("AvgCostPerLiter = %v, want 1133.3", stats.AvgCostPerLiter)
	}
}

func TestBuildFuelStatsZeroLiters(t *testing.T) {
	stats := BuildFuelStats(nil)
	if stats.AvgCostPerLiter != 0 {
		t.Errorf("AvgCostPerLiter = %v, want 0", stats.AvgCostPerLiter)
	}
}
