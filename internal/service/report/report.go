// internal/service/report/report.go
package report

import (
	"context"
	"fmt"
	"time"

	"flota-service/internal/domain/driver"
	"flota-service/internal/domain/fuel"
	"flota-service/internal/domain/trip"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService struct {
	tripRepo   trip.Repository
	fuelRepo   fuel.Repository
	driverRepo driver.Repository
	renderer   Renderer
	logger     *zap.Logger
}

func NewReportService(tripRepo trip.Repository, fuelRepo fuel.Repository, driverRepo driver.Repository, renderer Renderer, logger *zap.Logger) *ReportService {
	return &ReportService{
		tripRepo:   tripRepo,
		fuelRepo:   fuelRepo,
		driverRepo: driverRepo,
		renderer:   renderer,
		logger:     logger,
	}
}

// Dashboard loads the entity set and computes the landing-page KPIs.
func (s *ReportService) Dashboard(ctx context.Context, today time.Time) (*Dashboard, error) {
	trips, err := s.tripRepo.List(ctx, trip.Filters{})
	if err != nil {
		return nil, err
	}
	purchases, err := s.fuelRepo.List(ctx, fuel.Filters{})
	if err != nil {
		return nil, err
	}

	d := BuildDashboard(trips, purchases, today)
	return &d, nil
}

// Report loads filtered trips and date-filtered purchases and computes the
// report dataset. Driver restriction of purchases happens in BuildReport,
// derived from the filtered trip set.
func (s *ReportService) Report(ctx context.Context, f Filters) (*Report, error) {
	trips, err := s.tripRepo.List(ctx, trip.Filters{
		DateFrom:    f.DateFrom,
		DateTo:      f.DateTo,
		ConductorID: f.ConductorID,
	})
	if err != nil {
		return nil, err
	}

	purchases, err := s.fuelRepo.List(ctx, fuel.Filters{
		DateFrom: f.DateFrom,
		DateTo:   f.DateTo,
	})
	if err != nil {
		return nil, err
	}

	drivers, err := s.driverRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	r := BuildReport(trips, purchases, drivers, f.ConductorID)
	return &r, nil
}

// FuelStats computes the fuel overview KPIs over all purchases.
func (s *ReportService) FuelStats(ctx context.Context) (*FuelStats, error) {
	purchases, err := s.fuelRepo.List(ctx, fuel.Filters{})
	if err != nil {
		return nil, err
	}

	stats := BuildFuelStats(purchases)
	return &stats, nil
}

// Export renders the filtered report through the configured renderer. The
// document is stamped with the requesting user's name, resolved from
// identityID; 0 or an unresolvable id falls back to "sistema".
func (s *ReportService) Export(ctx context.Context, f Filters, identityID int64) ([]byte, string, error) {
	if s.renderer == nil {
		return nil, "", fmt.Errorf("no report renderer configured")
	}

	r, err := s.Report(ctx, f)
	if err != nil {
		return nil, "", err
	}

	generatedBy := "sistema"
	if identityID != 0 {
		if u, err := s.driverRepo.FindByID(ctx, identityID); err == nil {
			generatedBy = u.Nombre
		} else {
			s.logger.Warn("could not resolve exporting user",
				zap.Int64("identity_id", identityID),
				zap.Error(err),
			)
		}
	}

	doc := &Document{
		Title:        "Reporte de flota",
		Subtitle:     subtitleFor(f),
		GeneratedAt:  time.Now(),
		GeneratedBy:  generatedBy,
		GenerationID: uuid.NewString(),
		Report:       *r,
	}

	out, err := s.renderer.Render(ctx, doc)
	if err != nil {
		s.logger.Error("report rendering failed",
			zap.String("generation_id", doc.GenerationID),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("failed to render report: %w", err)
	}

	s.logger.Info("report exported",
		zap.String("generation_id", doc.GenerationID),
		zap.String("generated_by", generatedBy),
		zap.Int("trips", len(r.Trips)),
	)

	return out, s.renderer.ContentType(), nil
}

func subtitleFor(f Filters) string {
	from, to := "inicio", "hoy"
	if f.DateFrom != nil {
		from = f.DateFrom.Format("2006-01-02")
	}
	if f.DateTo != nil {
		to = f.DateTo.Format("2006-01-02")
	}
	if f.ConductorID != nil {
		return fmt.Sprintf("%s a %s, conductor %d", from, to, *f.ConductorID)
	}
	return fmt.Sprintf("%s a %s", from, to)
}
