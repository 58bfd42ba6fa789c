package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/models/response"
	"smarta-landlord-svc/internal/repository"
	"smarta-landlord-svc/internal/session"
	"smarta-landlord-svc/pkg/logger"
)

// recentReadingsLimit is how many readings the dashboard shows
const recentReadingsLimit = 10

// DashboardService interface defines dashboard service methods
type DashboardService interface {
	GetStats(ctx context.Context, s session.Session) (*response.DashboardStatsResponse, error)
}

// dashboardService implements DashboardService interface
type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	readingRepo   repository.MeterReadingRepository
	paymentRepo   repository.PaymentRepository
	logger        *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	readingRepo repository.MeterReadingRepository,
	paymentRepo repository.PaymentRepository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		readingRepo:   readingRepo,
		paymentRepo:   paymentRepo,
		logger:        logger,
	}
}

// MeterActivityRate is round(active/total*100), or 0 when there are no meters
func MeterActivityRate(active, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(active) / float64(total) * 100))
}

// GetStats loads the dashboard figures concurrently; any failed read fails the whole call
func (s *dashboardService) GetStats(ctx context.Context, sess session.Session) (*response.DashboardStatsResponse, error) {
	var (
		properties, activeTenants int64
		meters                    *repository.MeterCounts
		readings                  []*models.MeterReading
		totalRevenue              decimal.Decimal
	)
	completed := models.PaymentStatusCompleted

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		properties, err = s.dashboardRepo.CountProperties(gctx, sess)
		return err
	})
	g.Go(func() (err error) {
		activeTenants, err = s.dashboardRepo.CountTenantsByStatus(gctx, sess, models.TenantStatusActive)
		return err
	})
	g.Go(func() (err error) {
		meters, err = s.dashboardRepo.GetMeterCounts(gctx, sess)
		return err
	})
	g.Go(func() (err error) {
		readings, err = s.readingRepo.ListLatest(gctx, sess, recentReadingsLimit)
		return err
	})
	g.Go(func() error {
		amounts, err := s.paymentRepo.Amounts(gctx, sess, repository.PaymentAmountFilter{Status: &completed})
		if err != nil {
			return err
		}
		totalRevenue = sumDecimals(amounts)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithField("landlord_id", sess.LandlordID).Error("Failed to get dashboard statistics")
		return nil, fmt.Errorf("failed to get dashboard statistics: %w", err)
	}

	if readings == nil {
		readings = []*models.MeterReading{}
	}

	stats := &response.DashboardStatsResponse{
		TotalProperties:   int(properties),
		ActiveTenants:     int(activeTenants),
		TotalMeters:       int(meters.Total),
		ActiveMeters:      int(meters.Active),
		MeterActivityRate: MeterActivityRate(meters.Active, meters.Total),
		RecentReadings:    readings,
		TotalRevenue:      totalRevenue,
	}

	s.logger.WithFields(map[string]interface{}{
		"landlord_id":      sess.LandlordID,
		"total_properties": stats.TotalProperties,
		"total_meters":     stats.TotalMeters,
	}).Info("Dashboard statistics retrieved successfully")

	return stats, nil
}
