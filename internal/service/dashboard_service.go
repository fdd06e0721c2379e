package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hrms-lite-api/internal/dto"
	"github.com/noah-isme/hrms-lite-api/internal/models"
	appErrors "github.com/noah-isme/hrms-lite-api/pkg/errors"
)

const recentAttendanceLimit = 10

type dashboardRepository interface {
	CountEmployees(ctx context.Context) (int, error)
	CountDistinctDepartments(ctx context.Context) (int, error)
	CountAttendanceByStatus(ctx context.Context, date time.Time, status models.AttendanceStatus) (int, error)
	RecentAttendance(ctx context.Context, limit int) ([]models.AttendanceRecord, error)
	DepartmentBreakdown(ctx context.Context) ([]models.DepartmentCount, error)
}

// DashboardService composes process-wide counts into the summary payload.
// Every call computes the payload fresh from storage.
type DashboardService struct {
	repo   dashboardRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(repo dashboardRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, logger: logger, now: time.Now}
}

// Summary aggregates employee and attendance statistics for the current day.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	totalEmployees, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count employees")
	}
	departmentCount, err := s.repo.CountDistinctDepartments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count departments")
	}
	presentToday, err := s.repo.CountAttendanceByStatus(ctx, today, models.AttendanceStatusPresent)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count today's attendance")
	}
	absentToday, err := s.repo.CountAttendanceByStatus(ctx, today, models.AttendanceStatusAbsent)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count today's attendance")
	}
	recent, err := s.repo.RecentAttendance(ctx, recentAttendanceLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent attendance")
	}
	breakdown, err := s.repo.DepartmentBreakdown(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department stats")
	}

	feed := make([]dto.RecentAttendanceEntry, 0, len(recent))
	for _, record := range recent {
		feed = append(feed, dto.RecentAttendanceEntry{
			ID:           record.ID,
			EmployeeID:   record.EmployeeID,
			EmployeeName: record.EmployeeName,
			Date:         record.Date.Format("2006-01-02"),
			Status:       record.Status,
		})
	}
	if breakdown == nil {
		breakdown = []models.DepartmentCount{}
	}

	// Each employee has at most one attendance row per day, so the derived
	// unmarked count cannot go negative while the uniqueness invariant holds.
	return &dto.DashboardSummaryResponse{
		TotalEmployees:    totalEmployees,
		DepartmentCount:   departmentCount,
		TotalPresentToday: presentToday,
		TotalAbsentToday:  absentToday,
		UnmarkedToday:     totalEmployees - presentToday - absentToday,
		RecentAttendance:  feed,
		DepartmentStats:   breakdown,
	}, nil
}
