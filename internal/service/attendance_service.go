package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hrms-lite-api/internal/models"
	"github.com/noah-isme/hrms-lite-api/internal/repository"
	appErrors "github.com/noah-isme/hrms-lite-api/pkg/errors"
)

type attendanceRepository interface {
	Upsert(ctx context.Context, record *models.Attendance) (*models.Attendance, error)
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	CountByStatus(ctx context.Context, employeeID string) (map[models.AttendanceStatus]int, error)
}

type employeeFinder interface {
	FindByCode(ctx context.Context, code string) (*models.Employee, error)
}

// MarkAttendanceRequest describes the payload for marking attendance.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Status     string `json:"status" validate:"required,attendance_status"`
}

// AttendanceService coordinates attendance workflows.
type AttendanceService struct {
	repo      attendanceRepository
	employees employeeFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, employees employeeFinder, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerJSONTagNames(validate)
	validate.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})
	return &AttendanceService{repo: repo, employees: employees, validator: validate, logger: logger}
}

// Mark records or overwrites the attendance status for an employee on a date.
// The write is a single conditional upsert keyed on the (employee, date)
// uniqueness constraint, so repeating the call never creates a duplicate row.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Validation("invalid attendance payload",
			appErrors.FieldError{Field: "date", Message: "invalid date format, expected YYYY-MM-DD"})
	}

	if err := s.requireEmployee(ctx, req.EmployeeID); err != nil {
		return nil, err
	}

	record := &models.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     models.AttendanceStatus(req.Status),
	}
	stored, err := s.repo.Upsert(ctx, record)
	if err != nil {
		// The employee check above can race with a concurrent delete; the
		// storage constraints are the final authority.
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("employee with ID '%s' not found", req.EmployeeID))
		}
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "attendance record already exists for this employee on this date")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark attendance")
	}
	s.logger.Info("attendance marked",
		zap.String("employee_id", stored.EmployeeID),
		zap.String("date", stored.Date.Format("2006-01-02")),
		zap.String("status", string(stored.Status)))
	return stored, nil
}

// List returns attendance records matching all supplied filters, newest first.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return rows, nil
}

// ListForEmployee returns one employee's records. The employee must exist even
// when the result would be empty.
func (s *AttendanceService) ListForEmployee(ctx context.Context, code string, start, end *time.Time) ([]models.AttendanceRecord, error) {
	if err := s.requireEmployee(ctx, code); err != nil {
		return nil, err
	}
	return s.List(ctx, models.AttendanceFilter{EmployeeID: code, StartDate: start, EndDate: end})
}

// Summary returns per-employee present/absent totals.
func (s *AttendanceService) Summary(ctx context.Context, code string) (*models.AttendanceSummary, error) {
	employee, err := s.employees.FindByCode(ctx, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("employee with ID '%s' not found", code))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	counts, err := s.repo.CountByStatus(ctx, code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise attendance")
	}
	present := counts[models.AttendanceStatusPresent]
	absent := counts[models.AttendanceStatusAbsent]
	return &models.AttendanceSummary{
		EmployeeID:   code,
		EmployeeName: employee.FullName,
		TotalPresent: present,
		TotalAbsent:  absent,
		TotalRecords: present + absent,
	}, nil
}

func (s *AttendanceService) requireEmployee(ctx context.Context, code string) error {
	if _, err := s.employees.FindByCode(ctx, code); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("employee with ID '%s' not found", code))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	return nil
}
