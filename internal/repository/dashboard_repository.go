package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hrms-lite-api/internal/models"
)

// DashboardRepository serves the count and group-by queries composed into the
// dashboard summary.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountEmployees returns the total number of employees.
func (r *DashboardRepository) CountEmployees(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM employees"); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return total, nil
}

// CountDistinctDepartments counts distinct department strings. Case and
// whitespace variants count as distinct values.
func (r *DashboardRepository) CountDistinctDepartments(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(DISTINCT department) FROM employees"); err != nil {
		return 0, fmt.Errorf("count departments: %w", err)
	}
	return total, nil
}

// CountAttendanceByStatus counts attendance rows for one date and status.
func (r *DashboardRepository) CountAttendanceByStatus(ctx context.Context, date time.Time, status models.AttendanceStatus) (int, error) {
	const query = "SELECT COUNT(*) FROM attendance WHERE date = $1 AND status = $2"
	var total int
	if err := r.db.GetContext(ctx, &total, query, date, status); err != nil {
		return 0, fmt.Errorf("count attendance by status: %w", err)
	}
	return total, nil
}

// RecentAttendance returns the most recent attendance rows joined with the
// owning employee's name. Ties on date break by identifier order.
func (r *DashboardRepository) RecentAttendance(ctx context.Context, limit int) ([]models.AttendanceRecord, error) {
	const query = `SELECT a.id, a.employee_id, a.date, a.status, a.created_at, a.updated_at,
        e.full_name AS employee_name
        FROM attendance a
        JOIN employees e ON e.employee_id = a.employee_id
        ORDER BY a.date DESC, a.id DESC
        LIMIT $1`
	var rows []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("recent attendance: %w", err)
	}
	return rows, nil
}

// DepartmentBreakdown returns the employee count per distinct department.
func (r *DashboardRepository) DepartmentBreakdown(ctx context.Context) ([]models.DepartmentCount, error) {
	const query = `SELECT department, COUNT(id) AS count FROM employees GROUP BY department`
	var rows []models.DepartmentCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("department breakdown: %w", err)
	}
	return rows, nil
}
