package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hrms-lite-api/internal/models"
)

// AttendanceRepository handles persistence for daily attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert inserts an attendance record or, when one already exists for the
// (employee, date) pair, overwrites its status in place. The conflict target is
// the unique constraint on (employee_id, date), so the write can never produce
// two rows for the same pair.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) (*models.Attendance, error) {
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO attendance (employee_id, date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (employee_id, date)
DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
RETURNING id, employee_id, date, status, created_at, updated_at`
	var stored models.Attendance
	if err := r.db.GetContext(ctx, &stored, query,
		record.EmployeeID, record.Date, record.Status, record.CreatedAt, record.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return &stored, nil
}

// List returns attendance rows matching the provided filter, newest date first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	base := `FROM attendance a
JOIN employees e ON e.employee_id = a.employee_id`
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.EmployeeID != "" {
		where = append(where, fmt.Sprintf("a.employee_id = $%d", len(args)+1))
		args = append(args, filter.EmployeeID)
	}
	if filter.StartDate != nil {
		where = append(where, fmt.Sprintf("a.date >= $%d", len(args)+1))
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		where = append(where, fmt.Sprintf("a.date <= $%d", len(args)+1))
		args = append(args, *filter.EndDate)
	}

	query := fmt.Sprintf(`SELECT a.id, a.employee_id, a.date, a.status, a.created_at, a.updated_at,
        e.full_name AS employee_name
        %s WHERE %s
        ORDER BY a.date DESC, a.id DESC`, base, strings.Join(where, " AND "))

	var rows []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return rows, nil
}

// CountByStatus aggregates per-status counts for one employee.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, employeeID string) (map[models.AttendanceStatus]int, error) {
	const query = `SELECT status, COUNT(*) AS cnt FROM attendance WHERE employee_id = $1 GROUP BY status`
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"cnt"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, employeeID); err != nil {
		return nil, fmt.Errorf("attendance status counts: %w", err)
	}
	counts := make(map[models.AttendanceStatus]int, len(rows))
	for _, row := range rows {
		counts[models.AttendanceStatus(row.Status)] = row.Count
	}
	return counts, nil
}
