package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/hrms-lite-api/internal/models"
)

// IsUniqueViolation reports whether err stems from a PostgreSQL unique constraint.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err stems from a referential integrity check.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// EmployeeRepository manages persistence for employee records.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs an EmployeeRepository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns all employees, most recently created first.
func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	const query = `SELECT id, employee_id, full_name, email, department, created_at, updated_at
        FROM employees ORDER BY id DESC`
	var employees []models.Employee
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// FindByCode fetches an employee by external employee code.
func (r *EmployeeRepository) FindByCode(ctx context.Context, code string) (*models.Employee, error) {
	const query = `SELECT id, employee_id, full_name, email, department, created_at, updated_at
        FROM employees WHERE employee_id = $1`
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, code); err != nil {
		return nil, err
	}
	return &employee, nil
}

// ExistsByCode checks if an employee with the given code exists.
func (r *EmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	const query = "SELECT 1 FROM employees WHERE employee_id = $1 LIMIT 1"
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, code); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check employee code: %w", err)
	}
	return true, nil
}

// ExistsByEmail checks if an employee with the given email exists. Emails are
// stored lowercase, so the lookup is effectively case-insensitive.
func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = "SELECT 1 FROM employees WHERE email = $1 LIMIT 1"
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check employee email: %w", err)
	}
	return true, nil
}

// Create inserts a new employee and fills in the assigned identifier.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	now := time.Now().UTC()
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = now
	}
	employee.UpdatedAt = now
	const query = `INSERT INTO employees (employee_id, full_name, email, department, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.GetContext(ctx, &employee.ID, query,
		employee.EmployeeID, employee.FullName, employee.Email, employee.Department,
		employee.CreatedAt, employee.UpdatedAt); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

// Delete removes an employee by code. Dependent attendance rows are removed by
// the ON DELETE CASCADE constraint. Returns the number of deleted employees.
func (r *EmployeeRepository) Delete(ctx context.Context, code string) (int64, error) {
	const query = `DELETE FROM employees WHERE employee_id = $1`
	result, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return 0, fmt.Errorf("delete employee: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete employee: %w", err)
	}
	return affected, nil
}
