package service

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/hrms-lite-api/internal/models"
	"github.com/noah-isme/hrms-lite-api/internal/repository"
	appErrors "github.com/noah-isme/hrms-lite-api/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type employeeRepository interface {
	List(ctx context.Context) ([]models.Employee, error)
	FindByCode(ctx context.Context, code string) (*models.Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, code string) (int64, error)
}

// CreateEmployeeRequest holds payload for registering employees.
type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Department string `json:"department" validate:"required"`
}

// DeleteEmployeeResponse confirms a removal.
type DeleteEmployeeResponse struct {
	Message string `json:"message"`
}

// EmployeeService handles employee registry use-cases.
type EmployeeService struct {
	repo      employeeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs the employee service.
func NewEmployeeService(repo employeeRepository, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerJSONTagNames(validate)
	return &EmployeeService{repo: repo, validator: validate, logger: logger}
}

// List returns every employee, most recently created first.
func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
	}
	return employees, nil
}

// Get returns the employee matching the external code.
func (s *EmployeeService) Get(ctx context.Context, code string) (*models.Employee, error) {
	employee, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("employee with ID '%s' not found", code))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	return employee, nil
}

// Create registers a new employee. Uniqueness of code and email is pre-checked
// for fast feedback; the storage constraints remain the final authority and a
// violation raised at insert time maps to the same conflict outcome.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid employee payload")
	}

	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Department = strings.TrimSpace(req.Department)

	var fields []appErrors.FieldError
	if req.EmployeeID == "" {
		fields = append(fields, appErrors.FieldError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if req.FullName == "" {
		fields = append(fields, appErrors.FieldError{Field: "full_name", Message: "Full name is required"})
	}
	if req.Email == "" {
		fields = append(fields, appErrors.FieldError{Field: "email", Message: "Email is required"})
	} else if !emailPattern.MatchString(req.Email) {
		fields = append(fields, appErrors.FieldError{Field: "email", Message: "Invalid email format"})
	}
	if req.Department == "" {
		fields = append(fields, appErrors.FieldError{Field: "department", Message: "Department is required"})
	}
	if len(fields) > 0 {
		return nil, appErrors.Validation("invalid employee payload", fields...)
	}

	exists, err := s.repo.ExistsByCode(ctx, req.EmployeeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate employee id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("employee with ID '%s' already exists", req.EmployeeID))
	}

	exists, err = s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("employee with email '%s' already exists", req.Email))
	}

	employee := &models.Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "an employee with this ID or email already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create employee")
	}
	s.logger.Info("employee created", zap.String("employee_id", employee.EmployeeID))
	return employee, nil
}

// Delete removes an employee by code; dependent attendance records are removed
// by the storage cascade.
func (s *EmployeeService) Delete(ctx context.Context, code string) (*DeleteEmployeeResponse, error) {
	affected, err := s.repo.Delete(ctx, code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete employee")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("employee with ID '%s' not found", code))
	}
	s.logger.Info("employee deleted", zap.String("employee_id", code))
	return &DeleteEmployeeResponse{Message: fmt.Sprintf("Employee '%s' deleted successfully", code)}, nil
}
