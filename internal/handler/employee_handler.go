package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hrms-lite-api/internal/models"
	"github.com/noah-isme/hrms-lite-api/internal/service"
	appErrors "github.com/noah-isme/hrms-lite-api/pkg/errors"
	"github.com/noah-isme/hrms-lite-api/pkg/response"
)

type employeeService interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, code string) (*models.Employee, error)
	Create(ctx context.Context, req service.CreateEmployeeRequest) (*models.Employee, error)
	Delete(ctx context.Context, code string) (*service.DeleteEmployeeResponse, error)
}

// EmployeeHandler exposes employee registry endpoints.
type EmployeeHandler struct {
	employees employeeService
}

// NewEmployeeHandler constructs EmployeeHandler.
func NewEmployeeHandler(employees employeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// List godoc
// @Summary List employees
// @Tags Employees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employees.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, employees)
}

// Get godoc
// @Summary Get one employee by code
// @Tags Employees
// @Produce json
// @Param employee_id path string true "Employee code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /employees/{employee_id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employees.Get(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, employee)
}

// Create godoc
// @Summary Register an employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param payload body service.CreateEmployeeRequest true "Employee payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req service.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	employee, err := h.employees.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, employee)
}

// Delete godoc
// @Summary Delete an employee
// @Tags Employees
// @Produce json
// @Param employee_id path string true "Employee code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /employees/{employee_id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	confirmation, err := h.employees.Delete(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, confirmation)
}
