package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hrms-lite-api/internal/models"
	"github.com/noah-isme/hrms-lite-api/internal/service"
	appErrors "github.com/noah-isme/hrms-lite-api/pkg/errors"
	"github.com/noah-isme/hrms-lite-api/pkg/response"
)

type attendanceService interface {
	Mark(ctx context.Context, req service.MarkAttendanceRequest) (*models.Attendance, error)
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	ListForEmployee(ctx context.Context, code string, start, end *time.Time) ([]models.AttendanceRecord, error)
	Summary(ctx context.Context, code string) (*models.AttendanceSummary, error)
}

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List godoc
// @Summary List attendance records
// @Tags Attendance
// @Produce json
// @Param employee_id query string false "Filter by employee code"
// @Param start_date query string false "Filter from date (YYYY-MM-DD)"
// @Param end_date query string false "Filter to date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	start, err := parseDateParam(c.Query("start_date"), "start_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseDateParam(c.Query("end_date"), "end_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.AttendanceFilter{
		EmployeeID: c.Query("employee_id"),
		StartDate:  start,
		EndDate:    end,
	}
	rows, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// ListForEmployee godoc
// @Summary List attendance for one employee
// @Tags Attendance
// @Produce json
// @Param employee_id path string true "Employee code"
// @Param start_date query string false "Filter from date (YYYY-MM-DD)"
// @Param end_date query string false "Filter to date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/employee/{employee_id} [get]
func (h *AttendanceHandler) ListForEmployee(c *gin.Context) {
	start, err := parseDateParam(c.Query("start_date"), "start_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseDateParam(c.Query("end_date"), "end_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.attendance.ListForEmployee(c.Request.Context(), c.Param("employee_id"), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Summary godoc
// @Summary Present/absent totals for one employee
// @Tags Attendance
// @Produce json
// @Param employee_id path string true "Employee code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/employee/{employee_id}/summary [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	summary, err := h.attendance.Summary(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Mark godoc
// @Summary Mark or update attendance for a day
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	record, err := h.attendance.Mark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}
