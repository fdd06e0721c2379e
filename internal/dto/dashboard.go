package dto

import "github.com/noah-isme/hrms-lite-api/internal/models"

// RecentAttendanceEntry is one row of the dashboard activity feed.
type RecentAttendanceEntry struct {
	ID           int64                   `json:"id"`
	EmployeeID   string                  `json:"employee_id"`
	EmployeeName string                  `json:"employee_name"`
	Date         string                  `json:"date"`
	Status       models.AttendanceStatus `json:"status"`
}

// DashboardSummaryResponse is the aggregate payload for the dashboard endpoint.
type DashboardSummaryResponse struct {
	TotalEmployees    int                      `json:"total_employees"`
	DepartmentCount   int                      `json:"department_count"`
	TotalPresentToday int                      `json:"total_present_today"`
	TotalAbsentToday  int                      `json:"total_absent_today"`
	UnmarkedToday     int                      `json:"unmarked_today"`
	RecentAttendance  []RecentAttendanceEntry  `json:"recent_attendance"`
	DepartmentStats   []models.DepartmentCount `json:"department_stats"`
}
