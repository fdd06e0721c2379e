package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hrms-lite-api/internal/models"
)

func TestAttendanceRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "employee_id", "date", "status", "created_at", "updated_at"}).
		AddRow(3, "E1", date, "Present", time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs("E1", date, models.AttendanceStatusPresent, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	stored, err := repo.Upsert(context.Background(), &models.Attendance{
		EmployeeID: "E1",
		Date:       date,
		Status:     models.AttendanceStatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.ID)
	assert.Equal(t, models.AttendanceStatusPresent, stored.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "employee_id", "date", "status", "created_at", "updated_at", "employee_name"}).
		AddRow(2, "E1", end, "Absent", time.Now(), time.Now(), "Alice").
		AddRow(1, "E1", start, "Present", time.Now(), time.Now(), "Alice")
	mock.ExpectQuery("SELECT (.+) FROM attendance a\\s+JOIN employees e (.+) ORDER BY a.date DESC, a.id DESC").
		WithArgs("E1", start, end).
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), models.AttendanceFilter{
		EmployeeID: "E1",
		StartDate:  &start,
		EndDate:    &end,
	})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].EmployeeName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListNoFilters(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM attendance a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "date", "status", "created_at", "updated_at", "employee_name"}))

	records, err := repo.List(context.Background(), models.AttendanceFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCountByStatus(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"status", "cnt"}).
		AddRow("Present", 12).
		AddRow("Absent", 3)
	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) AS cnt FROM attendance WHERE employee_id = \\$1 GROUP BY status").
		WithArgs("E1").
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background(), "E1")
	require.NoError(t, err)
	assert.Equal(t, 12, counts[models.AttendanceStatusPresent])
	assert.Equal(t, 3, counts[models.AttendanceStatusAbsent])
	assert.NoError(t, mock.ExpectationsWereMet())
}
