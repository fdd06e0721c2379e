package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hrms-lite-api/internal/models"
)

var testEmployee = models.Employee{
	EmployeeID: "E1",
	FullName:   "Alice",
	Email:      "alice@x.com",
	Department: "Eng",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestEmployeeRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "employee_id", "full_name", "email", "department", "created_at", "updated_at"}).
		AddRow(2, "E2", "Bob", "bob@x.com", "Ops", time.Now(), time.Now()).
		AddRow(1, "E1", "Alice", "alice@x.com", "Eng", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM employees ORDER BY id DESC").WillReturnRows(rows)

	employees, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, employees, 2)
	assert.Equal(t, "E2", employees[0].EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryFindByCode(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "employee_id", "full_name", "email", "department", "created_at", "updated_at"}).
		AddRow(1, "E1", "Alice", "alice@x.com", "Eng", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM employees WHERE employee_id = \\$1").
		WithArgs("E1").
		WillReturnRows(rows)

	employee, err := repo.FindByCode(context.Background(), "E1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", employee.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryExistsByCode(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery("SELECT 1 FROM employees WHERE employee_id = \\$1").
		WithArgs("E1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM employees WHERE employee_id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsByCode(context.Background(), "E1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery("INSERT INTO employees").
		WithArgs("E1", "Alice", "alice@x.com", "Eng", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	created := testEmployee
	err := repo.Create(context.Background(), &created)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryCreateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	mock.ExpectQuery("INSERT INTO employees").
		WillReturnError(&pq.Error{Code: "23505"})

	created := testEmployee
	err := repo.Create(context.Background(), &created)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("DELETE FROM employees WHERE employee_id = \\$1").
		WithArgs("E1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM employees WHERE employee_id = \\$1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), "E1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
