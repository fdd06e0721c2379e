package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/hrms-lite-api/internal/models"
	appErrors "github.com/noah-isme/hrms-lite-api/pkg/errors"
)

type mockEmployeeRepo struct {
	employees map[string]models.Employee
	createErr error
	nextID    int64
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]models.Employee)}
}

func (m *mockEmployeeRepo) List(ctx context.Context) ([]models.Employee, error) {
	out := make([]models.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEmployeeRepo) FindByCode(ctx context.Context, code string) (*models.Employee, error) {
	if e, ok := m.employees[code]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEmployeeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, ok := m.employees[code]
	return ok, nil
}

func (m *mockEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	employee.ID = m.nextID
	m.employees[employee.EmployeeID] = *employee
	return nil
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, code string) (int64, error) {
	if _, ok := m.employees[code]; !ok {
		return 0, nil
	}
	delete(m.employees, code)
	return 1, nil
}

func asAppError(t *testing.T, err error) *appErrors.Error {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	return appErr
}

func TestEmployeeServiceCreate(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := NewEmployeeService(repo, validator.New(), zap.NewNop())

	employee, err := svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeID: " E1 ",
		FullName:   "Alice",
		Email:      "Alice@X.com",
		Department: "Eng",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), employee.ID)
	assert.Equal(t, "E1", employee.EmployeeID)
	assert.Equal(t, "alice@x.com", employee.Email)
	assert.Len(t, repo.employees, 1)
}

func TestEmployeeServiceCreateDuplicateCode(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := NewEmployeeService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeID: "E1", FullName: "Alice", Email: "alice@x.com", Department: "Eng",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeID: "E1", FullName: "Other", Email: "other@x.com", Department: "Ops",
	})
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Len(t, repo.employees, 1)
}

func TestEmployeeServiceCreateDuplicateEmailCaseInsensitive(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := NewEmployeeService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeID: "E1", FullName: "Alice", Email: "alice@x.com", Department: "Eng",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeID: "E2", FullName: "Impostor", Email: "ALICE@X.COM", Department: "Ops",
	})
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Len(t, repo.employees, 1)
}

func TestEmployeeServiceCreateEmptyFullName(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := NewEmployeeService(repo, validator.New(), zap.NewNop())

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), CreateEmployeeRequest{
			EmployeeID: "E1", FullName: name, Email: "alice@x.com", Department: "Eng",
		})
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
		require.NotEmpty(t, appErr.Fields)
		assert.Equal(t, "full_name", appErr.Fields[0].Field)
	}
	assert.Empty(t, repo.employees)
}

func TestEmployeeServiceCreateInvalidEmail(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := NewEmployeeService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeID: "E1", FullName: "Alice", Email: "not-an-email", Department: "Eng",
	})
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	require.NotEmpty(t, appErr.Fields)
	assert.Equal(t, "email", appErr.Fields[0].Field)
}

func TestEmployeeServiceCreateConstraintRace(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.createErr = &pq.Error{Code: "23505"}
	svc := NewEmployeeService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		EmployeeID: "E1", FullName: "Alice", Email: "alice@x.com", Department: "Eng",
	})
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestEmployeeServiceGetNotFound(t *testing.T) {
	svc := NewEmployeeService(newMockEmployeeRepo(), validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "missing")
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestEmployeeServiceDelete(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.employees["E1"] = models.Employee{ID: 1, EmployeeID: "E1", FullName: "Alice"}
	svc := NewEmployeeService(repo, validator.New(), zap.NewNop())

	confirmation, err := svc.Delete(context.Background(), "E1")
	require.NoError(t, err)
	assert.Contains(t, confirmation.Message, "E1")
	assert.Empty(t, repo.employees)

	_, err = svc.Delete(context.Background(), "E1")
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}
