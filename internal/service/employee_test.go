package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-workforce/internal/biz"
	"go-workforce/internal/conf"
	"go-workforce/internal/data"
	"go-workforce/internal/domain"
	"go-workforce/internal/domain/event"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *EmployeeService {
	t.Helper()
	logger := log.DefaultLogger

	c := &conf.Data{
		Database: &conf.Database{
			Driver: "sqlite3",
			Source: "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1",
		},
	}
	d, cleanup, err := data.NewData(c, logger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	registry := event.NewRegistry(biz.NewResolver(logger), logger)
	uow := domain.NewUnitOfWork(d, registry, logger)
	uc := biz.NewEmployeeUsecase(data.NewEmployeeRepo(d, logger), uow, logger)
	return NewEmployeeService(uc, logger)
}

func (s *EmployeeService) serveMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/employees", s.HandleEmployees)
	mux.HandleFunc("/employees/", s.HandleEmployee)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func hireOne(t *testing.T, mux *http.ServeMux) employeeReply {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/employees", hireRequest{
		Name: "Alice", Position: "Engineer", Salary: 90000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var reply employeeReply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
	return reply
}

func TestEmployeeService_Hire(t *testing.T) {
	mux := newTestService(t).serveMux()

	reply := hireOne(t, mux)

	assert.NotEmpty(t, reply.ID)
	assert.Equal(t, "Alice", reply.Name)
	assert.Equal(t, "Engineer", reply.Position)
	assert.Equal(t, int64(90000), reply.Salary)
}

func TestEmployeeService_Hire_InvalidPayload(t *testing.T) {
	mux := newTestService(t).serveMux()

	rec := doJSON(t, mux, http.MethodPost, "/employees", hireRequest{
		Name: "", Position: "Engineer", Salary: 90000,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeeService_GetAndList(t *testing.T) {
	mux := newTestService(t).serveMux()
	hired := hireOne(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/employees/"+hired.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got employeeReply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, hired.ID, got.ID)

	rec = doJSON(t, mux, http.MethodGet, "/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list listReply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Employees, 1)
}

func TestEmployeeService_Get_NotFound(t *testing.T) {
	mux := newTestService(t).serveMux()

	rec := doJSON(t, mux, http.MethodGet, "/employees/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeService_Promote(t *testing.T) {
	mux := newTestService(t).serveMux()
	hired := hireOne(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/employees/"+hired.ID+"/promote", promoteRequest{
		Position: "Senior Engineer", Raise: 10000,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var got employeeReply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Senior Engineer", got.Position)
	assert.Equal(t, int64(100000), got.Salary)
}

func TestEmployeeService_TerminateThenPromote(t *testing.T) {
	mux := newTestService(t).serveMux()
	hired := hireOne(t, mux)

	rec := doJSON(t, mux, http.MethodPost, "/employees/"+hired.ID+"/terminate", terminateRequest{
		Reason: "resigned",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/employees/"+hired.ID+"/promote", promoteRequest{
		Position: "Lead", Raise: 1000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeeService_Delete(t *testing.T) {
	mux := newTestService(t).serveMux()
	hired := hireOne(t, mux)

	rec := doJSON(t, mux, http.MethodDelete, "/employees/"+hired.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/employees/"+hired.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeService_MethodNotAllowed(t *testing.T) {
	mux := newTestService(t).serveMux()

	rec := doJSON(t, mux, http.MethodPut, "/employees", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
