package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-workforce/internal/biz"
	"go-workforce/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewEmployeeService)

// EmployeeService exposes workforce operations over HTTP.
type EmployeeService struct {
	uc  *biz.EmployeeUsecase
	log *log.Helper
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(uc *biz.EmployeeUsecase, logger log.Logger) *EmployeeService {
	return &EmployeeService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

type hireRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Salary   int64  `json:"salary"`
}

type promoteRequest struct {
	Position string `json:"position"`
	Raise    int64  `json:"raise"`
}

type terminateRequest struct {
	Reason string `json:"reason"`
}

type employeeReply struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Salary     int64     `json:"salary"`
	HiredAt    time.Time `json:"hired_at"`
	Terminated bool      `json:"terminated"`
}

type listReply struct {
	Employees []employeeReply `json:"employees"`
	Total     int             `json:"total"`
}

func toEmployeeReply(e *domain.Employee) employeeReply {
	return employeeReply{
		ID:         e.ID(),
		Name:       e.Name(),
		Position:   e.Position(),
		Salary:     e.Salary(),
		HiredAt:    e.HiredAt(),
		Terminated: e.Terminated(),
	}
}

// HandleEmployees serves POST /employees (hire) and GET /employees (list).
func (s *EmployeeService) HandleEmployees(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req hireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		e, err := s.uc.Hire(r.Context(), req.Name, req.Position, req.Salary)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEmployeeReply(e))

	case http.MethodGet:
		page := queryInt(r, "page", 1)
		pageSize := queryInt(r, "page_size", 20)
		employees, total, err := s.uc.List(r.Context(), page, pageSize)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		reply := listReply{Employees: make([]employeeReply, 0, len(employees)), Total: total}
		for _, e := range employees {
			reply.Employees = append(reply.Employees, toEmployeeReply(e))
		}
		writeJSON(w, http.StatusOK, reply)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleEmployee serves the /employees/{id} subtree:
// GET /employees/{id}, DELETE /employees/{id},
// POST /employees/{id}/promote, POST /employees/{id}/terminate.
func (s *EmployeeService) HandleEmployee(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/employees/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		e, err := s.uc.Get(r.Context(), id)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEmployeeReply(e))

	case action == "" && r.Method == http.MethodDelete:
		if err := s.uc.Remove(r.Context(), id); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case action == "promote" && r.Method == http.MethodPost:
		var req promoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		e, err := s.uc.Promote(r.Context(), id, req.Position, req.Raise)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEmployeeReply(e))

	case action == "terminate" && r.Method == http.MethodPost:
		var req terminateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.uc.Terminate(r.Context(), id, req.Reason); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *EmployeeService) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidEmployee), errors.Is(err, domain.ErrEmployeeTerminated):
		writeError(w, http.StatusBadRequest, err)
	default:
		s.log.WithContext(r.Context()).Errorf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
