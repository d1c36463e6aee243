/*
handlers.go - HTTP handlers for the leave API

PURPOSE:
  Thin transport over the accounting engine: decode JSON, validate the
  payload, call one engine operation, encode the result. No business
  rules live here.

ERROR MAPPING:
  Business-rule violations are recoverable and map to client errors:
  404 for missing records, 400 for everything else, body {"error": msg}.
  Anything else is a storage failure and maps to 500.

SEE ALSO:
  - server.go: routing and middleware
  - dto.go: request payloads
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/novellusaahmad/HolidayDashboard/leave"
	"github.com/novellusaahmad/HolidayDashboard/query"
)

type Handler struct {
	service  *leave.Service
	log      *slog.Logger
	validate *validator.Validate
}

func NewHandler(service *leave.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		service:  service,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// =============================================================================
// HEALTH
// =============================================================================

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListEmployees()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, query.SortedByID(employees))
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	employee, err := h.service.CreateEmployee(req.Name, req.EmployeeID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, employee)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.service.GetEmployee(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, employee)
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	balance, err := h.service.GetBalance(chi.URLParam(r, "id"), year)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, balance)
}

// =============================================================================
// LEAVE APPLICATIONS
// =============================================================================

func (h *Handler) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	var req ApplyLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}
	application, err := h.service.ApplyForLeave(req.EmployeeID, req.Date, leave.LeaveType(req.LeaveType), req.Reason, req.RequestedBy)
	if err != nil {
		h.respondError(w, err)
		return
	}
	ApplicationsSubmitted.Inc()
	h.respond(w, http.StatusCreated, application)
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := h.service.GetApplications(
		r.URL.Query().Get("employee_id"),
		leave.Status(r.URL.Query().Get("status")),
	)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if applications == nil {
		applications = []*leave.Application{}
	}
	h.respond(w, http.StatusOK, applications)
}

func (h *Handler) DecideLeave(w http.ResponseWriter, r *http.Request) {
	var req DecisionRequest
	if !h.decode(w, r, &req) {
		return
	}
	application, err := h.service.DecideLeave(chi.URLParam(r, "id"), req.Approver, req.Decision, req.Comment)
	if err != nil {
		h.respondError(w, err)
		return
	}
	DecisionsRecorded.WithLabelValues(string(application.Status)).Inc()
	h.respond(w, http.StatusOK, application)
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	if year <= 0 {
		year = leave.DateOf(h.service.Now()).Year()
	}
	recent := 10
	if raw := r.URL.Query().Get("recent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.respond(w, http.StatusBadRequest, ErrorResponse{Error: "recent must be an integer"})
			return
		}
		recent = n
	}

	dashboard, err := query.BuildDashboard(h.service, year, recent)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, dashboard)
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads and validates the JSON body, answering 400 itself on
// failure. Returns false when the caller should stop.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respond(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) && len(fields) > 0 {
			h.respond(w, http.StatusBadRequest, ErrorResponse{Error: "'" + fields[0].Field() + "' failed validation: " + fields[0].Tag()})
			return false
		}
		h.respond(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (h *Handler) yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		h.respond(w, http.StatusBadRequest, ErrorResponse{Error: "year must be an integer"})
		return 0, false
	}
	return year, true
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response", slog.Any("error", err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case leave.IsNotFound(err):
		h.respond(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case leave.IsClientError(err):
		h.respond(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("request failed", slog.Any("error", err))
		h.respond(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
