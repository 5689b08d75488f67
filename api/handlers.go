/*
handlers.go - HTTP API handlers for the task billing system

PURPOSE:
  Exposes the task log and billing engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Tasks:
    GET    /api/tasks                  Full task log
    POST   /api/tasks                  Log a work session

  Clients & invoices:
    GET    /api/clients                                   Distinct client names
    GET    /api/clients/{client}/periods                  Billing dates for a client
    GET    /api/clients/{client}/invoices/{billingDate}   Assembled invoice
                                                          (?format=pdf for a PDF)

  Config:
    GET    /api/config                 Active configuration

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown client or billing period (recoverable lookups)
  - 500: Configuration errors, store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fluteroute/task-management/billing"
	"github.com/fluteroute/task-management/config"
	"github.com/fluteroute/task-management/render"
	"github.com/fluteroute/task-management/tasklog"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service  *tasklog.Service
	Config   *config.Config
	Currency string
}

// NewHandler creates a handler around the task service.
func NewHandler(service *tasklog.Service, cfg *config.Config, currency string) *Handler {
	if currency == "" {
		currency = render.DefaultCurrency
	}
	return &Handler{Service: service, Config: cfg, Currency: currency}
}

// =============================================================================
// TASK HANDLERS
// =============================================================================

// ListTasks returns the full task log.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.Tasks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load tasks", err)
		return
	}

	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = toTaskDTO(task)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LogTask logs a new work session.
func (h *Handler) LogTask(w http.ResponseWriter, r *http.Request) {
	var req LogTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := billing.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	hours, err := decimal.NewFromString(req.HoursWorked)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hours_worked", err)
		return
	}

	task, err := h.Service.Log(r.Context(), tasklog.LogRequest{
		Date:            date,
		Time:            req.Time,
		ActivityType:    req.ActivityType,
		TicketReference: req.TicketReference,
		HoursWorked:     hours,
		Client:          req.Client,
	})
	if err != nil {
		if isValidation(err) {
			writeError(w, http.StatusBadRequest, "Invalid task", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to log task", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskDTO(task))
}

// =============================================================================
// CLIENT / INVOICE HANDLERS
// =============================================================================

// ListClients returns the sorted distinct client names.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.Clients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list clients", err)
		return
	}
	if clients == nil {
		clients = []string{}
	}
	writeJSON(w, http.StatusOK, clients)
}

// ListBillingDates returns the billing dates a client's tasks resolve to.
func (h *Handler) ListBillingDates(w http.ResponseWriter, r *http.Request) {
	client := chi.URLParam(r, "client")

	dates, err := h.Service.BillingDates(r.Context(), client)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve billing dates", err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, http.StatusOK, dates)
}

// GetInvoice returns the assembled invoice, as JSON or PDF.
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	client := chi.URLParam(r, "client")
	billingDate := chi.URLParam(r, "billingDate")

	inv, err := h.Service.Invoice(r.Context(), client, billingDate)
	if err != nil {
		switch {
		case billing.IsNotFound(err):
			writeError(w, http.StatusNotFound, "Invoice not found", err)
		case billing.IsConfiguration(err):
			writeError(w, http.StatusInternalServerError, "Invalid billing configuration", err)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to build invoice", err)
		}
		return
	}

	if r.URL.Query().Get("format") == "pdf" {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+inv.BillingDate.String()+".pdf")
		if err := render.InvoicePDF(w, inv, h.Currency); err != nil {
			// Headers are already out; nothing sensible left to send.
			return
		}
		return
	}

	writeJSON(w, http.StatusOK, toInvoiceDTO(inv, h.Currency))
}

// =============================================================================
// CONFIG HANDLER
// =============================================================================

// GetConfig returns the active configuration values.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ConfigDTO{
		InvoiceDays:     h.Config.InvoiceDays,
		PaymentTermDays: h.Config.PaymentTermDays,
		DefaultRate:     h.Config.DefaultHourlyRate.String(),
		Currency:        h.Currency,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func isValidation(err error) bool {
	return errors.Is(err, tasklog.ErrEmptyClient) ||
		errors.Is(err, tasklog.ErrEmptyActivity) ||
		errors.Is(err, tasklog.ErrNonPositiveHours)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
