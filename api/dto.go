/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the billing engine's types from the external API contract: amounts gain
  display strings, decimals become two-decimal presentation values, and
  internal fields stay internal.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the tasklog package, not in DTOs.
  DTOs are pure data carriers.
*/
package api

import (
	"github.com/fluteroute/task-management/billing"
	"github.com/fluteroute/task-management/render"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// TaskDTO represents one logged work session in API responses.
type TaskDTO struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time,omitempty"`
	ActivityType    string `json:"activity_type"`
	TicketReference string `json:"ticket_reference,omitempty"`
	HoursWorked     string `json:"hours_worked"`
	Client          string `json:"client"`
	Rate            string `json:"rate"`
}

// LogTaskRequest is the request to log a work session. Rate is not part of
// the request; it is snapshotted from configuration server-side.
type LogTaskRequest struct {
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time,omitempty"`
	ActivityType    string `json:"activity_type"`
	TicketReference string `json:"ticket_reference,omitempty"`
	HoursWorked     string `json:"hours_worked"`
	Client          string `json:"client"`
}

// LineItemDTO is one merged invoice line.
type LineItemDTO struct {
	ActivityType    string   `json:"activity_type"`
	TicketReference string   `json:"ticket_reference,omitempty"`
	TotalHours      string   `json:"total_hours"`
	Rate            string   `json:"rate"`
	EarliestDate    string   `json:"earliest_date"`
	Amount          string   `json:"amount"`
	AmountDisplay   string   `json:"amount_display"`
	TaskIDs         []string `json:"task_ids"`
}

// InvoiceDTO is the assembled invoice response.
type InvoiceDTO struct {
	Client             string        `json:"client"`
	BillingDate        string        `json:"billing_date"`
	DueDate            string        `json:"due_date"`
	PeriodLabel        string        `json:"period_label"`
	Lines              []LineItemDTO `json:"lines"`
	TotalHours         string        `json:"total_hours"`
	TotalAmount        string        `json:"total_amount"`
	TotalAmountDisplay string        `json:"total_amount_display"`
}

// ConfigDTO exposes the active configuration.
type ConfigDTO struct {
	InvoiceDays     []int  `json:"invoice_days"`
	PaymentTermDays int    `json:"payment_term_days"`
	DefaultRate     string `json:"default_hourly_rate"`
	Currency        string `json:"currency"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toTaskDTO(task billing.Task) TaskDTO {
	return TaskDTO{
		ID:              task.ID,
		Date:            task.Date.String(),
		Time:            task.Time,
		ActivityType:    task.ActivityType,
		TicketReference: task.TicketReference,
		HoursWorked:     task.HoursWorked.String(),
		Client:          task.Client,
		Rate:            task.Rate.String(),
	}
}

func toInvoiceDTO(inv billing.Invoice, currency string) InvoiceDTO {
	lines := make([]LineItemDTO, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = LineItemDTO{
			ActivityType:    line.ActivityType,
			TicketReference: line.TicketReference,
			TotalHours:      render.FormatHours(line.TotalHours),
			Rate:            line.Rate.String(),
			EarliestDate:    line.EarliestDate.String(),
			Amount:          line.Amount().Round(2).String(),
			AmountDisplay:   render.FormatAmount(line.Amount(), currency),
			TaskIDs:         line.TaskIDs,
		}
	}
	return InvoiceDTO{
		Client:             inv.Client,
		BillingDate:        inv.BillingDate.String(),
		DueDate:            inv.DueDate.String(),
		PeriodLabel:        inv.PeriodLabel,
		Lines:              lines,
		TotalHours:         render.FormatHours(inv.TotalHours),
		TotalAmount:        inv.TotalAmount.Round(2).String(),
		TotalAmountDisplay: render.FormatAmount(inv.TotalAmount, currency),
	}
}
