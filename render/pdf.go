/*
Package render turns assembled invoices into presentation formats.

PURPOSE:
  The billing engine exposes plain data structures; this package is the
  presentation boundary that formats them. Currently: currency strings
  (go-money) and a printable PDF (gofpdf). Rounding to two decimals
  happens here, at display time, never inside the engine.
*/
package render

import (
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/fluteroute/task-management/billing"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = money.USD

// FormatAmount renders a decimal amount as a localized currency string,
// e.g. "$1,234.50". Unknown codes fall back to the default currency.
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// FormatHours renders hours with two-decimal presentation rounding.
func FormatHours(hours decimal.Decimal) string {
	return hours.Round(2).String()
}

// =============================================================================
// PDF RENDERING
// =============================================================================

const (
	lineColDate     = 28.0
	lineColActivity = 52.0
	lineColTicket   = 38.0
	lineColHours    = 22.0
	lineColAmount   = 30.0
)

// InvoicePDF writes a printable A4 rendering of the invoice.
func InvoicePDF(w io.Writer, inv billing.Invoice, currencyCode string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Invoice - %s", inv.Client))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Billing period: %s", inv.PeriodLabel))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Billing date: %s", inv.BillingDate))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Due date: %s", inv.DueDate))
	pdf.Ln(12)

	// Line item table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(lineColDate, 8, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(lineColActivity, 8, "Activity", "1", 0, "L", false, 0, "")
	pdf.CellFormat(lineColTicket, 8, "Ticket", "1", 0, "L", false, 0, "")
	pdf.CellFormat(lineColHours, 8, "Hours", "1", 0, "R", false, 0, "")
	pdf.CellFormat(lineColAmount, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, line := range inv.Lines {
		pdf.CellFormat(lineColDate, 7, line.EarliestDate.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(lineColActivity, 7, line.ActivityType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(lineColTicket, 7, line.TicketReference, "1", 0, "L", false, 0, "")
		pdf.CellFormat(lineColHours, 7, FormatHours(line.TotalHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(lineColAmount, 7, FormatAmount(line.Amount(), currencyCode), "1", 1, "R", false, 0, "")
	}

	// Totals
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(lineColDate+lineColActivity+lineColTicket, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(lineColHours, 8, FormatHours(inv.TotalHours), "1", 0, "R", false, 0, "")
	pdf.CellFormat(lineColAmount, 8, FormatAmount(inv.TotalAmount, currencyCode), "1", 1, "R", false, 0, "")

	return pdf.Output(w)
}
