package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluteroute/task-management/billing"
	"github.com/fluteroute/task-management/render"
)

func TestFormatAmount_TwoDecimalRounding(t *testing.T) {
	assert.Equal(t, "$400.00", render.FormatAmount(decimal.NewFromInt(400), "USD"))
	assert.Equal(t, "$1,234.50", render.FormatAmount(decimal.RequireFromString("1234.5"), "USD"))
	assert.Equal(t, "$0.67", render.FormatAmount(decimal.RequireFromString("0.666"), "USD"))
}

func TestFormatAmount_UnknownCurrencyFallsBack(t *testing.T) {
	assert.Equal(t, "$10.00", render.FormatAmount(decimal.NewFromInt(10), "NOPE"))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2.5", render.FormatHours(decimal.RequireFromString("2.5")))
	assert.Equal(t, "2.67", render.FormatHours(decimal.RequireFromString("2.666")))
}

func TestInvoicePDF_ProducesDocument(t *testing.T) {
	inv := billing.Invoice{
		Client:      "Acme",
		BillingDate: billing.NewDate(2024, time.March, 15),
		DueDate:     billing.NewDate(2024, time.March, 30),
		PeriodLabel: "March 1-14 (Billed: March 15)",
		Lines: []billing.LineItem{
			{
				ActivityType:    "Implementation",
				TicketReference: "TICKET-1",
				TotalHours:      decimal.NewFromInt(4),
				Rate:            decimal.NewFromInt(100),
				EarliestDate:    billing.NewDate(2024, time.March, 4),
			},
		},
		TotalHours:  decimal.NewFromInt(4),
		TotalAmount: decimal.NewFromInt(400),
	}

	var buf bytes.Buffer
	require.NoError(t, render.InvoicePDF(&buf, inv, "USD"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
}
