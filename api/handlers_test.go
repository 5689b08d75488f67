package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluteroute/task-management/api"
	"github.com/fluteroute/task-management/config"
	"github.com/fluteroute/task-management/store/memory"
	"github.com/fluteroute/task-management/tasklog"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.ClientRates = map[string]config.ClientRate{
		"Acme": {Rate: decimal.NewFromInt(100)},
	}
	svc := tasklog.NewService(memory.New(), cfg)
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(svc, cfg, "USD")))
	t.Cleanup(srv.Close)
	return srv
}

func logTask(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/tasks", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// =============================================================================
// TASK ENDPOINTS
// =============================================================================

func TestLogTask_CreatesWithSnapshottedRate(t *testing.T) {
	srv := newTestServer(t)

	resp := logTask(t, srv, `{
		"date": "2024-03-04",
		"time": "10:00",
		"activity_type": "Implementation",
		"ticket_reference": "TICKET-1",
		"hours_worked": "2.5",
		"client": "Acme"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID   string `json:"id"`
		Rate string `json:"rate"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "100", created.Rate, "rate snapshotted from config, not from request")
}

func TestLogTask_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad date", `{"date": "04/03/2024", "activity_type": "X", "hours_worked": "1", "client": "Acme"}`},
		{"bad hours", `{"date": "2024-03-04", "activity_type": "X", "hours_worked": "lots", "client": "Acme"}`},
		{"zero hours", `{"date": "2024-03-04", "activity_type": "X", "hours_worked": "0", "client": "Acme"}`},
		{"missing client", `{"date": "2024-03-04", "activity_type": "X", "hours_worked": "1", "client": ""}`},
		{"missing activity", `{"date": "2024-03-04", "activity_type": "", "hours_worked": "1", "client": "Acme"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := logTask(t, srv, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestListTasks_EmptyLog(t *testing.T) {
	srv := newTestServer(t)

	var tasks []json.RawMessage
	resp := getJSON(t, srv, "/api/tasks", &tasks)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, tasks)
}

// =============================================================================
// CLIENT / INVOICE ENDPOINTS
// =============================================================================

func seedTasks(t *testing.T, srv *httptest.Server) {
	t.Helper()
	for _, body := range []string{
		`{"date": "2024-03-04", "activity_type": "Implementation", "ticket_reference": "TICKET-1", "hours_worked": "2.5", "client": "Acme"}`,
		`{"date": "2024-03-08", "activity_type": "Implementation", "ticket_reference": "TICKET-1", "hours_worked": "1.5", "client": "Acme"}`,
		`{"date": "2024-03-20", "activity_type": "Review", "hours_worked": "2", "client": "Acme"}`,
		`{"date": "2024-03-05", "activity_type": "Support", "hours_worked": "4", "client": "Globex"}`,
	} {
		resp := logTask(t, srv, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
}

func TestListClients(t *testing.T) {
	srv := newTestServer(t)
	seedTasks(t, srv)

	var clients []string
	getJSON(t, srv, "/api/clients", &clients)
	assert.Equal(t, []string{"Acme", "Globex"}, clients)
}

func TestListBillingDates(t *testing.T) {
	srv := newTestServer(t)
	seedTasks(t, srv)

	var dates []string
	getJSON(t, srv, "/api/clients/Acme/periods", &dates)
	assert.Equal(t, []string{"2024-03-15", "2024-04-01"}, dates)
}

func TestGetInvoice_JSON(t *testing.T) {
	srv := newTestServer(t)
	seedTasks(t, srv)

	var inv struct {
		Client             string `json:"client"`
		PeriodLabel        string `json:"period_label"`
		DueDate            string `json:"due_date"`
		TotalHours         string `json:"total_hours"`
		TotalAmountDisplay string `json:"total_amount_display"`
		Lines              []struct {
			ActivityType string `json:"activity_type"`
			TotalHours   string `json:"total_hours"`
		} `json:"lines"`
	}
	resp := getJSON(t, srv, "/api/clients/Acme/invoices/2024-03-15", &inv)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Acme", inv.Client)
	assert.Equal(t, "March 1-14 (Billed: March 15)", inv.PeriodLabel)
	assert.Equal(t, "2024-03-30", inv.DueDate)
	assert.Equal(t, "4", inv.TotalHours)
	assert.Equal(t, "$400.00", inv.TotalAmountDisplay)
	require.Len(t, inv.Lines, 1, "both TICKET-1 sessions merge into one line")
	assert.Equal(t, "Implementation", inv.Lines[0].ActivityType)
}

func TestGetInvoice_PDF(t *testing.T) {
	srv := newTestServer(t)
	seedTasks(t, srv)

	resp, err := http.Get(srv.URL + "/api/clients/Acme/invoices/2024-03-15?format=pdf")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestGetInvoice_NotFound(t *testing.T) {
	srv := newTestServer(t)
	seedTasks(t, srv)

	resp := getJSON(t, srv, "/api/clients/Nobody/invoices/2024-03-15", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = getJSON(t, srv, "/api/clients/Acme/invoices/2030-01-01", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetConfig(t *testing.T) {
	srv := newTestServer(t)

	var cfg struct {
		InvoiceDays     []int  `json:"invoice_days"`
		PaymentTermDays int    `json:"payment_term_days"`
		Currency        string `json:"currency"`
	}
	resp := getJSON(t, srv, "/api/config", &cfg)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []int{1, 15}, cfg.InvoiceDays)
	assert.Equal(t, 15, cfg.PaymentTermDays)
	assert.Equal(t, "USD", cfg.Currency)
}
