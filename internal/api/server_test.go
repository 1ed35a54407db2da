package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/store"
	"github.com/rgehrsitz/taxpilot/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	*Server
	session *store.Session
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	engine := calculation.NewEngine(nil)
	session := store.NewSession(store.NewMemoryRepository(), engine, zap.NewNop())
	require.NoError(t, session.Load(context.Background()))

	wf := &workflow.Workflow{
		Now:     func() time.Time { return time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC) },
		Receipt: func() string { return "123456789" },
	}
	return &testServer{Server: NewServer(session, engine, wf, zap.NewNop(), Config{}), session: session}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func californiaDraft(fedWithheld string) domain.TaxpayerDraft {
	d := domain.NewDraft()
	d.FirstName, d.LastName = "Ana", "Diaz"
	d.FilingStatus = domain.FilingStatusSingle
	d.Income.W2 = true
	d.IncomeDetails.W2Wages = "60000"
	d.IncomeDetails.W2FederalWithheld = domain.Amount(fedWithheld)
	d.IncomeDetails.W2StateWithheld = "2000"
	d.State = "CA"
	return d
}

func TestHealthAndCorrelationID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(CorrelationIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(CorrelationIDHeader, "req-42")
	w = httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(CorrelationIDHeader))
}

func TestStates(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/states", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "list", body["object"])
	assert.NotEmpty(t, body["data"])

	tests := []struct {
		path       string
		wantStatus int
		wantAbbr   string
	}{
		{"/api/v1/states/ca", http.StatusOK, "CA"},
		{"/api/v1/states/Califronia", http.StatusOK, "CA"},
		{"/api/v1/states/Atlantis", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := ts.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			if tt.wantAbbr != "" {
				assert.Equal(t, tt.wantAbbr, body["abbreviation"])
			} else {
				assert.Equal(t, "State not found", body["error"])
				assert.NotEmpty(t, body["correlation_id"])
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/calculate", californiaDraft("8000"))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "7215.15", body["totalTax"])
	assert.Equal(t, "2784.85", body["refundOrOwed"])
	assert.Equal(t, true, body["isRefund"])

	// the session is not touched
	assert.Equal(t, "", ts.session.Draft().State)

	w = ts.do(t, http.MethodPost, "/api/v1/calculate", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftLifecycle(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["version"])

	w = ts.do(t, http.MethodPatch, "/api/v1/draft", `{"firstName":"Ana","incomeDetails":{"w2Wages":"45,000"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 2, body["version"])
	draft := body["draft"].(map[string]any)
	assert.Equal(t, "Ana", draft["firstName"])
	assert.Equal(t, "45,000", draft["incomeDetails"].(map[string]any)["w2Wages"])

	w = ts.do(t, http.MethodPatch, "/api/v1/draft", `{"firstName":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 2, ts.session.Version())
	assert.Equal(t, "Ana", ts.session.Draft().FirstName)

	w = ts.do(t, http.MethodPut, "/api/v1/draft", californiaDraft("8000"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CA", ts.session.Draft().State)

	w = ts.do(t, http.MethodGet, "/api/v1/draft/calculation", nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)["result"].(map[string]any)
	assert.Equal(t, "1999.15", result["stateTax"])

	w = ts.do(t, http.MethodDelete, "/api/v1/draft", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "", ts.session.Draft().State)
	assert.True(t, ts.session.Draft().Deductions.Standard)
}

func TestDraftPreview(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.session.Replace(context.Background(), californiaDraft("8000")))

	tests := []struct {
		query       string
		wantStatus  int
		contentType string
		contains    string
	}{
		{"", http.StatusOK, "text/plain", "FORM 1040 PREVIEW (2024)"},
		{"?format=1040", http.StatusOK, "text/plain", "Estimate only"},
		{"?format=console", http.StatusOK, "text/plain", "2024 TAX RETURN ESTIMATE"},
		{"?format=json", http.StatusOK, "application/json", `"taxYear": 2024`},
		{"?format=csv", http.StatusOK, "text/csv", "Section,Line,Description,Amount"},
		{"?format=html", http.StatusOK, "text/html", "Form 1040 preview 2024"},
		{"?format=pdf", http.StatusBadRequest, "application/json", "Unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := ts.do(t, http.MethodGet, "/api/v1/draft/preview"+tt.query, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestWizardSteps(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/wizard/steps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 15)

	w = ts.do(t, http.MethodGet, "/api/v1/wizard/steps/personal/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["canContinue"])
	assert.Len(t, body["issues"], 4)

	w = ts.do(t, http.MethodGet, "/api/v1/wizard/steps/health/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, true, body["canContinue"])
	assert.Empty(t, body["issues"])

	w = ts.do(t, http.MethodGet, "/api/v1/wizard/steps/taxes/check", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

var (
	validCard = map[string]any{
		"method": "card",
		"card": map[string]any{
			"nameOnCard": "Ana Diaz",
			"cardNumber": "4111 1111 1111 1111",
			"exp":        "12/27",
			"cvc":        "123",
			"zip":        "94105",
		},
	}
	validSubmit = map[string]any{
		"signature": map[string]any{"firstName": "Ana", "lastName": "Diaz", "pin": "12345"},
		"consent":   map[string]any{"authorizeEfile": true, "bankAccountAccuracy": true, "privacyRead": true},
	}
)

func statusStep(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode(t, w)["status"].(map[string]any)["step"].(string)
}

func TestStatusFlow_BalanceDue(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.session.Replace(context.Background(), californiaDraft("0")))

	w := ts.do(t, http.MethodGet, "/api/v1/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["owes"])

	w = ts.do(t, http.MethodPost, "/api/v1/status/review", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "review", statusStep(t, w))

	w = ts.do(t, http.MethodPost, "/api/v1/status/submit", validSubmit)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode(t, w)["error"], "balance due must be paid first")

	badCard := map[string]any{"method": "card", "card": map[string]any{"nameOnCard": "A", "cardNumber": "4111", "exp": "13/27", "cvc": "1", "zip": "9"}}
	w = ts.do(t, http.MethodPost, "/api/v1/status/pay", badCard)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, decode(t, w)["fields"], 5)
	assert.Equal(t, domain.StepReview, ts.session.Status().Step)

	w = ts.do(t, http.MethodPost, "/api/v1/status/pay", validCard)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", statusStep(t, w))
	assert.Regexp(t, `^PAY-\d{8}$`, ts.session.Status().PaymentConfirmation)

	w = ts.do(t, http.MethodPost, "/api/v1/status/submit", map[string]any{
		"signature": map[string]any{"firstName": "Ana", "lastName": "Diaz", "pin": "12"},
		"consent":   map[string]any{"authorizeEfile": true, "bankAccountAccuracy": true, "privacyRead": true},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/status/submit", validSubmit)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "submitted", statusStep(t, w))
	assert.Equal(t, "123456789", ts.session.Status().ConfirmationNumber)

	w = ts.do(t, http.MethodPost, "/api/v1/status/accept", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accepted", statusStep(t, w))

	w = ts.do(t, http.MethodPost, "/api/v1/status/accept", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStatusFlow_RefundSkipsPayment(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.session.Replace(context.Background(), californiaDraft("8000")))

	w := ts.do(t, http.MethodPost, "/api/v1/status/submit", validSubmit)
	assert.Equal(t, http.StatusConflict, w.Code, "a draft must be reviewed first")

	w = ts.do(t, http.MethodPost, "/api/v1/status/review", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/status/pay", validCard)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode(t, w)["error"], "nothing is owed")
	assert.Equal(t, domain.StepReview, ts.session.Status().Step)
	assert.Empty(t, ts.session.Status().PaymentConfirmation)

	w = ts.do(t, http.MethodPost, "/api/v1/status/submit", map[string]any{
		"signature": validSubmit["signature"],
		"consent":   map[string]any{"authorizeEfile": true},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, decode(t, w)["fields"], 2)

	w = ts.do(t, http.MethodPost, "/api/v1/status/submit", validSubmit)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "submitted", statusStep(t, w))

	w = ts.do(t, http.MethodPost, "/api/v1/status/pay", "not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusSubmit_OverlappingRequestsFileOnce(t *testing.T) {
	engine := calculation.NewEngine(nil)
	session := store.NewSession(store.NewMemoryRepository(), engine, zap.NewNop())
	require.NoError(t, session.Load(context.Background()))
	require.NoError(t, session.Replace(context.Background(), californiaDraft("8000")))
	require.NoError(t, session.SetStatus(context.Background(), domain.ReturnStatus{Step: domain.StepReview}))

	var (
		mu       sync.Mutex
		receipts int
	)
	wf := &workflow.Workflow{
		// A slow clock widens the window between reading and storing the status.
		Now: func() time.Time {
			time.Sleep(50 * time.Millisecond)
			return time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)
		},
		Receipt: func() string {
			mu.Lock()
			defer mu.Unlock()
			receipts++
			return fmt.Sprintf("%09d", 111111110+receipts)
		},
	}
	ts := &testServer{Server: NewServer(session, engine, wf, zap.NewNop(), Config{}), session: session}

	const requests = 2
	codes := make([]int, requests)
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = ts.do(t, http.MethodPost, "/api/v1/status/submit", validSubmit).Code
		}(i)
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, codes)
	assert.Equal(t, 1, receipts, "one filing receipt")
	assert.Equal(t, domain.StepSubmitted, session.Status().Step)
	assert.Equal(t, "111111111", session.Status().ConfirmationNumber)
}
