package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medsafe/internal/geminiservice"
	"medsafe/internal/utility"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successBody(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(body)
}

// newUpstream returns a mock Gemini endpoint.
func newUpstream(t *testing.T, status int, body string) string {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(upstream.Close)
	return upstream.URL
}

func post(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, ChatResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Chat(e.NewContext(req, rec)))

	var out ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestProbeShape(t *testing.T) {
	h := NewHandler(geminiservice.NewClient(geminiservice.Config{APIKey: "k"}), nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Probe(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var out ProbeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.OK)
	assert.NotEmpty(t, out.Message)
	assert.True(t, out.HasAPIKey)
}

func TestChatMissingCredentialAnswersInBand(t *testing.T) {
	h := NewHandler(geminiservice.NewClient(geminiservice.Config{}), nil)

	for _, path := range []string{"medicine", "lifestyle"} {
		t.Run(path, func(t *testing.T) {
			rec, out := post(t, h, `{"message":"hello","pathType":"`+path+`"}`)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, out.Response, "missing its AI configuration")
		})
	}
}

func TestChatSuccess(t *testing.T) {
	endpoint := newUpstream(t, http.StatusOK, successBody("X"))
	h := NewHandler(geminiservice.NewClient(geminiservice.Config{APIKey: "k", Endpoint: endpoint}), nil)

	body := `{
		"message": "what should I do?",
		"pathType": "medicine",
		"patientInfo": {"symptoms": "fever, headache", "symptomDuration": 2, "symptomUnit": "days", "mealsPerDay": 1, "waterIntake": 1},
		"chatHistory": []
	}`
	rec, out := post(t, h, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "X", out.Response)
}

func TestChatUpstreamFailureDowngradesToDiagnostic(t *testing.T) {
	endpoint := newUpstream(t, http.StatusInternalServerError, "boom")
	h := NewHandler(geminiservice.NewClient(geminiservice.Config{APIKey: "k", Endpoint: endpoint}), nil)

	rec, out := post(t, h, `{"message":"hi","pathType":"medicine"}`)

	// Never a 4xx/5xx to the caller: the failure is an assistant message.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, out.Response, "trouble connecting")
	assert.Contains(t, out.Response, "500")
}

func TestChatTransportFailureDowngradesToDiagnostic(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()
	h := NewHandler(geminiservice.NewClient(geminiservice.Config{APIKey: "k", Endpoint: dead.URL}), nil)

	rec, out := post(t, h, `{"message":"hi"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, out.Response, "trouble connecting")
}

func TestChatMalformedBodyIsTolerated(t *testing.T) {
	endpoint := newUpstream(t, http.StatusOK, successBody("still fine"))
	h := NewHandler(geminiservice.NewClient(geminiservice.Config{APIKey: "k", Endpoint: endpoint}), nil)

	// Wrong-typed field: decoding stops there, the rest defaults.
	rec, out := post(t, h, `{"message":"hi","patientInfo":{"symptomDuration":"two"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "still fine", out.Response)
}

func TestChatThrottleAnswersInBand(t *testing.T) {
	endpoint := newUpstream(t, http.StatusOK, successBody("ok"))
	limiter := utility.NewRateLimiter(1, time.Minute)
	h := NewHandler(geminiservice.NewClient(geminiservice.Config{APIKey: "k", Endpoint: endpoint}), limiter)

	_, first := post(t, h, `{"message":"hi"}`)
	assert.Equal(t, "ok", first.Response)

	rec, second := post(t, h, `{"message":"hi again"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, second.Response, "wait a moment")
}

func TestPathResolution(t *testing.T) {
	medicine := "medicine"
	garbage := "surgery"

	assert.Equal(t, geminiservice.PathUnknown, ChatRequest{}.Path())
	assert.Equal(t, geminiservice.PathMedicine, ChatRequest{PathType: &medicine}.Path())
	assert.Equal(t, geminiservice.PathUnknown, ChatRequest{PathType: &garbage}.Path())
}
