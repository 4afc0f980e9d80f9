package huggingface_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refinery/internal/analyzer"
	"refinery/internal/analyzer/huggingface"
	"refinery/internal/config"
)

const modelJSON = `{
	"primaryIntent": "Create a todo application",
	"functionalExpectations": ["Add tasks", "Complete tasks"],
	"technicalConstraints": ["Web-based"],
	"expectedOutputs": ["Todo app"],
	"ambiguities": [],
	"missingInformation": [],
	"confidenceScore": 0.8
}`

func newTestAnalyzer(t *testing.T, handler http.HandlerFunc) *huggingface.Analyzer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.AnalyzerConfig{APIKey: "hf-token", TimeoutSecs: 5}
	return huggingface.NewAnalyzerWithEndpoint(cfg, srv.URL)
}

func TestAnalyze_Success(t *testing.T) {
	a := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))

		var req struct {
			Inputs     string                 `json:"inputs"`
			Parameters map[string]interface{} `json:"parameters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Inputs, "build me a todo app")
		assert.Equal(t, false, req.Parameters["return_full_text"])

		body, _ := json.Marshal([]map[string]string{{"generated_text": modelJSON}})
		_, _ = w.Write(body)
	})

	out, err := a.Analyze(context.Background(), "build me a todo app")
	require.NoError(t, err)
	assert.Equal(t, "Create a todo application", out.PrimaryIntent)
}

func TestAnalyze_ServerError(t *testing.T) {
	a := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	})

	_, err := a.Analyze(context.Background(), "build me a todo app")
	assert.ErrorIs(t, err, analyzer.ErrModelUnavailable)
}

func TestAnalyze_EmptyGenerations(t *testing.T) {
	a := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := a.Analyze(context.Background(), "build me a todo app")
	assert.ErrorIs(t, err, analyzer.ErrMalformedResponse)
}

func TestAnalyze_NonArrayResponse(t *testing.T) {
	a := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "something went wrong"}`))
	})

	_, err := a.Analyze(context.Background(), "build me a todo app")
	assert.ErrorIs(t, err, analyzer.ErrMalformedResponse)
}
