package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"refinery/internal/analyzer"
	"refinery/internal/config"
	"refinery/internal/domain"
	"refinery/internal/port"
)

const (
	apiBaseURL = "https://api-inference.huggingface.co/models"
)

// Analyzer implements port.Analyzer using the Hugging Face Inference API.
type Analyzer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewAnalyzer creates a Hugging Face-based structured analyzer.
func NewAnalyzer(cfg *config.AnalyzerConfig) *Analyzer {
	return newAnalyzer(cfg, "")
}

// NewAnalyzerWithEndpoint creates an analyzer pointing at a custom API endpoint (for testing).
func NewAnalyzerWithEndpoint(cfg *config.AnalyzerConfig, endpoint string) *Analyzer {
	return newAnalyzer(cfg, endpoint)
}

func newAnalyzer(cfg *config.AnalyzerConfig, endpoint string) *Analyzer {
	model := cfg.DefaultModel
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.2"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s", apiBaseURL, model)
	}
	return &Analyzer{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (a *Analyzer) Analyze(ctx context.Context, text string) (*domain.RefinedOutput, error) {
	prompt := analyzer.BuildRefinementPrompt(text)

	reqBody := map[string]interface{}{
		"inputs": prompt,
		"parameters": map[string]interface{}{
			"max_new_tokens":   1024,
			"temperature":      0.3,
			"do_sample":        true,
			"top_p":            0.95,
			"return_full_text": false,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling huggingface API: %v", analyzer.ErrModelUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", analyzer.ErrModelUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: huggingface API status %d", analyzer.ErrModelUnavailable, resp.StatusCode)
	}

	// The inference API returns an array of generations.
	var generations []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(respBody, &generations); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling response: %v", analyzer.ErrMalformedResponse, err)
	}
	if len(generations) == 0 || generations[0].GeneratedText == "" {
		return nil, fmt.Errorf("%w: no generated text in response", analyzer.ErrMalformedResponse)
	}

	return analyzer.ParseRefinedOutput(generations[0].GeneratedText)
}

var _ port.Analyzer = (*Analyzer)(nil)
