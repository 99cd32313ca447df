package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrRespuestaVacia is returned when the model answers without text.
var ErrRespuestaVacia = errors.New("redactor: empty response")

const instruccionSistema = "Eres el redactor creativo principal de CR Kitchen & Design. " +
	"Tu objetivo es convertir presupuestos técnicos en experiencias aspiracionales de lujo. " +
	"Usa palabras como 'materialidad', 'ergonomía', 'vanguardia' y 'atemporalidad'."

type generateRequest struct {
	Contents          []generateContent `json:"contents"`
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig  `json:"generationConfig"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// RedactorClient calls the generateContent endpoint of the Gemini REST API.
type RedactorClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewRedactorClient(baseURL, model string) *RedactorClient {
	return &RedactorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 45 * time.Second},
	}
}

// Generar sends prompt with the company's copywriter instruction and returns
// the trimmed text of the first candidate.
func (c *RedactorClient) Generar(ctx context.Context, apiKey, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents:          []generateContent{{Role: "user", Parts: []generatePart{{Text: prompt}}}},
		SystemInstruction: &generateContent{Parts: []generatePart{{Text: instruccionSistema}}},
		GenerationConfig:  generationConfig{Temperature: 0.8, TopP: 0.95},
	})
	if err != nil {
		return "", fmt.Errorf("redactor: marshal payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("redactor: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("redactor: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("redactor: api returned %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("redactor: decode response: %w", err)
	}
	var sb strings.Builder
	if len(result.Candidates) > 0 {
		for _, p := range result.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	texto := strings.TrimSpace(sb.String())
	if texto == "" {
		return "", ErrRespuestaVacia
	}
	return texto, nil
}
