package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/valpere/multitran/internal/postprocess"
)

var DefaultOllamaModels = []string{
	"llama3.2",
	"gemma2:2b",
	"qwen2.5:3b",
	"mistral:7b",
}

// OllamaTranslator prompts a local Ollama model, picking one of the
// configured models at random per request.
type OllamaTranslator struct {
	baseURL    string
	sourceLang string
	models     []string
	languages  Languages
	client     *http.Client
}

func NewOllamaTranslator(cfg ServiceConfig) *OllamaTranslator {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	models := cfg.Models
	if len(models) == 0 {
		models = DefaultOllamaModels
	}
	return &OllamaTranslator{
		baseURL:    baseURL,
		sourceLang: cfg.SourceLang,
		models:     models,
		languages:  GoogleLanguages,
		client:     &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *OllamaTranslator) Name() string {
	return "ollama"
}

func (s *OllamaTranslator) pickModel() string {
	if len(s.models) == 0 {
		return DefaultOllamaModels[0]
	}
	return s.models[rand.Intn(len(s.models))]
}

func (s *OllamaTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	source := "the detected source language"
	if !isAuto(s.sourceLang) {
		source = s.languages.Name(s.sourceLang)
	}

	prompt := fmt.Sprintf(`Translate the following text from %s to %s.
Only respond with the translation, nothing else.

Text: "%s"

Translation:`, source, s.languages.Name(targetLang), text)

	body, err := json.Marshal(map[string]interface{}{
		"model":  s.pickModel(),
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	out := postprocess.Clean(ollamaResp.Response)
	if out == "" {
		return "", fmt.Errorf("empty translation response")
	}
	return out, nil
}

// SupportedLanguages reuses the Google table; the model decides what it can
// actually handle.
func (s *OllamaTranslator) SupportedLanguages(ctx context.Context) (Languages, error) {
	return s.languages, nil
}
