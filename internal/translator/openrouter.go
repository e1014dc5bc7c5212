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

var DefaultOpenRouterModels = []string{
	"google/gemini-2.0-flash-exp:free",
	"qwen/qwen2.5-72b-instruct:free",
	"mistralai/mistral-nemo:free",
	"meta-llama/llama-3.1-8b-instruct:free",
}

// OpenRouterService sends chat completion requests to OpenRouter, rotating
// through the configured models.
type OpenRouterService struct {
	apiKey     string
	baseURL    string
	sourceLang string
	models     []string
	languages  Languages
	client     *http.Client
}

func NewOpenRouterService(cfg ServiceConfig) *OpenRouterService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	models := cfg.Models
	if len(models) == 0 {
		models = DefaultOpenRouterModels
	}
	return &OpenRouterService{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		sourceLang: cfg.SourceLang,
		models:     models,
		languages:  GoogleLanguages,
		client:     &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *OpenRouterService) Name() string {
	return "openrouter"
}

func (s *OpenRouterService) pickModel() string {
	return s.models[rand.Intn(len(s.models))]
}

func (s *OpenRouterService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("OpenRouter API key required")
	}

	source := "the detected language"
	if !isAuto(s.sourceLang) {
		source = s.languages.Name(s.sourceLang)
	}
	systemPrompt := fmt.Sprintf("You are a professional translator. Translate the following text from %s to %s.\n"+
		"Only respond with the translation, nothing else. No explanations, no quotes, just the translation.",
		source, s.languages.Name(targetLang))

	body, err := json.Marshal(map[string]interface{}{
		"model": s.pickModel(),
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": text},
		},
		"max_tokens": 4096,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("X-Title", "multitran")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return "", fmt.Errorf("API returned status %d: %v", resp.StatusCode, errResp)
	}

	var openrouterResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&openrouterResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(openrouterResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	out := postprocess.Clean(openrouterResp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("empty translation response")
	}
	return out, nil
}

func (s *OpenRouterService) SupportedLanguages(ctx context.Context) (Languages, error) {
	return s.languages, nil
}
