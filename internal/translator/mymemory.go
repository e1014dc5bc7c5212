package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const myMemoryBaseURL = "https://api.mymemory.translated.net"

// myMemoryLanguages are the target codes accepted by the free MyMemory API.
var myMemoryLanguages = []string{
	"en", "es", "fr", "de", "it", "pt", "ru", "ja", "ko", "zh",
	"ar", "nl", "pl", "tr", "sv", "da", "no", "fi", "el", "he",
	"th", "vi", "id", "ms", "cs", "hu", "ro", "uk", "bg", "ca",
}

type MyMemoryService struct {
	email      string
	sourceLang string
	baseURL    string
	detect     func(text string) (string, bool)
	client     *http.Client
}

func NewMyMemoryService(cfg ServiceConfig) *MyMemoryService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = myMemoryBaseURL
	}
	return &MyMemoryService{
		email:      cfg.Email,
		sourceLang: cfg.SourceLang,
		baseURL:    baseURL,
		detect:     cfg.DetectSource,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

// source picks the language pair's left side. MyMemory has no
// auto-detection, so "auto" falls back to the detector and then to English.
func (s *MyMemoryService) source(text string) string {
	if !isAuto(s.sourceLang) {
		return s.sourceLang
	}
	if s.detect != nil {
		if lang, ok := s.detect(text); ok {
			return lang
		}
	}
	return "en"
}

func (s *MyMemoryService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", fmt.Sprintf("%s|%s", s.source(text), targetLang))
	if s.email != "" {
		q.Set("de", s.email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var mymemResp struct {
		ResponseData struct {
			TranslatedText string  `json:"translatedText"`
			Match          float64 `json:"match"`
		} `json:"responseData"`
		ResponseStatus  int    `json:"responseStatus"`
		ResponseDetails string `json:"responseDetails"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&mymemResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if mymemResp.ResponseStatus != http.StatusOK {
		return "", fmt.Errorf("API error: %s (%d)", mymemResp.ResponseDetails, mymemResp.ResponseStatus)
	}

	return mymemResp.ResponseData.TranslatedText, nil
}

func (s *MyMemoryService) SupportedLanguages(ctx context.Context) (Languages, error) {
	namer := display.English.Languages()
	langs := make(Languages, len(myMemoryLanguages))
	for _, code := range myMemoryLanguages {
		name := code
		if tag, err := language.Parse(code); err == nil {
			if n := namer.Name(tag); n != "" {
				name = n
			}
		}
		langs[code] = name
	}
	return langs, nil
}
