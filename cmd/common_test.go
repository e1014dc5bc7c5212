package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/valpere/multitran/internal/config"
	"github.com/valpere/multitran/internal/translator"
)

func TestBuildService(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{provider: "gtranslate", wantName: "gtranslate"},
		{provider: "google", wantName: "google"},
		{provider: "mymemory", wantName: "mymemory"},
		{provider: "ollama", wantName: "ollama"},
		{provider: "openrouter", wantName: "openrouter"},
		{provider: "systran", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			svc, err := buildService(&config.Config{Provider: tt.provider, Source: "auto"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildService() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && svc.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", svc.Name(), tt.wantName)
			}
		})
	}
}

type stubService struct {
	calls int
	err   error
}

func (s *stubService) Name() string { return "stub" }

func (s *stubService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return text + "@" + targetLang, nil
}

func (s *stubService) SupportedLanguages(ctx context.Context) (translator.Languages, error) {
	return translator.Languages{"fr": "French"}, nil
}

type mapMemory map[string]string

func (m mapMemory) GetCachedTranslation(ctx context.Context, sourceText, sourceLang, targetLang string) (string, bool, error) {
	out, ok := m[sourceText+"|"+targetLang]
	return out, ok, nil
}

func (m mapMemory) SaveToMemory(ctx context.Context, sourceText, sourceLang, targetLang, finalText, serviceUsed string) error {
	m[sourceText+"|"+targetLang] = finalText
	return nil
}

func TestBuildTranslator_Plain(t *testing.T) {
	svc := &stubService{}

	tr := buildTranslator(svc, &config.Config{}, nil)

	if tr != translator.Translator(svc) {
		t.Errorf("expected the bare service when no decorators are configured, got %T", tr)
	}
}

func TestBuildTranslator_Cache(t *testing.T) {
	svc := &stubService{}
	memory := mapMemory{}
	tr := buildTranslator(svc, &config.Config{Source: "auto"}, memory)

	for i := 0; i < 2; i++ {
		out, err := tr.Translate(context.Background(), "Hello", "fr")
		if err != nil || out != "Hello@fr" {
			t.Fatalf("Translate() = %q, %v", out, err)
		}
	}
	if svc.calls != 1 {
		t.Errorf("expected one provider call, got %d", svc.calls)
	}
}

func TestBuildTranslator_Breaker(t *testing.T) {
	svc := &stubService{err: errors.New("down")}
	cfg := &config.Config{Breaker: config.BreakerConfig{Enabled: true, MaxFailures: 2, Timeout: time.Minute}}
	tr := buildTranslator(svc, cfg, nil)

	for i := 0; i < 2; i++ {
		tr.Translate(context.Background(), "Hello", "fr")
	}
	_, err := tr.Translate(context.Background(), "Hello", "fr")

	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected open breaker, got %v", err)
	}
	if svc.calls != 2 {
		t.Errorf("expected 2 provider calls, got %d", svc.calls)
	}
}

func TestBuildService_MyMemoryDetection(t *testing.T) {
	cfg := &config.Config{
		Provider: "mymemory",
		Source:   "auto",
		MyMemory: config.MyMemoryConfig{Detect: true, DetectLanguages: []string{"en", "uk"}},
	}

	svc, err := buildService(cfg)
	if err != nil {
		t.Fatalf("buildService() error = %v", err)
	}
	if svc.Name() != "mymemory" {
		t.Errorf("Name() = %q, want mymemory", svc.Name())
	}
}

func TestLanguageNames(t *testing.T) {
	tests := []struct {
		provider string
		code     string
		want     string
	}{
		{provider: "mymemory", code: "zh", want: "Chinese"},
		{provider: "gtranslate", code: "zh-cn", want: "Chinese (Simplified)"},
		{provider: "systran", code: "zh-cn", want: "Chinese (Simplified)"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			langs := languageNames(context.Background(), &config.Config{Provider: tt.provider, Source: "auto"})
			if got := langs.Name(tt.code); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}
