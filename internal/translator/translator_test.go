package translator

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bregydoc/gtranslate"
	"github.com/sony/gobreaker"
)

func TestLanguages_Unsupported(t *testing.T) {
	langs := Languages{"en": "English", "fr": "French", "de": "German"}

	tests := []struct {
		name  string
		codes []string
		want  []string
	}{
		{name: "all supported", codes: []string{"en", "fr", "de"}, want: nil},
		{name: "one missing", codes: []string{"en", "xx"}, want: []string{"xx"}},
		{name: "repeats collapse", codes: []string{"xx", "en", "yy", "xx"}, want: []string{"xx", "yy"}},
		{name: "empty request", codes: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := langs.Unsupported(tt.codes); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unsupported(%v) = %v, want %v", tt.codes, got, tt.want)
			}
		})
	}
}

func TestLanguages_NameAndCodes(t *testing.T) {
	langs := Languages{"fr": "French", "en": "English"}

	if langs.Name("fr") != "French" {
		t.Errorf("expected French, got %q", langs.Name("fr"))
	}
	if langs.Name("xx") != "xx" {
		t.Errorf("expected unknown code to fall back to itself, got %q", langs.Name("xx"))
	}
	if got := langs.Codes(); !reflect.DeepEqual(got, []string{"en", "fr"}) {
		t.Errorf("Codes() = %v", got)
	}
}

func TestValidate(t *testing.T) {
	err := Validate(GoogleLanguages, []string{"en", "klingon", "fr", "elvish"})

	var unsupported *UnsupportedLanguagesError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedLanguagesError, got %v", err)
	}
	if !reflect.DeepEqual(unsupported.Codes, []string{"klingon", "elvish"}) {
		t.Errorf("unexpected codes %v", unsupported.Codes)
	}
	if err.Error() != "languages klingon, elvish are not supported" {
		t.Errorf("unexpected message %q", err.Error())
	}

	if err := Validate(GoogleLanguages, []string{"en", "fr", "de"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGTranslateService_Translate(t *testing.T) {
	svc := NewGTranslateService("")
	var gotParams gtranslate.TranslationParams
	svc.translate = func(text string, params gtranslate.TranslationParams) (string, error) {
		gotParams = params
		return "Bonjour", nil
	}

	got, err := svc.Translate(context.Background(), "Hello", "fr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bonjour" {
		t.Errorf("expected 'Bonjour', got %q", got)
	}
	if gotParams.From != "auto" || gotParams.To != "fr" {
		t.Errorf("unexpected params %+v", gotParams)
	}
}

func TestGTranslateService_Translate_Error(t *testing.T) {
	svc := NewGTranslateService("en")
	svc.translate = func(string, gtranslate.TranslationParams) (string, error) {
		return "", errors.New("boom")
	}

	if _, err := svc.Translate(context.Background(), "Hello", "fr"); err == nil {
		t.Error("expected error")
	}
}

func TestGTranslateService_Translate_Cancelled(t *testing.T) {
	svc := NewGTranslateService("en")
	svc.translate = func(string, gtranslate.TranslationParams) (string, error) {
		t.Error("translate should not be called with a cancelled context")
		return "", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Translate(ctx, "Hello", "fr"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGTranslateService_SupportedLanguages(t *testing.T) {
	svc := NewGTranslateService("")

	langs, err := svc.SupportedLanguages(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, code := range []string{"en", "fr", "de", "zh-cn", "uk"} {
		if !langs.Has(code) {
			t.Errorf("expected %s in registry", code)
		}
	}
	if svc.Name() != "gtranslate" {
		t.Errorf("unexpected name %q", svc.Name())
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	failing := TranslatorFunc(func(ctx context.Context, text, targetLang string) (string, error) {
		calls.Add(1)
		return "", errors.New("unavailable")
	})

	b := NewBreaker("test", failing, BreakerConfig{MaxFailures: 2, Timeout: time.Minute})

	for i := 0; i < 2; i++ {
		if _, err := b.Translate(context.Background(), "Hello", "fr"); err == nil {
			t.Fatal("expected error")
		}
	}
	if b.state() != gobreaker.StateOpen {
		t.Fatalf("expected open circuit, got %v", b.state())
	}

	_, err := b.Translate(context.Background(), "Hello", "fr")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls to the wrapped translator, got %d", calls.Load())
	}
}

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	ok := TranslatorFunc(func(ctx context.Context, text, targetLang string) (string, error) {
		return text + "-" + targetLang, nil
	})

	b := NewBreaker("test", ok, BreakerConfig{})

	got, err := b.Translate(context.Background(), "Hello", "fr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello-fr" {
		t.Errorf("unexpected result %q", got)
	}
}

type mockMemory struct {
	entries map[string]string
	saves   int
	getErr  error
	saveErr error
}

func (m *mockMemory) GetCachedTranslation(ctx context.Context, sourceText, sourceLang, targetLang string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.entries[sourceText+"|"+sourceLang+"|"+targetLang]
	return v, ok, nil
}

func (m *mockMemory) SaveToMemory(ctx context.Context, sourceText, sourceLang, targetLang, finalText, serviceUsed string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.entries == nil {
		m.entries = make(map[string]string)
	}
	m.entries[sourceText+"|"+sourceLang+"|"+targetLang] = finalText
	m.saves++
	return nil
}

func TestCached_HitSkipsTranslator(t *testing.T) {
	var calls atomic.Int32
	next := TranslatorFunc(func(ctx context.Context, text, targetLang string) (string, error) {
		calls.Add(1)
		return "Bonjour", nil
	})
	mem := &mockMemory{}
	c := NewCached("gtranslate", "", next, mem)

	for i := 0; i < 3; i++ {
		got, err := c.Translate(context.Background(), "Hello", "fr")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Bonjour" {
			t.Errorf("expected 'Bonjour', got %q", got)
		}
	}

	if calls.Load() != 1 {
		t.Errorf("expected 1 translator call, got %d", calls.Load())
	}
	if mem.saves != 1 {
		t.Errorf("expected 1 save, got %d", mem.saves)
	}
	if _, ok := mem.entries["Hello|auto|fr"]; !ok {
		t.Errorf("expected entry keyed by auto source, got %v", mem.entries)
	}
}

func TestCached_FailureNotStored(t *testing.T) {
	next := TranslatorFunc(func(ctx context.Context, text, targetLang string) (string, error) {
		return "", errors.New("unsupported")
	})
	mem := &mockMemory{}
	c := NewCached("gtranslate", "en", next, mem)

	if _, err := c.Translate(context.Background(), "Hello", "fr"); err == nil {
		t.Error("expected error")
	}
	if mem.saves != 0 {
		t.Errorf("expected no saves, got %d", mem.saves)
	}
}

func TestCached_MemoryErrorFallsThrough(t *testing.T) {
	next := TranslatorFunc(func(ctx context.Context, text, targetLang string) (string, error) {
		return "Hallo", nil
	})
	c := NewCached("gtranslate", "en", next, &mockMemory{getErr: errors.New("db locked")})

	got, err := c.Translate(context.Background(), "Hello", "de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hallo" {
		t.Errorf("expected 'Hallo', got %q", got)
	}
}

func TestCached_SaveErrorReported(t *testing.T) {
	next := TranslatorFunc(func(ctx context.Context, text, targetLang string) (string, error) {
		return "Hallo", nil
	})
	c := NewCached("gtranslate", "en", next, &mockMemory{saveErr: errors.New("disk I/O error")})
	var log bytes.Buffer
	c.log = &log

	got, err := c.Translate(context.Background(), "Hello", "de")
	if err != nil || got != "Hallo" {
		t.Fatalf("Translate() = %q, %v", got, err)
	}
	if !bytes.Contains(log.Bytes(), []byte("failed to save de translation to memory: disk I/O error")) {
		t.Errorf("save error not reported, log = %q", log.String())
	}
}
