package translator

import (
	"context"
	"fmt"
	"strings"
)

// Translator translates text into a single target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// TranslatorFunc adapts an ordinary function to the Translator interface.
type TranslatorFunc func(ctx context.Context, text, targetLang string) (string, error)

func (f TranslatorFunc) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return f(ctx, text, targetLang)
}

// Service is a named translation backend that also knows which target
// languages it accepts.
type Service interface {
	Translator
	Name() string
	SupportedLanguages(ctx context.Context) (Languages, error)
}

// ServiceConfig carries the settings needed to construct any Service.
type ServiceConfig struct {
	SourceLang  string   `mapstructure:"source" json:"source"`
	Credentials string   `mapstructure:"credentials" json:"credentials"`
	ProjectID   string   `mapstructure:"project_id" json:"project_id"`
	Email       string   `mapstructure:"email" json:"email"`
	APIKey      string   `mapstructure:"api_key" json:"-"`
	BaseURL     string   `mapstructure:"base_url" json:"base_url"`
	Models      []string `mapstructure:"models" json:"models"`

	// DetectSource resolves an "auto" source language per text. Optional.
	DetectSource func(text string) (string, bool) `mapstructure:"-" json:"-"`
}

// UnsupportedLanguagesError lists requested codes missing from a registry.
type UnsupportedLanguagesError struct {
	Codes []string
}

func (e *UnsupportedLanguagesError) Error() string {
	return fmt.Sprintf("languages %s are not supported", strings.Join(e.Codes, ", "))
}

// Validate fails with *UnsupportedLanguagesError when any code is absent
// from langs.
func Validate(langs Languages, codes []string) error {
	if missing := langs.Unsupported(codes); len(missing) > 0 {
		return &UnsupportedLanguagesError{Codes: missing}
	}
	return nil
}

func isAuto(lang string) bool {
	return lang == "" || lang == "auto"
}
