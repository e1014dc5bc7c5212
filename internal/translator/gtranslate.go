package translator

import (
	"context"
	"fmt"

	"github.com/bregydoc/gtranslate"
)

// GTranslateService calls the public Google Translate web endpoint. It needs
// no credentials.
type GTranslateService struct {
	sourceLang string
	translate  func(text string, params gtranslate.TranslationParams) (string, error)
}

func NewGTranslateService(sourceLang string) *GTranslateService {
	if isAuto(sourceLang) {
		sourceLang = "auto"
	}
	return &GTranslateService{
		sourceLang: sourceLang,
		translate:  gtranslate.TranslateWithParams,
	}
}

func (s *GTranslateService) Name() string {
	return "gtranslate"
}

func (s *GTranslateService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		out, err := s.translate(text, gtranslate.TranslationParams{
			From: s.sourceLang,
			To:   targetLang,
		})
		done <- reply{text: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("gtranslate: %w", r.err)
		}
		return r.text, nil
	}
}

func (s *GTranslateService) SupportedLanguages(ctx context.Context) (Languages, error) {
	return GoogleLanguages, nil
}
