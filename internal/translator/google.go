package translator

import (
	"context"
	"fmt"
	"os"
	"strings"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService uses the Google Cloud Translation v2 API.
type GoogleService struct {
	credentials string
	sourceLang  string
	opts        []option.ClientOption
}

func NewGoogleService(cfg ServiceConfig) *GoogleService {
	s := &GoogleService{
		credentials: cfg.Credentials,
		sourceLang:  cfg.SourceLang,
	}
	if cfg.Credentials != "" {
		s.opts = append(s.opts, option.WithCredentialsFile(cfg.Credentials))
	}
	if cfg.ProjectID != "" {
		s.opts = append(s.opts, option.WithQuotaProject(cfg.ProjectID))
	}
	if cfg.BaseURL != "" {
		s.opts = append(s.opts, option.WithEndpoint(cfg.BaseURL))
	}
	return s
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) client(ctx context.Context) (*translate.Client, error) {
	if s.credentials != "" {
		os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", s.credentials)
	}
	client, err := translate.NewClient(ctx, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *GoogleService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	targetTag, err := language.Parse(targetLang)
	if err != nil {
		return "", fmt.Errorf("invalid target language: %w", err)
	}

	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	var opts *translate.Options
	if !isAuto(s.sourceLang) {
		sourceTag, err := language.Parse(s.sourceLang)
		if err != nil {
			return "", fmt.Errorf("invalid source language: %w", err)
		}
		opts = &translate.Options{Source: sourceTag}
	}

	translations, err := client.Translate(ctx, []string{text}, targetTag, opts)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return translations[0].Text, nil
}

// SupportedLanguages asks the API for its target languages, named in English.
func (s *GoogleService) SupportedLanguages(ctx context.Context) (Languages, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	list, err := client.SupportedLanguages(ctx, language.English)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}

	langs := make(Languages, len(list))
	for _, l := range list {
		langs[strings.ToLower(l.Tag.String())] = l.Name
	}
	return langs, nil
}
