/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/valpere/multitran/internal/config"
	"github.com/valpere/multitran/internal/detector"
	"github.com/valpere/multitran/internal/translator"
)

// providerKeys are the config keys every provider-aware command binds.
var providerKeys = map[string]string{
	"provider":                  "provider",
	"source":                    "source",
	"google.credentials":        "credentials",
	"google.project":            "project",
	"mymemory.email":            "mymemory-email",
	"mymemory.detect":           "detect",
	"mymemory.detect_languages": "detect-languages",
	"ollama.url":                "ollama-url",
	"ollama.models":             "ollama-models",
	"openrouter.key":            "openrouter-key",
	"openrouter.models":         "openrouter-models",
}

// buildService constructs the configured translation provider.
func buildService(cfg *config.Config) (translator.Service, error) {
	sc := translator.ServiceConfig{
		SourceLang: cfg.Source,
	}

	switch cfg.Provider {
	case "gtranslate":
		return translator.NewGTranslateService(cfg.Source), nil
	case "google":
		sc.Credentials = cfg.Google.Credentials
		sc.ProjectID = cfg.Google.Project
		return translator.NewGoogleService(sc), nil
	case "mymemory":
		sc.Email = cfg.MyMemory.Email
		if cfg.MyMemory.Detect {
			sc.DetectSource = detector.NewForCodes(cfg.MyMemory.DetectLanguages).DetectISO
		}
		return translator.NewMyMemoryService(sc), nil
	case "ollama":
		sc.BaseURL = cfg.Ollama.URL
		sc.Models = cfg.Ollama.Models
		return translator.NewOllamaTranslator(sc), nil
	case "openrouter":
		sc.APIKey = cfg.OpenRouter.Key
		sc.BaseURL = cfg.OpenRouter.URL
		sc.Models = cfg.OpenRouter.Models
		return translator.NewOpenRouterService(sc), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// buildTranslator wraps svc with the optional circuit breaker and translation
// memory. memory may be nil.
func buildTranslator(svc translator.Service, cfg *config.Config, memory translator.Memory) translator.Translator {
	var t translator.Translator = svc
	if cfg.Breaker.Enabled {
		t = translator.NewBreaker(svc.Name(), t, translator.BreakerConfig{
			MaxFailures: cfg.Breaker.MaxFailures,
			Timeout:     cfg.Breaker.Timeout,
		})
	}
	if memory != nil {
		t = translator.NewCached(svc.Name(), cfg.Source, t, memory)
	}
	return t
}

// languageNames returns the configured provider's registry, or the Google
// table when the provider cannot be built or reached.
func languageNames(ctx context.Context, cfg *config.Config) translator.Languages {
	svc, err := buildService(cfg)
	if err != nil {
		return translator.GoogleLanguages
	}
	langs, err := svc.SupportedLanguages(ctx)
	if err != nil || len(langs) == 0 {
		return translator.GoogleLanguages
	}
	return langs
}
