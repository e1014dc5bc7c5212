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
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/multitran/internal/config"
	"github.com/valpere/multitran/internal/dispatcher"
	"github.com/valpere/multitran/internal/history"
	"github.com/valpere/multitran/internal/session"
	"github.com/valpere/multitran/internal/store"
	"github.com/valpere/multitran/internal/translator"
)

var translateKeys = map[string]string{
	"languages":            "languages",
	"workers":              "workers",
	"whitespace":           "whitespace",
	"exit_keyword":         "exit-keyword",
	"cache.db":             "cache-db",
	"breaker.enabled":      "breaker",
	"breaker.max_failures": "breaker-max-failures",
	"breaker.timeout":      "breaker-timeout",
}

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate text into several languages interactively",
	Long: `Read text from standard input and translate every line into each of the
requested languages. Results are printed and appended to the history file.

Type the exit keyword (default "exit") or send EOF to quit.

Available providers:
  - gtranslate  Google Translate web endpoint (default, no credentials)
  - google      Google Cloud Translation (requires credentials)
  - mymemory    MyMemory (free, 5000 chars/day)
  - ollama      Ollama LLM (self-hosted)
  - openrouter  OpenRouter LLM (requires API key)

Example: multitran translate --languages en,fr,de`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(providerKeys)(cmd, args); err != nil {
			return err
		}
		return bindFlags(translateKeys)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(viper.GetViper())
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := context.Background()

		svc, err := buildService(cfg)
		if err != nil {
			return err
		}

		langs, err := svc.SupportedLanguages(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch supported languages: %w", err)
		}
		if err := translator.Validate(langs, cfg.Languages); err != nil {
			return err
		}

		var memory translator.Memory
		if cfg.Cache.DB != "" {
			db, err := store.New(cfg.Cache.DB)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
			memory = db
		}

		d := dispatcher.New(buildTranslator(svc, cfg, memory), dispatcher.Config{Workers: cfg.Workers}, dispatcher.WithLog(os.Stderr))
		s := session.New(cmd.InOrStdin(), cmd.OutOrStdout(), d, history.New(cfg.HistoryFile), langs, session.Config{
			Languages:   cfg.Languages,
			ExitKeyword: cfg.ExitKeyword,
			Whitespace:  cfg.Whitespace,
		})
		return s.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	addProviderFlags(translateCmd)

	translateCmd.Flags().StringP("languages", "l", "", "Target language codes (comma-separated, required)")
	translateCmd.Flags().IntP("workers", "w", dispatcher.DefaultWorkers(), "Concurrent provider calls (1 = sequential)")
	translateCmd.Flags().String("whitespace", config.DefaultWhitespace, "Whitespace-only input policy: reject or accept")
	translateCmd.Flags().String("exit-keyword", config.DefaultExitKeyword, "Input that ends the session")

	translateCmd.Flags().String("cache-db", "", "Translation memory database (disabled when empty)")
	translateCmd.Flags().Bool("breaker", false, "Fail fast after repeated provider errors")
	translateCmd.Flags().Uint32("breaker-max-failures", 5, "Consecutive failures that open the breaker")
	translateCmd.Flags().Duration("breaker-timeout", 30*time.Second, "How long the breaker stays open")
}

func addProviderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("provider", "p", config.DefaultProvider, "Translation provider: gtranslate, google, mymemory, ollama, openrouter")
	cmd.Flags().StringP("source", "s", "auto", "Source language code")
	cmd.Flags().StringP("credentials", "c", "", "Path to Google Cloud credentials")
	cmd.Flags().String("project", "", "Google Cloud Project ID")
	cmd.Flags().String("mymemory-email", "", "MyMemory email (for higher limits)")
	cmd.Flags().Bool("detect", false, "Detect the source language per text for MyMemory")
	cmd.Flags().String("detect-languages", "", "Comma-separated codes to limit source detection to (default all)")
	cmd.Flags().String("ollama-url", "http://localhost:11434", "Ollama base URL")
	cmd.Flags().StringSlice("ollama-models", nil, "Ollama models to rotate (default list used if empty)")
	cmd.Flags().String("openrouter-key", "", "OpenRouter API key")
	cmd.Flags().StringSlice("openrouter-models", nil, "OpenRouter models to rotate (default list used if empty)")
}
