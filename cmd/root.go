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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/multitran/internal/config"
	"github.com/valpere/multitran/internal/console"
)

var version = "0.1.0"

var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "multitran",
	Short: "CLI Multi-Language Translator",
	Long: `A CLI application that translates text into several languages at once
and keeps a JSON history of every request.

Supported providers: gtranslate (default), Google Cloud Translation,
MyMemory, Ollama (LLM), OpenRouter (LLM)

Use "multitran translate --help" for translation options.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			console.Disable()
		}
		return config.Init(viper.GetViper(), cfgFile)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.multitran.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().String("history-file", config.DefaultHistoryFile, "Translation history file")

	viper.BindPFlag("history_file", rootCmd.PersistentFlags().Lookup("history-file"))
}

// bindFlags maps config keys to the command's flags. Several commands share
// keys, so binding happens when the command runs rather than in init.
func bindFlags(keys map[string]string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for key, name := range keys {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				continue
			}
			if err := viper.BindPFlag(key, flag); err != nil {
				return err
			}
		}
		return nil
	}
}
