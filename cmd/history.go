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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/multitran/internal/config"
	"github.com/valpere/multitran/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the translation history",
}

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every saved translation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(viper.GetViper())
		langs := languageNames(context.Background(), cfg)
		return history.New(cfg.HistoryFile).Display(cmd.OutOrStdout(), langs)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the history file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(viper.GetViper())
		if err := history.New(cfg.HistoryFile).Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared translation history: %s\n", cfg.HistoryFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}
