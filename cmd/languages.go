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
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/multitran/internal/config"
)

var languagesCmd = &cobra.Command{
	Use:     "languages",
	Short:   "List the language codes the provider supports",
	Args:    cobra.NoArgs,
	PreRunE: bindFlags(providerKeys),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(viper.GetViper())

		svc, err := buildService(cfg)
		if err != nil {
			return err
		}

		langs, err := svc.SupportedLanguages(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch supported languages: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tLANGUAGE")
		for _, code := range langs.Codes() {
			fmt.Fprintf(w, "%s\t%s\n", code, langs.Name(code))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)

	addProviderFlags(languagesCmd)
}
