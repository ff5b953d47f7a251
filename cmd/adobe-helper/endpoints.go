// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/adobe-helper/internal/endpoints"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Print the resolved conversion service endpoints",
	Long: `Endpoints prints the URL of each logical endpoint (upload, conversion,
status, download) after layering built-in defaults, an optional
discovered-endpoints file, and environment-variable overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config-file")
		format, _ := cmd.Flags().GetString("format")

		set := endpoints.Resolve(configFile, log)

		if format == "table" {
			fmt.Printf("upload:     %s\n", set.Upload)
			fmt.Printf("conversion: %s\n", set.Conversion)
			fmt.Printf("status:     %s\n", set.Status)
			fmt.Printf("download:   %s\n", set.Download)
			return nil
		}
		return writeDoc(format, set)
	},
}

func init() {
	endpointsCmd.Flags().String("config-file", "", "explicit discovered-endpoints file")
	endpointsCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(endpointsCmd)
}
