// ABOUTME: CLI command for configuring server connection.
// ABOUTME: Writes server URL and token to the config file.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainer/internal/config"
)

var (
	loginServer string
	loginToken  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Configure the server connection",
	Long: `Store the server URL and auth token in the trainer config.

Example:
  trainer login --server https://planner.example.com --token eyJhbGci...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginServer == "" {
			return fmt.Errorf("--server is required")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		cfg.Server = strings.TrimRight(loginServer, "/")
		if loginToken != "" {
			cfg.Token = loginToken
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		color.Green("✓ Configured %s", cfg.Server)
		fmt.Printf("  Device: %s\n", cfg.DeviceID[:8])
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginServer, "server", "s", "", "server base URL")
	loginCmd.Flags().StringVarP(&loginToken, "token", "t", "", "bearer token")
	rootCmd.AddCommand(loginCmd)
}
