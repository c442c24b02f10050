package main

import (
	"fmt"
	"os"

	"github.com/matsen/phonebook/internal/config"
	"github.com/spf13/cobra"
)

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	ConfigFile string `json:"config_file"`
	AppDir     string `json:"app_dir"`
	File       string `json:"file"`
	LogLevel   string `json:"log_level,omitempty"`
	LogFormat  string `json:"log_format,omitempty"`
	LogFile    string `json:"log_file,omitempty"`
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration",
	Long: `Show where configuration is read from and which contacts file is used.

Settings come from, in order of precedence:
  --file flag
  PHONEBOOK_DIR environment variable (also read from .env)
  data_dir in ~/.config/phonebook/config.yml
  ~/.gestContactApp

Example config.yml:
  data_dir: ~/Documents/contacts
  log_level: warn
  log_format: text`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveSettings(os.Stderr)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	resp := ConfigResponse{
		ConfigFile: config.GlobalConfigPath(),
		AppDir:     cfg.appDir,
		File:       cfg.file,
		LogLevel:   cfg.global.LogLevel,
		LogFormat:  cfg.global.LogFormat,
		LogFile:    cfg.global.LogFile,
	}

	if jsonOutput {
		return outputJSON(resp)
	}

	fmt.Printf("config-file: %s\n", resp.ConfigFile)
	fmt.Printf("app-dir:     %s\n", resp.AppDir)
	fmt.Printf("file:        %s\n", resp.File)
	if resp.LogLevel != "" {
		fmt.Printf("log-level:   %s\n", resp.LogLevel)
	}
	if resp.LogFormat != "" {
		fmt.Printf("log-format:  %s\n", resp.LogFormat)
	}
	if resp.LogFile != "" {
		fmt.Printf("log-file:    %s\n", resp.LogFile)
	}
	return nil
}
