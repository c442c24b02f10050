// Package main provides the phonebook CLI entry point.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/matsen/phonebook/internal/config"
	"github.com/matsen/phonebook/internal/logger"
	"github.com/matsen/phonebook/internal/phonebook"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	jsonOutput bool
	fileFlag   string
	logLevel   string
	logFormat  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "phonebook",
	Short: "Personal contact directory",
	Long: `phonebook keeps a personal list of contacts.

Run without arguments for the interactive menu (list, add, search, delete).
The subcommands do the same things non-interactively.

Contacts are stored one JSON record per line in ~/.gestContactApp/PhoneBook.txt.
The whole file is rewritten after every change.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Use JSON output instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&fileFlag, "file", "", "Path to the contacts file (overrides data_dir and PHONEBOOK_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.Version = Version
}

// session is everything a command needs once startup is done.
type session struct {
	store  *phonebook.Store
	logger *slog.Logger
	appDir string
}

// settings is the resolved configuration for this run.
type settings struct {
	global *config.GlobalConfig
	appDir string
	file   string
}

// resolveSettings loads .env and the global config, then applies flags.
// A broken global config is reported on errOut and replaced by defaults.
func resolveSettings(errOut io.Writer) (*settings, error) {
	_ = godotenv.Load()

	global, err := config.LoadGlobalConfig()
	if err != nil {
		fmt.Fprintf(errOut, "warning: %v (using defaults)\n", err)
		global = &config.GlobalConfig{}
	}

	s := &settings{global: global}
	if fileFlag != "" {
		s.file = config.ExpandPath(fileFlag)
		s.appDir = filepath.Dir(s.file)
		return s, nil
	}

	s.appDir, err = config.ResolveAppDir(global)
	if err != nil {
		return nil, err
	}
	s.file = config.PhoneBookPath(s.appDir)
	return s, nil
}

// newLogger builds the logger from the global config, with flags taking precedence.
func newLogger(global *config.GlobalConfig) *slog.Logger {
	opts := &logger.Options{
		Level:  global.LogLevel,
		Format: global.LogFormat,
		File:   global.LogFile,
	}
	if logLevel != "" {
		opts.Level = logLevel
	}
	if logFormat != "" {
		opts.Format = logFormat
	}
	return logger.New(opts)
}

// openSession prepares the application directory and loads the contacts.
// Problems with the directory or the save file are written to errOut and the
// session starts with whatever could be loaded, possibly nothing.
func openSession(out, errOut io.Writer) (*session, error) {
	cfg, err := resolveSettings(errOut)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.global)
	p := painter{enabled: isTTY(errOut)}

	created, err := config.EnsureAppDir(cfg.appDir)
	if err != nil {
		fmt.Fprintln(errOut, p.paint(errorStyle, fmt.Sprintf("Critical error: cannot create the application directory: %v", err)))
		log.Error("application directory unavailable", "dir", cfg.appDir, "err", err)
	} else if created {
		fmt.Fprintf(out, "Application directory initialised: %s\n", cfg.appDir)
	}

	store, err := phonebook.Open(cfg.file, log)
	if err != nil {
		fmt.Fprintln(errOut, p.paint(errorStyle, fmt.Sprintf("Error: cannot read the contacts file: %v", err)))
	}

	return &session{store: store, logger: log, appDir: cfg.appDir}, nil
}

// mustOpenSession opens a session for a non-interactive command, exits on error.
func mustOpenSession() *session {
	s, err := openSession(os.Stderr, os.Stderr)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return s
}

// exitOnDivergence reports a failed save after a change and exits.
func exitOnDivergence(err error) {
	exitWithError(saveExitCode(err), "%v", err)
}

// saveExitCode is ExitDiverged when the session holds changes the save file
// lacks, ExitDataError otherwise.
func saveExitCode(err error) int {
	var divErr *phonebook.DivergenceError
	if errors.As(err, &divErr) {
		return ExitDiverged
	}
	return ExitDataError
}
