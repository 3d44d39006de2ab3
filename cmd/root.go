package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/scribe/internal/config"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/tui"
	"github.com/zjrosen/scribe/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply can land in the document as typed text.
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scribe [file]",
	Short: "A minimal rich-text line editor for the terminal",
	Long: `scribe edits plain text with one document-wide format: font, bold,
italic, underline, color and alignment. Every edit and format change is
undoable, and the document can be exported to PNG.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .scribe/config.yaml or ~/.config/scribe/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by SCRIBE_DEBUG)")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .scribe/config.yaml (current directory)
		// 2. ~/.config/scribe/config.yaml (user config)
		if _, err := os.Stat(config.DefaultConfigPath); err == nil {
			viper.SetConfigFile(config.DefaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "scribe"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config anywhere: write the commented default and use it.
			if writeErr := config.WriteDefaultConfig(config.DefaultConfigPath); writeErr == nil {
				viper.SetConfigFile(config.DefaultConfigPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setupLogging enables the debug log when asked for by flag or environment.
// The returned cleanup is never nil.
func setupLogging(prefix string) (func(), error) {
	if os.Getenv("SCRIBE_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("SCRIBE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "Debug logging enabled", "path", logPath, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

func runEditor(_ *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = cfg.Normalized()

	cleanup, err := setupLogging("scribe")
	if err != nil {
		return err
	}
	defer cleanup()

	var text string
	if len(args) == 1 {
		text, err = readDocument(args[0])
		if err != nil {
			return err
		}
	}

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}

	// Live reload is optional; the editor works without it.
	var w *watcher.Watcher
	if _, statErr := os.Stat(configPath); statErr == nil {
		if w, err = watcher.New(watcher.DefaultConfig(configPath)); err == nil {
			if err = w.Start(); err != nil {
				log.ErrorErr(log.CatWatcher, "Config watcher unavailable", err)
				_ = w.Stop()
				w = nil
			}
		}
	}

	zone.NewGlobal()
	model := tui.New(tui.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Text:       text,
		Clipboard:  tui.SystemClipboard{},
		Watcher:    w,
		Debug:      debugFlag || os.Getenv("SCRIBE_DEBUG") != "",
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	} else {
		model.Close()
	}
	if w != nil {
		if stopErr := w.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// readDocument reads the file at path, or standard input for "-".
func readDocument(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied document
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(data), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
