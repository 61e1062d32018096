package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"chatwidget/internal/api"
	"chatwidget/internal/config"
	"chatwidget/internal/prefs"
	"chatwidget/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "chatwidget",
	Short: "Embeddable chat widget with a terminal host",
	Long: `chatwidget runs the chat widget inside a terminal host page.

Configuration follows the embed contract: flags override the built-in
defaults, and preferences persisted from earlier sessions (theme, panel
dimensions, identity) override both.`,
	RunE: run,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("api-base", "", "backend API base URL (empty means "+api.DefaultBaseURL+")")
	flags.String("theme", "", "initial theme: light or dark")
	flags.String("position", "", "panel anchor: left or right")
	flags.String("welcome", "", "greeting shown when the panel first opens")
	flags.String("icon", "", "launcher button icon")
	flags.String("title", "", "panel title")
	flags.String("placeholder", "", "input placeholder text")
	flags.Int("width", 0, "initial panel width in px")
	flags.Int("height", 0, "initial panel height in px")
	flags.String("prefs", "", "preference file path (default: user config dir)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-file", "", "write logs to this file (default: discard)")
}

func run(cmd *cobra.Command, args []string) error {
	// .env is optional; flags and defaults cover everything it could set.
	_ = godotenv.Load()

	if err := setupLogging(cmd); err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, store)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	client := api.NewClient(cfg.APIBase)
	model := ui.New(ctx, cfg, store, client)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		return errors.Wrap(err, "running program")
	}
	return nil
}

// setupLogging routes zerolog away from the terminal the TUI owns: to a file
// when asked for, otherwise nowhere.
func setupLogging(cmd *cobra.Command) error {
	levelStr, _ := cmd.Flags().GetString("log-level")
	if !cmd.Flags().Changed("log-level") {
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			levelStr = env
		}
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", levelStr)
	}
	zerolog.SetGlobalLevel(level)

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile == "" {
		logFile = os.Getenv("CHATWIDGET_LOG_FILE")
	}
	if logFile == "" {
		log.Logger = zerolog.Nop()
		return nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening log file %s", logFile)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return nil
}

func resolveConfig(cmd *cobra.Command, store prefs.Store) (config.Config, error) {
	flags := cmd.Flags()

	var o config.Overrides
	o.APIBase, _ = flags.GetString("api-base")
	if o.APIBase == "" {
		o.APIBase = os.Getenv("CHATWIDGET_API_BASE")
	}
	themeStr, _ := flags.GetString("theme")
	if themeStr == "" {
		themeStr = os.Getenv("CHATWIDGET_THEME")
	}
	if themeStr != "" {
		theme := config.Theme(themeStr)
		if !theme.Valid() {
			return config.Config{}, errors.Errorf("invalid theme %q: want light or dark", themeStr)
		}
		o.Theme = theme
	}
	posStr, _ := flags.GetString("position")
	if posStr != "" {
		pos := config.Position(posStr)
		if pos != config.PositionLeft && pos != config.PositionRight {
			return config.Config{}, errors.Errorf("invalid position %q: want left or right", posStr)
		}
		o.Position = pos
	}
	o.WelcomeMessage, _ = flags.GetString("welcome")
	o.ButtonIcon, _ = flags.GetString("icon")
	o.Title, _ = flags.GetString("title")
	o.Placeholder, _ = flags.GetString("placeholder")
	o.Width, _ = flags.GetInt("width")
	o.Height, _ = flags.GetInt("height")

	return config.Resolve(config.Defaults(), o, store), nil
}

func openStore(cmd *cobra.Command) (prefs.Store, error) {
	path, _ := cmd.Flags().GetString("prefs")
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			// No config dir, no persistence. The widget works the same,
			// preferences just reset per session.
			return prefs.NewMemoryStore(), nil
		}
		path = filepath.Join(dir, "chatwidget", "prefs.json")
	}
	store, err := prefs.OpenFileStore(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening preference store %s", path)
	}
	return store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
