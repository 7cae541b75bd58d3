package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/trezcool/masomo-portal/apps/portal/views"
	"github.com/trezcool/masomo-portal/apps/tui/portalui"
	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
	logsvc "github.com/trezcool/masomo-portal/services/logger"
	notifysvc "github.com/trezcool/masomo-portal/services/notify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var skipAuth, dark bool
	var logOutput string

	conf := core.NewConfig()

	flagSet := pflag.NewFlagSet("masomo-tui", pflag.ContinueOnError)
	flagSet.BoolVar(&skipAuth, "skip-auth", conf.Portal.SkipAuth, "start logged in as admin")
	flagSet.BoolVar(&dark, "dark", false, "start with the dark theme")
	flagSet.StringVar(&logOutput, "log-output", "", "write logs to this file (discarded by default)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	// the terminal belongs to the UI: log elsewhere
	var logWriter io.Writer = io.Discard
	if logOutput != "" {
		file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer file.Close()
		logWriter = file
	}
	logger := logsvc.NewRollbarLogger(log.New(logWriter, "TUI : ", log.LstdFlags|log.Lmicroseconds), conf)

	opts := portal.Options{SkipAuth: skipAuth}
	if dark {
		opts.Theme = portal.ThemeDark
	}
	notifier := notifysvc.NewFlashNotifier(logger)
	// a local terminal picks its role
	svc := portal.NewService(views.DefaultRegistry(), portal.NewGate(portal.TrustedAuthenticator, notifier), notifier, opts)

	program := tea.NewProgram(portalui.NewModel(svc, notifier), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
