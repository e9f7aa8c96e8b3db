package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"shuttle/internal/config"
	"shuttle/internal/eventbus"
	"shuttle/internal/logging"
	"shuttle/internal/ui"
)

// errAborted is returned when the user leaves with ctrl+c
var errAborted = errors.New("aborted")

type options struct {
	configPath string
	itemFiles  []string
	logFile    string
	logLevel   string
	jsonOut    bool
	save       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, errAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "shuttle [items-file...]",
		Short: "Move items between a source and a target list",
		Long: `shuttle shows two lists side by side and lets you move items between them.

Items come from the config file, from item files (.toml, .yaml, .json or one
key per line) and from stdin when it is not a terminal. On accept the keys in
the target list are printed, one per line or as JSON.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.itemFiles = append(opts.itemFiles, args...)
			return run(cmd.Context(), opts, os.Stdin, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: user config dir/shuttle/config.toml)")
	flags.StringArrayVarP(&opts.itemFiles, "items", "i", nil, "items file to load, repeatable")
	flags.StringVar(&opts.logFile, "log-file", logging.DefaultFile, "log file path")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.BoolVar(&opts.jsonOut, "json", false, "print the target keys as a JSON array")
	flags.BoolVar(&opts.save, "save", false, "save the target keys to the config file on accept")

	return cmd
}

func run(ctx context.Context, opts *options, stdin *os.File, out io.Writer) error {
	logger, closer, err := logging.Init(opts.logFile, opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logger = zerolog.Nop()
	} else {
		defer closer.Close()
	}

	bus := eventbus.New(logger)
	defer bus.Close()
	defer subscribeJournal(bus, logger)()

	configSvc := configService(opts.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	base := *cfg

	piped := stdinPiped(stdin)
	if err := loadItems(ctx, cfg, opts.itemFiles, stdin, piped); err != nil {
		return err
	}
	if len(cfg.Items) == 0 {
		return fmt.Errorf("no items: pass an items file, pipe items on stdin or add [[items]] to %s", configSvc.Path())
	}
	logger.Info().Int("items", len(cfg.Items)).Int("targets", len(cfg.TargetKeys)).Msg("starting")

	saver := newAutosaver(configSvc, base, logger)
	if cfg.UISettings.AutosaveOnExit {
		bus.Subscribe(eventbus.EventItemsMoved, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ItemsMovedEvent); ok {
				if err := saver.moved(event); err != nil {
					bus.Publish(eventbus.ErrorEvent{Message: "autosave failed", Err: err})
				}
			}
		})
	}

	uiModel := ui.NewModel(bus, cfg, logger)

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	if piped {
		// stdin carried the items, so keys have to come from the terminal
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(uiModel, programOpts...)
	uiModel.SetProgram(p)

	// Forward events the status line reports
	for _, eventType := range []eventbus.EventType{eventbus.EventError, eventbus.EventConfigSaved} {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	keys, accepted := uiModel.Result()
	if !accepted {
		logger.Info().Msg("aborted by user")
		return errAborted
	}

	if opts.save || cfg.UISettings.AutosaveOnExit {
		if err := saver.final(keys); err != nil {
			return err
		}
	}

	return writeResult(out, keys, opts.jsonOut)
}

func configService(path string, bus eventbus.EventBus) config.ConfigService {
	if path != "" {
		return config.NewConfigServiceForPath(path, bus)
	}
	return config.NewConfigServiceWithBus(bus)
}

// saveTargets writes targetKeys into the config as loaded from disk, without the items
// that came from files or stdin.
func saveTargets(svc config.ConfigService, base config.Config, targetKeys []string, logger zerolog.Logger) error {
	base.TargetKeys = targetKeys
	if err := svc.Save(&base); err != nil {
		logger.Error().Err(err).Str("path", svc.Path()).Msg("failed to save config")
		return fmt.Errorf("failed to save config: %w", err)
	}
	logger.Info().Str("path", svc.Path()).Strs("target_keys", targetKeys).Msg("config saved")
	return nil
}
