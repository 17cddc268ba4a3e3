package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/mealplan/internal/config"
	"github.com/five82/mealplan/internal/logging"
	"github.com/five82/mealplan/internal/mealapi"
	"github.com/five82/mealplan/internal/prefs"
	"github.com/five82/mealplan/internal/routes"
	"github.com/five82/mealplan/internal/state"
	"github.com/five82/mealplan/internal/ui"
)

// Options configure the mealplan client.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/mealplan/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	Path       string // initial location; empty resumes the last one
}

// Run boots the mealplan TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	log, closeLog, err := logging.Init(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	client, err := mealapi.NewClient(cfg.APIBaseURL(), mealapi.WithLogger(log))
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	table, err := ui.NewRouteTable()
	if err != nil {
		return fmt.Errorf("build route table: %w", err)
	}
	resolver := routes.NewResolver(table)
	for _, shadow := range table.Shadows() {
		log.WithField("shadow", shadow.String()).Warn("route is unreachable")
	}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"endpoint":    client.BaseURL(),
		"routes":      table.Len(),
		"poll":        interval,
	}).Info("starting mealplan")

	store := &state.Store{}
	StartPoller(ctx, store, client, interval, log)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Resolver:  resolver,
		Log:       log,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		StartPath: startPath(opts.Path, userPrefs.LastPath),
	})
}

// startPath picks the first non-empty of the flag and the remembered path.
func startPath(flagPath, lastPath string) string {
	for _, p := range []string{flagPath, lastPath} {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return "/"
}
