package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/tg-relay/pkg/audit"
	"github.com/umputun/tg-relay/pkg/bot"
	"github.com/umputun/tg-relay/pkg/config"
	"github.com/umputun/tg-relay/pkg/repository"
	"github.com/umputun/tg-relay/pkg/telegram"
	"github.com/umputun/tg-relay/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"tg-relay.yml" description:"config file"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = opts.NoColor
	setupLog(opts.Debug)

	lgr.Printf("[INFO] starting tg-relay version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] tg-relay failed: %v", err)
		os.Exit(1)
	}

	lgr.Printf("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("can't load config %s: %w", opts.Config, err)
	}
	setupLog(opts.Debug, cfg.Telegram.Token) // re-setup to mask the token in logs

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	}, cfg.Telegram.SuperAdmins)
	if err != nil {
		return fmt.Errorf("can't initialize storage: %w", err)
	}
	defer func() {
		if e := repos.Close(); e != nil {
			lgr.Printf("[WARN] failed to close storage: %v", e)
		}
	}()

	recorder := audit.NewRecorder(audit.Params{
		Store:         repos.Blob,
		Location:      cfg.Location(),
		KeepDays:      cfg.Retention.Days,
		CheckInterval: cfg.Retention.CheckInterval,
	})

	client := telegram.New(telegram.Params{
		Token:       cfg.Telegram.Token,
		APIURL:      cfg.Telegram.APIURL,
		Timeout:     cfg.Telegram.Timeout,
		PollTimeout: cfg.Telegram.PollTimeout,
	})

	self, err := client.Self(ctx)
	if err != nil {
		return fmt.Errorf("can't authorize bot: %w", err)
	}
	lgr.Printf("[INFO] authorized as @%s", self)

	relay := bot.New(bot.Params{
		Transport:   client,
		Store:       repos.Settings,
		Audit:       recorder,
		SuperAdmins: cfg.Telegram.SuperAdmins,
		RelayMode:   cfg.Telegram.RelayMode,
	})

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		recorder.Run(ctx)
		return nil
	})

	group.Go(func() error {
		return client.Listen(ctx, relay)
	})

	if cfg.Server.Enabled {
		srv := server.New(cfg, repos.Settings, revision, opts.Debug)
		group.Go(func() error {
			return srv.Run(ctx)
		})
	}

	return group.Wait()
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
