package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tussenuur/internal/campus"
	"tussenuur/internal/config"
	"tussenuur/internal/health"
	appLog "tussenuur/internal/log"
	"tussenuur/internal/timetable"
	"tussenuur/internal/web"
)

type flagConfig struct {
	configPath string
	listen     string
	debug      bool
}

func main() {
	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	appLog.Info("tussenuur starting", "version", "0.1.0")

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"locations_path", conf.LocationsPath,
		"timetable_base_url", conf.Timetable.BaseURL,
		"degraded_rooms_open", conf.DegradedOpen(),
		"probe_cron", conf.Probe.Cron,
	)

	locations, err := campus.Load(conf.LocationsPath)
	if err != nil {
		appLog.Error("failed to load locations", err, "path", conf.LocationsPath)
		os.Exit(1)
	}
	appLog.Info("locations loaded", "count", len(locations.All()))

	fetchTimeout := time.Duration(conf.Timetable.FetchTimeoutSeconds) * time.Second
	schedules := timetable.NewClient(timetable.ClientConfig{
		BaseURL:        conf.Timetable.BaseURL,
		EngineeringURL: conf.Timetable.EngineeringURL,
		FetchTimeout:   fetchTimeout,
	})

	prober := health.NewProber(conf.Timetable.BaseURL, fetchTimeout)
	if err := prober.Start(conf.Probe.Cron); err != nil {
		appLog.Error("failed to start source probe", err, "cron", conf.Probe.Cron)
		os.Exit(1)
	}
	defer prober.Stop()

	server, err := web.NewServer(conf, locations, schedules, prober)
	if err != nil {
		appLog.Error("failed to build server", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	httpServer := &http.Server{
		Addr:              conf.Listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("HTTP server failed", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP shutdown failed", err)
	}
	appLog.Info("tussenuur exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/tussenuur/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
