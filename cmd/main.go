package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"proxy-rotator/config"
	"proxy-rotator/internal/balancer"
	"proxy-rotator/internal/fetcher"
	"proxy-rotator/internal/geoip"
	"proxy-rotator/internal/logger"
	"proxy-rotator/internal/plugin"
	"proxy-rotator/internal/provider"
	"proxy-rotator/internal/repository"
	"proxy-rotator/internal/service"
	"proxy-rotator/internal/settings"
	"proxy-rotator/internal/transport/http/api"

	"go.uber.org/zap"
)

type app struct {
	srv     *http.Server
	plugin  *plugin.Plugin
	closers []io.Closer
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}

func main() {
	ctx := context.Background()
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	a, err := run(ctx, os.Stdout, os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	defer a.close()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	a.plugin.Stop(shutdownCtx)
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server exited gracefully")
}

func run(ctx context.Context, w io.Writer, args []string) (*app, error) {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(w)
	configPath := fs.String("config", "config/config.yml", "path to the YAML config")
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return nil, fmt.Errorf("Error loading config: %v", err)
	}

	ctx, err = logger.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("Error create logger: %v", err)
	}
	lg := logger.GetLoggerFromCtx(ctx)

	a := &app{}

	journal, err := repository.OpenJournal(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("Journal setup failed: %v", err)
	}
	opts := []plugin.Option{}
	if journal != nil {
		a.closers = append(a.closers, journal)
		opts = append(opts, plugin.WithJournal(journal))
	}

	if cfg.GeoIP.DBPath != "" {
		geo, err := geoip.New(cfg.GeoIP.DBPath)
		if err != nil {
			lg.Warn(ctx, "GeoIP disabled", zap.Error(err))
		} else {
			a.closers = append(a.closers, geo)
			opts = append(opts, plugin.WithCountryLookup(geo))
		}
	}

	bal, err := balancer.New(cfg.Rotator.Strategy)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("Rotator setup failed: %v", err)
	}

	svc := service.NewRotatorService(cfg,
		provider.NewHTTPListProvider(cfg),
		bal,
		fetcher.NewProxyFetcher(cfg),
	)

	a.plugin = plugin.New(svc, settings.New(cfg.Settings.Enabled), lg, opts...)
	a.plugin.Load(ctx)
	a.plugin.Start(ctx)

	handler := api.NewHandler(ctx, cfg, a.plugin)
	router := api.NewRouter(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	lg.Info(ctx, "Starting server", zap.String("addr", addr))

	a.srv = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := a.srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	return a, nil
}
