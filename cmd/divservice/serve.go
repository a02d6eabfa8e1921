package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diversityworkbench/divservice/internal/ioapi"
	"github.com/diversityworkbench/divservice/internal/iocache"
	"github.com/diversityworkbench/divservice/internal/iodb"
	"github.com/diversityworkbench/divservice/internal/iodiscovery"
	"github.com/diversityworkbench/divservice/internal/ioservice"
	"github.com/diversityworkbench/divservice/internal/iotaxa"
	"github.com/diversityworkbench/divservice/internal/ioupload"
	app "github.com/diversityworkbench/divservice/pkg"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

func getServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the divservice HTTP server.

The server answers the Diversity Mobile client API: repository and
module discovery, taxon-list aggregation, reference data, collection
downloads and transactional uploads.

Examples:
  divservice serve
  divservice serve --config custom.yaml`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	resCache, err := iocache.New(cfg.Cache)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer func() { _ = resCache.Close() }()

	connector := iodb.NewConnector()
	disc := iodiscovery.New(resCache, cfg.Cache.TTL)
	opener := iodb.NewOpener(connector, cfg)
	agg := iotaxa.New(opener, disc, resCache, cfg.Cache.TTL)
	svc := ioservice.New(cfg, connector, agg, ioupload.New())

	server := ioapi.NewServer(cfg.API, svc, app.Version, app.Build)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server",
			"addr", cfg.API.Addr, "version", app.Version)
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			gn.PrintErrorMessage(err)
			return err
		}
	case sig := <-sigCh:
		slog.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
