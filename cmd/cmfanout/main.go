package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cuemby/cmfanout/api/server"
	"github.com/cuemby/cmfanout/pkg/config"
	"github.com/cuemby/cmfanout/pkg/log"
	"github.com/cuemby/cmfanout/pkg/messageservice"
	"github.com/cuemby/cmfanout/pkg/metrics"
	"github.com/cuemby/cmfanout/pkg/pushsink"
	"github.com/cuemby/cmfanout/pkg/tokenservice"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cmfanout",
	Short: "cmfanout - push-notification fan-out server",
	Long: `cmfanout multiplexes token-registry and message-send events to any
number of subscriber streams, filtered by a per-subscriber set predicate,
and forwards sent messages to an upstream push provider.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"cmfanout version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	serveCmd.Flags().String("config", "", "Path to a YAML config file (uses built-in defaults when omitted)")
	serveCmd.Flags().String("listen", "", "gRPC listen address, overrides config")
	serveCmd.Flags().String("metrics-addr", "", "Metrics/health HTTP listen address, overrides config")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fan-out server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
		cfg.ListenAddr = addr
	}
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		cfg.MetricsAddr = addr
	}

	log.Init(log.Config{Level: log.Level(cfg.LogLevel), JSONOutput: cfg.LogJSON})
	metrics.SetVersion(Version)

	sink, err := buildPushSink(cfg.PushSink)
	if err != nil {
		return err
	}

	tokenSvc := tokenservice.New(cfg.TokenBusCapacity)
	messageSvc := messageservice.New(cfg.MessageBusCapacity, sink, cfg.AllowSendWithNoSubscribers)
	metrics.RegisterComponent("token_store", true, "")
	metrics.RegisterComponent("bus", true, "")

	grpcServer := server.New(tokenSvc, messageSvc)

	httpErrCh := make(chan error, 1)
	go func() {
		httpErrCh <- serveHTTP(cfg.MetricsAddr)
	}()

	grpcErrCh := make(chan error, 1)
	go func() {
		err := grpcServer.Serve(cfg.ListenAddr)
		metrics.RegisterComponent("grpc", false, "server stopped")
		grpcErrCh <- err
	}()
	metrics.RegisterComponent("grpc", true, "")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("shutdown signal received")
	case err := <-grpcErrCh:
		if err != nil {
			return fmt.Errorf("cmfanout: grpc server: %w", err)
		}
	case err := <-httpErrCh:
		if err != nil {
			return fmt.Errorf("cmfanout: metrics server: %w", err)
		}
	}

	grpcServer.Stop()
	log.Info("shutdown complete")
	return nil
}

func serveHTTP(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", metrics.HealthHandler())
	mux.HandleFunc("/ready", metrics.ReadyHandler())
	mux.HandleFunc("/live", metrics.LivenessHandler())
	mux.Handle("/metrics", metrics.Handler())

	log.Info("metrics/health server listening on " + addr)
	return http.ListenAndServe(addr, mux)
}

func buildPushSink(cfg config.PushSinkConfig) (pushsink.Sink, error) {
	switch cfg.Kind {
	case "", "nop":
		return pushsink.NopSink{}, nil
	case "logging":
		return pushsink.NewLoggingSink(), nil
	case "http":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("cmfanout: pushSink.endpoint is required when pushSink.kind is \"http\"")
		}
		return pushsink.NewHTTPSink(cfg.Endpoint, cfg.APIKey, nil), nil
	default:
		return nil, fmt.Errorf("cmfanout: unknown pushSink.kind %q (want nop, logging, or http)", cfg.Kind)
	}
}
