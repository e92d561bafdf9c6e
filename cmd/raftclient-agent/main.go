// Package main provides the entry point for raftclient-agent.
//
// raftclient-agent is the long-running form of the Raft smart client:
// it stays connected to a cluster, exposes the client's Prometheus
// metrics over HTTP, re-refreshes membership when the configured seed
// list changes on disk or the gossip ring reports churn, and shuts
// down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/raftclient-go/internal/agent/config"
	"github.com/yndnr/raftclient-go/internal/infra/buildinfo"
	"github.com/yndnr/raftclient-go/internal/infra/confloader"
	"github.com/yndnr/raftclient-go/internal/infra/shutdown"
	"github.com/yndnr/raftclient-go/internal/infra/tlsroots"
	"github.com/yndnr/raftclient-go/internal/raftclient"
	"github.com/yndnr/raftclient-go/internal/raftmembership"
	"github.com/yndnr/raftclient-go/internal/subscription"
	"github.com/yndnr/raftclient-go/internal/telemetry/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("raftclient-agent %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting raftclient-agent",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	roots, err := initRoots(cfg)
	if err != nil {
		return fmt.Errorf("init tls roots: %w", err)
	}

	pool := raftmembership.NewHTTPPool(cfg.Cluster.DialTimeout, roots)
	subs := subscription.New()

	client, err := raftclient.New(cfg.Cluster.Seeds, cfg.Cluster.ServiceID, pool, subs, raftclient.Config{
		MaxRefreshFailures: cfg.Cluster.MaxRefreshFailures,
		Logger:             log,
	})
	if err != nil {
		return fmt.Errorf("connect cluster: %w", err)
	}
	log.Info("connected",
		"members", client.MembershipSize(),
		"leader_id", client.CurrentLeaderID())

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	if cfg.Gossip.Enabled {
		disc, err := initDiscovery(cfg, client, log)
		if err != nil {
			return fmt.Errorf("init gossip discovery: %w", err)
		}
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("leaving gossip ring")
			return disc.Shutdown()
		})
	}

	if *configFile != "" {
		watcher, err := initConfigWatch(*configFile, client, log)
		if err != nil {
			return fmt.Errorf("init config watcher: %w", err)
		}
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("stopping config watcher")
			return watcher.Stop()
		})
	}

	metricsServer := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: metricsMux(client),
	}
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down metrics server")
		return metricsServer.Shutdown(ctx)
	})

	go func() {
		log.Info("metrics server listening", "addr", cfg.Metrics.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", "error", err)
		}
	}()

	log.Info("agent started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("agent stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.AgentConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.AgentConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

// initRoots builds the TLS trust pool when custom roots are configured,
// or returns nil so the HTTP pool uses the default transport.
func initRoots(cfg *config.AgentConfig) (*tlsroots.Pool, error) {
	if cfg.TLS.CAFile == "" && cfg.TLS.CADir == "" {
		return nil, nil
	}

	roots, err := tlsroots.NewPool()
	if err != nil {
		return nil, err
	}
	if cfg.TLS.CAFile != "" {
		if err := roots.AddCertFile(cfg.TLS.CAFile); err != nil {
			return nil, err
		}
	}
	if cfg.TLS.CADir != "" {
		if err := roots.AddCertDir(cfg.TLS.CADir); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

// initDiscovery joins the gossip ring and feeds every observed change
// back into the client's membership view as a refresh candidate set.
func initDiscovery(cfg *config.AgentConfig, client *raftclient.RaftClient, log logger.Logger) (*raftmembership.Discovery, error) {
	var disc *raftmembership.Discovery
	disc, err := raftmembership.NewDiscovery(raftmembership.DiscoveryConfig{
		NodeID:    cfg.Gossip.NodeID,
		ClusterID: cfg.Gossip.ClusterID,
		BindAddr:  cfg.Gossip.BindAddr,
		BindPort:  cfg.Gossip.BindPort,
		SeedNodes: cfg.Gossip.Seeds,
		Logger:    log,
		OnChange: func() {
			if disc == nil {
				return
			}
			if err := client.RefreshMembership(disc.Addresses()); err != nil {
				log.Warn("gossip-triggered refresh failed", "error", err)
			}
		},
	})
	return disc, err
}

// initConfigWatch re-reads the config file on change and pushes the new
// seed list into the membership view.
func initConfigWatch(configFile string, client *raftclient.RaftClient, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		if err := client.RefreshMembership(cfg.Cluster.Seeds); err != nil {
			log.Warn("seed-triggered refresh failed", "error", err)
			return
		}
		log.Info("membership refreshed from changed config",
			"seeds", cfg.Cluster.Seeds,
			"members", client.MembershipSize())
	})

	watcher.StartAsync()
	return watcher, nil
}

// metricsMux serves the client's Prometheus registry plus a tiny
// liveness probe reporting the cached leader.
func metricsMux(client *raftclient.RaftClient) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", client.Metrics().Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok leader_id=%d members=%d\n",
			client.CurrentLeaderID(), client.MembershipSize())
	})
	return mux
}
