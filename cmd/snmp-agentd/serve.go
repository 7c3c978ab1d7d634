package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edgeo-scada/snmpagentd/snmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SNMPv1 agent",
	Long:  `Start the SNMPv1 agent, binding its UDP socket and serving requests until interrupted.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := buildStore(logger)
	if err != nil {
		return err
	}

	metrics := snmp.NewAgentMetrics()
	agentOpts := []snmp.AgentOption{
		snmp.WithAddress(address),
		snmp.WithCommunity(community),
		snmp.WithStore(store),
		snmp.WithAgentLogger(logger),
		snmp.WithAgentMetrics(metrics),
		snmp.WithPoolOptions(
			snmp.WithWorkers(workers),
			snmp.WithQueueSize(queueSize),
			snmp.WithPoolLogger(logger),
		),
	}
	if cmd.Flags().Changed("community") {
		// Only gate on the community string when the operator asked
		// for it; left at its default, the agent accepts any
		// community per spec.
		agentOpts = append(agentOpts, snmp.WithCommunityAcceptor(snmp.ExactCommunity(community)))
	}
	agent := snmp.NewAgent(agentOpts...)

	var metricsServer *http.Server
	if metricsAddress != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(snmp.NewCollector(metrics, agent.PoolMetrics()))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: metricsAddress, Handler: mux}

		go func() {
			logger.Info("metrics server listening", "address", metricsAddress)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	if err := agent.Start(); err != nil {
		return fmt.Errorf("starting agent: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutdown signal received")
	if err := agent.Stop(); err != nil {
		logger.Warn("error stopping agent", "error", err)
	}
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		metricsServer.Shutdown(shutdownCtx)
	}

	return nil
}

func buildStore(logger *slog.Logger) (snmp.Store, error) {
	seed := snmp.DefaultSeed("snmp-agentd simulated device", "", "snmp-agentd", "")

	if mibFile != "" {
		data, err := os.ReadFile(mibFile)
		if err != nil {
			return nil, fmt.Errorf("reading MIB seed file: %w", err)
		}
		fileSeed, err := snmp.ParseSeedYAML(data)
		if err != nil {
			return nil, err
		}
		for k, v := range fileSeed {
			seed[k] = v
		}
		logger.Info("loaded MIB seed", "file", mibFile, "entries", len(fileSeed))
	}

	return snmp.NewMemoryStoreFromSeed(seed), nil
}
