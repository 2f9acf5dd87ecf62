package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/arsac/peerd/internal/config"
	"github.com/arsac/peerd/internal/downloader"
	"github.com/arsac/peerd/internal/health"
	"github.com/arsac/peerd/internal/logger"
	"github.com/arsac/peerd/internal/rpcclient"
	"github.com/arsac/peerd/internal/rpcserver"
	"github.com/arsac/peerd/internal/scheduler"
	"github.com/arsac/peerd/internal/shutdown"
	"github.com/arsac/peerd/internal/storage"
)

// schedulerCheckTTL caches the scheduler reachability probe so K8s probes
// don't hammer the scheduler connection state.
const schedulerCheckTTL = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "peerd",
		Short: "Peer-to-peer content distribution agent",
		Long: `peerd serves locally stored task pieces to other peers over gRPC and
downloads whole tasks from parent peers on request. The same service is
exposed on a TCP listener for peers and on a unix socket for local clients.`,
		RunE: runDaemon,
	}

	config.SetupFlags(rootCmd)

	return rootCmd.Execute()
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := config.BindFlags(cmd, v); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	log := logger.New("peerd", logger.ParseLevel(cfg.LogLevel))
	log.Info("starting peerd",
		"listen", cfg.ListenAddr,
		"socket", cfg.SocketPath,
		"data", cfg.DataPath,
		"schedulerAddr", cfg.SchedulerAddr,
		"healthAddr", cfg.HealthAddr,
		"downloadConcurrency", cfg.DownloadConcurrency,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sd := shutdown.New()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info("received signal, shutting down", "signal", sig)
		sd.Trigger()
	}()
	go func() {
		<-sd.Done()
		cancel()
	}()

	store, err := storage.New(cfg.DataPath, log.With("component", "storage"))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	schedClient, err := scheduler.New(cfg.SchedulerAddr, scheduler.DefaultConfig(), log.With("component", "scheduler-client"))
	if err != nil {
		return err
	}
	defer func() { _ = schedClient.Close() }()

	engine := downloader.NewEngine(
		dialPeer,
		store,
		downloader.Config{
			Concurrency: cfg.DownloadConcurrency,
			RateLimit:   int(cfg.DownloadRateLimit),
		},
		log.With("component", "downloader"),
	)

	handler := rpcserver.NewHandler(store, engine, schedClient, log.With("component", "rpc"))
	server := rpcserver.NewServer(rpcserver.Config{
		ListenAddr: cfg.ListenAddr,
		SocketPath: cfg.SocketPath,
	}, handler, log.With("component", "rpc-server"))

	var tracker shutdown.Tracker
	g, gctx := errgroup.WithContext(ctx)

	var healthServer *health.Server
	if cfg.HealthAddr != "" {
		healthServer = health.NewServer(health.Config{Addr: cfg.HealthAddr}, log.With("component", "health"))
		healthServer.RegisterCheck("data-dir", health.DirWritableCheck(cfg.DataPath))
		healthServer.RegisterCheck("scheduler",
			health.CachedCheck(health.GRPCHealthCheck(schedClient.Validate), schedulerCheckTTL))

		token := tracker.Token()
		g.Go(func() error {
			defer token.Release()
			return healthServer.Run(gctx)
		})
	}

	token := tracker.Token()
	g.Go(func() error {
		defer token.Release()
		return server.Run(gctx)
	})

	// Flip readiness once both transports are accepting connections.
	g.Go(func() error {
		select {
		case <-server.Ready():
			if healthServer != nil {
				healthServer.SetReady(true)
			}
		case <-gctx.Done():
		}
		return nil
	})

	err = g.Wait()

	// Give stragglers a bounded window to finish before the process exits.
	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.StopTimeout)
	defer waitCancel()
	if waitErr := tracker.Wait(waitCtx); waitErr != nil {
		log.Warn("components still running at exit", "error", waitErr)
	}

	if err != nil && !sd.Triggered() {
		return err
	}
	log.Info("peerd stopped")
	return nil
}

// dialPeer adapts the typed RPC client to the download engine's view of a
// parent peer.
func dialPeer(addr string) (downloader.PeerClient, error) {
	client, err := rpcclient.New(addr)
	if err != nil {
		return nil, err
	}
	return &peerAdapter{client: client}, nil
}

type peerAdapter struct {
	client *rpcclient.Client
}

func (p *peerAdapter) GetPieceNumbers(ctx context.Context, taskID string) ([]int32, error) {
	return p.client.GetPieceNumbers(ctx, taskID)
}

func (p *peerAdapter) SyncPieces(ctx context.Context, taskID string, numbers []int32) (downloader.PieceStream, error) {
	return p.client.SyncPieces(ctx, taskID, numbers)
}

func (p *peerAdapter) Close() error {
	return p.client.Close()
}

var _ downloader.PieceStream = (*rpcclient.PieceStream)(nil)
