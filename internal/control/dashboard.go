package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/sync/errgroup"

	"github.com/vietddude/stacksyield/internal/api"
	"github.com/vietddude/stacksyield/internal/bridge"
	"github.com/vietddude/stacksyield/internal/core/config"
	"github.com/vietddude/stacksyield/internal/core/domain"
	"github.com/vietddude/stacksyield/internal/health"
	"github.com/vietddude/stacksyield/internal/infra/chain/evm"
	"github.com/vietddude/stacksyield/internal/infra/chain/stacks"
	redisclient "github.com/vietddude/stacksyield/internal/infra/redis"
	"github.com/vietddude/stacksyield/internal/wallet"
	"github.com/vietddude/stacksyield/internal/yield"
)

const remoteTimeout = 10 * time.Second

// Dashboard is the main application struct that owns the trackers, the
// bridge service, the yield cache and the API server.
type Dashboard struct {
	cfg         *config.AppConfig
	wallets     *wallet.Tracker
	bridges     *bridge.Service
	yields      *yield.CachedSource
	stream      *api.Stream
	healthMon   *health.Monitor
	server      *api.Server
	ethClient   *ethclient.Client
	stacks      *stacks.Client
	redisClient *redisclient.Client
	group       *errgroup.Group
	cancel      context.CancelFunc
	log         *slog.Logger
}

// NewDashboard creates a Dashboard with all dependencies initialized. Chains
// that are not configured are registered as unavailable wallets.
func NewDashboard(ctx context.Context, cfg *config.AppConfig) (*Dashboard, error) {
	d := &Dashboard{
		cfg:       cfg,
		healthMon: health.NewMonitor(10 * time.Second),
		log:       slog.Default().With("component", "dashboard"),
	}

	// 1. Ethereum
	var (
		ethProvider wallet.Provider
		signers     bridge.SignerSource = noSigners{}
		token       bridge.Token
		reserve     bridge.Reserve
		confirmer   bridge.Confirmer
		status      bridge.StatusChecker
	)
	if cfg.Ethereum.RPCURL == "" || cfg.Ethereum.PrivateKey == "" {
		ethProvider = wallet.Unavailable(domain.ChainEthereum, "rpc_url and private_key are not configured")
		d.log.Warn("Ethereum wallet not configured")
	} else {
		client, err := evm.Dial(ctx, cfg.Ethereum.RPCURL, cfg.Ethereum.ChainID)
		if err != nil {
			return nil, err
		}
		d.ethClient = client
		d.healthMon.Register("ethereum", health.RPCCheck(client))

		usdc := evm.NewToken(common.HexToAddress(cfg.Ethereum.USDC), client)
		ethWallet, err := evm.NewWallet(cfg.Ethereum.PrivateKey, cfg.Ethereum.ChainID, usdc)
		if err != nil {
			client.Close()
			return nil, err
		}
		ethProvider = ethWallet
		token = usdc
		confirmer = evm.NewConfirmer(client)

		var xreserve *evm.Reserve
		if common.IsHexAddress(cfg.Ethereum.XReserve) {
			xreserve = evm.NewReserve(common.HexToAddress(cfg.Ethereum.XReserve), client)
			reserve = xreserve
			signers = ethWallet
		} else {
			d.log.Warn("xReserve contract not configured, bridging disabled")
		}
		status = evm.NewReceiptChecker(client, xreserve)
	}

	// 2. Stacks
	var stacksProvider wallet.Provider
	if cfg.Stacks.Address == "" {
		stacksProvider = wallet.Unavailable(domain.ChainStacks, "address is not configured")
		d.log.Warn("Stacks wallet not configured")
	} else {
		d.stacks = stacks.NewClient(cfg.Stacks.APIURL, remoteTimeout, cfg.Stacks.RequestsPerSecond)
		d.healthMon.Register("stacks", health.ProviderCheck(d.stacks.Health))
		stacksWallet, err := stacks.NewWallet(cfg.Stacks.Address, cfg.Stacks.Network, cfg.Stacks.USDCxToken, d.stacks)
		if err != nil {
			d.closeClients()
			return nil, err
		}
		stacksProvider = stacksWallet
	}

	// 3. Yields
	var source yield.Source
	switch cfg.Yields.Source {
	case "http":
		if cfg.Yields.URL == "" {
			d.closeClients()
			return nil, fmt.Errorf("yields.url is required for the http source")
		}
		source = yield.NewHTTPSource(cfg.Yields.URL, remoteTimeout, 0)
	case "", "mock":
		source = yield.NewMockSource(nil)
	default:
		d.closeClients()
		return nil, fmt.Errorf("unknown yields source %q", cfg.Yields.Source)
	}
	d.yields = yield.NewCachedSource(source, cfg.Yields.RefreshInterval)
	d.healthMon.Register("yields", health.FreshnessCheck(d.yields.UpdatedAt, 3*cfg.Yields.RefreshInterval))

	// 4. Trackers and listeners
	d.stream = api.NewStream(nil)
	listeners := []bridge.Listener{d.stream}
	if cfg.Redis.URL != "" {
		rc, err := redisclient.NewClient(cfg.Redis)
		if err != nil {
			d.log.Warn("Redis unavailable, transaction updates will not be published", "error", err)
		} else {
			d.redisClient = rc
			listeners = append(listeners, rc)
			d.log.Info("Publishing transaction updates", "channel", rc.Channel())
		}
	}

	d.wallets = wallet.NewTracker(ethProvider, stacksProvider)
	initiator := bridge.NewUSDCBridge(signers, token, reserve, confirmer)
	d.bridges = bridge.NewService(d.wallets, bridge.NewTracker(listeners...), initiator, status)

	// 5. API
	d.server = api.NewServer(api.Config{
		Port:        cfg.Server.Port,
		CORSOrigins: cfg.Server.CORSOrigins,
		Profit:      ProfitParams(cfg),
		Health:      d.healthMon,
	}, d.wallets, d.bridges, d.yields, d.stream)

	return d, nil
}

// ProfitParams derives the recommendation assumptions from cfg.
func ProfitParams(cfg *config.AppConfig) yield.ProfitParams {
	return yield.ProfitParams{Days: float64(cfg.Bridge.Days), BridgeCost: cfg.Bridge.CostUSDC}
}

// Wallets returns the wallet tracker.
func (d *Dashboard) Wallets() *wallet.Tracker { return d.wallets }

// Bridges returns the bridge service.
func (d *Dashboard) Bridges() *bridge.Service { return d.bridges }

// Yields returns the yield cache.
func (d *Dashboard) Yields() *yield.CachedSource { return d.yields }

// Start restores wallet sessions and starts the API server and the yield
// refresher in the background.
func (d *Dashboard) Start(ctx context.Context) error {
	ctx, d.cancel = context.WithCancel(ctx)
	d.wallets.Restore(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := d.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		d.runYieldRefresher(gctx)
		return nil
	})
	d.group = g
	return nil
}

// Wait blocks until the background tasks exit and returns the first error.
func (d *Dashboard) Wait() error {
	if d.group == nil {
		return nil
	}
	return d.group.Wait()
}

// Stop shuts the server down and releases clients.
func (d *Dashboard) Stop(ctx context.Context) error {
	d.log.Info("Stopping dashboard...")
	if d.cancel != nil {
		d.cancel()
	}

	err := d.server.Stop(ctx)
	d.stream.Close()
	if waitErr := d.Wait(); waitErr != nil && err == nil {
		err = waitErr
	}
	d.closeClients()
	return err
}

func (d *Dashboard) closeClients() {
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			d.log.Warn("Failed to close Redis", "error", err)
		}
	}
	if d.stacks != nil {
		d.stacks.Close()
	}
	if d.ethClient != nil {
		d.ethClient.Close()
	}
}

func (d *Dashboard) runYieldRefresher(ctx context.Context) {
	interval := d.cfg.Yields.RefreshInterval
	if interval <= 0 {
		interval = config.DefaultYieldRefresh
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.yields.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			protocols, _ := d.yields.Refresh(ctx)
			d.log.Debug("Refreshed yield data", "protocols", len(protocols))
		}
	}
}

// noSigners stands in when no Ethereum signer is configured so bridge
// requests fail with ErrNoSignerAvailable.
type noSigners struct{}

func (noSigners) ActiveSigner() *bind.TransactOpts { return nil }
