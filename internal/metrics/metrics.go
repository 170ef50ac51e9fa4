package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WalletConnections tracks connect attempts per chain and outcome
	WalletConnections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacksyield_wallet_connections_total",
			Help: "Total number of wallet connect attempts",
		},
		[]string{"chain", "result"},
	)

	// BalanceRefreshErrors tracks swallowed balance refresh failures
	BalanceRefreshErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacksyield_balance_refresh_errors_total",
			Help: "Total number of failed balance refreshes",
		},
		[]string{"chain"},
	)

	// BridgeInitiations tracks bridge requests per route and outcome
	BridgeInitiations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacksyield_bridge_initiations_total",
			Help: "Total number of bridge initiations",
		},
		[]string{"from", "to", "result"},
	)

	// BridgeApprovals tracks approval transactions submitted before deposits
	BridgeApprovals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stacksyield_bridge_approvals_total",
			Help: "Total number of token approvals submitted",
		},
	)

	// BridgeDuration tracks time from initiation to confirmed deposit
	BridgeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stacksyield_bridge_duration_seconds",
			Help:    "Time to submit and confirm a bridge deposit",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	// YieldFetches tracks yield source fetches per outcome
	YieldFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacksyield_yield_fetches_total",
			Help: "Total number of yield data fetches",
		},
		[]string{"result"},
	)

	// BestAPY tracks the best APY seen per chain on the last fetch
	BestAPY = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stacksyield_best_apy_percent",
			Help: "Highest APY available per chain",
		},
		[]string{"chain"},
	)
)
