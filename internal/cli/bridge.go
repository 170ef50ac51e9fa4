package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vietddude/stacksyield/internal/bridge"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge [amount]",
	Short: "Bridge USDC from Ethereum to the configured Stacks address",
	Args:  cobra.ExactArgs(1),
	Run:   runBridge,
}

func init() {
	rootCmd.AddCommand(bridgeCmd)
}

func runBridge(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	ctx := context.Background()
	app := newDashboard(ctx, cfg)
	defer app.Stop(ctx)

	for _, chain := range domain.Chains {
		if err := app.Wallets().Connect(ctx, chain); err != nil {
			slog.Error("Failed to connect wallet", "chain", chain, "error", err)
			os.Exit(1)
		}
	}

	tx, err := app.Bridges().Bridge(ctx, bridge.Request{
		From:   domain.ChainEthereum,
		To:     domain.ChainStacks,
		Amount: args[0],
	})
	if err != nil {
		slog.Error("Bridge failed", "id", tx.ID, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Bridge submitted: %s/tx/%s\n", domain.ChainExplorerURL[domain.ChainEthereum], tx.TxHash)
	fmt.Printf("Estimated arrival in %d minutes\n", tx.EstimatedTime/60)
}
