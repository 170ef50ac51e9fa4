package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Connect the configured wallets and show their balances",
	Run:   runBalances,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
}

func runBalances(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	ctx := context.Background()
	app := newDashboard(ctx, cfg)
	defer app.Stop(ctx)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "CHAIN\tADDRESS\tBALANCE")
	for _, chain := range domain.Chains {
		if err := app.Wallets().Connect(ctx, chain); err != nil {
			_, _ = fmt.Fprintf(w, "%s\t-\t%v\n", domain.ChainDisplayName[chain], err)
			continue
		}
		state := app.Wallets().State(chain)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", domain.ChainDisplayName[chain], state.Address, state.Balance)
	}
	_ = w.Flush()
}
