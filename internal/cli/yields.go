package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vietddude/stacksyield/internal/control"
	"github.com/vietddude/stacksyield/internal/core/domain"
	"github.com/vietddude/stacksyield/internal/yield"
)

var (
	yieldsChain  string
	yieldsAmount float64
)

var yieldsCmd = &cobra.Command{
	Use:   "yields",
	Short: "List yield protocols and the bridge recommendation",
	Run:   runYields,
}

func init() {
	yieldsCmd.Flags().StringVar(&yieldsChain, "chain", "ethereum", "chain the funds are on")
	yieldsCmd.Flags().Float64Var(&yieldsAmount, "amount", 1000, "amount of USDC to evaluate")
	rootCmd.AddCommand(yieldsCmd)
}

func runYields(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	chain, err := domain.ParseChain(yieldsChain)
	if err != nil {
		slog.Error("Invalid chain", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	app := newDashboard(ctx, cfg)
	defer app.Stop(ctx)

	protocols, _ := app.Yields().Fetch(ctx)
	printYields(os.Stdout, protocols)

	rec, ok := yield.Recommend(chain, yieldsAmount, protocols, control.ProfitParams(cfg))
	if !ok {
		return
	}
	fmt.Println()
	printRecommendation(os.Stdout, rec)
}

func printYields(out io.Writer, protocols []domain.YieldProtocol) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "PROTOCOL\tCHAIN\tAPY\tTVL")
	for _, p := range protocols {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%s\n", p.Name, domain.ChainDisplayName[p.Chain], p.APY, p.TVL)
	}
	_ = w.Flush()
}

func printRecommendation(out io.Writer, rec domain.YieldRecommendation) {
	if !rec.ShouldBridge {
		_, _ = fmt.Fprintf(out, "Stay on %s: %s at %.2f%%\n",
			domain.ChainDisplayName[rec.CurrentProtocol.Chain], rec.CurrentProtocol.Name, rec.CurrentProtocol.APY)
		return
	}
	_, _ = fmt.Fprintf(out, "Bridge to %s: %s at %.2f%% (+%.2f%%), estimated profit %.2f USDC/year\n",
		domain.ChainDisplayName[rec.RecommendedProtocol.Chain], rec.RecommendedProtocol.Name,
		rec.RecommendedProtocol.APY, rec.APYDifference, rec.PotentialProfit)
}
