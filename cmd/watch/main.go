// Command watch はターミナルに銘柄のスナップショットを定期的に表示します。
//
// 使い方:
//
//	go run ./cmd/watch AAPL MSFT TSLA
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/robfig/cron/v3"

	"fin_backend/internal/app/di"
	"fin_backend/internal/feature/snapshot/domain/entity"
	"fin_backend/internal/platform/config"
	"fin_backend/internal/shared/symbol"
)

// defaultSymbols は引数がない場合に表示する銘柄です。
var defaultSymbols = []string{"AAPL", "MSFT", "TSLA"}

// SnapshotGetter はスナップショットを取得します。
type SnapshotGetter interface {
	GetSnapshot(ctx context.Context, raw string) (entity.Snapshot, error)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	symbols := parseSymbols(os.Args[1:])
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snaps := di.NewSnapshotService(ctx, cfg, di.Infra{})

	c := cron.New()
	if _, err := c.AddFunc("@every "+cfg.Watch.Interval.String(), func() {
		render(ctx, os.Stdout, snaps, symbols)
	}); err != nil {
		slog.Error("invalid watch interval", "interval", cfg.Watch.Interval, "error", err)
		os.Exit(1)
	}

	render(ctx, os.Stdout, snaps, symbols)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
}

// parseSymbols は引数を正規化し、空と重複を取り除きます。
func parseSymbols(args []string) []string {
	seen := make(map[string]struct{}, len(args))
	out := make([]string, 0, len(args))
	for _, a := range args {
		sym, err := symbol.Parse(a)
		if err != nil {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	if len(out) == 0 {
		return defaultSymbols
	}
	return out
}

// render は1回分のスナップショット表を書き出します。
func render(ctx context.Context, w io.Writer, snaps SnapshotGetter, symbols []string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "SYMBOL\tPRICE\tCHG%\tSMA20\tRSI14\tPRED\tMODEL\tSOURCE\t")
	for _, sym := range symbols {
		s, err := snaps.GetSnapshot(ctx, sym)
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t-\t%v\t\n", sym, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%+.2f\t%s\t%s\t%+.4f\t%s\t%s\t\n",
			s.Symbol, s.Price, s.PercentChange, optional(s.SMA20), optional(s.RSI14), s.PredReturn, s.PredModel, s.Source)
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func optional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
