package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/neoflux-dev/neoflux/pkg/neoflux"
)

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a small reactive graph",
		Long: `Run a counter signal through a memo and an effect, writing one
update per second until interrupted. Useful for a first look at how
signals, memos, and effects relate, and as an event source for the
inspector.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			printBanner()
			info("Ctrl-C to stop")
			fmt.Println()

			runDemoGraph(ctx, true)
			return nil
		},
	}
	return cmd
}

// runDemoGraph drives a counter -> doubled -> parity graph with one
// write per second until ctx is done. When verbose, the watching effect
// prints each propagation.
func runDemoGraph(ctx context.Context, verbose bool) {
	neoflux.CreateRoot(func(dispose func()) struct{} {
		defer dispose()

		count := neoflux.NewSignal(0).WithName("count")
		doubled := neoflux.NewMemo(func() int {
			return count.Get() * 2
		}).WithName("doubled")
		parity := neoflux.NewMemo(func() string {
			if count.Get()%2 == 0 {
				return "even"
			}
			return "odd"
		}).WithName("parity")

		neoflux.CreateEffect(func() neoflux.Cleanup {
			c, d, p := count.Get(), doubled.Get(), parity.Get()
			if verbose {
				fmt.Printf("  count=%-4d doubled=%-4d parity=%s\n", c, d, p)
			}
			return nil
		}, neoflux.EffectName("watcher"))

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return struct{}{}
			case <-ticker.C:
				count.Update(func(v int) int { return v + 1 })
			}
		}
	})
}
