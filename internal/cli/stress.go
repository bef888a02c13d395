package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ib-77/gckit/pkg/gc/container"
	"github.com/ib-77/gckit/pkg/gc/memory"
)

func newStressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Push values into a vector through a tracked allocator",
		Long: "stress grows a vector one element at a time, copies it and releases\n" +
			"both, then reports allocator statistics and any leaked allocations.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(a.v, cmd.Flags(), "allocator", "budget", "count", "value"); err != nil {
				return sysError("%w", err)
			}
			cfg, err := readConfig(a.v)
			if err != nil {
				return userError("%w", err)
			}

			out := cmd.OutOrStdout()
			switch cfg.Allocator {
			case allocatorMmap:
				return stressWith(out, a.log, memory.Mmap{}, cfg)
			default:
				return stressWith(out, a.log, memory.Heap{}, cfg)
			}
		},
	}

	cmd.Flags().String("allocator", defaultAllocator, "storage provider: heap or mmap")
	cmd.Flags().String("budget", defaultBudget, "byte budget such as 64KiB or 1MB; 0 is unlimited")
	cmd.Flags().Uint("count", defaultCount, "number of elements to push")
	cmd.Flags().Int64("value", defaultValue, "value of the first element; later ones count up")
	return cmd
}

// stressWith wraps inner in the optional budget and the tracker.
func stressWith[A memory.Allocator](w io.Writer, log *zap.SugaredLogger, inner A, cfg config) error {
	opts := memory.TrackingOptions{Logger: log}
	if cfg.Budget == 0 {
		return stress(w, log, memory.NewTracking(inner, opts), cfg)
	}
	return stress(w, log, memory.NewTracking(memory.NewLimited(inner, uint(cfg.Budget)), opts), cfg)
}

func stress[A memory.Allocator](w io.Writer, log *zap.SugaredLogger, alloc *memory.Tracking[A], cfg config) error {
	budget := "unlimited"
	if cfg.Budget > 0 {
		budget = humanize.IBytes(cfg.Budget)
	}
	fmt.Fprintf(w, "allocator: %s (budget %s)\n", cfg.Allocator, budget)

	v := container.New[int64](alloc)
	var failure error
	for i := range cfg.Count {
		if res := v.Push(cfg.Value + int64(i)); res.IsErr() {
			failure = sysError("push %d: %v", i, res.UnwrapError())
			break
		}
	}
	fmt.Fprintf(w, "pushed: %s elements, capacity %s\n",
		humanize.Comma(int64(v.Length())), humanize.Comma(int64(v.Capacity())))

	if failure == nil {
		res := v.Copy()
		if res.IsErr() {
			failure = sysError("copy: %v", res.UnwrapError())
		} else {
			dup := res.UnwrapValue()
			if !dup.Equal(v) {
				failure = sysError("copy differs from its source")
			}
			dup.Release()
		}
	}
	v.Release()

	st := alloc.Stats()
	fmt.Fprintf(w, "allocations: %d, failures: %d, deallocations: %d, bad releases: %d\n",
		st.Allocations, st.Failures, st.Deallocations, st.BadReleases)
	fmt.Fprintf(w, "peak: %s, live: %s\n", humanize.IBytes(uint64(st.PeakBytes)), humanize.IBytes(uint64(st.LiveBytes)))

	leaks := alloc.Leaks()
	fmt.Fprintf(w, "leaks: %d\n", len(leaks))
	for _, l := range leaks {
		log.Errorw("leaked allocation", "id", l.ID, "size", l.Size, "created", l.CreatedAt)
	}
	if failure == nil && len(leaks) > 0 {
		failure = sysError("%d allocations leaked", len(leaks))
	}
	return failure
}
