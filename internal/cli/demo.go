package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ib-77/gckit/pkg/gc"
	"github.com/ib-77/gckit/pkg/gc/container"
	"github.com/ib-77/gckit/pkg/gc/memory"
	"github.com/ib-77/gckit/pkg/gc/solo"
)

const demoLength = 5

func newDemoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the reference vector scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(a.v, cmd.Flags(), "allocator", "value"); err != nil {
				return sysError("%w", err)
			}
			cfg, err := readConfig(a.v)
			if err != nil {
				return userError("%w", err)
			}
			a.log.Debugw("running demo", "allocator", cfg.Allocator, "value", cfg.Value)

			out := cmd.OutOrStdout()
			switch cfg.Allocator {
			case allocatorMmap:
				return demo(out, memory.Mmap{}, cfg.Value)
			default:
				return demo(out, memory.Heap{}, cfg.Value)
			}
		},
	}

	cmd.Flags().String("allocator", defaultAllocator, "storage provider: heap or mmap")
	cmd.Flags().Int64("value", defaultValue, "fill value for the constructed vectors")
	return cmd
}

// demo builds vectors of value through alloc and prints what every accessor
// reports.
func demo[A memory.Allocator](w io.Writer, alloc A, value int64) error {
	made := container.Make(alloc, demoLength, value)
	if made.IsErr() {
		return sysError("make(%d, %d): %v", demoLength, value, made.UnwrapError())
	}
	v := made.UnwrapValue()
	defer v.Release()

	fmt.Fprintf(w, "make(%d, %d): length=%d capacity=%d\n", demoLength, value, v.Length(), v.Capacity())
	for i := range uint(demoLength + 1) {
		fmt.Fprintf(w, "at(%d) = %s\n", i, render(v.Get(i)))
	}

	same := container.Make(alloc, demoLength, value)
	if same.IsErr() {
		return sysError("make(%d, %d): %v", demoLength, value, same.UnwrapError())
	}
	defer same.UnwrapValue().Release()

	other := container.Make(alloc, demoLength, value+1)
	if other.IsErr() {
		return sysError("make(%d, %d): %v", demoLength, value+1, other.UnwrapError())
	}
	defer other.UnwrapValue().Release()

	fmt.Fprintf(w, "make(%d, %d) == make(%d, %d): %t\n", demoLength, value, demoLength, value, v.Equal(same.UnwrapValue()))
	fmt.Fprintf(w, "make(%d, %d) == make(%d, %d): %t\n", demoLength, value, demoLength, value+1, v.Equal(other.UnwrapValue()))

	raw := container.MakeFromRaw[int64](alloc, nil, 3)
	fmt.Fprintf(w, "make_from_raw(nil, 3) = %s\n", render(solo.Map(raw, (*container.Vector[int64, A]).Length)))

	return nil
}

func render[T any](r gc.Result[T, gc.Error]) string {
	return solo.Finally(r,
		func(v T) string { return fmt.Sprint(v) },
		func(e gc.Error) string { return e.String() })
}
