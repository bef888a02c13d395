package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	version    = "0.1.0"
	modulePath = "github.com/ib-77/gckit"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gcvec version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "gcvec v%s\nmodule: %s\n", version, modulePath)
			return nil
		},
	}
}
