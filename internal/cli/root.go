// Package cli implements the gcvec command-line interface: a small driver
// that exercises the vector and allocator packages from the shell.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// app holds the state shared by every subcommand of one invocation.
type app struct {
	configDir string
	v         *viper.Viper
	log       *zap.SugaredLogger
	stderr    io.Writer
}

// NewRootCmd creates the top-level "gcvec" command with its global flags and
// subcommands registered. Diagnostics are written to stderr.
func NewRootCmd(stderr io.Writer) *cobra.Command {
	a := &app{v: newViper(), log: zap.NewNop().Sugar(), stderr: stderr}

	root := &cobra.Command{
		Use:   "gcvec",
		Short: "Exercise allocator-backed vectors from the shell",
		Long: "gcvec drives the gckit vector and allocator packages: it replays the\n" +
			"reference scenarios and stress-tests allocators with leak tracking.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(a.v, cmd.Root().PersistentFlags(), "log-level"); err != nil {
				return sysError("%w", err)
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "directory holding gcvec.yaml (default: $GCVEC_CONFIG_DIR or .)")
	root.PersistentFlags().String("log-level", defaultLogLevel, "log level: debug, info, warn or error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newDemoCmd(a))
	root.AddCommand(newStressCmd(a))

	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	if err := loadConfig(a.v, resolveConfigDir(a.configDir)); err != nil {
		return sysError("load config: %w", err)
	}
	log, err := newLogger(a.stderr, a.v.GetString(cfgKeyLogLevel))
	if err != nil {
		return userError("%w", err)
	}
	a.log = log
	return nil
}

// Run executes gcvec with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}

	fmt.Fprintln(stderr, "gcvec:", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// flag and argument parsing errors
	return exitUserError
}

// Execute runs gcvec with the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
