// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"chopper/internal/appcore"
	"chopper/internal/cli"
	"chopper/internal/version"
	"chopper/internal/writers"
)

// RunContext parses argv, runs the selected subcommand and returns the
// process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	code := appcore.ExitOK
	root := newRoot(stdout, stderr, &code)
	root.SetArgs(argv)
	if err := root.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
		return appcore.ExitUsage
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newRoot(stdout, stderr io.Writer, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:   "chopper",
		Short: "chopper: cluster k-mer statistics and guide trees",
		Long: `chopper computes, per cluster of sequence files, the number of distinct
k-mers or minimizers, and builds neighbour-joining guide trees from
distance matrices.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newCountCmd(stdout, stderr, code), newLayoutCmd(stdout, stderr, code), newVersionCmd(stdout, code))
	return root
}

func newCountCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	var o cli.CountOptions
	cmd := &cobra.Command{
		Use:   "count --data-file FILE",
		Short: "count distinct k-mers or minimizers per cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.ApplyConfigFile(&o, cmd.Flags().Changed); err != nil {
				return err
			}
			*code = appcore.RunCount(cmd.Context(), stdout, stderr, o)
			return nil
		},
	}
	cli.BindCount(cmd.Flags(), &o)
	return cmd
}

func newLayoutCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	var o cli.LayoutOptions
	cmd := &cobra.Command{
		Use:   "layout --matrix FILE",
		Short: "build a neighbour-joining guide tree from a distance matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			*code = appcore.RunLayout(cmd.Context(), stdout, stderr, o)
			return nil
		},
	}
	cli.BindLayout(cmd.Flags(), &o)
	return cmd
}

func newVersionCmd(stdout io.Writer, code *int) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version and exit",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			if _, err := fmt.Fprintf(stdout, "chopper version %s\n", version.Version); err != nil && !writers.IsBrokenPipe(err) {
				*code = appcore.ExitRuntime
			}
		},
	}
}
