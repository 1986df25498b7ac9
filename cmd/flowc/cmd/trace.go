package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowc-lang/flowc/internal/astjson"
	"github.com/flowc-lang/flowc/internal/diag"
	"github.com/flowc-lang/flowc/internal/eval"
)

var traceColor bool

var traceCmd = &cobra.Command{
	Use:   "trace [fixture.json]",
	Short: "Partially evaluate a fixture and report its residual, print log, and per-variable size stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().BoolVar(&traceColor, "color", false, "colorize diagnostic output")
}

// runTrace always runs in Partial mode: unlike `flowc eval`, its job is to
// surface everything the traversal observed, not to demand full reduction.
func runTrace(c *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}
	exp, err := astjson.DecodeExp(string(data))
	if err != nil {
		return fmt.Errorf("decoding fixture: %w", err)
	}

	run, err := loadRunConfig()
	if err != nil {
		return err
	}

	ev := eval.New(eval.Partial, run.Eval)
	result, err := ev.Eval(exp)
	if err != nil {
		var d *diag.Diagnostic
		if errors.As(err, &d) {
			fmt.Fprintln(os.Stderr, d.Format(traceColor))
			os.Exit(1)
		}
		return err
	}

	fmt.Printf("residual: %s\n", result.AsExp())

	printLog(ev)

	stats := ev.Stats().Snapshot()
	if len(stats) > 0 {
		fmt.Println("stats:")
		for _, s := range stats {
			fmt.Printf("  %s: max size %d\n", s.ID, s.MaxSize)
		}
	}
	return nil
}
