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

var checkColor bool

var checkCmd = &cobra.Command{
	Use:   "check [fixture.json...]",
	Short: "Partially evaluate a batch of fixtures and report deduplicated diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkColor, "color", false, "colorize diagnostic output")
}

// runCheck partially evaluates every fixture on the command line and
// reports the diagnostics collapsed by DedupeKey, so a batch of generated
// fixtures that all trip over the same out-of-bounds access or unsupported
// construct prints one representative line with a count instead of one
// line per fixture.
func runCheck(c *cobra.Command, args []string) error {
	run, err := loadRunConfig()
	if err != nil {
		return err
	}

	var diags []*diag.Diagnostic
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading fixture: %w", err)
		}
		exp, err := astjson.DecodeExp(string(data))
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		ev := eval.New(eval.Partial, run.Eval)
		if _, err := ev.Eval(exp); err != nil {
			var d *diag.Diagnostic
			if !errors.As(err, &d) {
				return err
			}
			diags = append(diags, d)
		}
	}

	if len(diags) == 0 {
		fmt.Printf("%d fixtures ok\n", len(args))
		return nil
	}
	for _, g := range diag.Collapse(diags) {
		fmt.Println(g.Diagnostic.Format(checkColor))
		if g.Count > 1 {
			fmt.Printf("  (reported by %d fixtures)\n", g.Count)
		}
	}
	return fmt.Errorf("%d of %d fixtures failed", len(diags), len(args))
}
