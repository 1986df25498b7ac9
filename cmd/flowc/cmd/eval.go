package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowc-lang/flowc/internal/astjson"
	"github.com/flowc-lang/flowc/internal/config"
	"github.com/flowc-lang/flowc/internal/eval"
)

var (
	evalMode      string
	evalMaxAlts   int
	evalShowStats bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [fixture.json]",
	Short: "Interpret a scalar-expression fixture in full, partial, or non-deterministic mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalMode, "mode", "", "full, partial, or nondet (default: config file's mode, else partial)")
	evalCmd.Flags().IntVar(&evalMaxAlts, "max-alts", 0, "cap on non-deterministic alternatives printed (0: use config bound)")
	evalCmd.Flags().BoolVar(&evalShowStats, "stats", false, "print the per-variable max-size stats map (partial mode only)")
}

func loadRunConfig() (config.Run, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func runEval(c *cobra.Command, args []string) error {
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
	modeStr := evalMode
	if modeStr == "" {
		modeStr = run.Mode
	}
	mode, err := config.ParseMode(modeStr)
	if err != nil {
		return err
	}
	if evalMaxAlts > 0 {
		run.Eval.MaxNonDetBranches = evalMaxAlts
	}

	ev := eval.New(mode, run.Eval)
	switch mode {
	case eval.ModeFull:
		v, err := ev.Eval(exp)
		if err != nil {
			return err
		}
		fmt.Println(v.Value)
	case eval.Partial:
		v, err := ev.Eval(exp)
		if err != nil {
			return err
		}
		fmt.Println(v.AsExp())
		if evalShowStats {
			for _, e := range ev.Stats().Snapshot() {
				fmt.Printf("  %s: max size %d\n", e.ID, e.MaxSize)
			}
		}
	case eval.NonDet:
		alts, err := ev.EvalNonDet(exp)
		if err != nil {
			return err
		}
		for i, a := range alts {
			fmt.Printf("[%d] %s\n", i, a.Evald.AsExp())
		}
	}
	printLog(ev)
	return nil
}

func printLog(ev *eval.Evaluator) {
	for _, p := range ev.PrintLog() {
		for _, v := range p.Values {
			fmt.Print(v)
		}
		if p.Newline {
			fmt.Println()
		}
	}
}
