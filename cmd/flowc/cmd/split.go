package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowc-lang/flowc/internal/astjson"
	"github.com/flowc-lang/flowc/internal/tasksplit"
)

var splitCmd = &cobra.Command{
	Use:   "split [fixture.json]",
	Short: "Cut a stream-computation fixture into a table of schedulable tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

func runSplit(c *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}
	comp, err := astjson.DecodeComp(string(data))
	if err != nil {
		return fmt.Errorf("decoding fixture: %w", err)
	}
	table, err := tasksplit.InsertTasks(comp)
	if err != nil {
		return err
	}
	fmt.Print(tasksplit.Render(table))
	return nil
}
