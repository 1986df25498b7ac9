package tasksplit

import (
	"fmt"
	"strings"
)

// Render produces a deterministic, human-readable dump of a Table,
// intended for the `flowc split` CLI subcommand and for golden-file tests
// rather than for machine consumption.
func Render(t *Table) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "entry: task%d\n", t.Entry())
	for _, task := range t.Tasks() {
		fmt.Fprintf(&sb, "task%d [in=q%d out=q%d placement=%s]:\n", task.ID, task.InputQueue, task.OutputQueue, task.Placement)
		fmt.Fprintf(&sb, "    %s\n", task.Body)
	}
	return sb.String()
}
