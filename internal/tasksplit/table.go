package tasksplit

import (
	"fmt"

	"github.com/flowc-lang/flowc/internal/ast"
)

// Task is one entry of a Table: a self-contained fragment of comp along
// with the queues it reads from / writes to and its scheduling placement
// hint.
type Task struct {
	ID          ast.TaskID
	Body        ast.Comp
	InputQueue  ast.QueueID
	OutputQueue ast.QueueID
	Placement   ast.Placement
}

// Table is the task splitter's output: every task keyed by its id, plus
// the entry task's id ("a task table keyed by opaque task id ... plus
// the entry task id").
type Table struct {
	tasks    map[ast.TaskID]*Task
	order    []ast.TaskID // insertion order, for deterministic rendering
	entry    ast.TaskID
	nextTask int
	nextQ    int
}

func newTable() *Table {
	return &Table{tasks: map[ast.TaskID]*Task{}}
}

func (t *Table) newTaskID() ast.TaskID {
	id := ast.TaskID(t.nextTask)
	t.nextTask++
	return id
}

// NewQueue allocates a fresh inter-task queue id. The splitter calls this
// for the program's input and output endpoints and once per pipeline seam;
// tasks split at a barrier share their parent's queues.
func (t *Table) NewQueue() ast.QueueID {
	id := ast.QueueID(t.nextQ)
	t.nextQ++
	return id
}

func (t *Table) register(body ast.Comp, in, out ast.QueueID, placement ast.Placement) ast.TaskID {
	id := t.newTaskID()
	t.tasks[id] = &Task{ID: id, Body: body, InputQueue: in, OutputQueue: out, Placement: placement}
	t.order = append(t.order, id)
	return id
}

// Get returns the task registered under id, if any.
func (t *Table) Get(id ast.TaskID) (*Task, bool) {
	task, ok := t.tasks[id]
	return task, ok
}

// Entry returns the id of the task that should be activated first.
func (t *Table) Entry() ast.TaskID { return t.entry }

// Tasks returns every registered task in the order it was created.
func (t *Table) Tasks() []*Task {
	out := make([]*Task, len(t.order))
	for i, id := range t.order {
		out[i] = t.tasks[id]
	}
	return out
}

func (t *Table) String() string {
	return fmt.Sprintf("Table{%d tasks, entry=task%d}", len(t.tasks), t.entry)
}
