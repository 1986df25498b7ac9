package tasksplit

import (
	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/diag"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

// InsertTasks rewrites c into a Table of
// independently-schedulable tasks cut at Standalone barriers, barrier-
// function calls, and Par pipeline seams, returning the table (whose Entry
// id names the task to activate first).
func InsertTasks(c ast.Comp) (*Table, error) {
	b := &builder{table: newTable(), barriers: collectBarrierFuncs(c)}
	in := b.table.NewQueue()
	out := b.table.NewQueue()
	entry, err := b.taskify(c, nil, in, out)
	if err != nil {
		return nil, err
	}
	b.table.entry = entry
	b.table.assignReadPolicies()
	return b.table, nil
}

type builder struct {
	table    *Table
	barriers barrierFuncs
}

// combine appends next (typically an ActivateTask stub) after c for effect,
// flattening into an existing Seq rather than nesting one.
func combine(c ast.Comp, next ast.Comp) ast.Comp {
	if next == nil {
		return c
	}
	if seq, ok := c.(*ast.Seq); ok {
		comps := make([]ast.Comp, len(seq.Comps)+1)
		copy(comps, seq.Comps)
		comps[len(seq.Comps)] = next
		return &ast.Seq{CompMeta: seq.CompMeta, Comps: comps}
	}
	return &ast.Seq{CompMeta: ast.CompMeta{At: c.Pos()}, Comps: []ast.Comp{c, next}}
}

// taskify is insert_tasks's core recursion: register c (with next appended)
// as a single task when it contains no barrier, otherwise split at the
// barrier per the node-specific rule and return the id of the resulting
// entry-point task for c.
func (b *builder) taskify(c ast.Comp, next ast.Comp, in, out ast.QueueID) (ast.TaskID, error) {
	// A Par is always a pipeline seam: its stages run on separate tasks
	// whether or not either side contains a further barrier.
	if p, ok := c.(*ast.Par); ok {
		return b.taskifyPar(p, next, in, out)
	}

	if !containsBarrier(c, b.barriers) {
		return b.table.register(combine(c, next), in, out, ast.PlacementUnspecified), nil
	}

	switch n := c.(type) {
	case *ast.BindMany:
		return b.taskifyBindMany(n, next, in, out)
	case *ast.Seq:
		return b.taskifySeq(n, next, in, out)
	case *ast.LetE:
		id, err := b.taskify(n.Body, next, in, out)
		if err != nil {
			return 0, err
		}
		b.table.wrap(id, func(body ast.Comp) ast.Comp {
			return &ast.LetE{CompMeta: n.CompMeta, Name: n.Name, UniqueID: n.UniqueID, Init: n.Init, Body: body}
		})
		return id, nil
	case *ast.LetERef:
		id, err := b.taskify(n.Body, next, in, out)
		if err != nil {
			return 0, err
		}
		b.table.wrap(id, func(body ast.Comp) ast.Comp {
			return &ast.LetERef{CompMeta: n.CompMeta, Name: n.Name, UniqueID: n.UniqueID, VarType: n.VarType, Init: n.Init, Body: body}
		})
		return id, nil
	case *ast.LetFunC:
		id, err := b.taskify(n.Cont, next, in, out)
		if err != nil {
			return 0, err
		}
		b.table.wrap(id, func(cont ast.Comp) ast.Comp {
			return &ast.LetFunC{CompMeta: n.CompMeta, Name: n.Name, Params: n.Params, FnBody: n.FnBody, Cont: cont}
		})
		return id, nil
	case *ast.LetFunE:
		id, err := b.taskify(n.Cont, next, in, out)
		if err != nil {
			return 0, err
		}
		b.table.wrap(id, func(cont ast.Comp) ast.Comp {
			return &ast.LetFunE{CompMeta: n.CompMeta, Name: n.Name, Params: n.Params, Ret: n.Ret, FnBody: n.FnBody, Cont: cont}
		})
		return id, nil
	case *ast.LetStruct:
		id, err := b.taskify(n.Cont, next, in, out)
		if err != nil {
			return 0, err
		}
		b.table.wrap(id, func(cont ast.Comp) ast.Comp {
			return &ast.LetStruct{CompMeta: n.CompMeta, Name: n.Name, Fields: n.Fields, Cont: cont}
		})
		return id, nil
	case *ast.VectComp:
		id, err := b.taskify(n.Body, next, in, out)
		if err != nil {
			return 0, err
		}
		b.table.wrap(id, func(body ast.Comp) ast.Comp {
			return &ast.VectComp{CompMeta: n.CompMeta, Width: n.Width, Body: body}
		})
		return id, nil
	case *ast.Branch:
		return b.taskifyBranch(n, next, in, out)
	case *ast.Standalone:
		return b.taskifyStandalone(n, next, in, out)
	case *ast.Until, *ast.While, *ast.Times, *ast.Repeat:
		return 0, diag.New(diag.KindUnsupported, c.Pos(),
			"task splitter: a barrier inside until/while/times/repeat is not supported")
	default:
		// A barrier leaf (a bare Map/CallC naming a barrier function): it
		// only forces its ancestors to split, not itself.
		return b.table.register(combine(c, next), in, out, ast.PlacementUnspecified), nil
	}
}

// wrap rewrites an already-registered task's body in place, for the
// Let*/VectComp rule ("recurse into body, lift the binding onto the
// resulting task").
func (t *Table) wrap(id ast.TaskID, f func(ast.Comp) ast.Comp) {
	t.tasks[id].Body = f(t.tasks[id].Body)
}

func (b *builder) taskifyStandalone(n *ast.Standalone, next ast.Comp, in, out ast.QueueID) (ast.TaskID, error) {
	if containsBarrier(n.Body, b.barriers) {
		// Nested standalones collapse: only the innermost barrier-free body
		// defines the cut point.
		return b.taskify(n.Body, next, in, out)
	}
	return b.table.register(combine(n.Body, next), in, out, ast.PlacementAlone), nil
}

func (b *builder) taskifyBranch(n *ast.Branch, next ast.Comp, in, out ast.QueueID) (ast.TaskID, error) {
	thenID, err := b.taskify(n.Then, next, in, out)
	if err != nil {
		return 0, err
	}
	elseID, err := b.taskify(n.Else, next, in, out)
	if err != nil {
		return 0, err
	}
	stub := &ast.Branch{
		CompMeta: n.CompMeta,
		Cond:     n.Cond,
		Then:     &ast.ActivateTask{CompMeta: n.CompMeta, Task: thenID},
		Else:     &ast.ActivateTask{CompMeta: n.CompMeta, Task: elseID},
	}
	return b.table.register(stub, in, out, ast.PlacementUnspecified), nil
}

func (b *builder) taskifyPar(n *ast.Par, next ast.Comp, in, out ast.QueueID) (ast.TaskID, error) {
	stages := flattenPar(n)
	queues := make([]ast.QueueID, len(stages)+1)
	queues[0] = in
	queues[len(stages)] = out
	for i := 1; i < len(stages); i++ {
		queues[i] = b.table.NewQueue()
	}

	ids := make([]ast.TaskID, len(stages))
	for i, st := range stages {
		var stageNext ast.Comp
		if i == len(stages)-1 {
			stageNext = next
		}
		id, err := b.taskify(st, stageNext, queues[i], queues[i+1])
		if err != nil {
			return 0, err
		}
		ids[i] = id
	}

	if len(ids) == 1 {
		return ids[0], nil
	}
	stubs := make([]ast.Comp, len(ids))
	for i, id := range ids {
		stubs[i] = &ast.ActivateTask{CompMeta: n.CompMeta, Task: id}
	}
	return b.table.register(&ast.Seq{CompMeta: n.CompMeta, Comps: stubs}, in, out, ast.PlacementUnspecified), nil
}

func flattenPar(c ast.Comp) []ast.Comp {
	if p, ok := c.(*ast.Par); ok {
		return append(flattenPar(p.A), flattenPar(p.B)...)
	}
	return []ast.Comp{c}
}

// item is one element of a BindMany/Seq being chunked at barrier
// boundaries: either the (unbound) head, or a bound arm.
type item struct {
	isHead bool
	varName string
	uniqueID string
	comp     ast.Comp
}

func (b *builder) taskifyBindMany(n *ast.BindMany, next ast.Comp, in, out ast.QueueID) (ast.TaskID, error) {
	if containsBarrier(n.Head, b.barriers) {
		if len(n.Arms) == 0 {
			return b.taskify(n.Head, next, in, out)
		}
		rest := ast.NewBindMany(n.At, n.Arms[0].Comp, n.Arms[1:])
		restID, err := b.taskify(rest, next, in, out)
		if err != nil {
			return 0, err
		}
		headNext := &ast.ActivateTask{CompMeta: n.CompMeta, Task: restID, InputVar: n.Arms[0].Var}
		return b.taskify(n.Head, headNext, in, out)
	}

	items := make([]item, 0, len(n.Arms)+1)
	items = append(items, item{isHead: true, comp: n.Head})
	for _, a := range n.Arms {
		items = append(items, item{varName: a.Var, uniqueID: a.UniqueID, comp: a.Comp})
	}
	return b.taskifyChunks(n.At, items, bindChunkToComp, next, in, out)
}

func (b *builder) taskifySeq(n *ast.Seq, next ast.Comp, in, out ast.QueueID) (ast.TaskID, error) {
	items := make([]item, len(n.Comps))
	for i, c := range n.Comps {
		items[i] = item{comp: c}
	}
	return b.taskifyChunks(n.At, items, seqChunkToComp, next, in, out)
}

// taskifyChunks groups items into maximal barrier-free runs (each
// barrier-containing item becomes its own singleton chunk), folds them
// right-to-left into a chain of ActivateTask continuations, and returns
// the id of the first chunk's task — the entry point for the whole list.
func (b *builder) taskifyChunks(pos srcpos.Position, items []item, combineItems func(srcpos.Position, []item) ast.Comp, next ast.Comp, in, out ast.QueueID) (ast.TaskID, error) {
	var chunks [][]item
	var cur []item
	for _, it := range items {
		if containsBarrier(it.comp, b.barriers) {
			if len(cur) > 0 {
				chunks = append(chunks, cur)
				cur = nil
			}
			chunks = append(chunks, []item{it})
		} else {
			cur = append(cur, it)
		}
	}
	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}

	var lastID ast.TaskID
	for i := len(chunks) - 1; i >= 0; i-- {
		chunkComp := combineItems(pos, chunks[i])
		cont := next
		if i != len(chunks)-1 {
			cont = &ast.ActivateTask{CompMeta: ast.CompMeta{At: pos}, Task: lastID}
		}
		id, err := b.taskify(chunkComp, cont, in, out)
		if err != nil {
			return 0, err
		}
		lastID = id
	}
	return lastID, nil
}

func seqChunkToComp(pos srcpos.Position, items []item) ast.Comp {
	if len(items) == 1 {
		return items[0].comp
	}
	comps := make([]ast.Comp, len(items))
	for i, it := range items {
		comps[i] = it.comp
	}
	return &ast.Seq{CompMeta: ast.CompMeta{At: pos}, Comps: comps}
}

// bindChunkToComp rebuilds a BindMany out of a contiguous item run. When
// the run's first element is a bound arm rather than the overall head (the
// run starts mid-way through the original arm list), a no-op `return ()`
// head is synthesised so the arm's binding survives the rebuild.
func bindChunkToComp(pos srcpos.Position, items []item) ast.Comp {
	if len(items) == 1 && items[0].isHead {
		return items[0].comp
	}
	var head ast.Comp
	start := 0
	if items[0].isHead {
		head = items[0].comp
		start = 1
	} else {
		head = &ast.Return{CompMeta: ast.CompMeta{At: pos}, Value: ast.NewLiteral(pos, typesys.Scalar(typesys.Unit))}
	}
	arms := make([]ast.BindArm, 0, len(items)-start)
	for _, it := range items[start:] {
		arms = append(arms, ast.BindArm{Var: it.varName, UniqueID: it.uniqueID, Comp: it.comp})
	}
	return ast.NewBindMany(pos, head, arms)
}
