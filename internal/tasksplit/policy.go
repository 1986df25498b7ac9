package tasksplit

import "github.com/flowc-lang/flowc/internal/ast"

// assignReadPolicies rewrites every ReadInternal endpoint in each task's
// body with the empty-queue policy its task must use: the entry task
// yields back to the scheduler on an empty queue (its producer may be a
// standalone that has not had a chance to run yet, and spinning would
// deadlock), every other task blocks until data arrives.
func (t *Table) assignReadPolicies() {
	for id, task := range t.tasks {
		policy := ast.SpinOnEmpty
		if id == t.entry {
			policy = ast.JumpToConsumeOnEmpty
		}
		task.Body = retagReads(task.Body, policy)
	}
}

// retagReads rebuilds c with every ReadInternal node carrying policy p.
// Nodes without sub-comps are returned unchanged.
func retagReads(c ast.Comp, p ast.ReadPolicy) ast.Comp {
	switch n := c.(type) {
	case *ast.ReadInternal:
		if n.Policy == p {
			return n
		}
		return &ast.ReadInternal{CompMeta: n.CompMeta, Queue: n.Queue, Policy: p, ElemType: n.ElemType}
	case *ast.BindMany:
		arms := make([]ast.BindArm, len(n.Arms))
		for i, a := range n.Arms {
			arms[i] = ast.BindArm{Var: a.Var, UniqueID: a.UniqueID, Comp: retagReads(a.Comp, p)}
		}
		return &ast.BindMany{CompMeta: n.CompMeta, Head: retagReads(n.Head, p), Arms: arms}
	case *ast.Seq:
		comps := make([]ast.Comp, len(n.Comps))
		for i, sub := range n.Comps {
			comps[i] = retagReads(sub, p)
		}
		return &ast.Seq{CompMeta: n.CompMeta, Comps: comps}
	case *ast.Par:
		return &ast.Par{CompMeta: n.CompMeta, A: retagReads(n.A, p), B: retagReads(n.B, p), Hint: n.Hint}
	case *ast.LetE:
		return &ast.LetE{CompMeta: n.CompMeta, Name: n.Name, UniqueID: n.UniqueID, Init: n.Init, Body: retagReads(n.Body, p)}
	case *ast.LetERef:
		return &ast.LetERef{CompMeta: n.CompMeta, Name: n.Name, UniqueID: n.UniqueID, VarType: n.VarType, Init: n.Init, Body: retagReads(n.Body, p)}
	case *ast.LetFunC:
		return &ast.LetFunC{CompMeta: n.CompMeta, Name: n.Name, Params: n.Params, FnBody: retagReads(n.FnBody, p), Cont: retagReads(n.Cont, p)}
	case *ast.LetFunE:
		return &ast.LetFunE{CompMeta: n.CompMeta, Name: n.Name, Params: n.Params, Ret: n.Ret, FnBody: n.FnBody, Cont: retagReads(n.Cont, p)}
	case *ast.LetStruct:
		return &ast.LetStruct{CompMeta: n.CompMeta, Name: n.Name, Fields: n.Fields, Cont: retagReads(n.Cont, p)}
	case *ast.VectComp:
		return &ast.VectComp{CompMeta: n.CompMeta, Width: n.Width, Body: retagReads(n.Body, p)}
	case *ast.Branch:
		return &ast.Branch{CompMeta: n.CompMeta, Cond: n.Cond, Then: retagReads(n.Then, p), Else: retagReads(n.Else, p)}
	case *ast.Standalone:
		return &ast.Standalone{CompMeta: n.CompMeta, Body: retagReads(n.Body, p)}
	case *ast.Until:
		return &ast.Until{CompMeta: n.CompMeta, Cond: n.Cond, Body: retagReads(n.Body, p)}
	case *ast.While:
		return &ast.While{CompMeta: n.CompMeta, Cond: n.Cond, Body: retagReads(n.Body, p)}
	case *ast.Times:
		return &ast.Times{CompMeta: n.CompMeta, Count: n.Count, Body: retagReads(n.Body, p)}
	case *ast.Repeat:
		return &ast.Repeat{CompMeta: n.CompMeta, Body: retagReads(n.Body, p)}
	default:
		return c
	}
}
