package astjson

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

var unaryOpNames = map[ast.UnaryOp]string{
	ast.Neg: "neg", ast.Not: "not", ast.BitNot: "bitnot", ast.Length: "length", ast.Cast: "cast",
}
var unaryOpByName = invertUnary(unaryOpNames)

func invertUnary(m map[ast.UnaryOp]string) map[string]ast.UnaryOp {
	out := make(map[string]ast.UnaryOp, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var binaryOpByName = map[string]ast.BinaryOp{
	"+": ast.Add, "-": ast.Sub, "*": ast.Mul, "div": ast.Div, "rem": ast.Rem, "/": ast.FDiv, "**": ast.Pow,
	"<<": ast.Shl, ">>": ast.Shr, "&": ast.BitAnd, "|": ast.BitOr, "^": ast.BitXor,
	"=": ast.Eq, "<>": ast.Ne, "<": ast.Lt, "<=": ast.Le, ">": ast.Gt, ">=": ast.Ge,
	"and": ast.And, "or": ast.Or,
}

var inlineModeByName = map[string]ast.InlineMode{"auto": ast.AutoInline, "inline": ast.ForceInline, "noinline": ast.NoInline}
var inlineModeNames = map[ast.InlineMode]string{ast.AutoInline: "auto", ast.ForceInline: "inline", ast.NoInline: "noinline"}

var unrollHintByName = map[string]ast.UnrollHint{"auto": ast.UnrollAuto, "force": ast.UnrollForce, "forbid": ast.UnrollForbid}
var unrollHintNames = map[ast.UnrollHint]string{ast.UnrollAuto: "auto", ast.UnrollForce: "force", ast.UnrollForbid: "forbid"}

// encodePos renders a srcpos.Position, omitted entirely when invalid (the
// common case for synthetic fixture nodes that have no source counterpart).
func encodePos(doc string, path string, pos srcpos.Position) (string, error) {
	if !pos.IsValid() {
		return doc, nil
	}
	doc, err := sjson.Set(doc, path+".line", pos.Line)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, path+".col", pos.Column)
	if err != nil {
		return "", err
	}
	if pos.File != "" {
		doc, err = sjson.Set(doc, path+".file", pos.File)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func decodePos(root gjson.Result) srcpos.Position {
	if !root.Exists() {
		return srcpos.None
	}
	return srcpos.Position{
		File:   root.Get("file").String(),
		Line:   int(root.Get("line").Int()),
		Column: int(root.Get("col").Int()),
	}
}

// EncodeExp renders e as a JSON fixture document. Supported node kinds
// cover the scalar-expression constructs exercised by this repository's
// fixtures and the `flowc eval` subcommand; a node outside that set
// returns an error naming it rather than silently dropping information.
func EncodeExp(e ast.Exp) (string, error) {
	if e == nil {
		return "null", nil
	}
	typeJSON, err := EncodeType(e.Type())
	if err != nil {
		return "", err
	}
	doc := "{}"
	set := func(path string, v any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, v)
	}
	setRaw := func(path string, raw string) {
		if err != nil {
			return
		}
		doc, err = sjson.SetRaw(doc, path, raw)
	}
	setRaw("type", typeJSON)
	doc, posErr := encodePos(doc, "pos", e.Pos())
	if posErr != nil {
		return "", posErr
	}

	switch n := e.(type) {
	case *ast.Literal:
		set("node", "Literal")
		switch n.Typ.Kind {
		case typesys.Double:
			set("flt", n.Flt)
		case typesys.String:
			set("str", n.Str)
		case typesys.Complex8, typesys.Complex16, typesys.Complex32, typesys.Complex64:
			set("re", n.Re)
			set("im", n.Im)
		default:
			set("int", n.Int)
		}
	case *ast.VarRef:
		set("node", "VarRef")
		set("id", n.UniqueID)
		set("name", n.Name)
	case *ast.ArrayLit:
		set("node", "ArrayLit")
		set("elems", []any{})
		for i, el := range n.Elems {
			elJSON, e2 := EncodeExp(el)
			if e2 != nil {
				return "", e2
			}
			setRaw(fmt.Sprintf("elems.%d", i), elJSON)
		}
	case *ast.ArrayRead:
		set("node", "ArrayRead")
		baseJSON, e2 := EncodeExp(n.Base)
		if e2 != nil {
			return "", e2
		}
		idxJSON, e3 := EncodeExp(n.Index)
		if e3 != nil {
			return "", e3
		}
		setRaw("base", baseJSON)
		setRaw("index", idxJSON)
	case *ast.ArraySlice:
		set("node", "ArraySlice")
		baseJSON, e2 := EncodeExp(n.Base)
		if e2 != nil {
			return "", e2
		}
		startJSON, e3 := EncodeExp(n.Start)
		if e3 != nil {
			return "", e3
		}
		setRaw("base", baseJSON)
		setRaw("start", startJSON)
		set("length", n.Length)
	case *ast.ArraySliceVar:
		set("node", "ArraySliceVar")
		set("lenVar", n.LenVar)
		baseJSON, e2 := EncodeExp(n.Base)
		if e2 != nil {
			return "", e2
		}
		startJSON, e3 := EncodeExp(n.Start)
		if e3 != nil {
			return "", e3
		}
		setRaw("base", baseJSON)
		setRaw("start", startJSON)
	case *ast.StructLit:
		set("node", "StructLit")
		set("typeName", n.TypeName)
		set("fields", []any{})
		for i, f := range n.Fields {
			fJSON, e2 := EncodeExp(f.Value)
			if e2 != nil {
				return "", e2
			}
			set(fmt.Sprintf("fields.%d.name", i), f.Name)
			setRaw(fmt.Sprintf("fields.%d.value", i), fJSON)
		}
	case *ast.FieldAccess:
		set("node", "FieldAccess")
		set("field", n.Field)
		baseJSON, e2 := EncodeExp(n.Base)
		if e2 != nil {
			return "", e2
		}
		setRaw("base", baseJSON)
	case *ast.UnaryExpr:
		set("node", "UnaryExpr")
		set("op", unaryOpNames[n.Op])
		xJSON, e2 := EncodeExp(n.X)
		if e2 != nil {
			return "", e2
		}
		setRaw("x", xJSON)
		if n.Op == ast.Cast {
			castJSON, e3 := EncodeType(n.CastTo)
			if e3 != nil {
				return "", e3
			}
			setRaw("castTo", castJSON)
		}
	case *ast.BinaryExpr:
		set("node", "BinaryExpr")
		set("op", n.Op.String())
		lJSON, e2 := EncodeExp(n.L)
		if e2 != nil {
			return "", e2
		}
		rJSON, e3 := EncodeExp(n.R)
		if e3 != nil {
			return "", e3
		}
		setRaw("l", lJSON)
		setRaw("r", rJSON)
	case *ast.Let:
		set("node", "Let")
		set("name", n.Name)
		set("id", n.UniqueID)
		set("mode", inlineModeNames[n.Mode])
		initJSON, e2 := EncodeExp(n.Init)
		if e2 != nil {
			return "", e2
		}
		bodyJSON, e3 := EncodeExp(n.Body)
		if e3 != nil {
			return "", e3
		}
		setRaw("init", initJSON)
		setRaw("body", bodyJSON)
	case *ast.LetRef:
		set("node", "LetRef")
		set("name", n.Name)
		set("id", n.UniqueID)
		varTypeJSON, e2 := EncodeType(n.VarType)
		if e2 != nil {
			return "", e2
		}
		setRaw("varType", varTypeJSON)
		if n.Init != nil {
			initJSON, e3 := EncodeExp(n.Init)
			if e3 != nil {
				return "", e3
			}
			setRaw("init", initJSON)
		}
		bodyJSON, e4 := EncodeExp(n.Body)
		if e4 != nil {
			return "", e4
		}
		setRaw("body", bodyJSON)
	case *ast.Assign:
		set("node", "Assign")
		targetJSON, e2 := encodeLValue(n.Target)
		if e2 != nil {
			return "", e2
		}
		valueJSON, e3 := EncodeExp(n.Value)
		if e3 != nil {
			return "", e3
		}
		setRaw("target", targetJSON)
		setRaw("value", valueJSON)
	case *ast.ArrayWrite:
		set("node", "ArrayWrite")
		arrJSON, e2 := EncodeExp(n.Array)
		if e2 != nil {
			return "", e2
		}
		idxJSON, e3 := EncodeExp(n.Index)
		if e3 != nil {
			return "", e3
		}
		valueJSON, e4 := EncodeExp(n.Value)
		if e4 != nil {
			return "", e4
		}
		setRaw("array", arrJSON)
		setRaw("index", idxJSON)
		setRaw("value", valueJSON)
	case *ast.ExpSeq:
		set("node", "Seq")
		firstJSON, e2 := EncodeExp(n.First)
		if e2 != nil {
			return "", e2
		}
		secondJSON, e3 := EncodeExp(n.Second)
		if e3 != nil {
			return "", e3
		}
		setRaw("first", firstJSON)
		setRaw("second", secondJSON)
	case *ast.If:
		set("node", "If")
		condJSON, e2 := EncodeExp(n.Cond)
		if e2 != nil {
			return "", e2
		}
		thenJSON, e3 := EncodeExp(n.Then)
		if e3 != nil {
			return "", e3
		}
		elseJSON, e4 := EncodeExp(n.Else)
		if e4 != nil {
			return "", e4
		}
		setRaw("cond", condJSON)
		setRaw("then", thenJSON)
		setRaw("else", elseJSON)
	case *ast.For:
		set("node", "For")
		set("var", n.Var)
		set("id", n.UniqueID)
		set("unroll", unrollHintNames[n.Unroll])
		startJSON, e2 := EncodeExp(n.Start)
		if e2 != nil {
			return "", e2
		}
		countJSON, e3 := EncodeExp(n.Count)
		if e3 != nil {
			return "", e3
		}
		bodyJSON, e4 := EncodeExp(n.Body)
		if e4 != nil {
			return "", e4
		}
		setRaw("start", startJSON)
		setRaw("count", countJSON)
		setRaw("body", bodyJSON)
	case *ast.ExpWhile:
		set("node", "While")
		condJSON, e2 := EncodeExp(n.Cond)
		if e2 != nil {
			return "", e2
		}
		bodyJSON, e3 := EncodeExp(n.Body)
		if e3 != nil {
			return "", e3
		}
		setRaw("cond", condJSON)
		setRaw("body", bodyJSON)
	case *ast.Call:
		set("node", "Call")
		set("func", n.Func)
		set("args", []any{})
		for i, a := range n.Args {
			aJSON, e2 := EncodeExp(a)
			if e2 != nil {
				return "", e2
			}
			setRaw(fmt.Sprintf("args.%d", i), aJSON)
		}
	case *ast.Print:
		set("node", "Print")
		set("newline", n.Newline)
		set("args", []any{})
		for i, a := range n.Args {
			aJSON, e2 := EncodeExp(a)
			if e2 != nil {
				return "", e2
			}
			setRaw(fmt.Sprintf("args.%d", i), aJSON)
		}
	case *ast.ErrorExp:
		set("node", "ErrorExp")
		set("message", n.Message)
	default:
		return "", fmt.Errorf("astjson: EncodeExp: unsupported node %T", e)
	}
	if err != nil {
		return "", err
	}
	return doc, nil
}

// encodeLValue renders an assignment's dereference path: the head
// variable plus its selector chain.
func encodeLValue(t ast.LValue) (string, error) {
	doc, err := sjson.Set("{}", "id", t.UniqueID)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "name", t.Name)
	if err != nil {
		return "", err
	}
	if len(t.Selectors) == 0 {
		return doc, nil
	}
	doc, err = sjson.Set(doc, "selectors", []any{})
	if err != nil {
		return "", err
	}
	for i, s := range t.Selectors {
		selJSON, err := encodeSelector(s)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, fmt.Sprintf("selectors.%d", i), selJSON)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func encodeSelector(s ast.Selector) (string, error) {
	switch sel := s.(type) {
	case ast.IndexSelector:
		doc, err := sjson.Set("{}", "sel", "index")
		if err != nil {
			return "", err
		}
		idxJSON, err := EncodeExp(sel.Index)
		if err != nil {
			return "", err
		}
		return sjson.SetRaw(doc, "index", idxJSON)
	case ast.SliceSelector:
		doc, err := sjson.Set("{}", "sel", "slice")
		if err != nil {
			return "", err
		}
		startJSON, err := EncodeExp(sel.Start)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "start", startJSON)
		if err != nil {
			return "", err
		}
		return sjson.Set(doc, "length", sel.Length)
	case ast.FieldSelector:
		doc, err := sjson.Set("{}", "sel", "field")
		if err != nil {
			return "", err
		}
		return sjson.Set(doc, "field", sel.Field)
	default:
		return "", fmt.Errorf("astjson: unsupported selector %T", s)
	}
}

func decodeLValue(root gjson.Result) (ast.LValue, error) {
	lv := ast.LValue{UniqueID: root.Get("id").String(), Name: root.Get("name").String()}
	for _, s := range root.Get("selectors").Array() {
		sel, err := decodeSelector(s)
		if err != nil {
			return ast.LValue{}, err
		}
		lv.Selectors = append(lv.Selectors, sel)
	}
	return lv, nil
}

func decodeSelector(root gjson.Result) (ast.Selector, error) {
	switch root.Get("sel").String() {
	case "index":
		idx, err := decodeExpResult(root.Get("index"))
		if err != nil {
			return nil, err
		}
		return ast.IndexSelector{Index: idx}, nil
	case "slice":
		start, err := decodeExpResult(root.Get("start"))
		if err != nil {
			return nil, err
		}
		return ast.SliceSelector{Start: start, Length: int(root.Get("length").Int())}, nil
	case "field":
		return ast.FieldSelector{Field: root.Get("field").String()}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown selector %q", root.Get("sel").String())
	}
}

// DecodeExp parses a fixture document produced by EncodeExp back into an
// ast.Exp tree.
func DecodeExp(json string) (ast.Exp, error) {
	return decodeExpResult(gjson.Parse(json))
}

func decodeExpResult(root gjson.Result) (ast.Exp, error) {
	if !root.Exists() || root.Type == gjson.Null {
		return nil, nil
	}
	typ, err := decodeTypeResult(root.Get("type"))
	if err != nil {
		return nil, err
	}
	meta := ast.Meta{At: decodePos(root.Get("pos")), Typ: typ}
	node := root.Get("node").String()

	child := func(path string) (ast.Exp, error) { return decodeExpResult(root.Get(path)) }

	switch node {
	case "Literal":
		l := ast.NewLiteral(meta.At, typ)
		switch typ.Kind {
		case typesys.Double:
			l.Flt = root.Get("flt").Float()
		case typesys.String:
			l.Str = root.Get("str").String()
		case typesys.Complex8, typesys.Complex16, typesys.Complex32, typesys.Complex64:
			l.Re = root.Get("re").Int()
			l.Im = root.Get("im").Int()
		default:
			l.Int = root.Get("int").Int()
		}
		return l, nil
	case "VarRef":
		return &ast.VarRef{Meta: meta, UniqueID: root.Get("id").String(), Name: root.Get("name").String()}, nil
	case "ArrayLit":
		var elems []ast.Exp
		for _, e := range root.Get("elems").Array() {
			el, err := decodeExpResult(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
		}
		return &ast.ArrayLit{Meta: meta, Elems: elems}, nil
	case "ArrayRead":
		base, err := child("base")
		if err != nil {
			return nil, err
		}
		idx, err := child("index")
		if err != nil {
			return nil, err
		}
		return &ast.ArrayRead{Meta: meta, Base: base, Index: idx}, nil
	case "ArraySlice":
		base, err := child("base")
		if err != nil {
			return nil, err
		}
		start, err := child("start")
		if err != nil {
			return nil, err
		}
		return &ast.ArraySlice{Meta: meta, Base: base, Start: start, Length: int(root.Get("length").Int())}, nil
	case "ArraySliceVar":
		base, err := child("base")
		if err != nil {
			return nil, err
		}
		start, err := child("start")
		if err != nil {
			return nil, err
		}
		return &ast.ArraySliceVar{Meta: meta, Base: base, Start: start, LenVar: root.Get("lenVar").String()}, nil
	case "StructLit":
		var fields []ast.FieldInit
		for _, f := range root.Get("fields").Array() {
			fv, err := decodeExpResult(f.Get("value"))
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.FieldInit{Name: f.Get("name").String(), Value: fv})
		}
		return &ast.StructLit{Meta: meta, TypeName: root.Get("typeName").String(), Fields: fields}, nil
	case "FieldAccess":
		base, err := child("base")
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccess{Meta: meta, Base: base, Field: root.Get("field").String()}, nil
	case "UnaryExpr":
		x, err := child("x")
		if err != nil {
			return nil, err
		}
		op, ok := unaryOpByName[root.Get("op").String()]
		if !ok {
			return nil, fmt.Errorf("astjson: unknown unary op %q", root.Get("op").String())
		}
		u := &ast.UnaryExpr{Meta: meta, Op: op, X: x}
		if op == ast.Cast {
			castTo, err := decodeTypeResult(root.Get("castTo"))
			if err != nil {
				return nil, err
			}
			u.CastTo = castTo
		}
		return u, nil
	case "BinaryExpr":
		l, err := child("l")
		if err != nil {
			return nil, err
		}
		r, err := child("r")
		if err != nil {
			return nil, err
		}
		op, ok := binaryOpByName[root.Get("op").String()]
		if !ok {
			return nil, fmt.Errorf("astjson: unknown binary op %q", root.Get("op").String())
		}
		return &ast.BinaryExpr{Meta: meta, Op: op, L: l, R: r}, nil
	case "Let":
		init, err := child("init")
		if err != nil {
			return nil, err
		}
		body, err := child("body")
		if err != nil {
			return nil, err
		}
		mode, ok := inlineModeByName[root.Get("mode").String()]
		if !ok {
			mode = ast.AutoInline
		}
		return &ast.Let{Meta: meta, Name: root.Get("name").String(), UniqueID: root.Get("id").String(), Mode: mode, Init: init, Body: body}, nil
	case "LetRef":
		varType, err := decodeTypeResult(root.Get("varType"))
		if err != nil {
			return nil, err
		}
		var init ast.Exp
		if root.Get("init").Exists() {
			init, err = child("init")
			if err != nil {
				return nil, err
			}
		}
		body, err := child("body")
		if err != nil {
			return nil, err
		}
		return &ast.LetRef{Meta: meta, Name: root.Get("name").String(), UniqueID: root.Get("id").String(), VarType: varType, Init: init, Body: body}, nil
	case "Assign":
		target, err := decodeLValue(root.Get("target"))
		if err != nil {
			return nil, err
		}
		v, err := child("value")
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Meta: meta, Target: target, Value: v}, nil
	case "ArrayWrite":
		arr, err := child("array")
		if err != nil {
			return nil, err
		}
		idx, err := child("index")
		if err != nil {
			return nil, err
		}
		v, err := child("value")
		if err != nil {
			return nil, err
		}
		return &ast.ArrayWrite{Meta: meta, Array: arr, Index: idx, Value: v}, nil
	case "Seq":
		first, err := child("first")
		if err != nil {
			return nil, err
		}
		second, err := child("second")
		if err != nil {
			return nil, err
		}
		return &ast.ExpSeq{Meta: meta, First: first, Second: second}, nil
	case "If":
		cond, err := child("cond")
		if err != nil {
			return nil, err
		}
		then, err := child("then")
		if err != nil {
			return nil, err
		}
		els, err := child("else")
		if err != nil {
			return nil, err
		}
		return &ast.If{Meta: meta, Cond: cond, Then: then, Else: els}, nil
	case "For":
		start, err := child("start")
		if err != nil {
			return nil, err
		}
		count, err := child("count")
		if err != nil {
			return nil, err
		}
		body, err := child("body")
		if err != nil {
			return nil, err
		}
		unroll, ok := unrollHintByName[root.Get("unroll").String()]
		if !ok {
			unroll = ast.UnrollAuto
		}
		return &ast.For{Meta: meta, Var: root.Get("var").String(), UniqueID: root.Get("id").String(), Start: start, Count: count, Unroll: unroll, Body: body}, nil
	case "While":
		cond, err := child("cond")
		if err != nil {
			return nil, err
		}
		body, err := child("body")
		if err != nil {
			return nil, err
		}
		return &ast.ExpWhile{Meta: meta, Cond: cond, Body: body}, nil
	case "Call":
		var args []ast.Exp
		for _, a := range root.Get("args").Array() {
			av, err := decodeExpResult(a)
			if err != nil {
				return nil, err
			}
			args = append(args, av)
		}
		return &ast.Call{Meta: meta, Func: root.Get("func").String(), Args: args}, nil
	case "Print":
		var args []ast.Exp
		for _, a := range root.Get("args").Array() {
			av, err := decodeExpResult(a)
			if err != nil {
				return nil, err
			}
			args = append(args, av)
		}
		return &ast.Print{Meta: meta, Args: args, Newline: root.Get("newline").Bool()}, nil
	case "ErrorExp":
		return &ast.ErrorExp{Meta: meta, Message: root.Get("message").String()}, nil
	default:
		return nil, fmt.Errorf("astjson: DecodeExp: unknown node %q", node)
	}
}
