package astjson

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/flowc-lang/flowc/internal/ast"
)

// EncodeComp renders c as a JSON fixture document, for the `flowc split`
// subcommand and the task splitter's golden tests. Supported node kinds
// cover the stream-level constructs those tests exercise (CompRef,
// BindMany, Seq, Par, LetE, LetERef, Branch, Standalone, Emit/Emits,
// Return, Take/Takes, Map, Filter, ReadSrc/WriteSnk, Mitigate); a node
// outside that set returns an error naming it.
func EncodeComp(c ast.Comp) (string, error) {
	if c == nil {
		return "null", nil
	}
	doc := "{}"
	var err error
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
	subC := func(path string, c ast.Comp) {
		raw, e2 := EncodeComp(c)
		if e2 != nil {
			err = e2
			return
		}
		setRaw(path, raw)
	}
	subE := func(path string, e ast.Exp) {
		raw, e2 := EncodeExp(e)
		if e2 != nil {
			err = e2
			return
		}
		setRaw(path, raw)
	}

	switch n := c.(type) {
	case *ast.CompRef:
		set("node", "CompRef")
		set("id", n.UniqueID)
		set("name", n.Name)
	case *ast.BindMany:
		set("node", "BindMany")
		subC("head", n.Head)
		set("arms", []any{})
		for i, a := range n.Arms {
			set(fmt.Sprintf("arms.%d.var", i), a.Var)
			set(fmt.Sprintf("arms.%d.id", i), a.UniqueID)
			subC(fmt.Sprintf("arms.%d.comp", i), a.Comp)
		}
	case *ast.Seq:
		set("node", "Seq")
		set("comps", []any{})
		for i, sub := range n.Comps {
			subC(fmt.Sprintf("comps.%d", i), sub)
		}
	case *ast.Par:
		set("node", "Par")
		subC("a", n.A)
		subC("b", n.B)
	case *ast.LetE:
		set("node", "LetE")
		set("name", n.Name)
		set("id", n.UniqueID)
		subE("init", n.Init)
		subC("body", n.Body)
	case *ast.LetERef:
		set("node", "LetERef")
		set("name", n.Name)
		set("id", n.UniqueID)
		varTypeJSON, e2 := EncodeType(n.VarType)
		if e2 != nil {
			return "", e2
		}
		setRaw("varType", varTypeJSON)
		if n.Init != nil {
			subE("init", n.Init)
		}
		subC("body", n.Body)
	case *ast.Branch:
		set("node", "Branch")
		subE("cond", n.Cond)
		subC("then", n.Then)
		subC("else", n.Else)
	case *ast.Standalone:
		set("node", "Standalone")
		subC("body", n.Body)
	case *ast.Emit:
		set("node", "Emit")
		subE("value", n.Value)
	case *ast.Emits:
		set("node", "Emits")
		subE("value", n.Value)
	case *ast.Return:
		set("node", "Return")
		subE("value", n.Value)
	case *ast.Take:
		set("node", "Take")
	case *ast.Takes:
		set("node", "Takes")
		set("count", n.Count)
	case *ast.Map:
		set("node", "Map")
		set("func", n.Func)
	case *ast.Filter:
		set("node", "Filter")
		set("func", n.Func)
	case *ast.ReadSrc:
		set("node", "ReadSrc")
		elemJSON, e2 := EncodeType(n.ElemType)
		if e2 != nil {
			return "", e2
		}
		setRaw("elemType", elemJSON)
	case *ast.WriteSnk:
		set("node", "WriteSnk")
		elemJSON, e2 := EncodeType(n.ElemType)
		if e2 != nil {
			return "", e2
		}
		setRaw("elemType", elemJSON)
	case *ast.Mitigate:
		set("node", "Mitigate")
		set("inWidth", n.InWidth)
		set("outWidth", n.OutWidth)
		elemJSON, e2 := EncodeType(n.Elem)
		if e2 != nil {
			return "", e2
		}
		setRaw("elem", elemJSON)
	default:
		return "", fmt.Errorf("astjson: EncodeComp: unsupported node %T", c)
	}
	if err != nil {
		return "", err
	}
	return doc, nil
}

// DecodeComp parses a fixture document produced by EncodeComp back into an
// ast.Comp tree.
func DecodeComp(json string) (ast.Comp, error) {
	return decodeCompResult(gjson.Parse(json))
}

func decodeCompResult(root gjson.Result) (ast.Comp, error) {
	if !root.Exists() || root.Type == gjson.Null {
		return nil, nil
	}
	meta := ast.CompMeta{}
	node := root.Get("node").String()

	childC := func(path string) (ast.Comp, error) { return decodeCompResult(root.Get(path)) }
	childE := func(path string) (ast.Exp, error) { return decodeExpResult(root.Get(path)) }

	switch node {
	case "CompRef":
		return &ast.CompRef{CompMeta: meta, UniqueID: root.Get("id").String(), Name: root.Get("name").String()}, nil
	case "BindMany":
		head, err := childC("head")
		if err != nil {
			return nil, err
		}
		var arms []ast.BindArm
		for _, a := range root.Get("arms").Array() {
			armComp, err := decodeCompResult(a.Get("comp"))
			if err != nil {
				return nil, err
			}
			arms = append(arms, ast.BindArm{Var: a.Get("var").String(), UniqueID: a.Get("id").String(), Comp: armComp})
		}
		return ast.NewBindMany(meta.At, head, arms), nil
	case "Seq":
		var comps []ast.Comp
		for _, sc := range root.Get("comps").Array() {
			cv, err := decodeCompResult(sc)
			if err != nil {
				return nil, err
			}
			comps = append(comps, cv)
		}
		return &ast.Seq{CompMeta: meta, Comps: comps}, nil
	case "Par":
		a, err := childC("a")
		if err != nil {
			return nil, err
		}
		b, err := childC("b")
		if err != nil {
			return nil, err
		}
		return &ast.Par{CompMeta: meta, A: a, B: b}, nil
	case "LetE":
		init, err := childE("init")
		if err != nil {
			return nil, err
		}
		body, err := childC("body")
		if err != nil {
			return nil, err
		}
		return &ast.LetE{CompMeta: meta, Name: root.Get("name").String(), UniqueID: root.Get("id").String(), Init: init, Body: body}, nil
	case "LetERef":
		varType, err := decodeTypeResult(root.Get("varType"))
		if err != nil {
			return nil, err
		}
		var init ast.Exp
		if root.Get("init").Exists() {
			init, err = childE("init")
			if err != nil {
				return nil, err
			}
		}
		body, err := childC("body")
		if err != nil {
			return nil, err
		}
		return &ast.LetERef{CompMeta: meta, Name: root.Get("name").String(), UniqueID: root.Get("id").String(), VarType: varType, Init: init, Body: body}, nil
	case "Branch":
		cond, err := childE("cond")
		if err != nil {
			return nil, err
		}
		then, err := childC("then")
		if err != nil {
			return nil, err
		}
		els, err := childC("else")
		if err != nil {
			return nil, err
		}
		return &ast.Branch{CompMeta: meta, Cond: cond, Then: then, Else: els}, nil
	case "Standalone":
		body, err := childC("body")
		if err != nil {
			return nil, err
		}
		return &ast.Standalone{CompMeta: meta, Body: body}, nil
	case "Emit":
		v, err := childE("value")
		if err != nil {
			return nil, err
		}
		return &ast.Emit{CompMeta: meta, Value: v}, nil
	case "Emits":
		v, err := childE("value")
		if err != nil {
			return nil, err
		}
		return &ast.Emits{CompMeta: meta, Value: v}, nil
	case "Return":
		v, err := childE("value")
		if err != nil {
			return nil, err
		}
		return &ast.Return{CompMeta: meta, Value: v}, nil
	case "Take":
		return &ast.Take{CompMeta: meta}, nil
	case "Takes":
		return &ast.Takes{CompMeta: meta, Count: int(root.Get("count").Int())}, nil
	case "Map":
		return &ast.Map{CompMeta: meta, Func: root.Get("func").String()}, nil
	case "Filter":
		return &ast.Filter{CompMeta: meta, Func: root.Get("func").String()}, nil
	case "ReadSrc":
		elemType, err := decodeTypeResult(root.Get("elemType"))
		if err != nil {
			return nil, err
		}
		return &ast.ReadSrc{CompMeta: meta, ElemType: elemType}, nil
	case "WriteSnk":
		elemType, err := decodeTypeResult(root.Get("elemType"))
		if err != nil {
			return nil, err
		}
		return &ast.WriteSnk{CompMeta: meta, ElemType: elemType}, nil
	case "Mitigate":
		elem, err := decodeTypeResult(root.Get("elem"))
		if err != nil {
			return nil, err
		}
		return &ast.Mitigate{CompMeta: meta, InWidth: int(root.Get("inWidth").Int()), OutWidth: int(root.Get("outWidth").Int()), Elem: elem}, nil
	default:
		return nil, fmt.Errorf("astjson: DecodeComp: unknown node %q", node)
	}
}
