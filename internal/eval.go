package internal

// Context supplies node/value arena lookups and cell resolution to Eval.
// recalc.go's implementation combines a Parser's arena with a Tile and the
// id of the cell currently being recomputed, so every Index/Addr the walk
// touches both reads a value and records a dependency edge (spec.md §4.4,
// §4.5 step 3: "evaluation and dependency tracking happen in the same
// pass").
type Context interface {
	GetNode(id NodeId) Node
	GetValue(id ValueId) Value

	// ResolvePos resolves a numeric [col,row] subscript (an Index node) to
	// its cell's current value.
	ResolvePos(col, row int) (CellId, Value, error)

	// ResolveLabel resolves a label {col,row} subscript (an Addr node) to
	// its cell's current value.
	ResolveLabel(colLabel, rowLabel string) (CellId, Value, error)
}

// maxEvalDepth bounds recursive descent through the arena; a formula
// deeper than this fails with an EvalError rather than overflowing the
// goroutine stack (spec.md §4.4, §7).
const maxEvalDepth = 1024

// Eval walks the arena rooted at root and computes its Value.
func Eval(ctx Context, root NodeId) (Value, error) {
	return evalNode(ctx, root, 0)
}

func evalNode(ctx Context, id NodeId, depth int) (Value, error) {
	if depth > maxEvalDepth {
		return Value{}, &EvalError{Reason: "recursion depth exceeded"}
	}
	n := ctx.GetNode(id)
	switch n.Kind {
	case NodeZero:
		return numZero(), nil
	case NodeLeaf:
		return ctx.GetValue(n.Value), nil
	case NodeBinOp:
		return evalBinOp(ctx, n, depth)
	case NodeUniOp:
		v, err := evalNode(ctx, n.LHS, depth+1)
		if err != nil {
			return Value{}, err
		}
		return negate(v), nil
	case NodeList:
		return evalList(ctx, n, depth)
	case NodeIndex:
		return evalIndex(ctx, n, depth)
	case NodeAddr:
		return evalAddr(ctx, n, depth)
	default:
		return Value{}, &EvalError{Reason: "unhandled node kind"}
	}
}

func evalBinOp(ctx Context, n Node, depth int) (Value, error) {
	lhs, err := evalNode(ctx, n.LHS, depth+1)
	if err != nil {
		return Value{}, err
	}
	rhs, err := evalNode(ctx, n.RHS, depth+1)
	if err != nil {
		return Value{}, err
	}
	return applyBinOp(n.Op, lhs, rhs), nil
}

// evalList evaluates the node's own inline elements, then its overflow
// Link chain (if any), concatenating results in order (spec.md §4.4).
func evalList(ctx Context, n Node, depth int) (Value, error) {
	out := make([]Value, 0, n.Len)
	for i := 0; i < n.Len; i++ {
		v, err := evalNode(ctx, n.Elems[i], depth+1)
		if err != nil {
			return Value{}, err
		}
		out = append(out, v)
	}
	if n.Link != noID {
		link := ctx.GetNode(n.Link)
		tail, err := evalList(ctx, link, depth+1)
		if err != nil {
			return Value{}, err
		}
		out = append(out, tail.List...)
	}
	return ListValue(out), nil
}

// evalIndex evaluates both subscripts, coerces to integer, and resolves a
// [col,row] cell reference (spec.md §4.4).
func evalIndex(ctx Context, n Node, depth int) (Value, error) {
	colV, err := evalNode(ctx, n.Col, depth+1)
	if err != nil {
		return Value{}, err
	}
	rowV, err := evalNode(ctx, n.Row, depth+1)
	if err != nil {
		return Value{}, err
	}
	_, v, err := ctx.ResolvePos(int(colV.ToInt64()), int(rowV.ToInt64()))
	if err != nil {
		return Value{}, &EvalError{Reason: err.Error()}
	}
	return v, nil
}

// evalAddr evaluates both subscripts, coerces to string labels, and
// resolves a {col_label,row_label} cell reference (spec.md §4.4).
func evalAddr(ctx Context, n Node, depth int) (Value, error) {
	colV, err := evalNode(ctx, n.Col, depth+1)
	if err != nil {
		return Value{}, err
	}
	rowV, err := evalNode(ctx, n.Row, depth+1)
	if err != nil {
		return Value{}, err
	}
	_, v, err := ctx.ResolveLabel(colV.ToStr(), rowV.ToStr())
	if err != nil {
		return Value{}, &EvalError{Reason: err.Error()}
	}
	return v, nil
}
