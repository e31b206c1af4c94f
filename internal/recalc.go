package internal

// evalContext adapts one Parser's arena and one Tile to the Context
// interface for a single UpdateCell pass: every Index/Addr resolution it
// serves also records a dependency edge from whatever upstream cell it read
// to the cell currently being recomputed (spec.md §4.5 step 3,
// "evaluation and dependency tracking happen in the same pass").
type evalContext struct {
	parser     *Parser
	tile       *Tile
	downstream CellId
}

func (c *evalContext) GetNode(id NodeId) Node    { return c.parser.GetNode(id) }
func (c *evalContext) GetValue(id ValueId) Value { return c.parser.GetValue(id) }

func (c *evalContext) ResolvePos(col, row int) (CellId, Value, error) {
	return c.resolve(PosRef(col, row))
}

func (c *evalContext) ResolveLabel(colLabel, rowLabel string) (CellId, Value, error) {
	ref, err := LabelRef(colLabel, rowLabel, c.tile)
	if err != nil {
		return 0, Value{}, err
	}
	return c.resolve(ref)
}

func (c *evalContext) resolve(ref CellRef) (CellId, Value, error) {
	id, err := ref.Resolve()
	if err != nil {
		return 0, Value{}, err
	}
	c.tile.TrackDep(c.downstream, id)
	return id, c.tile.GetCellByID(id).Value, nil
}

// UpdateCell implements the five-step recalculation sequence of spec.md
// §4.5: resolve the target cell, parse the formula, evaluate it while
// tracking dependencies against the tile's graph, write the result (the
// formula is dropped on a parse failure, retained on an eval failure or
// success), then propagate recomputation to every direct dependent.
//
// A per-pass "currently recomputing" set guards against a dependency
// cycle turning propagation into infinite recursion: a cell reached a
// second time within the same propagation stack is not recomputed again;
// it is overwritten with an eval-error cell and that path stops there
// (spec.md §4.5 step 5, §9).
func UpdateCell(t *Tile, ref CellRef, formula string) error {
	id, err := ref.Resolve()
	if err != nil {
		return err
	}
	recomputing := make(map[CellId]bool)
	return recalcCell(t, id, formula, recomputing)
}

func recalcCell(t *Tile, id CellId, formula string, recomputing map[CellId]bool) error {
	if recomputing[id] {
		// Back-edge in the current propagation stack: a genuine cycle.
		// spec.md §4.5's cycle policy permits aborting this path by
		// writing an error into the offending cell rather than silently
		// leaving its previous value in place.
		t.SetCellByID(id, evalErrorCell(formula))
		return &EvalError{Reason: "cyclic dependency detected during propagation"}
	}
	recomputing[id] = true
	defer delete(recomputing, id)

	// A parse failure must leave the dep graph exactly as it was before
	// this attempt (spec.md §4.5 step 2, §4.3/§9), so the stale-edge reset
	// only happens once parsing has actually produced a tree to re-track
	// dependencies against.
	p := NewParser(formula, WithParserLogger(t.log))
	root, ok := p.Parse()
	if !ok {
		t.SetCellByID(id, parseErrorCell())
		return &ParseError{Pos: len(string(p.input[:p.furthest]))}
	}

	t.resetUpstreamEdges(id)

	ctx := &evalContext{parser: p, tile: t, downstream: id}
	v, err := Eval(ctx, root)
	if err != nil {
		t.SetCellByID(id, evalErrorCell(formula))
		return err
	}

	t.SetCellByID(id, Cell{Value: v, Formula: formula})

	for _, dep := range t.Dependents(id) {
		depFormula := t.GetCellByID(dep).Formula
		if err := recalcCell(t, dep, depFormula, recomputing); err != nil {
			t.log.Debug().Err(err).Uint32("cell", uint32(dep)).Msg("dependent recompute failed")
		}
	}
	return nil
}
