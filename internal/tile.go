package internal

import (
	"strconv"

	"github.com/katalvlaran/lvlath/core"
	"github.com/rs/zerolog"
)

// Tile is a fixed-capacity ROW_MAX x COL_MAX grid of cells plus the
// dependency graph driving recalculation (spec.md §3, §4.3). Cells are
// addressed by the packed CellId = row*ColMax + col.
type Tile struct {
	cells [ColMax * RowMax]Cell
	rows  int // observed row extent, grows monotonically
	cols  int // observed column extent, grows monotonically

	labels [ColMax + RowMax]string // first ColMax: column labels; next RowMax: row labels

	// depGraph is a directed graph over CellId.String() vertex IDs, edge
	// direction upstream -> downstream (spec.md §3, §4.3, §9).
	depGraph *core.Graph

	log zerolog.Logger
}

// TileOption configures a Tile at construction time.
type TileOption func(*Tile)

// WithTileLogger injects a logger; the default is zerolog.Nop().
func WithTileLogger(l zerolog.Logger) TileOption {
	return func(t *Tile) { t.log = l }
}

// NewTile allocates an empty tile with its label arrays pre-populated and
// its dependency graph ready to receive vertices.
func NewTile(opts ...TileOption) *Tile {
	t := &Tile{
		log: zerolog.Nop(),
		depGraph: core.NewGraph(
			core.WithDirected(true),
			core.WithMultiEdges(), // re-tracking an edge across recomputes must not error
			core.WithLoops(),      // a formula may reference its own cell
		),
	}
	for col := 0; col < ColMax; col++ {
		t.labels[col] = columnLabel(col)
	}
	for row := 0; row < RowMax; row++ {
		t.labels[ColMax+row] = rowLabel(row)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Rows and Cols report the observed bounding box (spec.md §3, §8): one
// plus the maximum row (column) index ever written, or more where AddRow
// (AddColumn) has grown the extent without a write.
func (t *Tile) Rows() int { return t.rows }
func (t *Tile) Cols() int { return t.cols }

// resolveColLabel performs the linear scan over the first ColMax label
// entries described in spec.md §4.3.
func (t *Tile) resolveColLabel(label string) (int, error) {
	for i := 0; i < ColMax; i++ {
		if t.labels[i] == label {
			return i, nil
		}
	}
	return 0, ErrParseCellID
}

// resolveRowLabel performs the linear scan over the row-label entries,
// subtracting ColMax from the matched index per spec.md §4.3.
func (t *Tile) resolveRowLabel(label string) (int, error) {
	for i := ColMax; i < ColMax+RowMax; i++ {
		if t.labels[i] == label {
			return i - ColMax, nil
		}
	}
	return 0, ErrParseCellID
}

// GetCellByID reads the packed array; out-of-range ids are a programmer
// error per spec.md §7 and panic rather than returning a zero Cell.
func (t *Tile) GetCellByID(id CellId) Cell {
	t.checkID(id)
	return t.cells[id]
}

// SetCellByID writes the packed array, growing the observed bounding box
// when the write extends it, and ensures a dependency-graph vertex exists
// for this cell (spec.md §4.3, invariant I3).
func (t *Tile) SetCellByID(id CellId, c Cell) {
	t.checkID(id)
	col, row := cellIDToPos(id)
	t.cells[id] = c
	if row+1 > t.rows {
		t.rows = row + 1
	}
	if col+1 > t.cols {
		t.cols = col + 1
	}
	t.ensureVertex(id)
}

func (t *Tile) checkID(id CellId) {
	col, row := cellIDToPos(id)
	if !inBounds(col, row) {
		panic("internal: CellId out of tile bounds")
	}
}

func (t *Tile) ensureVertex(id CellId) {
	_ = t.depGraph.AddVertex(vertexID(id))
}

func vertexID(id CellId) string {
	return strconv.FormatUint(uint64(id), 10)
}

// TrackDep records that downstream's current formula read upstream,
// adding an edge upstream -> downstream. Neighbors of an upstream node are
// exactly the set of cells to recompute when upstream changes (spec.md
// §4.3, §9: edges are stored as (upstream,downstream) id pairs, never
// reference-typed pointers).
func (t *Tile) TrackDep(downstream, upstream CellId) {
	t.ensureVertex(upstream)
	t.ensureVertex(downstream)
	from, to := vertexID(upstream), vertexID(downstream)
	if t.depGraph.HasEdge(from, to) {
		return
	}
	if _, err := t.depGraph.AddEdge(from, to, 0); err != nil {
		t.log.Warn().Err(err).Str("upstream", from).Str("downstream", to).Msg("dep edge not recorded")
	}
}

// resetUpstreamEdges removes every edge pointed at cid from some upstream
// cell, so TrackDep calls made during a fresh evaluation of cid reflect
// only the cells its current formula actually reads. Mirrors the teacher's
// maps.Clear(s.refersTo[cid]) step in refresh before rebuilding references.
//
// depGraph exposes only Neighbors (outbound) for traversal, not an
// inbound-edge query, so the stale set is found by scanning all edges for
// cid as the target rather than via a dedicated predecessor lookup.
func (t *Tile) resetUpstreamEdges(cid CellId) {
	id := vertexID(cid)
	if !t.depGraph.HasVertex(id) {
		return
	}
	for _, e := range t.depGraph.Edges() {
		if e.To == id {
			_ = t.depGraph.RemoveEdge(e.ID)
		}
	}
}

// Dependents returns the direct outbound neighbors of cid: the cells that
// should be recomputed when cid changes (spec.md §4.5 step 5).
func (t *Tile) Dependents(cid CellId) []CellId {
	id := vertexID(cid)
	if !t.depGraph.HasVertex(id) {
		return nil
	}
	ids, err := t.depGraph.NeighborIDs(id)
	if err != nil {
		return nil
	}
	out := make([]CellId, 0, len(ids))
	for _, s := range ids {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			continue
		}
		out = append(out, CellId(n))
	}
	return out
}

// AddColumn grows the observed column extent by one without writing any
// cell, per spec.md §6's add_column command.
func (t *Tile) AddColumn() {
	if t.cols < ColMax {
		t.cols++
	}
}

// AddRow grows the observed row extent by one without writing any cell,
// per spec.md §6's add_row command.
func (t *Tile) AddRow() {
	if t.rows < RowMax {
		t.rows++
	}
}

// renderedCell is the row-major projection of one observed cell, consumed
// by snapshot.go's TileUi assembly (which takes the labels from
// colLabels/rowLabels, not from here).
type renderedCell struct {
	Cell Cell
}

// render projects the observed (rows x cols) sub-grid into a row-major
// slice, packing column-major input into row-major output: for column ic
// in 0..cols and row ir in 0..rows, output slot ir*cols+ic holds cell
// [ic, ir] (spec.md §4.3 "Rendering").
func (t *Tile) render() []renderedCell {
	out := make([]renderedCell, t.rows*t.cols)
	for ic := 0; ic < t.cols; ic++ {
		for ir := 0; ir < t.rows; ir++ {
			out[ir*t.cols+ic] = renderedCell{Cell: t.GetCellByID(posToCellID(ic, ir))}
		}
	}
	return out
}

func (t *Tile) colLabels() []string {
	return append([]string(nil), t.labels[:t.cols]...)
}

func (t *Tile) rowLabels() []string {
	out := make([]string, t.rows)
	copy(out, t.labels[ColMax:ColMax+t.rows])
	return out
}
