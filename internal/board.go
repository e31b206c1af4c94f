package internal

import (
	"sync"

	"github.com/rs/zerolog"
)

// TileId is the Board's handle for one Tile, issued in allocation order.
type TileId uint32

// Board is an ordered collection of tiles guarded by a single RWMutex
// (spec.md §3, §8): reads (Snapshot) take RLock, mutations (AddTile,
// AddColumn, AddRow, UpdateCell) take Lock so each call is atomic from a
// reader's perspective. Every public command, mutating or not, returns a
// BoardUi snapshot (spec.md §6's command surface).
type Board struct {
	mu     sync.RWMutex
	tiles  map[TileId]*Tile
	order  []TileId
	nextID TileId

	log zerolog.Logger
}

// BoardOption configures a Board at construction time.
type BoardOption func(*Board)

// WithBoardLogger injects a logger passed through to every tile the board
// allocates; the default is zerolog.Nop().
func WithBoardLogger(l zerolog.Logger) BoardOption {
	return func(b *Board) { b.log = l }
}

// NewBoard allocates an empty board.
func NewBoard(opts ...BoardOption) *Board {
	b := &Board{
		tiles: make(map[TileId]*Tile),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddTile allocates a new tile, seeds it with a small demonstration
// dataset, and returns the resulting board snapshot (spec.md §6's
// add_tile command: "allocates a tile, returns snapshot; also seeds demo
// data"). The new tile's TileId is recoverable from the snapshot — it is
// whichever TileUi.ID is last in Tiles.
func (b *Board) AddTile() BoardUi {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	t := NewTile(WithTileLogger(b.log))
	b.tiles[id] = t
	b.order = append(b.order, id)
	seedDemo(t)
	return b.snapshotLocked()
}

// seedDemo writes a tiny dependency chain into a fresh tile: two input
// cells, a cell that sums them, and a cell that doubles the sum. Seeding
// errors are not possible here (the formulas are fixed and well-formed)
// so they are discarded.
func seedDemo(t *Tile) {
	demo := []struct {
		col, row int
		formula  string
	}{
		{0, 0, "2"},
		{1, 0, "3"},
		{0, 1, "[0,0]+[1,0]"},
		{1, 1, "[0,1]*2"},
	}
	for _, d := range demo {
		_ = UpdateCell(t, PosRef(d.col, d.row), d.formula)
	}
}

// AddColumn grows tile id's observed column extent by one and returns the
// resulting board snapshot. Board's public commands never return a Go
// error (SPEC_FULL.md §7); an id naming no allocated tile is logged and
// otherwise a no-op, leaving the returned snapshot unchanged.
func (b *Board) AddColumn(id TileId) BoardUi {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tiles[id]
	if !ok {
		b.log.Warn().Uint32("tile", uint32(id)).Msg("add_column: unknown tile")
		return b.snapshotLocked()
	}
	t.AddColumn()
	return b.snapshotLocked()
}

// AddRow grows tile id's observed row extent by one and returns the
// resulting board snapshot (spec.md §6).
func (b *Board) AddRow(id TileId) BoardUi {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tiles[id]
	if !ok {
		b.log.Warn().Uint32("tile", uint32(id)).Msg("add_row: unknown tile")
		return b.snapshotLocked()
	}
	t.AddRow()
	return b.snapshotLocked()
}

// UpdateCell parses and evaluates formula against tile id's cell ref,
// propagating recomputation to dependents, and returns the resulting
// board snapshot (spec.md §4.5, §6). A parse or eval failure is reflected
// in the offending cell's own value (spec.md §4.5 steps 2-3), not in a
// return value from UpdateCell itself.
func (b *Board) UpdateCell(id TileId, ref CellRef, formula string) BoardUi {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tiles[id]
	if !ok {
		b.log.Warn().Uint32("tile", uint32(id)).Msg("update_cell: unknown tile")
		return b.snapshotLocked()
	}
	if err := UpdateCell(t, ref, formula); err != nil {
		b.log.Debug().Err(err).Msg("update_cell")
	}
	return b.snapshotLocked()
}

// Snapshot assembles the read-only external view of the whole board
// (spec.md §6's board command).
func (b *Board) Snapshot() BoardUi {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// snapshotLocked assembles the BoardUi assuming the caller already holds
// b.mu in either read or write mode.
func (b *Board) snapshotLocked() BoardUi {
	tiles := make([]TileUi, 0, len(b.order))
	for _, id := range b.order {
		tiles = append(tiles, b.tiles[id].snapshot(id))
	}
	return BoardUi{Tiles: tiles}
}
