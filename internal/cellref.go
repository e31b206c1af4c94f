package internal

import "fmt"

// ROW_MAX and COL_MAX bound every Tile's capacity (spec.md §3: "small, on
// the order of tens in each dimension"). COL_MAX is capped at 26 so each
// column label is a single Latin letter, matching the "A.." label scheme.
const (
	ColMax = 26
	RowMax = 50
)

// CellId is the 32-bit packed index of a cell within its tile, equal to
// row*ColMax + col (spec.md §3, §4.3).
type CellId uint32

// posToCellID and cellIDToPos are mutual inverses for col < ColMax,
// row < RowMax (spec.md invariant I4).
func posToCellID(col, row int) CellId {
	return CellId(row*ColMax + col)
}

func cellIDToPos(id CellId) (col, row int) {
	idx := int(id)
	return idx % ColMax, idx / ColMax
}

func inBounds(col, row int) bool {
	return col >= 0 && col < ColMax && row >= 0 && row < RowMax
}

// CellRef addresses a cell by coordinates, by label strings, or by an
// already-resolved CellId (spec.md §3).
type CellRef struct {
	kind cellRefKind
	col  int
	row  int
	id   CellId
}

type cellRefKind uint8

const (
	refPos cellRefKind = iota
	refLabel
	refID
)

// PosRef builds a CellRef from zero-indexed coordinates.
func PosRef(col, row int) CellRef {
	return CellRef{kind: refPos, col: col, row: row}
}

// LabelRef builds a CellRef from column and row label strings (e.g. "A",
// "2"). The labels are looked up in t's label array here, so the returned
// ref already holds coordinates; an unknown label yields ErrParseCellID.
func LabelRef(colLabel, rowLabel string, t *Tile) (CellRef, error) {
	col, err := t.resolveColLabel(colLabel)
	if err != nil {
		return CellRef{}, err
	}
	row, err := t.resolveRowLabel(rowLabel)
	if err != nil {
		return CellRef{}, err
	}
	return CellRef{kind: refLabel, col: col, row: row}, nil
}

// IDRef builds a CellRef that is already a resolved identifier.
func IDRef(id CellId) CellRef {
	return CellRef{kind: refID, id: id}
}

// Resolve maps any CellRef form to its canonical CellId (spec.md §3).
func (r CellRef) Resolve() (CellId, error) {
	switch r.kind {
	case refID:
		return r.id, nil
	case refPos, refLabel:
		if !inBounds(r.col, r.row) {
			return 0, fmt.Errorf("%w: col=%d row=%d", ErrOutOfBounds, r.col, r.row)
		}
		return posToCellID(r.col, r.row), nil
	default:
		return 0, ErrParseCellID
	}
}

// columnLabel renders the single-letter label for a zero-indexed column.
func columnLabel(col int) string {
	return string(rune('A' + col))
}

// rowLabel renders the 1-indexed label for a zero-indexed row.
func rowLabel(row int) string {
	return fmt.Sprintf("%d", row+1)
}
