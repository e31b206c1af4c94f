package internal

// TypeUi tags a ValueUi's variant for the wire/UI boundary, encoded as a
// small unsigned integer in the fixed order spec.md §6 enumerates:
// Number, Boolean, Float, Int, String, List, Array, Record.
type TypeUi uint8

const (
	TypeUiNumber TypeUi = iota
	TypeUiBoolean
	TypeUiFloat
	TypeUiInt
	TypeUiString
	TypeUiList
	TypeUiArray
	TypeUiRecord
)

// ValueUi is the read-only projection of a Value across the snapshot
// boundary: scalars carry their printed form in Text, aggregates also
// populate Items with one ValueUi per element (Record's Items alternate
// key, value, matching Value.Record's own packing).
type ValueUi struct {
	Type  TypeUi
	Text  string
	Items []ValueUi
}

func valueToUi(v Value) ValueUi {
	switch v.Kind {
	case KindNum:
		return ValueUi{Type: TypeUiNumber, Text: v.String()}
	case KindBool:
		return ValueUi{Type: TypeUiBoolean, Text: v.String()}
	case KindFloat:
		return ValueUi{Type: TypeUiFloat, Text: v.String()}
	case KindInt:
		return ValueUi{Type: TypeUiInt, Text: v.String()}
	case KindStr:
		return ValueUi{Type: TypeUiString, Text: v.Str}
	case KindList:
		items := make([]ValueUi, len(v.List))
		for i, e := range v.List {
			items[i] = valueToUi(e)
		}
		return ValueUi{Type: TypeUiList, Text: v.String(), Items: items}
	case KindArray:
		items := make([]ValueUi, len(v.Array.Values))
		for i, e := range v.Array.Values {
			items[i] = valueToUi(e)
		}
		return ValueUi{Type: TypeUiArray, Text: v.String(), Items: items}
	case KindRecord:
		items := make([]ValueUi, len(v.Record.Values))
		for i, e := range v.Record.Values {
			items[i] = valueToUi(e)
		}
		return ValueUi{Type: TypeUiRecord, Text: v.String(), Items: items}
	default:
		return ValueUi{Type: TypeUiNumber, Text: "0"}
	}
}

// CellUi is the read-only projection of one Cell.
type CellUi struct {
	Value   ValueUi
	Formula string
	Style   string
}

// TileUi is the read-only projection of one Tile: its observed bounding
// box, resolved labels, and a row-major cell slice (spec.md §4.3
// "Rendering", §6).
type TileUi struct {
	ID        TileId
	Rows      int
	Cols      int
	ColLabels []string
	RowLabels []string
	Cells     []CellUi
}

// BoardUi is the read-only projection of an entire Board, and the only
// path by which state leaves the core (spec.md §6).
type BoardUi struct {
	Tiles []TileUi
}

func (t *Tile) snapshot(id TileId) TileUi {
	rendered := t.render()
	cells := make([]CellUi, len(rendered))
	for i, rc := range rendered {
		cells[i] = CellUi{
			Value:   valueToUi(rc.Cell.Value),
			Formula: rc.Cell.Formula,
			Style:   rc.Cell.Style,
		}
	}
	return TileUi{
		ID:        id,
		Rows:      t.rows,
		Cols:      t.cols,
		ColLabels: t.colLabels(),
		RowLabels: t.rowLabels(),
		Cells:     cells,
	}
}
