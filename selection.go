package vtcore

import "strings"

// SelectionPoint is one endpoint of a selection rectangle, addressed by
// stable row index (spec's total_evicted + absolute_row) so a selection
// survives scrollback eviction between the drag starting and ending.
type SelectionPoint struct {
	Row int64
	Col int
}

// SelectionSnapshot extracts the text within [start,end] (inclusive,
// start must not be after end) from the active grid's scrollback and
// viewport, respecting wide-char spacers (skipped, they carry no text of
// their own) and soft-wrap (a newline is inserted between two rows only
// when the earlier row's last cell lacks Wrapline).
func (t *Terminal) SelectionSnapshot(start, end SelectionPoint) string {
	return t.active.SelectionSnapshot(start, end)
}

// SelectionSnapshot is the Grid-level implementation: it walks stable row
// indices from start.Row to end.Row, pulling each row from scrollback or
// viewport as appropriate, and joins them per the soft-wrap rule above.
func (g *Grid) SelectionSnapshot(start, end SelectionPoint) string {
	if end.Row < start.Row || (end.Row == start.Row && end.Col < start.Col) {
		start, end = end, start
	}
	var b strings.Builder
	for stable := start.Row; stable <= end.Row; stable++ {
		row := g.rowByStable(stable)
		if row == nil {
			continue
		}
		from := 0
		to := row.Len()
		if stable == start.Row {
			from = start.Col
		}
		if stable == end.Row {
			to = end.Col + 1
		}
		if to > row.Len() {
			to = row.Len()
		}
		appendRowText(&b, row, from, to)
		if stable != end.Row && !row.HasWrapline() {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// rowByStable resolves a stable row index to a *Row, looking in
// scrollback first (stable indices below totalEvicted+len(viewport)-lines
// live there) and falling back to the viewport by absolute offset.
func (g *Grid) rowByStable(stable int64) *Row {
	absolute, ok := g.FromStableIndex(stable)
	if !ok {
		return nil
	}
	if absolute < 0 {
		return g.scrollback.Line(-absolute - 1)
	}
	if absolute >= g.viewport.Len() {
		return nil
	}
	return g.viewport.Row(absolute)
}

// appendRowText writes cells [from,to) of row to b, skipping spacer cells
// (width 0) and trailing the row's own combining marks after each base
// cell.
func appendRowText(b *strings.Builder, row *Row, from, to int) {
	for i := from; i < to; i++ {
		c := row.Index(i)
		if c.Flags.HasAny(CellFlagWideCharSpacer | CellFlagLeadingWideCharSpacer) {
			continue
		}
		if c.Char != 0 {
			b.WriteRune(c.Char)
		}
		if c.Extra != nil {
			for _, zw := range c.Extra.Zerowidth {
				b.WriteRune(zw)
			}
		}
	}
}
