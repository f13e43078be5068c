package adapter_bubbletea

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/goemacs/adapter-bubbletea/highlighter"
	"github.com/ionut-t/goemacs/core"
	"github.com/rivo/uniseg"
)

const tabWidth = 4

// visualRow is one screen row of a logical line. Lines wrap every
// AvailableWidth characters, the same unit the wrapped-line motions use.
type visualRow struct {
	row      int
	startCol int
	endCol   int
	first    bool
	last     bool
}

func wrapRows(row, lineLen, width int) []visualRow {
	if width <= 0 || lineLen <= width {
		return []visualRow{{row: row, endCol: lineLen, first: true, last: true}}
	}

	rows := make([]visualRow, 0, lineLen/width+1)
	for start := 0; start < lineLen; start += width {
		end := min(start+width, lineLen)
		rows = append(rows, visualRow{
			row:      row,
			startCol: start,
			endCol:   end,
			first:    start == 0,
			last:     end == lineLen,
		})
	}
	return rows
}

func (m *Model) lineNumberWidth() int {
	if !m.showLineNumbers {
		return 0
	}

	digits := len(strconv.Itoa(max(1, m.editor.GetBuffer().LineCount())))
	return min(max(4, digits)+1, 10)
}

// visibleRows lays out the rows shown from the editor's top line down.
func (m *Model) visibleRows() []visualRow {
	buffer := m.editor.GetBuffer()
	state := m.editor.GetState()
	height := m.viewport.Height

	rows := make([]visualRow, 0, height)
	for row := max(state.TopLine, 0); row < buffer.LineCount() && len(rows) < height; row++ {
		rows = append(rows, wrapRows(row, buffer.LineRuneCount(row), state.AvailableWidth)...)
	}

	if len(rows) > height {
		rows = rows[:height]
	}
	return rows
}

// render draws the visible slice of the buffer into the viewport.
func (m *Model) render() {
	buffer := m.editor.GetBuffer()
	cursor := buffer.GetCursor().Position
	gutter := m.lineNumberWidth()

	if m.highlighter != nil {
		m.highlighter.Refresh(buffer.GetLines())
	}

	if m.placeholder != "" && buffer.IsEmpty() {
		m.viewport.SetContent(m.renderPlaceholder(gutter))
		return
	}

	var sb strings.Builder
	rows := m.visibleRows()

	for i, vr := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}

		if gutter > 0 {
			label := ""
			style := m.theme.LineNumberStyle
			if vr.first {
				label = strconv.Itoa(vr.row + 1)
			}
			if vr.row == cursor.Row {
				style = m.theme.CurrentLineNumberStyle
			}
			sb.WriteString(style.Width(gutter-1).Render(label) + " ")
		}

		m.renderRow(&sb, vr, cursor)
	}

	// Fill the remaining height so the status line stays at the bottom
	for i := len(rows); i < m.viewport.Height; i++ {
		sb.WriteByte('\n')
	}

	m.viewport.SetContent(sb.String())
	m.viewport.SetYOffset(0)
}

func (m *Model) renderRow(sb *strings.Builder, vr visualRow, cursor core.Position) {
	line := m.editor.GetBuffer().GetLineRunes(vr.row)

	var tokens []highlighter.TokenPosition
	if m.highlighter != nil {
		tokens = m.highlighter.TokensForLine(vr.row)
	}

	for col := vr.startCol; col < vr.endCol; col++ {
		pos := core.Position{Row: vr.row, Col: col}
		style := lipgloss.NewStyle()

		if token, ok := highlighter.TokenAt(tokens, col); ok {
			style = m.highlighter.StyleFor(token.Type)
		}
		if m.editor.GetSelectionStatus(pos) == core.SelectionCharacter {
			style = style.Background(m.theme.SelectionStyle.GetBackground())
		}
		if m.isFocused && pos.Equal(cursor) {
			style = m.theme.CursorStyle
		}

		sb.WriteString(style.Render(displayRune(line[col])))
	}

	// Cursor sitting after the last character of the line
	if m.isFocused && vr.last && cursor.Row == vr.row && cursor.Col == vr.endCol {
		sb.WriteString(m.theme.CursorStyle.Render(" "))
	}
}

func (m *Model) renderPlaceholder(gutter int) string {
	var sb strings.Builder

	if gutter > 0 {
		sb.WriteString(m.theme.CurrentLineNumberStyle.Width(gutter-1).Render("1") + " ")
	}

	for i, r := range []rune(m.placeholder) {
		if i == 0 && m.isFocused {
			sb.WriteString(m.theme.CursorStyle.Render(string(r)))
			continue
		}
		sb.WriteString(m.theme.PlaceholderStyle.Render(string(r)))
	}

	return sb.String()
}

// displayRune returns what the terminal shows for r. Tabs expand to spaces
// and control characters use caret notation, as Emacs does.
func displayRune(r rune) string {
	switch {
	case r == '\t':
		return strings.Repeat(" ", tabWidth)
	case r < 0x20:
		return "^" + string(r+'@')
	case r == 0x7f:
		return "^?"
	}

	s := string(r)
	if uniseg.StringWidth(s) == 0 {
		// Lone combining marks get a base so they do not merge with neighbours
		return " " + s
	}
	return s
}

// truncate shortens s to at most width terminal cells without splitting
// grapheme clusters.
func truncate(s string, width int) string {
	if width <= 0 || uniseg.StringWidth(s) <= width {
		return s
	}

	var sb strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	return sb.String()
}
