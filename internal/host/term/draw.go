package term

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// State carries the per-window values substituted into markup items during
// expansion.
type State struct {
	Modified bool
	Percent  int
	Line     int
	Col      int
}

// Span is one run of expanded statusline text under a single highlight
// group. Align and Trunc spans carry no text; they mark the alignment
// breakpoints and the preferred truncation point.
type Span struct {
	Text  string
	Group string
	Align bool
	Trunc bool
}

// Cell is one screen cell of a laid-out statusline.
type Cell struct {
	R     rune
	Group string
}

// Parse expands a statusline markup string into spans, substituting the
// window state into the %m, %p, %l, and %c items. Unknown items are kept
// literally.
func Parse(line string, st State) []Span {
	var spans []Span
	var text strings.Builder
	group := ""

	flush := func() {
		if text.Len() > 0 {
			spans = append(spans, Span{Text: text.String(), Group: group})
			text.Reset()
		}
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '%' || i+1 >= len(runes) {
			text.WriteRune(r)
			continue
		}

		i++
		switch runes[i] {
		case '#':
			end := indexRune(runes, i+1, '#')
			if end < 0 {
				text.WriteRune('%')
				text.WriteRune('#')
				continue
			}
			flush()
			group = string(runes[i+1 : end])
			i = end
		case '*':
			flush()
			group = ""
		case '=':
			flush()
			spans = append(spans, Span{Align: true})
		case '<':
			flush()
			spans = append(spans, Span{Trunc: true})
		case 'm':
			if st.Modified {
				text.WriteString("[+]")
			}
		case 'p':
			text.WriteString(strconv.Itoa(st.Percent))
		case 'l':
			text.WriteString(strconv.Itoa(st.Line))
		case 'c':
			text.WriteString(strconv.Itoa(st.Col))
		case '%':
			text.WriteRune('%')
		default:
			text.WriteRune('%')
			text.WriteRune(runes[i])
		}
	}
	flush()
	return spans
}

// Layout fits spans into width cells. Slack is split evenly across the
// alignment breakpoints; overflow is cut at the truncation point (marked
// with '<', the way vim does) or at the right edge when no point was set.
func Layout(spans []Span, width int) []Cell {
	var cells []Cell
	var breaks []int
	trunc := -1

	for _, sp := range spans {
		switch {
		case sp.Align:
			breaks = append(breaks, len(cells))
		case sp.Trunc:
			trunc = len(cells)
		default:
			for _, r := range sp.Text {
				cells = append(cells, Cell{R: r, Group: sp.Group})
			}
		}
	}

	used := cellsWidth(cells)
	if used > width {
		return truncate(cells, width, trunc)
	}

	if len(breaks) == 0 {
		return pad(cells, width-used)
	}

	slack := width - used
	share := slack / len(breaks)
	extra := slack % len(breaks)

	out := make([]Cell, 0, width)
	prev := 0
	for i, at := range breaks {
		out = append(out, cells[prev:at]...)
		n := share
		if i == 0 {
			n += extra
		}
		for j := 0; j < n; j++ {
			out = append(out, Cell{R: ' '})
		}
		prev = at
	}
	return append(out, cells[prev:]...)
}

// String renders cells as plain text, dropping group information. Exists
// for tests and non-color hosts.
func String(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.R)
	}
	return b.String()
}

func truncate(cells []Cell, width, trunc int) []Cell {
	over := cellsWidth(cells) - width + 1 // one cell for the marker
	if trunc < 0 {
		trunc = 0
	}

	out := make([]Cell, 0, width)
	out = append(out, cells[:trunc]...)
	out = append(out, Cell{R: '<'})

	cut := trunc
	for cut < len(cells) && over > 0 {
		over -= runeWidth(cells[cut].R)
		cut++
	}
	out = append(out, cells[cut:]...)

	// Wide-rune boundaries can leave the line one short.
	return pad(out, width-cellsWidth(out))
}

func pad(cells []Cell, n int) []Cell {
	for i := 0; i < n; i++ {
		cells = append(cells, Cell{R: ' '})
	}
	return cells
}

func cellsWidth(cells []Cell) int {
	w := 0
	for _, c := range cells {
		w += runeWidth(c.R)
	}
	return w
}

func runeWidth(r rune) int {
	return uniseg.StringWidth(string(r))
}

func indexRune(runes []rune, from int, want rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == want {
			return i
		}
	}
	return -1
}
