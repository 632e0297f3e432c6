package csvcodec

import "strings"

// tokenizer state: outside or inside a quoted region.
type state int

const (
	stateUnquoted state = iota
	stateQuoted
)

// tokenizer is a character-level finite-state machine that splits CSV text
// into cells and row boundaries. It emits into a rowBuilder so the scanning
// rules stay independent of row assembly.
type tokenizer struct {
	state state
	cell  strings.Builder
	out   *rowBuilder
}

// rowBuilder accumulates emitted cells into rows, dropping row breaks that
// carry no content (blank trailing lines).
type rowBuilder struct {
	current []string
	rows    [][]string
}

func (b *rowBuilder) cell(value string) {
	b.current = append(b.current, strings.TrimSpace(value))
}

func (b *rowBuilder) endRow() {
	if len(b.current) == 0 {
		return
	}
	b.rows = append(b.rows, b.current)
	b.current = nil
}

// Tokenize splits raw CSV text into rows of trimmed cells.
//
// Quote characters toggle quoted mode and are not retained; content inside
// quotes is taken verbatim, including commas and line breaks. A line break
// outside quotes ends the row unless nothing has accumulated, so files with
// trailing newlines do not produce phantom empty rows.
func Tokenize(text string) [][]string {
	t := &tokenizer{out: &rowBuilder{}}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			if t.state == stateQuoted {
				t.state = stateUnquoted
			} else {
				t.state = stateQuoted
			}
		case ch == ',' && t.state == stateUnquoted:
			t.endCell()
		case (ch == '\n' || ch == '\r') && t.state == stateUnquoted:
			t.endLine()
			// CRLF counts as a single break.
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			t.cell.WriteByte(ch)
		}
	}
	t.endLine()

	return t.out.rows
}

func (t *tokenizer) endCell() {
	t.out.cell(t.cell.String())
	t.cell.Reset()
}

// endLine flushes the pending cell and closes the row, but only when the row
// actually holds something.
func (t *tokenizer) endLine() {
	if t.cell.Len() == 0 && len(t.out.current) == 0 {
		return
	}
	t.endCell()
	t.out.endRow()
}
