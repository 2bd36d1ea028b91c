package editor

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/amirali/ette/tools"
)

type Row struct {
	// Index within the file.
	idx int
	// Raw byte content of the row.
	chars []byte
	// Row content rendered for the screen, with tabs expanded.
	render string
	// Highlight class for each byte of the render string.
	hl []byte
	// Row ended inside an unclosed multiline comment at the last
	// highlight pass.
	hlOpenComment bool
}

// updateRow rebuilds the rendered version and the highlighting of a row.
func (e *Editor) updateRow(row *Row) {
	tabs := 0
	for _, c := range row.chars {
		if c == '\t' {
			tabs++
		}
	}
	if uint64(len(row.chars))+uint64(tabs)*tabstop+1 > math.MaxUint32 {
		e.Close()
		fmt.Println("Some line of the edited file is too long for ette")
		os.Exit(1)
	}

	b := make([]byte, 0, len(row.chars)+tabs*tabstop)
	for _, c := range row.chars {
		if c == '\t' {
			// Each tab advances at least one column, then fills up
			// to the next tab stop.
			b = append(b, ' ')
			for (len(b)+1)%tabstop != 0 {
				b = append(b, ' ')
			}
		} else {
			b = append(b, c)
		}
	}
	row.render = string(b)
	e.updateHighlight(row)
}

// InsertRow inserts a row at the given position, shifting the rows
// below it.
func (e *Editor) InsertRow(at int, chars string) {
	if at < 0 || at > len(e.rows) {
		return
	}
	row := &Row{idx: at, chars: []byte(chars)}
	e.rows = tools.InsertToSlice(e.rows, row, at)
	for i := at + 1; i < len(e.rows); i++ {
		e.rows[i].idx++
	}
	e.updateRow(row)
	e.dirty++
}

// DeleteRow removes the row at the given position, shifting the rows
// below it up.
func (e *Editor) DeleteRow(at int) {
	if at < 0 || at >= len(e.rows) {
		return
	}
	e.rows = tools.RemoveFromSlice(e.rows, at)
	for i := at; i < len(e.rows); i++ {
		e.rows[i].idx--
	}
	e.dirty++
}

// rowInsertChar inserts a byte at the given offset, padding with spaces
// when the offset is past the end of the row.
func (e *Editor) rowInsertChar(row *Row, at int, c byte) {
	if at > len(row.chars) {
		padlen := at - len(row.chars)
		for i := 0; i < padlen; i++ {
			row.chars = append(row.chars, ' ')
		}
		row.chars = append(row.chars, c)
	} else {
		row.chars = append(row.chars, 0)
		copy(row.chars[at+1:], row.chars[at:])
		row.chars[at] = c
	}
	e.updateRow(row)
	e.dirty++
}

func (e *Editor) rowAppendString(row *Row, s []byte) {
	row.chars = append(row.chars, s...)
	e.updateRow(row)
	e.dirty++
}

func (e *Editor) rowDeleteChar(row *Row, at int) {
	if at < 0 || at >= len(row.chars) {
		return
	}
	row.chars = append(row.chars[:at], row.chars[at+1:]...)
	e.updateRow(row)
	e.dirty++
}

// InsertChar inserts a byte at the cursor, growing the buffer with
// empty rows when the cursor sits below the last row. While a password
// is being typed the real byte goes to the password entry and a '*' is
// shown instead.
func (e *Editor) InsertChar(c byte) {
	filerow := e.rowoff + e.cy
	filecol := e.coloff + e.cx

	for len(e.rows) <= filerow {
		e.InsertRow(len(e.rows), "")
	}
	row := e.rows[filerow]

	if e.typingPassword() {
		e.entryPassword = append(e.entryPassword, c)
		e.rowInsertChar(row, filecol, '*')
	} else {
		e.rowInsertChar(row, filecol, c)
	}

	if e.cx == e.screencols-1 {
		e.coloff++
	} else {
		e.cx++
	}
	e.dirty++
}

// InsertString types s into the buffer one byte at a time.
func (e *Editor) InsertString(s string) {
	for i := 0; i < len(s); i++ {
		e.InsertChar(s[i])
	}
}

// InsertNewline splits the current row at the cursor.
func (e *Editor) InsertNewline() {
	filerow := e.rowoff + e.cy
	filecol := e.coloff + e.cx

	if filerow >= len(e.rows) {
		if filerow == len(e.rows) {
			e.InsertRow(filerow, "")
			e.fixCursorForNewline()
		}
		return
	}
	row := e.rows[filerow]
	// Past the end of the line the split happens at the last character.
	if filecol >= len(row.chars) {
		filecol = len(row.chars)
	}
	if filecol == 0 {
		e.InsertRow(filerow, "")
	} else {
		e.InsertRow(filerow+1, string(row.chars[filecol:]))
		row.chars = row.chars[:filecol]
		e.updateRow(row)
	}
	e.fixCursorForNewline()
}

func (e *Editor) fixCursorForNewline() {
	if e.cy == e.screenrows-1 {
		e.rowoff++
	} else {
		e.cy++
	}
	e.cx = 0
	e.coloff = 0
}

// DeleteChar deletes the byte left of the cursor. At column zero the
// current row is joined onto the previous one.
func (e *Editor) DeleteChar() {
	filerow := e.rowoff + e.cy
	filecol := e.coloff + e.cx

	if filerow >= len(e.rows) || (filecol == 0 && filerow == 0) {
		return
	}
	row := e.rows[filerow]
	if filecol == 0 {
		prev := e.rows[filerow-1]
		filecol = len(prev.chars)
		e.rowAppendString(prev, row.chars)
		e.DeleteRow(filerow)
		if e.cy == 0 {
			e.rowoff--
		} else {
			e.cy--
		}
		e.cx = filecol
		if e.cx >= e.screencols {
			shift := (e.screencols - e.cx) + 1
			e.cx -= shift
			e.coloff += shift
		}
	} else {
		if e.typingPassword() {
			e.entryPassword = e.entryPassword[:len(e.entryPassword)-1]
		}
		e.rowDeleteChar(row, filecol-1)
		if e.cx == 0 && e.coloff != 0 {
			e.coloff--
		} else {
			e.cx--
		}
	}
	e.dirty++
}

// rowsToString serializes the buffer with a newline after every row.
func (e *Editor) rowsToString() string {
	var b strings.Builder
	for _, row := range e.rows {
		b.Write(row.chars)
		b.WriteByte('\n')
	}
	return b.String()
}
