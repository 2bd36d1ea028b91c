package editor

import (
	"strings"

	"github.com/amirali/ette/editor/keys"
	"github.com/amirali/ette/editor/syntax"
)

const maxQueryLen = 256

// Find runs an incremental search over the rendered rows, wrapping
// around at the buffer edges. Arrows move between matches, Enter keeps
// the position, ESC restores it.
func (e *Editor) Find() error {
	query := make([]byte, 0, maxQueryLen)
	lastMatch := -1 // row of the last hit, -1 for none
	findNext := 0   // 1 forward, -1 backward

	// Highlighting of the matched row is swapped out and restored when
	// the match moves on.
	savedHlRow := -1
	var savedHl []byte
	restoreHl := func() {
		if savedHl != nil {
			copy(e.rows[savedHlRow].hl, savedHl)
			savedHl = nil
		}
	}

	savedCx, savedCy := e.cx, e.cy
	savedColoff, savedRowoff := e.coloff, e.rowoff

	for {
		e.SetStatusMessage("Search: %s (Use ESC/Arrows/Enter)", query)
		e.RefreshScreen()

		c, err := e.readKey()
		if err != nil {
			return err
		}
		switch {
		case c == keys.KeyDelete || c == keys.KeyCtrlH || c == keys.KeyBackspace:
			if len(query) > 0 {
				query = query[:len(query)-1]
			}
			lastMatch = -1
		case c == keys.KeyEsc || c == keys.KeyEnter:
			if c == keys.KeyEsc {
				e.cx, e.cy = savedCx, savedCy
				e.coloff, e.rowoff = savedColoff, savedRowoff
			}
			restoreHl()
			e.SetStatusMessage("")
			return nil
		case c == keys.KeyArrowRight || c == keys.KeyArrowDown:
			findNext = 1
		case c == keys.KeyArrowLeft || c == keys.KeyArrowUp:
			findNext = -1
		case keys.Printable(c):
			if len(query) < maxQueryLen {
				query = append(query, byte(c))
				lastMatch = -1
			}
		}

		// A fresh query always searches forward from the top.
		if lastMatch == -1 {
			findNext = 1
		}
		if findNext == 0 {
			continue
		}

		matchRow := -1
		matchOffset := 0
		current := lastMatch
		for i := 0; i < len(e.rows); i++ {
			current += findNext
			if current == -1 {
				current = len(e.rows) - 1
			} else if current == len(e.rows) {
				current = 0
			}
			if idx := strings.Index(e.rows[current].render, string(query)); idx != -1 {
				matchRow = current
				matchOffset = idx
				break
			}
		}
		findNext = 0

		restoreHl()

		if matchRow == -1 {
			continue
		}
		row := e.rows[matchRow]
		lastMatch = matchRow
		if row.hl != nil {
			savedHlRow = matchRow
			savedHl = make([]byte, len(row.hl))
			copy(savedHl, row.hl)
			for i := 0; i < len(query); i++ {
				row.hl[matchOffset+i] = syntax.HlMatch
			}
		}
		// Scroll so the match sits on the top screen row.
		e.cy = 0
		e.cx = matchOffset
		e.rowoff = matchRow
		e.coloff = 0
		if e.cx > e.screencols {
			diff := e.cx - e.screencols
			e.cx -= diff
			e.coloff += diff
		}
	}
}
