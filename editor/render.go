package editor

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/amirali/ette/editor/syntax"
)

func (e *Editor) drawRows(b *strings.Builder) {
	for y := 0; y < e.screenrows; y++ {
		filerow := e.rowoff + y

		if filerow >= len(e.rows) {
			if len(e.rows) == 0 && y == e.screenrows/3 {
				welcome := fmt.Sprintf(
					"ette (Encrypted Terminal Text Editor) -- version %s\x1b[0K\r\n",
					Version)
				padding := (e.screencols - len(welcome)) / 2
				if padding > 0 {
					b.WriteString("~")
					padding--
				}
				for ; padding > 0; padding-- {
					b.WriteString(" ")
				}
				b.WriteString(welcome)
			} else {
				b.WriteString("~\x1b[0K\r\n")
			}
			continue
		}

		row := e.rows[filerow]
		length := len(row.render) - e.coloff
		currentColor := -1
		if length > 0 {
			if length > e.screencols {
				length = e.screencols
			}
			for j := 0; j < length; j++ {
				c := row.render[e.coloff+j]
				hl := row.hl[e.coloff+j]
				switch {
				case hl == syntax.HlNonprint:
					// Control characters show as reverse video @-letters.
					sym := byte('?')
					if c <= 26 {
						sym = '@' + c
					}
					b.WriteString("\x1b[7m")
					b.WriteByte(sym)
					b.WriteString("\x1b[0m")
				case hl == syntax.HlNormal:
					if currentColor != -1 {
						b.WriteString("\x1b[39m")
						currentColor = -1
					}
					b.WriteByte(c)
				default:
					color := syntax.SyntaxToColor(hl)
					if color != currentColor {
						fmt.Fprintf(b, "\x1b[%dm", color)
						currentColor = color
					}
					b.WriteByte(c)
				}
			}
		}
		b.WriteString("\x1b[39m")
		b.WriteString("\x1b[0K")
		b.WriteString("\r\n")
	}
}

func (e *Editor) drawStatusBar(b *strings.Builder) {
	b.WriteString("\x1b[0K")
	b.WriteString("\x1b[7m")

	modified := ""
	if e.dirty > 0 {
		modified = "(modified)"
	}
	status := fmt.Sprintf("%.20s - %d lines %s", e.filename, len(e.rows), modified)
	rstatus := fmt.Sprintf("%d/%d", e.rowoff+e.cy+1, len(e.rows))

	if runewidth.StringWidth(status) > e.screencols {
		status = runewidth.Truncate(status, e.screencols, "")
	}
	b.WriteString(status)
	l := runewidth.StringWidth(status)
	for l < e.screencols {
		if e.screencols-l == runewidth.StringWidth(rstatus) {
			b.WriteString(rstatus)
			break
		}
		b.WriteString(" ")
		l++
	}
	b.WriteString("\x1b[0m\r\n")
}

func (e *Editor) drawMessageBar(b *strings.Builder) {
	b.WriteString("\x1b[0K")
	if e.statusmsg == "" || time.Since(e.statusmsgTime) >= 5*time.Second {
		return
	}
	msg := e.statusmsg
	if runewidth.StringWidth(msg) > e.screencols {
		msg = runewidth.Truncate(msg, e.screencols, "")
	}
	b.WriteString(msg)
}

// RefreshScreen writes the whole frame in a single stdout write.
func (e *Editor) RefreshScreen() {
	var b strings.Builder

	b.WriteString("\x1b[?25l") // hide the cursor
	b.WriteString("\x1b[H")    // go home

	e.drawRows(&b)
	e.drawStatusBar(&b)
	e.drawMessageBar(&b)

	// The terminal column differs from cx when the line has tabs before
	// the cursor.
	cx := 1
	filerow := e.rowoff + e.cy
	if filerow < len(e.rows) {
		row := e.rows[filerow]
		for j := e.coloff; j < e.cx+e.coloff; j++ {
			if j < len(row.chars) && row.chars[j] == '\t' {
				cx += 7 - (cx % tabstop)
			}
			cx++
		}
	}
	fmt.Fprintf(&b, "\x1b[%d;%dH", e.cy+1, cx)
	b.WriteString("\x1b[?25h") // show the cursor

	os.Stdout.WriteString(b.String())
}
