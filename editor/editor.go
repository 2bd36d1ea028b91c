// Package editor implements a raw mode VT100 text editor over a
// row-based buffer, with incremental syntax highlighting and
// transparent at-rest encryption of password-protected files.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/amirali/ette/config"
	"github.com/amirali/ette/crypt"
	"github.com/amirali/ette/editor/keys"
	"github.com/amirali/ette/editor/syntax"
	"github.com/amirali/ette/logger"
)

const Version = "0.0.1"

const tabstop = 8

var ErrQuitEditor = errors.New("quit editor")

var (
	stdinfd  = int(os.Stdin.Fd())
	stdoutfd = int(os.Stdout.Fd())
)

type Editor struct {
	// Cursor position on the screen, not in the file.
	cx int
	cy int

	// Offset of the visible window into the buffer.
	rowoff int
	coloff int

	screenrows int
	screencols int

	rows []*Row

	// Unsaved change counter, zero means clean.
	dirty int

	// Remaining Ctrl-Q presses before quitting with unsaved changes.
	quitTimes int

	filename string

	statusmsg     string
	statusmsgTime time.Time

	syntax *syntax.Syntax

	// Committed password of the open file, empty for plain files.
	password string
	// Bytes typed so far at a password prompt.
	entryPassword []byte
	// Prompt text that backspace may not eat into.
	indelibleMsg string
	algorithm    crypt.Algorithm

	newFileState      NewFilePasswordState
	existingFileState ExistingFilePasswordState

	origTermios *unix.Termios

	winch         chan os.Signal
	resizePending atomic.Bool
}

// New returns an editor configured with the given options.
func New(cfg config.Config) *Editor {
	return &Editor{quitTimes: cfg.Editor.QuitTimes}
}

// Init measures the window and installs the resize watcher. The signal
// handler only records that a resize happened; the key loop applies it
// between reads.
func (e *Editor) Init() error {
	if err := e.updateWindowSize(); err != nil {
		return err
	}
	e.winch = make(chan os.Signal, 1)
	signal.Notify(e.winch, unix.SIGWINCH)
	go func() {
		for range e.winch {
			e.resizePending.Store(true)
		}
	}()
	return nil
}

// SetStatusMessage sets the transient message shown under the status
// bar for five seconds.
func (e *Editor) SetStatusMessage(format string, a ...interface{}) {
	e.statusmsg = fmt.Sprintf(format, a...)
	e.statusmsgTime = time.Now()
}

// MoveCursor handles an arrow key, scrolling the window when the cursor
// runs off an edge.
func (e *Editor) MoveCursor(k keys.Key) {
	filerow := e.rowoff + e.cy
	filecol := e.coloff + e.cx
	var row *Row
	if filerow < len(e.rows) {
		row = e.rows[filerow]
	}

	switch k {
	case keys.KeyArrowLeft:
		if e.cx == 0 {
			if e.coloff != 0 {
				e.coloff--
			} else if filerow > 0 {
				e.cy--
				e.cx = len(e.rows[filerow-1].chars)
				if e.cx > e.screencols-1 {
					e.coloff = e.cx - e.screencols + 1
					e.cx = e.screencols - 1
				}
			}
		} else {
			e.cx--
		}
	case keys.KeyArrowRight:
		if row != nil && filecol < len(row.chars) {
			if e.cx == e.screencols-1 {
				e.coloff++
			} else {
				e.cx++
			}
		} else if row != nil && filecol == len(row.chars) {
			e.cx = 0
			e.coloff = 0
			if e.cy == e.screenrows-1 {
				e.rowoff++
			} else {
				e.cy++
			}
		}
	case keys.KeyArrowUp:
		if e.cy == 0 {
			if e.rowoff != 0 {
				e.rowoff--
			}
		} else {
			e.cy--
		}
	case keys.KeyArrowDown:
		if filerow < len(e.rows) {
			if e.cy == e.screenrows-1 {
				e.rowoff++
			} else {
				e.cy++
			}
		}
	}

	// Snap the cursor back when the new line is shorter than the old
	// column.
	filerow = e.rowoff + e.cy
	filecol = e.coloff + e.cx
	rowlen := 0
	if filerow < len(e.rows) {
		rowlen = len(e.rows[filerow].chars)
	}
	if filecol > rowlen {
		e.cx -= filecol - rowlen
		if e.cx < 0 {
			e.coloff += e.cx
			e.cx = 0
		}
	}
}

// ProcessKeyPress handles one key press. A zero providedKey reads from
// the terminal; tests pass the key directly.
func (e *Editor) ProcessKeyPress(providedKey keys.Key) error {
	c := providedKey
	if c == keys.KeyNull {
		var err error
		c, err = e.readKey()
		if err != nil {
			return err
		}
	}

	switch c {
	case keys.KeyEnter:
		e.InsertNewline()
	case keys.KeyCtrlC:
		// Ignored, losing the buffer should not be that easy.
	case keys.KeyCtrlQ:
		if e.dirty > 0 && e.quitTimes > 0 {
			e.SetStatusMessage("WARNING!!! File has unsaved changes. "+
				"Press Ctrl-Q %d more times to quit.", e.quitTimes)
			e.quitTimes--
			logger.Debugw("quit blocked by unsaved changes", "remaining", e.quitTimes)
			return nil
		}
		os.Stdout.WriteString("\033c")
		return ErrQuitEditor
	case keys.KeyCtrlS:
		e.Save()
	case keys.KeyCtrlF:
		if err := e.Find(); err != nil {
			return err
		}
	case keys.KeyBackspace, keys.KeyCtrlH, keys.KeyDelete:
		e.DeleteChar()
	case keys.KeyPageUp, keys.KeyPageDown:
		if c == keys.KeyPageUp && e.cy != 0 {
			e.cy = 0
		} else if c == keys.KeyPageDown && e.cy != e.screenrows-1 {
			e.cy = e.screenrows - 1
		}
		dir := keys.KeyArrowDown
		if c == keys.KeyPageUp {
			dir = keys.KeyArrowUp
		}
		for times := e.screenrows; times > 0; times-- {
			e.MoveCursor(dir)
		}
	case keys.KeyArrowUp, keys.KeyArrowDown, keys.KeyArrowLeft, keys.KeyArrowRight:
		e.MoveCursor(c)
	case keys.KeyCtrlL:
		// The screen is refreshed on every loop turn anyway.
	case keys.KeyEsc:
	case keys.KeyHome, keys.KeyEnd:
		// No binding.
	default:
		e.InsertChar(byte(c))
	}
	return nil
}

// Die clears the screen and exits with an error.
func Die(err error) {
	os.Stdout.WriteString("\x1b[2J")
	os.Stdout.WriteString("\x1b[H")
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
