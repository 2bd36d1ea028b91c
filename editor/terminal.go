package editor

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/amirali/ette/editor/keys"
	"github.com/amirali/ette/logger"
	"github.com/amirali/ette/tools"
)

// EnableRawMode switches the terminal to raw mode and saves the
// previous settings for Close. Reads time out after 100ms so the key
// loop can service window resizes while idle.
func (e *Editor) EnableRawMode() error {
	if e.origTermios != nil {
		return nil
	}
	if !term.IsTerminal(stdinfd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	t, err := unix.IoctlGetTermios(stdinfd, ioctlReadTermios)
	if err != nil {
		return err
	}
	raw := *t
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(stdinfd, ioctlWriteTermios, &raw); err != nil {
		return err
	}
	e.origTermios = t
	return nil
}

// Close restores the terminal and stops the resize watcher. It is safe
// to call when raw mode was never enabled.
func (e *Editor) Close() error {
	if e.winch != nil {
		signal.Stop(e.winch)
		close(e.winch)
		e.winch = nil
	}
	if e.origTermios == nil {
		return nil
	}
	err := unix.IoctlSetTermios(stdinfd, ioctlWriteTermios, e.origTermios)
	e.origTermios = nil
	return err
}

// readByte reads a single byte, reporting false on the raw mode read
// timeout.
func (e *Editor) readByte(p *byte) bool {
	buf := make([]byte, 1)
	n, err := os.Stdin.Read(buf)
	if err != nil || n == 0 {
		return false
	}
	*p = buf[0]
	return true
}

// readKey decodes one key press, mapping escape sequences to soft key
// codes. It blocks until a key arrives; idle timeouts service any
// pending window resize.
func (e *Editor) readKey() (keys.Key, error) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil && err != io.EOF {
			return 0, err
		}
		if n == 0 {
			e.handlePendingResize()
			continue
		}
		c := keys.Key(buf[0])
		if c != keys.KeyEsc {
			return c, nil
		}

		// Escape sequence, or a lone ESC when nothing follows in time.
		var seq [3]byte
		if !e.readByte(&seq[0]) {
			return keys.KeyEsc, nil
		}
		if !e.readByte(&seq[1]) {
			return keys.KeyEsc, nil
		}
		if seq[0] == '[' {
			if seq[1] >= '0' && seq[1] <= '9' {
				if !e.readByte(&seq[2]) {
					return keys.KeyEsc, nil
				}
				if seq[2] == '~' {
					switch seq[1] {
					case '3':
						return keys.KeyDelete, nil
					case '5':
						return keys.KeyPageUp, nil
					case '6':
						return keys.KeyPageDown, nil
					}
				}
			} else {
				switch seq[1] {
				case 'A':
					return keys.KeyArrowUp, nil
				case 'B':
					return keys.KeyArrowDown, nil
				case 'C':
					return keys.KeyArrowRight, nil
				case 'D':
					return keys.KeyArrowLeft, nil
				case 'H':
					return keys.KeyHome, nil
				case 'F':
					return keys.KeyEnd, nil
				}
			}
		} else if seq[0] == 'O' {
			switch seq[1] {
			case 'H':
				return keys.KeyHome, nil
			case 'F':
				return keys.KeyEnd, nil
			}
		}
	}
}

// windowSize returns the terminal dimensions, falling back to cursor
// position queries when the ioctl reports nothing useful.
func windowSize() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(stdoutfd, unix.TIOCGWINSZ)
	if err == nil && ws.Col != 0 {
		return int(ws.Row), int(ws.Col), nil
	}

	// Move to the bottom right corner and ask where the cursor ended
	// up, then restore it.
	origRow, origCol, err := tools.GetCursorPosition()
	if err != nil {
		return 0, 0, err
	}
	if _, err := os.Stdout.WriteString("\x1b[999C\x1b[999B"); err != nil {
		return 0, 0, err
	}
	rows, cols, err = tools.GetCursorPosition()
	if err != nil {
		return 0, 0, err
	}
	fmt.Fprintf(os.Stdout, "\x1b[%d;%dH", origRow, origCol)
	return rows, cols, nil
}

func (e *Editor) updateWindowSize() error {
	rows, cols, err := windowSize()
	if err != nil {
		return err
	}
	// Two rows are reserved for the status and message bars.
	e.screenrows = rows - 2
	e.screencols = cols
	return nil
}

// handlePendingResize applies a window size change recorded by the
// signal watcher, clamping the cursor back onto the screen.
func (e *Editor) handlePendingResize() {
	if !e.resizePending.CompareAndSwap(true, false) {
		return
	}
	if err := e.updateWindowSize(); err != nil {
		logger.Warnw("window size query failed", "err", err)
		return
	}
	if e.cy > e.screenrows {
		e.cy = e.screenrows - 1
	}
	if e.cx > e.screencols {
		e.cx = e.screencols - 1
	}
	logger.Debugw("window resized", "rows", e.screenrows, "cols", e.screencols)
	e.RefreshScreen()
}
