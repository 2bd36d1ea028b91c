package tools

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

func InsertToSlice[T any](s []T, value T, at int) []T {
	if at >= 0 && at <= len(s) {
		newSlice := make([]T, len(s)+1)
		copy(newSlice[:at], s[:at])
		newSlice[at] = value
		copy(newSlice[at+1:], s[at:])
		s = newSlice
	}

	return s
}

func RemoveFromSlice[T any](s []T, at int) []T {
	if at >= 0 && at < len(s) {
		newSlice := make([]T, len(s)-1)
		copy(newSlice[:at], s[:at])
		copy(newSlice[at:], s[at+1:])
		s = newSlice
	}

	return s
}

// GetCursorPosition queries the terminal for the cursor location and
// parses the ESC [ rows ; cols R response byte by byte.
func GetCursorPosition() (row, col int, err error) {
	if _, err = os.Stdout.Write([]byte("\x1b[6n")); err != nil {
		return
	}
	buf := make([]byte, 0, 32)
	b := make([]byte, 1)
	for len(buf) < 32 {
		n, rerr := os.Stdin.Read(b)
		if rerr != nil || n != 1 || b[0] == 'R' {
			break
		}
		buf = append(buf, b[0])
	}
	if len(buf) < 2 || buf[0] != '\x1b' || buf[1] != '[' {
		return 0, 0, fmt.Errorf("bad cursor position response %q", buf)
	}
	if _, err = fmt.Sscanf(string(buf[2:]), "%d;%d", &row, &col); err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

// IsSeparator reports whether c terminates a word for the highlighter.
func IsSeparator(c byte) bool {
	return unicode.IsSpace(rune(c)) || strings.IndexByte(",.()+-/*=~%[];", c) != -1
}
