// Package keys defines the key codes the terminal reader produces:
// raw control bytes plus soft codes for escape sequences.
package keys

type Key int32

const KeyNull Key = 0

const (
	KeyCtrlC     Key = 3
	KeyCtrlD     Key = 4
	KeyCtrlF     Key = 6
	KeyCtrlH     Key = 8
	KeyTab       Key = 9
	KeyCtrlL     Key = 12
	KeyEnter     Key = 13
	KeyCtrlQ     Key = 17
	KeyCtrlS     Key = 19
	KeyCtrlU     Key = 21
	KeyEsc       Key = 27
	KeyBackspace Key = 127
)

// Soft codes, not reported by the terminal directly.
const (
	KeyArrowLeft Key = iota + 1000
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Ctrl returns the code produced by pressing the given ASCII character
// with the ctrl key held.
func Ctrl(char byte) Key {
	return Key(char & 0x1f)
}

func IsArrowKey(k Key) bool {
	return k == KeyArrowUp || k == KeyArrowRight ||
		k == KeyArrowDown || k == KeyArrowLeft
}

// Printable reports whether k is a plain printable ASCII byte.
func Printable(k Key) bool {
	return k >= 0x20 && k <= 0x7e
}
