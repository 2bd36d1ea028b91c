package editor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amirali/ette/config"
	"github.com/amirali/ette/editor/keys"
)

const fixtureContent = "first row\nsecond row\nthird row\n"

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	e := New(config.Default())
	e.screenrows = 24
	e.screencols = 80
	return e
}

func openFixture(t *testing.T) *Editor {
	t.Helper()
	e := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "fixture.txt")
	if err := os.WriteFile(path, []byte(fixtureContent), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := e.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return e
}

func press(t *testing.T, e *Editor, ks ...keys.Key) {
	t.Helper()
	for _, k := range ks {
		if err := e.ProcessKeyPress(k); err != nil {
			t.Fatalf("ProcessKeyPress(%d): %v", k, err)
		}
	}
}

func repeatKey(k keys.Key, n int) []keys.Key {
	ks := make([]keys.Key, n)
	for i := range ks {
		ks[i] = k
	}
	return ks
}

func wantRows(t *testing.T, e *Editor, want ...string) {
	t.Helper()
	if len(e.rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(e.rows), len(want))
	}
	for i, w := range want {
		if got := string(e.rows[i].chars); got != w {
			t.Fatalf("row %d = %q, want %q", i, got, w)
		}
	}
}

// muteStdout redirects the escape sequences some key handlers write so
// they cannot reset the terminal running the tests.
func muteStdout(t *testing.T) {
	t.Helper()
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	orig := os.Stdout
	os.Stdout = devnull
	t.Cleanup(func() {
		os.Stdout = orig
		devnull.Close()
	})
}

func TestOpenSetsRowState(t *testing.T) {
	e := openFixture(t)

	wantRows(t, e, "first row", "second row", "third row")
	if e.dirty != 0 {
		t.Fatalf("dirty = %d after open, want 0", e.dirty)
	}
}

func TestOpenSetsRowRender(t *testing.T) {
	e := openFixture(t)

	want := []string{"first row", "second row", "third row"}
	for i, w := range want {
		if e.rows[i].render != w {
			t.Fatalf("render %d = %q, want %q", i, e.rows[i].render, w)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	e := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "missing.txt")

	err := e.Open(path)
	if !os.IsNotExist(err) {
		t.Fatalf("Open = %v, want not-exist error", err)
	}
	if len(e.rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(e.rows))
	}
	if e.filename != path {
		t.Fatalf("filename = %q, want %q", e.filename, path)
	}
}

func TestInsertCharFirstRow(t *testing.T) {
	e := openFixture(t)

	e.InsertChar('a')

	wantRows(t, e, "afirst row", "second row", "third row")
	if e.dirty == 0 {
		t.Fatalf("dirty = 0 after insert")
	}
}

func TestArrowRightInsertChar(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowRight)
	e.InsertChar('a')

	wantRows(t, e, "fairst row", "second row", "third row")
}

func TestArrowDownInsertChar(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowDown)
	e.InsertChar('a')

	wantRows(t, e, "first row", "asecond row", "third row")
}

func TestArrowDownArrowRightInsertChar(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowDown, keys.KeyArrowRight)
	e.InsertChar('a')

	wantRows(t, e, "first row", "saecond row", "third row")
}

func TestArrowDownArrowRightArrowDownInsertChar(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowDown, keys.KeyArrowRight, keys.KeyArrowDown)
	e.InsertChar('a')

	wantRows(t, e, "first row", "second row", "tahird row")
}

func TestEnterNewline(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyEnter)

	wantRows(t, e, "", "first row", "second row", "third row")
}

func TestEnterArrowDownNewline(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowDown, keys.KeyEnter)

	wantRows(t, e, "first row", "", "second row", "third row")
}

func TestEnterEndOfRowsNewline(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowDown, keys.KeyArrowDown, keys.KeyArrowDown, keys.KeyEnter)

	wantRows(t, e, "first row", "second row", "third row", "")
}

func TestEnterSplitsRow(t *testing.T) {
	e := openFixture(t)

	press(t, e, repeatKey(keys.KeyArrowRight, 3)...)
	press(t, e, keys.KeyEnter)

	wantRows(t, e, "fir", "st row", "second row", "third row")
	if e.cx != 0 || e.cy != 1 {
		t.Fatalf("cursor = (%d,%d), want (0,1)", e.cx, e.cy)
	}
}

func TestBackspace(t *testing.T) {
	e := openFixture(t)

	press(t, e, repeatKey(keys.KeyArrowRight, 9)...)
	press(t, e, keys.KeyBackspace)

	wantRows(t, e, "first ro", "second row", "third row")
}

func TestBackspaceArrowDown(t *testing.T) {
	e := openFixture(t)

	press(t, e, repeatKey(keys.KeyArrowRight, 9)...)
	press(t, e, keys.KeyArrowDown, keys.KeyBackspace)

	wantRows(t, e, "first row", "second rw", "third row")
}

func TestBackspaceRemoveRow(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowDown)
	press(t, e, repeatKey(keys.KeyArrowRight, 10)...)
	press(t, e, repeatKey(keys.KeyBackspace, 11)...)

	wantRows(t, e, "first row", "third row")
}

func TestDeleteKeyDeletesLeftOfCursor(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowRight, keys.KeyDelete)

	wantRows(t, e, "irst row", "second row", "third row")
}

func TestMoveCursorSnapsToShorterRow(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowDown)
	press(t, e, repeatKey(keys.KeyArrowRight, 10)...)
	press(t, e, keys.KeyArrowUp)

	if e.cx != 9 {
		t.Fatalf("cx = %d, want 9", e.cx)
	}
}

func TestPageUpGoesToTop(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyArrowDown, keys.KeyArrowDown, keys.KeyPageUp)

	if e.cy != 0 || e.rowoff != 0 {
		t.Fatalf("cy = %d rowoff = %d, want 0 0", e.cy, e.rowoff)
	}
}

func TestInsertCharIntoEmptyBuffer(t *testing.T) {
	e := newTestEditor(t)

	e.InsertChar('a')

	wantRows(t, e, "a")
}

func TestTabRender(t *testing.T) {
	e := openFixture(t)

	press(t, e, keys.KeyTab)

	if got, want := e.rows[0].render, "       first row"; got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestRowsToString(t *testing.T) {
	e := openFixture(t)

	if got := e.rowsToString(); got != fixtureContent {
		t.Fatalf("rowsToString = %q, want %q", got, fixtureContent)
	}
}

func TestQuitWarnsAboutUnsavedChanges(t *testing.T) {
	muteStdout(t)
	e := openFixture(t)
	e.InsertChar('a')

	for i := 3; i > 0; i-- {
		if err := e.ProcessKeyPress(keys.KeyCtrlQ); err != nil {
			t.Fatalf("ProcessKeyPress(CtrlQ) = %v, want nil", err)
		}
		want := fmt.Sprintf("Press Ctrl-Q %d more times to quit.", i)
		if !strings.Contains(e.statusmsg, want) {
			t.Fatalf("statusmsg = %q, want it to contain %q", e.statusmsg, want)
		}
	}
	if err := e.ProcessKeyPress(keys.KeyCtrlQ); err != ErrQuitEditor {
		t.Fatalf("ProcessKeyPress(CtrlQ) = %v, want ErrQuitEditor", err)
	}
}

func TestQuitCleanBuffer(t *testing.T) {
	muteStdout(t)
	e := openFixture(t)

	if err := e.ProcessKeyPress(keys.KeyCtrlQ); err != ErrQuitEditor {
		t.Fatalf("ProcessKeyPress(CtrlQ) = %v, want ErrQuitEditor", err)
	}
}

func TestSaveNoEncryption(t *testing.T) {
	e := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "save.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := e.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}

	e.InsertChar('a')
	e.Save()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "a\n" {
		t.Fatalf("saved content = %q, want %q", data, "a\n")
	}
	if e.dirty != 0 {
		t.Fatalf("dirty = %d after save, want 0", e.dirty)
	}
}

func TestSaveShrinksFile(t *testing.T) {
	e := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "shrink.txt")
	if err := os.WriteFile(path, []byte(fixtureContent), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := e.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}

	press(t, e, keys.KeyArrowDown)
	press(t, e, repeatKey(keys.KeyArrowRight, 10)...)
	press(t, e, repeatKey(keys.KeyBackspace, 11)...)
	e.Save()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "first row\nthird row\n" {
		t.Fatalf("saved content = %q, want %q", data, "first row\nthird row\n")
	}
}

var (
	// test, Enter, test, Enter
	testNewFileKeys = []keys.Key{'t', 'e', 's', 't', keys.KeyEnter,
		't', 'e', 's', 't', keys.KeyEnter}
	// test, Enter
	testExistingFileKeys = []keys.Key{'t', 'e', 's', 't', keys.KeyEnter}
)

func TestEncryptionEndToEndEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.aes256cbc")

	e := newTestEditor(t)
	if err := e.HandleEncryption(path, testNewFileKeys); err != nil {
		t.Fatalf("HandleEncryption: %v", err)
	}
	if err := e.Open(path); err != nil && !os.IsNotExist(err) {
		t.Fatalf("Open: %v", err)
	}
	e.Save()
	if e.password != "test" {
		t.Fatalf("password = %q, want %q", e.password, "test")
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if fi.Size() != 48 {
		t.Fatalf("file size = %d, want 48", fi.Size())
	}

	e2 := newTestEditor(t)
	if err := e2.HandleEncryption(path, testExistingFileKeys); err != nil {
		t.Fatalf("HandleEncryption: %v", err)
	}
	if err := e2.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(e2.rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(e2.rows))
	}
	if e2.statusmsg != "Password correct." {
		t.Fatalf("statusmsg = %q, want %q", e2.statusmsg, "Password correct.")
	}
}

func TestEncryptionEndToEndSingleLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.aes256cbc")

	e := newTestEditor(t)
	if err := e.HandleEncryption(path, testNewFileKeys); err != nil {
		t.Fatalf("HandleEncryption: %v", err)
	}
	if err := e.Open(path); err != nil && !os.IsNotExist(err) {
		t.Fatalf("Open: %v", err)
	}
	e.InsertString("hello")
	e.Save()
	if e.password != "test" {
		t.Fatalf("password = %q, want %q", e.password, "test")
	}

	e2 := newTestEditor(t)
	if err := e2.HandleEncryption(path, testExistingFileKeys); err != nil {
		t.Fatalf("HandleEncryption: %v", err)
	}
	if err := e2.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	wantRows(t, e2, "hello")
}

func TestEncryptionEndToEndMultiLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multi.aes256cbc")

	e := newTestEditor(t)
	if err := e.HandleEncryption(path, testNewFileKeys); err != nil {
		t.Fatalf("HandleEncryption: %v", err)
	}
	if err := e.Open(path); err != nil && !os.IsNotExist(err) {
		t.Fatalf("Open: %v", err)
	}
	e.InsertString("hello")
	press(t, e, keys.KeyEnter)
	e.InsertString("world")
	e.Save()

	e2 := newTestEditor(t)
	if err := e2.HandleEncryption(path, testExistingFileKeys); err != nil {
		t.Fatalf("HandleEncryption: %v", err)
	}
	if err := e2.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	wantRows(t, e2, "hello", "world")
}

func TestEncryptionEndToEndEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edit.aes256cbc")

	e := newTestEditor(t)
	if err := e.HandleEncryption(path, testNewFileKeys); err != nil {
		t.Fatalf("HandleEncryption: %v", err)
	}
	if err := e.Open(path); err != nil && !os.IsNotExist(err) {
		t.Fatalf("Open: %v", err)
	}
	e.InsertString("hello")
	e.Save()

	e2 := newTestEditor(t)
	if err := e2.HandleEncryption(path, testExistingFileKeys); err != nil {
		t.Fatalf("HandleEncryption: %v", err)
	}
	if err := e2.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	press(t, e2, repeatKey(keys.KeyArrowRight, 5)...)
	e2.InsertString("world")
	e2.Save()

	e3 := newTestEditor(t)
	if err := e3.HandleEncryption(path, testExistingFileKeys); err != nil {
		t.Fatalf("HandleEncryption: %v", err)
	}
	if err := e3.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	wantRows(t, e3, "helloworld")
}

func TestDrawStatusBar(t *testing.T) {
	e := openFixture(t)
	e.filename = "notes.txt"

	var b strings.Builder
	e.drawStatusBar(&b)
	s := b.String()
	if !strings.Contains(s, "notes.txt - 3 lines") {
		t.Fatalf("status bar %q missing filename and line count", s)
	}
	if !strings.Contains(s, "1/3") {
		t.Fatalf("status bar %q missing position", s)
	}
	if strings.Contains(s, "(modified)") {
		t.Fatalf("status bar %q marks a clean buffer modified", s)
	}

	e.InsertChar('a')
	b.Reset()
	e.drawStatusBar(&b)
	if !strings.Contains(b.String(), "(modified)") {
		t.Fatalf("status bar %q missing modified marker", b.String())
	}
}

func TestDrawRowsWelcome(t *testing.T) {
	e := newTestEditor(t)

	var b strings.Builder
	e.drawRows(&b)
	if !strings.Contains(b.String(), "ette (Encrypted Terminal Text Editor) -- version "+Version) {
		t.Fatalf("empty buffer misses the welcome banner: %q", b.String())
	}
}

func TestDrawMessageBarExpires(t *testing.T) {
	e := openFixture(t)
	e.SetStatusMessage("hello there")

	var b strings.Builder
	e.drawMessageBar(&b)
	if !strings.Contains(b.String(), "hello there") {
		t.Fatalf("message bar %q missing fresh message", b.String())
	}

	e.statusmsgTime = time.Now().Add(-6 * time.Second)
	b.Reset()
	e.drawMessageBar(&b)
	if strings.Contains(b.String(), "hello there") {
		t.Fatalf("message bar %q shows an expired message", b.String())
	}
}

func TestRefreshScreenCursorWithTabs(t *testing.T) {
	e := openFixture(t)
	press(t, e, keys.KeyTab)
	e.InsertChar('x')

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	e.RefreshScreen()
	os.Stdout = orig
	w.Close()

	frame, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	// The tab fills up to the stop at render column 7, putting the
	// cursor after the 'x' on terminal column 9.
	if !strings.Contains(string(frame), "\x1b[1;9H") {
		t.Fatalf("frame missing cursor position escape")
	}
	if !strings.Contains(string(frame), "       xfirst row") {
		t.Fatalf("frame missing expanded tab")
	}
}
