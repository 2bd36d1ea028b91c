package editor

import (
	"bufio"
	"math"
	"os"
	"strings"

	"github.com/amirali/ette/crypt"
	"github.com/amirali/ette/logger"
)

// Open loads filename into the buffer, decrypting it first when a
// password has been committed.
func (e *Editor) Open(filename string) error {
	e.dirty = 0
	e.filename = filename

	if e.password != "" {
		return e.openEncrypted(filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 64*1024), math.MaxInt32)
	for s.Scan() {
		e.InsertRow(len(e.rows), s.Text())
	}
	if err := s.Err(); err != nil {
		return err
	}
	e.dirty = 0
	logger.Debugw("opened file", "filename", filename, "rows", len(e.rows))
	return nil
}

func (e *Editor) openEncrypted(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	st, err := crypt.Decrypt(string(data), e.password, e.algorithm)
	if err != nil {
		return err
	}

	var lines []string
	if st.Plaintext != "" {
		lines = strings.Split(st.Plaintext, "\n")
		// A trailing newline does not start another row.
		if strings.HasSuffix(st.Plaintext, "\n") {
			lines = lines[:len(lines)-1]
		}
	}
	for _, line := range lines {
		e.InsertRow(len(e.rows), line)
	}
	e.dirty = 0
	logger.Debugw("opened encrypted file", "filename", filename, "rows", len(e.rows))
	return nil
}

// Save writes the buffer to the current file, encrypting it first when
// a password has been committed. The outcome lands in the status bar.
func (e *Editor) Save() {
	content := e.rowsToString()

	f, err := os.OpenFile(e.filename, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		e.SetStatusMessage("Can't save! I/O error: %s", err)
		return
	}
	defer f.Close()

	if e.password != "" {
		iv, err := crypt.RandomIV()
		if err != nil {
			e.SetStatusMessage("ERROR! Failed to encrypt")
			return
		}
		st, err := crypt.Encrypt(content, e.password, iv, e.algorithm)
		if err != nil {
			e.SetStatusMessage("ERROR! Failed to encrypt")
			return
		}
		content = st.Ciphertext
	}

	if err := f.Truncate(int64(len(content))); err != nil {
		e.SetStatusMessage("Can't save! I/O error: %s", err)
		return
	}
	if _, err := f.WriteString(content); err != nil {
		e.SetStatusMessage("Can't save! I/O error: %s", err)
		return
	}
	e.dirty = 0
	e.SetStatusMessage("%d bytes written on disk", len(content))
	logger.Debugw("saved file", "filename", e.filename, "bytes", len(content))
}
