package editor

import (
	"os"

	"github.com/amirali/ette/crypt"
	"github.com/amirali/ette/editor/keys"
	"github.com/amirali/ette/logger"
)

// NewFilePasswordState tracks the choose-and-confirm prompt flow shown
// before an encrypted file is created.
type NewFilePasswordState int

const (
	NewFileShowEnterPassword NewFilePasswordState = iota
	NewFileTypingEnterPassword
	NewFileEnterPasswordCompleted
	NewFileTypingConfirmPassword
	NewFileConfirmPasswordNeedsCheck
	NewFileShowRetryConfirmPassword
)

// ExistingFilePasswordState tracks the unlock prompt flow for an
// encrypted file already on disk.
type ExistingFilePasswordState int

const (
	ExistingFileShowEnterPassword ExistingFilePasswordState = iota
	ExistingFileTyping
	ExistingFileEnterPasswordNeedsCheck
	ExistingFileShowRetryPassword
)

// typingPassword reports whether key presses are currently collected
// into the password entry instead of the file buffer.
func (e *Editor) typingPassword() bool {
	return e.existingFileState == ExistingFileTyping ||
		e.newFileState == NewFileTypingEnterPassword ||
		e.newFileState == NewFileTypingConfirmPassword
}

// clearBuffer resets the buffer between password prompts.
func (e *Editor) clearBuffer() {
	e.cx = 0
	e.cy = 0
	e.rowoff = 0
	e.coloff = 0
	e.rows = nil
	e.dirty = 0
	e.entryPassword = nil
}

// ProcessKeyPressPasswordMode handles one key press while a password
// prompt owns the buffer. It reports whether Enter completed the entry.
func (e *Editor) ProcessKeyPressPasswordMode(providedKey keys.Key) (bool, error) {
	c := providedKey
	if c == keys.KeyNull {
		var err error
		c, err = e.readKey()
		if err != nil {
			return false, err
		}
	}

	switch c {
	case keys.KeyEnter:
		return true, nil
	case keys.KeyCtrlQ:
		os.Stdout.WriteString("\033c")
		return false, ErrQuitEditor
	case keys.KeyBackspace, keys.KeyCtrlH, keys.KeyDelete:
		// The prompt text itself cannot be erased.
		if e.cx <= len(e.indelibleMsg) {
			return false, nil
		}
		e.DeleteChar()
	case keys.KeyCtrlS, keys.KeyCtrlC, keys.KeyCtrlF,
		keys.KeyPageUp, keys.KeyPageDown,
		keys.KeyArrowUp, keys.KeyArrowDown, keys.KeyArrowLeft, keys.KeyArrowRight,
		keys.KeyCtrlL, keys.KeyEsc:
		// Navigation is disabled while entering a password.
	default:
		e.InsertChar(byte(c))
	}
	return false, nil
}

// HandleEncryption runs the password prompt flow for filename when its
// name selects an encryption algorithm. Provided keys replace terminal
// reads and suppress screen refreshes; tests use them to script the
// prompts.
func (e *Editor) HandleEncryption(filename string, providedKeys []keys.Key) error {
	algorithm := crypt.AlgorithmForFilename(filename)
	if algorithm == crypt.AlgorithmNone {
		return nil
	}
	e.algorithm = algorithm

	if _, err := os.Stat(filename); err == nil {
		return e.handleExistingFileEncryption(filename, providedKeys)
	}
	return e.handleNewFileEncryption(providedKeys)
}

func (e *Editor) handleNewFileEncryption(providedKeys []keys.Key) error {
	e.newFileState = NewFileShowEnterPassword
	logger.Debugw("password flow started", "mode", "new file")

	var password, confirmPassword string
	keyIdx := 0
	hasProvidedKeys := len(providedKeys) > 0

	for {
		switch e.newFileState {
		case NewFileShowEnterPassword:
			prompt := "Enter password: "
			e.InsertString(prompt)
			e.indelibleMsg = prompt
			e.newFileState = NewFileTypingEnterPassword

		case NewFileTypingEnterPassword:
			key := keys.KeyNull
			if hasProvidedKeys && keyIdx < len(providedKeys) {
				key = providedKeys[keyIdx]
			}
			keyIdx++
			entered, err := e.ProcessKeyPressPasswordMode(key)
			if err != nil {
				return err
			}
			if entered {
				password = string(e.entryPassword)
				e.newFileState = NewFileEnterPasswordCompleted
			}

		case NewFileEnterPasswordCompleted:
			e.clearBuffer()
			prompt := "Confirm password: "
			e.InsertString(prompt)
			e.indelibleMsg = prompt
			e.newFileState = NewFileTypingConfirmPassword

		case NewFileTypingConfirmPassword:
			key := keys.KeyNull
			if hasProvidedKeys && keyIdx < len(providedKeys) {
				key = providedKeys[keyIdx]
			}
			keyIdx++
			entered, err := e.ProcessKeyPressPasswordMode(key)
			if err != nil {
				return err
			}
			if entered {
				confirmPassword = string(e.entryPassword)
				e.newFileState = NewFileConfirmPasswordNeedsCheck
			}

		case NewFileConfirmPasswordNeedsCheck:
			if password == confirmPassword {
				e.password = password
				e.clearBuffer()
				e.indelibleMsg = ""
				logger.Debugw("password flow finished", "mode", "new file")
				return nil
			}
			e.newFileState = NewFileShowRetryConfirmPassword

		case NewFileShowRetryConfirmPassword:
			logger.Debugw("password confirmation mismatch")
			e.clearBuffer()
			prompt := "Password mismatch. Confirm password: "
			e.InsertString(prompt)
			e.indelibleMsg = prompt
			e.newFileState = NewFileTypingConfirmPassword
		}

		if !hasProvidedKeys {
			e.RefreshScreen()
		}
	}
}

func (e *Editor) handleExistingFileEncryption(filename string, providedKeys []keys.Key) error {
	e.existingFileState = ExistingFileShowEnterPassword
	logger.Debugw("password flow started", "mode", "existing file")

	var password string
	keyIdx := 0
	hasProvidedKeys := len(providedKeys) > 0

	for {
		switch e.existingFileState {
		case ExistingFileShowEnterPassword:
			prompt := "Enter password: "
			e.InsertString(prompt)
			e.indelibleMsg = prompt
			e.existingFileState = ExistingFileTyping

		case ExistingFileTyping:
			key := keys.KeyNull
			if hasProvidedKeys && keyIdx < len(providedKeys) {
				key = providedKeys[keyIdx]
			}
			keyIdx++
			entered, err := e.ProcessKeyPressPasswordMode(key)
			if err != nil {
				return err
			}
			if entered {
				password = string(e.entryPassword)
				e.existingFileState = ExistingFileEnterPasswordNeedsCheck
			}

		case ExistingFileEnterPasswordNeedsCheck:
			if crypt.IsKeyCorrect(password, filename, e.algorithm) {
				e.password = password
				e.clearBuffer()
				e.indelibleMsg = ""
				e.SetStatusMessage("Password correct.")
				logger.Debugw("password flow finished", "mode", "existing file")
				return nil
			}
			e.existingFileState = ExistingFileShowRetryPassword

		case ExistingFileShowRetryPassword:
			logger.Debugw("password rejected")
			e.clearBuffer()
			prompt := "Incorrect password. Try again: "
			e.InsertString(prompt)
			e.indelibleMsg = prompt
			e.existingFileState = ExistingFileTyping
		}

		if !hasProvidedKeys {
			e.RefreshScreen()
		}
	}
}
