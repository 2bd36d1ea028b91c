// Package status carries the tagged error kinds produced by the encrypted
// container codec. A nil error means Ok; everything else is an *Error
// holding one of the Code values below.
package status

import (
	"errors"
	"fmt"
)

type Code int

const (
	Ok Code = iota
	HeaderNoMagicNumber
	HeaderInvalidAlgorithm
	HeaderInvalidPlaintextSize
	HeaderInvalidIvSize
	InvalidKeySize
	InvalidKey
	InvalidDataSize
	InvalidIvSize
	Unknown
)

func (c Code) String() string {
	switch c {
	case Ok:
		return "ok"
	case HeaderNoMagicNumber:
		return "header: no magic number"
	case HeaderInvalidAlgorithm:
		return "header: invalid algorithm"
	case HeaderInvalidPlaintextSize:
		return "header: invalid plaintext size"
	case HeaderInvalidIvSize:
		return "header: invalid iv size"
	case InvalidKeySize:
		return "invalid key size"
	case InvalidKey:
		return "invalid key"
	case InvalidDataSize:
		return "invalid data size"
	case InvalidIvSize:
		return "invalid iv size"
	case Unknown:
		return "unknown error"
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is a codec failure tagged with a Code.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Message
}

// Errorf builds a tagged error from a format string.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the Code from err. A nil error is Ok; an error that
// is not an *Error anywhere in its chain maps to Unknown.
func CodeOf(err error) Code {
	if err == nil {
		return Ok
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
