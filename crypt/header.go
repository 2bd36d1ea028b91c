package crypt

import (
	"encoding/binary"
	"strconv"

	"github.com/amirali/ette/status"
)

// Container layout, a 32 byte header followed by the CBC payload:
//
//	[0:4)   magic "ETTE"
//	[4]     algorithm, ASCII "1" = AES-256-CBC
//	[5:8)   version, 0.0.1 encoded as "001"
//	[8:16)  plaintext size
//	[16:32) IV, final byte always 0x00
const (
	headerMagicSize     = 4
	headerAlgorithmSize = 1
	headerVersionSize   = 3
	headerSizeFieldSize = 8
	headerIvSize        = 16
	headerSize          = headerMagicSize + headerAlgorithmSize +
		headerVersionSize + headerSizeFieldSize + headerIvSize
)

const (
	versionMajor = 0
	versionMinor = 0
	versionPatch = 1
)

var headerMagic = [headerMagicSize]byte{0x45, 0x54, 0x54, 0x45} // "ETTE"

// sizeOrder is the byte order of the plaintext size field. The format
// stores the field MSB-first on little-endian hosts and LSB-first on
// big-endian ones, so containers only round-trip between hosts of the
// same endianness.
var sizeOrder = func() binary.ByteOrder {
	if binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 0x01 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}()

func versionField() string {
	return strconv.Itoa(versionMajor) + strconv.Itoa(versionMinor) + strconv.Itoa(versionPatch)
}

func encodeHeader(plaintextSize uint64, iv []byte) []byte {
	h := make([]byte, 0, headerSize)
	h = append(h, headerMagic[:]...)
	h = append(h, '1')
	h = append(h, versionField()...)
	var size [headerSizeFieldSize]byte
	sizeOrder.PutUint64(size[:], plaintextSize)
	h = append(h, size[:]...)
	h = append(h, iv[:headerIvSize]...)
	return h
}

// frame is a decoded container: the header fields plus the raw payload.
type frame struct {
	plaintextSize uint64
	iv            []byte
	payload       []byte
}

// parseFrame splits ciphertext into header fields and payload. The
// magic, algorithm and version bytes are skipped without validation;
// the Header* status codes exist for them but are never produced.
func parseFrame(ciphertext string) (frame, error) {
	if len(ciphertext) < headerSize {
		return frame{}, status.Errorf(status.InvalidDataSize, "Ciphertext is too small to contain header")
	}
	rest := []byte(ciphertext[headerMagicSize+headerAlgorithmSize+headerVersionSize:])
	return frame{
		plaintextSize: sizeOrder.Uint64(rest[:headerSizeFieldSize]),
		iv:            rest[headerSizeFieldSize : headerSizeFieldSize+headerIvSize],
		payload:       rest[headerSizeFieldSize+headerIvSize:],
	}, nil
}
