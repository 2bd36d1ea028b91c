// Package crypt implements the encrypted file container: AES-256-CBC
// under a 32 byte header, keyed by a SHA-256 derived password hash.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"

	"github.com/amirali/ette/status"
)

type Algorithm int

const (
	AlgorithmNone Algorithm = iota
	AlgorithmAES256CBC
)

func (a Algorithm) String() string {
	if a == AlgorithmAES256CBC {
		return "aes256cbc"
	}
	return "none"
}

// State is the transient outcome of one codec call. Ciphertext holds
// the full frame after Encrypt and the payload only after Decrypt.
type State struct {
	RawKey         string
	HashedKey      string
	Plaintext      string
	Ciphertext     string
	IV             []byte
	CiphertextSize int
	PlaintextSize  uint64
	Algorithm      Algorithm
}

// hashKey derives the AES-256 key: the first 32 lowercase hex
// characters of SHA-256(rawKey), used as ASCII bytes.
func hashKey(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])[:32]
}

// RandomIV returns 16 bytes from the system CSPRNG.
func RandomIV() ([]byte, error) {
	iv := make([]byte, headerIvSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// AlgorithmForFilename selects the container algorithm from the file
// name. Only names ending in ".aes256cbc" are encrypted.
func AlgorithmForFilename(name string) Algorithm {
	if strings.HasSuffix(name, ".aes256cbc") {
		return AlgorithmAES256CBC
	}
	return AlgorithmNone
}

func Encrypt(plaintext, key string, iv []byte, algorithm Algorithm) (State, error) {
	switch algorithm {
	case AlgorithmAES256CBC:
		return encryptAES256CBC(plaintext, key, iv)
	default:
		return State{}, status.Errorf(status.Unknown, "unsupported algorithm %s", algorithm)
	}
}

func encryptAES256CBC(plaintext, rawKey string, rawIV []byte) (State, error) {
	if rawKey == "" {
		return State{}, status.Errorf(status.InvalidKeySize, "Key is empty")
	}
	if len(rawIV) < headerIvSize {
		return State{}, status.Errorf(status.InvalidIvSize, "IV is not 128 bits")
	}

	// The final IV byte is forced to zero before use and the zeroed copy
	// is what the header stores. Decrypt mirrors this.
	var iv [headerIvSize]byte
	copy(iv[:], rawIV)
	iv[headerIvSize-1] = 0

	hashedKey := hashKey(rawKey)
	block, err := aes.NewCipher([]byte(hashedKey))
	if err != nil {
		return State{}, status.Errorf(status.InvalidKeySize, "Key is not 256 bits")
	}

	padded := pkcs7Pad([]byte(plaintext))
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(padded, padded)

	var b strings.Builder
	b.Write(encodeHeader(uint64(len(plaintext)), iv[:]))
	b.Write(padded)

	return State{
		RawKey:         rawKey,
		HashedKey:      hashedKey,
		Plaintext:      plaintext,
		Ciphertext:     b.String(),
		IV:             rawIV,
		CiphertextSize: len(padded),
		PlaintextSize:  uint64(len(plaintext)),
		Algorithm:      AlgorithmAES256CBC,
	}, nil
}

func Decrypt(ciphertext, rawKey string, algorithm Algorithm) (State, error) {
	switch algorithm {
	case AlgorithmAES256CBC:
		return decryptAES256CBC(ciphertext, rawKey)
	default:
		return State{}, status.Errorf(status.Unknown, "unsupported algorithm %s", algorithm)
	}
}

func decryptAES256CBC(ciphertext, rawKey string) (State, error) {
	f, err := parseFrame(ciphertext)
	if err != nil {
		return State{}, err
	}
	if rawKey == "" {
		return State{}, status.Errorf(status.InvalidKeySize, "Key is empty")
	}

	hashedKey := hashKey(rawKey)
	st := State{
		RawKey:         rawKey,
		HashedKey:      hashedKey,
		Ciphertext:     string(f.payload),
		IV:             f.iv,
		CiphertextSize: len(f.payload),
		PlaintextSize:  f.plaintextSize,
		Algorithm:      AlgorithmAES256CBC,
	}

	// A zero recorded size decrypts to the empty string without touching
	// the cipher, so any key opens an empty container.
	if f.plaintextSize == 0 {
		return st, nil
	}

	if len(f.payload) == 0 || len(f.payload)%aes.BlockSize != 0 {
		return State{}, status.Errorf(status.Unknown, "Unknown error")
	}

	var iv [headerIvSize]byte
	copy(iv[:], f.iv)
	iv[headerIvSize-1] = 0

	block, err := aes.NewCipher([]byte(hashedKey))
	if err != nil {
		return State{}, status.Errorf(status.InvalidKeySize, "Key is not 256 bits")
	}

	decrypted := make([]byte, len(f.payload))
	cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(decrypted, f.payload)

	unpadded, ok := pkcs7Unpad(decrypted)
	if !ok {
		return State{}, status.Errorf(status.InvalidKey, "Key is incorrect")
	}

	// The plaintext is exactly the recorded size: zero filled when the
	// unpadded payload runs short, truncated when it runs long.
	plaintext := make([]byte, f.plaintextSize)
	copy(plaintext, unpadded)
	st.Plaintext = string(plaintext)
	return st, nil
}

// IsKeyCorrect reports whether key decrypts the container at path.
func IsKeyCorrect(key, path string, algorithm Algorithm) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	_, err = Decrypt(string(data), key, algorithm)
	return err == nil
}

// pkcs7Pad appends a whole trailing padding block, so the padded length
// is always ((n/16)+1)*16.
func pkcs7Pad(data []byte) []byte {
	pad := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+pad)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(pad)
	}
	return padded
}

// pkcs7Unpad validates and strips the padding. Padding is the only
// integrity signal the format carries.
func pkcs7Unpad(data []byte) ([]byte, bool) {
	if len(data) == 0 {
		return nil, false
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, false
		}
	}
	return data[:len(data)-pad], true
}
